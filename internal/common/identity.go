// Package common — identity.go описывает личность действующего
// пользователя. Аутентификация внешняя: сервис получает уже
// проверенную пару id + отображаемое имя и доверяет ей.
package common

// Identity — непрозрачная личность вызывающего.
type Identity struct {
	ID          string
	DisplayName string
}

// IsAnonymous — личность без id. Анонимные мутации отклоняются
// на HTTP-слое, до вызова движков.
func (i Identity) IsAnonymous() bool {
	return i.ID == ""
}
