// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют HTTP-слою различать типы проблем
// и возвращать клиенту корректный статус и код.
package common

import "errors"

// Ошибки «не найдено». Каждое чтение перед мутацией проверяет
// существование записи и возвращает одну из них.
var (
	// ErrUserNotFound — профиль пользователя не найден
	ErrUserNotFound = errors.New("профиль пользователя не найден")
	// ErrScamNotFound — пост (скам) не найден
	ErrScamNotFound = errors.New("пост не найден")
	// ErrCommentNotFound — комментарий не найден в посте
	ErrCommentNotFound = errors.New("комментарий не найден")
	// ErrLocationNotFound — локация по id не найдена
	ErrLocationNotFound = errors.New("локация не найдена")
)

// Ошибки валидации постов и локаций
var (
	// ErrEmptyTitle — заголовок поста обязателен
	ErrEmptyTitle = errors.New("заголовок обязателен")
	// ErrEmptyDescription — описание поста обязательно
	ErrEmptyDescription = errors.New("описание обязательно")
	// ErrNoLocations — у поста должна быть хотя бы одна локация
	ErrNoLocations = errors.New("нужна хотя бы одна локация")
	// ErrEmptyCity — город обязателен
	ErrEmptyCity = errors.New("город обязателен")
	// ErrEmptyCountry — страна обязательна
	ErrEmptyCountry = errors.New("страна обязательна")
	// ErrEmptyContinent — континент обязателен
	ErrEmptyContinent = errors.New("континент обязателен")
	// ErrEmptyComment — текст комментария обязателен
	ErrEmptyComment = errors.New("текст комментария обязателен")
)

// Ошибки прав доступа
var (
	// ErrNotAuthor — действие разрешено только автору
	ErrNotAuthor = errors.New("действие доступно только автору")
)
