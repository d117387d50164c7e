// Package store реализует документное хранилище, через которое работают
// все фичи сервиса. Документы лежат в коллекциях (users, scams, locations),
// читаются и пишутся целиком или частично (merge по верхнеуровневым полям).
//
// Хранилище — единственная точка работы с персистентностью: сервисы
// получают Store как явную зависимость, что позволяет подменять его
// in-memory реализацией в тестах.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection — тип коллекции документов.
type Collection string

const (
	// CollectionUsers — профили пользователей с личными леджерами голосов.
	CollectionUsers Collection = "users"
	// CollectionScams — посты с вложенными комментариями и агрегатами голосов.
	CollectionScams Collection = "scams"
	// CollectionLocations — узлы иерархии локаций.
	CollectionLocations Collection = "locations"
)

// ErrNotFound возвращается при чтении/обновлении несуществующего документа.
var ErrNotFound = errors.New("документ не найден")

// Record — документ из листинга коллекции: id + сырое тело.
type Record struct {
	ID   string
	Data json.RawMessage
}

// Store — контракт персистентности.
//
// Семантика: Get/Update/Delete по несуществующему id возвращают ErrNotFound;
// Create генерирует новый id и возвращает его; CreateWithID пишет документ
// под внешним id (профили живут под id из системы аутентификации);
// Update — частичное обновление, затрагивающее только переданные
// верхнеуровневые поля; любая транспортная ошибка возвращается обёрнутой,
// без повторов. Условных обновлений (compare-and-swap) контракт не даёт.
type Store interface {
	Get(ctx context.Context, kind Collection, id string) (json.RawMessage, error)
	Create(ctx context.Context, kind Collection, doc any) (string, error)
	CreateWithID(ctx context.Context, kind Collection, id string, doc any) error
	Update(ctx context.Context, kind Collection, id string, fields map[string]any) error
	List(ctx context.Context, kind Collection) ([]Record, error)
	Delete(ctx context.Context, kind Collection, id string) error
}
