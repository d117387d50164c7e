// Package locations — repository.go отвечает за операции с коллекцией
// locations в хранилище.
package locations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/store"
)

type Repository struct {
	db store.Store
}

func NewRepository(db store.Store) *Repository {
	return &Repository{db: db}
}

// Get возвращает узел по id. Если не найден — common.ErrLocationNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*Node, error) {
	data, err := r.db.Get(ctx, store.CollectionLocations, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrLocationNotFound
		}
		return nil, fmt.Errorf("ошибка чтения локации (%s): %w", id, err)
	}

	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("ошибка разбора локации (%s): %w", id, err)
	}
	n.ID = id
	return &n, nil
}

// List возвращает все узлы графа в порядке создания.
func (r *Repository) List(ctx context.Context) ([]*Node, error) {
	recs, err := r.db.List(ctx, store.CollectionLocations)
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга локаций: %w", err)
	}

	out := make([]*Node, 0, len(recs))
	for _, rec := range recs {
		var n Node
		if err := json.Unmarshal(rec.Data, &n); err != nil {
			return nil, fmt.Errorf("ошибка разбора локации (%s): %w", rec.ID, err)
		}
		n.ID = rec.ID
		out = append(out, &n)
	}
	return out, nil
}

// Create сохраняет новый узел и возвращает его id.
func (r *Repository) Create(ctx context.Context, n *Node) (string, error) {
	id, err := r.db.Create(ctx, store.CollectionLocations, n)
	if err != nil {
		return "", fmt.Errorf("ошибка создания локации (%s): %w", n.Kind, err)
	}
	n.ID = id
	return id, nil
}

// UpdateParents перезаписывает родительские ссылки узла.
// Используется только задачей слияния дублей.
func (r *Repository) UpdateParents(ctx context.Context, id string, fields map[string]any) error {
	if err := r.db.Update(ctx, store.CollectionLocations, id, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrLocationNotFound
		}
		return fmt.Errorf("ошибка обновления локации (%s): %w", id, err)
	}
	return nil
}

// Delete удаляет узел. Используется только задачей слияния дублей.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.Delete(ctx, store.CollectionLocations, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrLocationNotFound
		}
		return fmt.Errorf("ошибка удаления локации (%s): %w", id, err)
	}
	return nil
}
