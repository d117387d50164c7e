// Package scams — repository.go отвечает за операции с коллекцией scams.
package scams

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

// Get возвращает пост. Если не найден — common.ErrScamNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*Scam, error) {
	data, err := r.db.Get(ctx, store.CollectionScams, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrScamNotFound
		}
		return nil, fmt.Errorf("ошибка чтения поста (%s): %w", id, err)
	}

	var s Scam
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("ошибка разбора поста (%s): %w", id, err)
	}
	s.ID = id
	return &s, nil
}

// List возвращает все посты в порядке создания.
func (r *Repository) List(ctx context.Context) ([]*Scam, error) {
	recs, err := r.db.List(ctx, store.CollectionScams)
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга постов: %w", err)
	}

	out := make([]*Scam, 0, len(recs))
	for _, rec := range recs {
		var s Scam
		if err := json.Unmarshal(rec.Data, &s); err != nil {
			return nil, fmt.Errorf("ошибка разбора поста (%s): %w", rec.ID, err)
		}
		s.ID = rec.ID
		out = append(out, &s)
	}
	return out, nil
}

// Create сохраняет новый пост и возвращает его id.
func (r *Repository) Create(ctx context.Context, s *Scam) (string, error) {
	id, err := r.db.Create(ctx, store.CollectionScams, s)
	if err != nil {
		return "", fmt.Errorf("ошибка создания поста: %w", err)
	}
	s.ID = id
	return id, nil
}

// SetVotes перезаписывает агрегат голосов поста одним частичным
// обновлением: оба множества и пересчитанный netvotes вместе,
// чтобы счётчик не разъезжался с членством.
func (r *Repository) SetVotes(ctx context.Context, id string, up, down []VoteRecord, net int) error {
	err := r.db.Update(ctx, store.CollectionScams, id, map[string]any{
		"upvoters":   up,
		"downvoters": down,
		"netvotes":   net,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrScamNotFound
		}
		return fmt.Errorf("ошибка обновления голосов поста (%s): %w", id, err)
	}
	return nil
}

// SetComments перезаписывает вложенные комментарии и их счётчик.
func (r *Repository) SetComments(ctx context.Context, id string, comments []Comment, count int) error {
	err := r.db.Update(ctx, store.CollectionScams, id, map[string]any{
		"comments":     comments,
		"commentCount": count,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrScamNotFound
		}
		return fmt.Errorf("ошибка обновления комментариев поста (%s): %w", id, err)
	}
	return nil
}

// SetLocations перезаписывает цепочки локаций поста.
// Используется только задачей слияния дублей локаций.
func (r *Repository) SetLocations(ctx context.Context, id string, locs any) error {
	err := r.db.Update(ctx, store.CollectionScams, id, map[string]any{
		"locations": locs,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrScamNotFound
		}
		return fmt.Errorf("ошибка обновления локаций поста (%s): %w", id, err)
	}
	return nil
}
