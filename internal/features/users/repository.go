// Package users — repository.go отвечает за операции с коллекцией users.
// Каждая функция выполняет одно обращение к хранилищу и возвращает
// результат или ошибку.
package users

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

// Get возвращает профиль. Если не найден — common.ErrUserNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*Profile, error) {
	data, err := r.db.Get(ctx, store.CollectionUsers, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения профиля (%s): %w", id, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("ошибка разбора профиля (%s): %w", id, err)
	}
	p.ID = id
	return &p, nil
}

// Create создаёт документ профиля под внешним id.
func (r *Repository) Create(ctx context.Context, p *Profile) error {
	if err := r.db.CreateWithID(ctx, store.CollectionUsers, p.ID, p); err != nil {
		return fmt.Errorf("ошибка создания профиля (%s): %w", p.ID, err)
	}
	return nil
}

// SetScamVoteLedgers перезаписывает оба леджера голосов за посты.
// Леджеры пишутся парой: состояния UPVOTED/DOWNVOTED взаимоисключающие,
// и менять один без другого нельзя.
func (r *Repository) SetScamVoteLedgers(ctx context.Context, id string, up, down []ScamVoteRef) error {
	err := r.db.Update(ctx, store.CollectionUsers, id, map[string]any{
		"upvotedScams":   up,
		"downvotedScams": down,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("ошибка обновления леджеров постов (%s): %w", id, err)
	}
	return nil
}

// SetCommentVoteLedgers перезаписывает оба леджера голосов за комментарии.
func (r *Repository) SetCommentVoteLedgers(ctx context.Context, id string, up, down []CommentVoteRef) error {
	err := r.db.Update(ctx, store.CollectionUsers, id, map[string]any{
		"upvotedComments":   up,
		"downvotedComments": down,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("ошибка обновления леджеров комментариев (%s): %w", id, err)
	}
	return nil
}

// SetCreatedScams перезаписывает список созданных постов.
func (r *Repository) SetCreatedScams(ctx context.Context, id string, createdScams []string) error {
	err := r.db.Update(ctx, store.CollectionUsers, id, map[string]any{
		"createdScams": createdScams,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("ошибка обновления списка постов (%s): %w", id, err)
	}
	return nil
}

// SetComments перезаписывает список созданных комментариев.
func (r *Repository) SetComments(ctx context.Context, id string, comments []CommentRef) error {
	err := r.db.Update(ctx, store.CollectionUsers, id, map[string]any{
		"comments": comments,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("ошибка обновления списка комментариев (%s): %w", id, err)
	}
	return nil
}
