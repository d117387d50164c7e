// Package users — service.go содержит бизнес-логику профилей.
package users

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/common"
)

// Service управляет профилями пользователей.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис профилей.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateProfile создаёт документ профиля для нового пользователя.
// Вызывается хуком регистрации. Если профиль уже существует — просто
// перезаписывает имя/почту, леджеры создаются пустыми только один раз.
func (s *Service) CreateProfile(ctx context.Context, id, username, email, firstName, lastName string) (*Profile, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	p := &Profile{
		ID:                id,
		Username:          username,
		Email:             email,
		FirstName:         firstName,
		LastName:          lastName,
		CreatedScams:      []string{},
		UpvotedScams:      []ScamVoteRef{},
		DownvotedScams:    []ScamVoteRef{},
		UpvotedComments:   []CommentVoteRef{},
		DownvotedComments: []CommentVoteRef{},
		Comments:          []CommentRef{},
	}
	if existing != nil {
		// Пользователь перезашёл — леджеры не трогаем
		p.CreatedScams = existing.CreatedScams
		p.UpvotedScams = existing.UpvotedScams
		p.DownvotedScams = existing.DownvotedScams
		p.UpvotedComments = existing.UpvotedComments
		p.DownvotedComments = existing.DownvotedComments
		p.Comments = existing.Comments
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("ошибка регистрации профиля: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":  id,
		"username": username,
	}).Info("Профиль создан")

	return p, nil
}

// GetProfile возвращает профиль по id.
func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	return s.repo.Get(ctx, id)
}
