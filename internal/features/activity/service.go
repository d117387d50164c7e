// Package activity — service.go реализует агрегатор активности.
//
// Шесть источников связей из профиля (созданные посты, созданные
// комментарии, голоса за посты вверх/вниз, голоса за комментарии
// вверх/вниз) сливаются в map по id поста. Ссылки на удалённый
// контент молча пропускаются: устаревание леджеров относительно
// удалённых документов — ожидаемое состояние, не ошибка.
package activity

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
	"github.com/tsonthalia/travel-guardians/internal/features/users"
)

// Service — агрегатор активности. Только читает.
type Service struct {
	usersRepo *users.Repository
	scamsRepo *scams.Repository
}

// NewService создаёт агрегатор.
func NewService(usersRepo *users.Repository, scamsRepo *scams.Repository) *Service {
	return &Service{usersRepo: usersRepo, scamsRepo: scamsRepo}
}

// GetUserActivity возвращает по одной записи на каждый пост, с которым
// у пользователя есть связь. Порядок записей не гарантируется
// (фактически — порядок первого упоминания поста в источниках).
// Отсутствующий профиль — ошибка; отсутствующий пост из леджера — нет.
func (s *Service) GetUserActivity(ctx context.Context, userID string) ([]Record, error) {
	profile, err := s.usersRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make(map[string]*Record)
	var order []string

	// lookup читает пост один раз; NotFound превращается в nil без ошибки.
	cache := make(map[string]*scams.Scam)
	lookup := func(scamID string) (*scams.Scam, error) {
		if scam, ok := cache[scamID]; ok {
			return scam, nil
		}
		scam, err := s.scamsRepo.Get(ctx, scamID)
		if err != nil {
			if errors.Is(err, common.ErrScamNotFound) {
				cache[scamID] = nil
				return nil, nil
			}
			return nil, err
		}
		cache[scamID] = scam
		return scam, nil
	}

	// record возвращает запись для поста, создавая её при первом упоминании.
	record := func(scam *scams.Scam) *Record {
		if rec, ok := records[scam.ID]; ok {
			return rec
		}
		rec := &Record{
			ScamID:            scam.ID,
			Scam:              scam,
			Comments:          []scams.Comment{},
			UpvotedComments:   []scams.Comment{},
			DownvotedComments: []scams.Comment{},
		}
		records[scam.ID] = rec
		order = append(order, scam.ID)
		return rec
	}

	for _, scamID := range profile.CreatedScams {
		scam, err := lookup(scamID)
		if err != nil {
			return nil, err
		}
		if scam == nil {
			continue
		}
		record(scam).IsAuthor = true
	}

	for _, ref := range profile.Comments {
		scam, err := lookup(ref.ScamID)
		if err != nil {
			return nil, err
		}
		if scam == nil {
			continue
		}
		idx := scam.FindComment(ref.CommentID)
		if idx < 0 {
			continue // комментарий удалён
		}
		rec := record(scam)
		rec.Comments = append(rec.Comments, scam.Comments[idx])
	}

	for _, ref := range profile.UpvotedScams {
		scam, err := lookup(ref.ScamID)
		if err != nil {
			return nil, err
		}
		if scam == nil {
			continue
		}
		record(scam).IsUpvoted = true
	}

	for _, ref := range profile.DownvotedScams {
		scam, err := lookup(ref.ScamID)
		if err != nil {
			return nil, err
		}
		if scam == nil {
			continue
		}
		record(scam).IsDownvoted = true
	}

	for _, ref := range profile.UpvotedComments {
		scam, err := lookup(ref.ScamID)
		if err != nil {
			return nil, err
		}
		if scam == nil {
			continue
		}
		idx := scam.FindComment(ref.CommentID)
		if idx < 0 {
			continue
		}
		rec := record(scam)
		rec.UpvotedComments = append(rec.UpvotedComments, scam.Comments[idx])
	}

	for _, ref := range profile.DownvotedComments {
		scam, err := lookup(ref.ScamID)
		if err != nil {
			return nil, err
		}
		if scam == nil {
			continue
		}
		idx := scam.FindComment(ref.CommentID)
		if idx < 0 {
			continue
		}
		rec := record(scam)
		rec.DownvotedComments = append(rec.DownvotedComments, scam.Comments[idx])
	}

	out := make([]Record, 0, len(order))
	for _, id := range order {
		out = append(out, *records[id])
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"records": len(out),
	}).Debug("Сводка активности собрана")

	return out, nil
}
