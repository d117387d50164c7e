// Package scams — service.go содержит бизнес-логику постов:
// создание через резолвер локаций, лента с кэшем, комментарии
// с полной зачисткой леджеров при удалении.
package scams

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/config"
	"github.com/tsonthalia/travel-guardians/internal/features/locations"
	"github.com/tsonthalia/travel-guardians/internal/features/users"
)

const (
	cacheKeyFeed    = "cache:feed"
	cacheKeyPopular = "cache:popular_locations"
)

// Service управляет постами и их комментариями.
type Service struct {
	repo      *Repository
	usersRepo *users.Repository
	locSvc    *locations.Service
	cache     *redis.Client // nil = кэш выключен
	cfg       *config.Config
}

// NewService создаёт сервис постов.
func NewService(repo *Repository, usersRepo *users.Repository, locSvc *locations.Service, cache *redis.Client, cfg *config.Config) *Service {
	return &Service{repo: repo, usersRepo: usersRepo, locSvc: locSvc, cache: cache, cfg: cfg}
}

// CreateInput — ввод формы создания поста.
type CreateInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Locations   []locations.Entry `json:"locations"`
}

// CreateScam создаёт пост: валидация обязательных полей, резолюция
// каждой локации в цепочку узлов, запись документа и ссылка в профиле
// автора.
func (s *Service) CreateScam(ctx context.Context, ident common.Identity, in CreateInput) (*Scam, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, common.ErrEmptyTitle
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, common.ErrEmptyDescription
	}
	if len(in.Locations) == 0 {
		return nil, common.ErrNoLocations
	}

	// Профиль автора обязан существовать до создания поста.
	profile, err := s.usersRepo.Get(ctx, ident.ID)
	if err != nil {
		return nil, err
	}

	resolved := make([]locations.Resolved, 0, len(in.Locations))
	for _, entry := range in.Locations {
		loc, err := s.locSvc.Resolve(ctx, entry)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *loc)
	}

	scam := &Scam{
		Title:        in.Title,
		Description:  in.Description,
		AuthorID:     ident.ID,
		AuthorName:   ident.DisplayName,
		CreatedAt:    time.Now().UTC(),
		Locations:    resolved,
		CommentCount: 0,
		Comments:     []Comment{},
		Upvoters:     []VoteRecord{},
		Downvoters:   []VoteRecord{},
		NetVotes:     0,
	}

	id, err := s.repo.Create(ctx, scam)
	if err != nil {
		return nil, err
	}

	if err := s.usersRepo.SetCreatedScams(ctx, ident.ID, append(profile.CreatedScams, id)); err != nil {
		return nil, err
	}

	s.invalidateCache()

	log.WithFields(log.Fields{
		"scam_id": id,
		"user_id": ident.ID,
	}).Info("Пост создан")

	return scam, nil
}

// feedCacheEntry несёт id поста рядом с телом документа: в самом
// документе id не сериализуется, и без обёртки он терялся бы при
// обороте через кэш.
type feedCacheEntry struct {
	ID string `json:"id"`
	*Scam
}

// Feed возвращает ленту постов. Результат кэшируется в Redis на
// FEED_CACHE_TTL; ошибки кэша не фатальны — лента читается из базы.
func (s *Service) Feed(ctx context.Context) ([]*Scam, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(cacheKeyFeed).Result()
		if err == nil {
			var cached []feedCacheEntry
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				out := make([]*Scam, 0, len(cached))
				for _, e := range cached {
					if e.Scam == nil {
						continue
					}
					e.Scam.ID = e.ID
					out = append(out, e.Scam)
				}
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("Кэш ленты недоступен, читаем из базы")
		}
	}

	feed, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		entries := make([]feedCacheEntry, 0, len(feed))
		for _, sc := range feed {
			entries = append(entries, feedCacheEntry{ID: sc.ID, Scam: sc})
		}
		if data, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(cacheKeyFeed, data, s.cfg.FeedCacheTTL).Err(); err != nil {
				log.WithError(err).Warn("Не удалось записать кэш ленты")
			}
		}
	}

	return feed, nil
}

// GetScam возвращает пост по id.
func (s *Service) GetScam(ctx context.Context, id string) (*Scam, error) {
	return s.repo.Get(ctx, id)
}

// AddComment добавляет комментарий к посту: вложенная запись в документе
// поста, инкремент счётчика и ссылка в профиле автора комментария.
func (s *Service) AddComment(ctx context.Context, ident common.Identity, scamID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyComment
	}

	scam, err := s.repo.Get(ctx, scamID)
	if err != nil {
		return nil, err
	}
	profile, err := s.usersRepo.Get(ctx, ident.ID)
	if err != nil {
		return nil, err
	}

	comment := Comment{
		ID:         uuid.NewString(),
		AuthorID:   ident.ID,
		AuthorName: ident.DisplayName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
		Upvoters:   []VoteRecord{},
		Downvoters: []VoteRecord{},
		NetVotes:   0,
	}

	newComments := append(scam.Comments, comment)
	if err := s.repo.SetComments(ctx, scamID, newComments, scam.CommentCount+1); err != nil {
		return nil, err
	}

	newRefs := append(profile.Comments, users.CommentRef{
		ScamID:    scamID,
		CommentID: comment.ID,
		CreatedAt: comment.CreatedAt,
	})
	if err := s.usersRepo.SetComments(ctx, ident.ID, newRefs); err != nil {
		return nil, err
	}

	s.invalidateCache()
	return &comment, nil
}

// DeleteComment удаляет комментарий. Разрешено только автору комментария —
// право на удаление привязано к авторству, не к совпадению id.
//
// Зачистка полная: комментарий убирается из документа поста, счётчик
// уменьшается, из леджера каждого проголосовавшего вычёркивается запись
// об этом комментарии, у автора убирается ссылка на созданный комментарий.
// Исчезнувшие к этому моменту профили голосовавших молча пропускаются.
func (s *Service) DeleteComment(ctx context.Context, ident common.Identity, scamID, commentID string) error {
	scam, err := s.repo.Get(ctx, scamID)
	if err != nil {
		return err
	}

	idx := scam.FindComment(commentID)
	if idx < 0 {
		return common.ErrCommentNotFound
	}
	comment := scam.Comments[idx]
	if comment.AuthorID != ident.ID {
		return common.ErrNotAuthor
	}

	newComments := make([]Comment, 0, len(scam.Comments)-1)
	newComments = append(newComments, scam.Comments[:idx]...)
	newComments = append(newComments, scam.Comments[idx+1:]...)

	count := scam.CommentCount - 1
	if count < 0 {
		count = 0
	}
	if err := s.repo.SetComments(ctx, scamID, newComments, count); err != nil {
		return err
	}

	// Вычёркиваем комментарий из леджеров всех голосовавших.
	// Множества голосов самого комментария зеркалят леджеры,
	// поэтому список затронутых профилей берём из них.
	voters := make(map[string]struct{})
	for _, v := range comment.Upvoters {
		voters[v.UserID] = struct{}{}
	}
	for _, v := range comment.Downvoters {
		voters[v.UserID] = struct{}{}
	}
	for voterID := range voters {
		if err := s.stripCommentVotes(ctx, voterID, scamID, commentID); err != nil {
			return err
		}
	}

	// Убираем ссылку из профиля автора комментария.
	profile, err := s.usersRepo.Get(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil
		}
		return err
	}
	newRefs := make([]users.CommentRef, 0, len(profile.Comments))
	for _, ref := range profile.Comments {
		if ref.ScamID == scamID && ref.CommentID == commentID {
			continue
		}
		newRefs = append(newRefs, ref)
	}
	if err := s.usersRepo.SetComments(ctx, ident.ID, newRefs); err != nil {
		return err
	}

	s.invalidateCache()

	log.WithFields(log.Fields{
		"scam_id":    scamID,
		"comment_id": commentID,
		"voters":     len(voters),
	}).Info("Комментарий удалён")

	return nil
}

// stripCommentVotes убирает запись о комментарии из обоих леджеров профиля.
func (s *Service) stripCommentVotes(ctx context.Context, userID, scamID, commentID string) error {
	profile, err := s.usersRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil // профиль исчез — пропускаем
		}
		return err
	}

	up := users.RemoveCommentVote(profile.UpvotedComments, scamID, commentID)
	down := users.RemoveCommentVote(profile.DownvotedComments, scamID, commentID)
	if len(up) == len(profile.UpvotedComments) && len(down) == len(profile.DownvotedComments) {
		return nil // записи не было
	}
	return s.usersRepo.SetCommentVoteLedgers(ctx, userID, up, down)
}

// PopularLocations возвращает направления с наибольшим числом постов.
// Счёт ведётся по паре (город, страна) без учёта регистра,
// подпись берётся из первого встреченного поста. Кэшируется.
func (s *Service) PopularLocations(ctx context.Context) ([]PopularLocation, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(cacheKeyPopular).Result()
		if err == nil {
			var cached []PopularLocation
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	feed, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]*PopularLocation)
	var order []string
	for _, scam := range feed {
		seen := make(map[string]struct{}) // пост считается за направление один раз
		for _, loc := range scam.Locations {
			key := common.NormalizeName(loc.City) + "|" + common.NormalizeName(loc.Country)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			if p, ok := counts[key]; ok {
				p.ScamCount++
				continue
			}
			counts[key] = &PopularLocation{City: loc.City, Country: loc.Country, ScamCount: 1}
			order = append(order, key)
		}
	}

	out := make([]PopularLocation, 0, len(counts))
	for _, key := range order {
		out = append(out, *counts[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScamCount > out[j].ScamCount
	})
	if len(out) > s.cfg.PopularLocationsLimit {
		out = out[:s.cfg.PopularLocationsLimit]
	}

	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(cacheKeyPopular, data, s.cfg.FeedCacheTTL).Err(); err != nil {
				log.WithError(err).Warn("Не удалось записать кэш популярных направлений")
			}
		}
	}

	return out, nil
}

// invalidateCache сбрасывает кэши после любой мутации, меняющей ленту.
func (s *Service) invalidateCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(cacheKeyFeed, cacheKeyPopular).Err(); err != nil {
		log.WithError(err).Warn("Не удалось сбросить кэш")
	}
}
