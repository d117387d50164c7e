// Package locations — service.go собирает три прохода резолвера:
// перепроверка заявок, подбор по именам и создание недостающего хвоста.
package locations

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/common"
)

// Service резолвит ввод формы в подтверждённые цепочки узлов.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис локаций.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ValidateEntry проверяет обязательные текстовые поля до резолюции.
// Город, страна и континент обязательны, штат опционален.
func ValidateEntry(e Entry) error {
	if strings.TrimSpace(e.City) == "" {
		return common.ErrEmptyCity
	}
	if strings.TrimSpace(e.Country) == "" {
		return common.ErrEmptyCountry
	}
	if strings.TrimSpace(e.Continent) == "" {
		return common.ErrEmptyContinent
	}
	return nil
}

// Resolve превращает ввод формы в подтверждённую цепочку узлов.
//
// Проход 1 снимает недостоверные заявки автокомплита и переписывает
// тексты формы каноническими. Проход 2 цепляет уровни без id к
// существующим узлам по совпадению имён. Проход 3 создаёт только
// недостающий хвост цепочки от самого общего уровня к городу,
// протягивая каждый новый id как родителя следующего уровня.
//
// Одновременное создание одинакового нового места двумя авторами не
// блокируется: дубль допустим и склеивается фоновой задачей.
func (s *Service) Resolve(ctx context.Context, entry Entry) (*Resolved, error) {
	if err := ValidateEntry(entry); err != nil {
		return nil, err
	}

	nodes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки графа локаций: %w", err)
	}
	byID := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	revalidateClaims(&entry, byID)
	backfillByName(&entry, nodes)

	created, err := s.createMissing(ctx, &entry)
	if err != nil {
		return nil, err
	}
	if created > 0 {
		log.WithFields(log.Fields{
			"city":    entry.City,
			"country": entry.Country,
			"created": created,
		}).Info("Созданы новые узлы локаций")
	}

	return &Resolved{
		CityID:      entry.CityID,
		StateID:     entry.StateID,
		CountryID:   entry.CountryID,
		ContinentID: entry.ContinentID,
		City:        entry.City,
		State:       entry.State,
		Country:     entry.Country,
		Continent:   entry.Continent,
	}, nil
}

// createMissing — третий проход: создание недостающего хвоста цепочки.
// Идём от континента к городу; всё, что выше первого найденного id,
// переиспользуется без изменений. Возвращает число созданных узлов.
func (s *Service) createMissing(ctx context.Context, e *Entry) (int, error) {
	now := time.Now().UTC()
	created := 0

	if e.ContinentID == "" {
		id, err := s.repo.Create(ctx, &Node{
			Kind:      KindContinent,
			Continent: e.Continent,
			CreatedAt: now,
		})
		if err != nil {
			return created, err
		}
		e.ContinentID = id
		created++
	}

	if e.CountryID == "" {
		id, err := s.repo.Create(ctx, &Node{
			Kind:        KindCountry,
			Country:     e.Country,
			Continent:   e.Continent,
			ContinentID: e.ContinentID,
			CreatedAt:   now,
		})
		if err != nil {
			return created, err
		}
		e.CountryID = id
		created++
	}

	if e.State != "" && e.StateID == "" {
		id, err := s.repo.Create(ctx, &Node{
			Kind:        KindState,
			State:       e.State,
			Country:     e.Country,
			Continent:   e.Continent,
			CountryID:   e.CountryID,
			ContinentID: e.ContinentID,
			CreatedAt:   now,
		})
		if err != nil {
			return created, err
		}
		e.StateID = id
		created++
	}

	if e.CityID == "" {
		id, err := s.repo.Create(ctx, &Node{
			Kind:        KindCity,
			City:        e.City,
			State:       e.State,
			Country:     e.Country,
			Continent:   e.Continent,
			StateID:     e.StateID,
			CountryID:   e.CountryID,
			ContinentID: e.ContinentID,
			CreatedAt:   now,
		})
		if err != nil {
			return created, err
		}
		e.CityID = id
		created++
	}

	return created, nil
}

// ListNodes возвращает весь граф — источник данных для автокомплита.
func (s *Service) ListNodes(ctx context.Context) ([]*Node, error) {
	return s.repo.List(ctx)
}
