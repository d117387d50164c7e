package jobs

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/features/locations"
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
)

// Maintenance — фоновая гигиена данных. Счётчики голосования пишутся
// лучшими усилиями без транзакций, дубли локаций возможны при гонке
// создания, поэтому обе задачи периодически приводят данные к норме.
type Maintenance struct {
	scamsRepo *scams.Repository
	locRepo   *locations.Repository
}

func NewMaintenance(scamsRepo *scams.Repository, locRepo *locations.Repository) *Maintenance {
	return &Maintenance{scamsRepo: scamsRepo, locRepo: locRepo}
}

// ReconcileVotes перевычисляет netvotes постов и комментариев из
// списков проголосовавших и чинит расхождения. Членство в списках —
// источник истины, счётчик всегда производный.
func (m *Maintenance) ReconcileVotes(ctx context.Context) error {
	all, err := m.scamsRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения постов для сверки: %w", err)
	}

	fixed := 0
	for _, sc := range all {
		scamDirty := false

		if want := len(sc.Upvoters) - len(sc.Downvoters); sc.NetVotes != want {
			log.WithFields(log.Fields{
				"scam_id": sc.ID,
				"stored":  sc.NetVotes,
				"derived": want,
			}).Warn("Расхождение netvotes поста")
			sc.NetVotes = want
			if err := m.scamsRepo.SetVotes(ctx, sc.ID, sc.Upvoters, sc.Downvoters, want); err != nil {
				return err
			}
			fixed++
		}

		for i := range sc.Comments {
			c := &sc.Comments[i]
			if want := len(c.Upvoters) - len(c.Downvoters); c.NetVotes != want {
				log.WithFields(log.Fields{
					"scam_id":    sc.ID,
					"comment_id": c.ID,
					"stored":     c.NetVotes,
					"derived":    want,
				}).Warn("Расхождение netvotes комментария")
				c.NetVotes = want
				scamDirty = true
				fixed++
			}
		}
		if scamDirty {
			if err := m.scamsRepo.SetComments(ctx, sc.ID, sc.Comments, sc.CommentCount); err != nil {
				return err
			}
		}
	}

	if fixed > 0 {
		log.WithField("fixed", fixed).Info("Сверка счётчиков: исправлены расхождения")
	}
	return nil
}

// dedupeKey — нормализованный кортеж имён узла. Совпадение ключа при
// одинаковом Kind означает дубль.
func dedupeKey(n *locations.Node) string {
	return strings.Join([]string{
		string(n.Kind),
		common.NormalizeName(n.City),
		common.NormalizeName(n.State),
		common.NormalizeName(n.Country),
		common.NormalizeName(n.Continent),
	}, "|")
}

// DedupeLocations сливает узлы-дубли. Выживает самый старый узел
// (порядок чтения — по времени создания), ссылки детей и постов
// переводятся на него, проигравшие удаляются.
func (m *Maintenance) DedupeLocations(ctx context.Context) error {
	nodes, err := m.locRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения локаций для слияния: %w", err)
	}

	// winner: ключ -> id первого по времени узла с таким ключом.
	winner := make(map[string]string)
	// replace: id проигравшего -> id победителя.
	replace := make(map[string]string)
	for _, n := range nodes {
		key := dedupeKey(n)
		if w, ok := winner[key]; ok {
			replace[n.ID] = w
		} else {
			winner[key] = n.ID
		}
	}
	if len(replace) == 0 {
		return nil
	}

	// Перевод родительских ссылок выживших узлов.
	for _, n := range nodes {
		if _, gone := replace[n.ID]; gone {
			continue
		}
		fields := map[string]any{}
		if id, ok := replace[n.StateID]; ok {
			fields["stateId"] = id
		}
		if id, ok := replace[n.CountryID]; ok {
			fields["countryId"] = id
		}
		if id, ok := replace[n.ContinentID]; ok {
			fields["continentId"] = id
		}
		if len(fields) == 0 {
			continue
		}
		if err := m.locRepo.UpdateParents(ctx, n.ID, fields); err != nil {
			return err
		}
	}

	// Перевод ссылок в постах.
	all, err := m.scamsRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения постов для слияния: %w", err)
	}
	for _, sc := range all {
		dirty := false
		for i := range sc.Locations {
			l := &sc.Locations[i]
			for _, idp := range []*string{&l.CityID, &l.StateID, &l.CountryID, &l.ContinentID} {
				if id, ok := replace[*idp]; ok {
					*idp = id
					dirty = true
				}
			}
		}
		if dirty {
			if err := m.scamsRepo.SetLocations(ctx, sc.ID, sc.Locations); err != nil {
				return err
			}
		}
	}

	// Удаление проигравших.
	for loser := range replace {
		if err := m.locRepo.Delete(ctx, loser); err != nil {
			return err
		}
	}

	log.WithField("merged", len(replace)).Info("Слияние дублей локаций завершено")
	return nil
}
