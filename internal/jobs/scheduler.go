// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасная сверка счётчиков
// голосования и ночное слияние дублей локаций.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/config"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron        *cron.Cron
	maintenance *Maintenance
	cfg         *config.Config
}

// NewScheduler создаёт планировщик задач. Расписание в UTC:
// у приложения нет «домашнего» часового пояса.
func NewScheduler(maintenance *Maintenance, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		maintenance: maintenance,
		cfg:         cfg,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.AddFunc(s.cfg.JobsReconcileSchedule, func() {
		log.Debug("[CRON] Сверка счётчиков голосования")
		if err := s.maintenance.ReconcileVotes(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка сверки счётчиков")
		}
	})

	s.cron.AddFunc(s.cfg.JobsDedupeSchedule, func() {
		log.Debug("[CRON] Слияние дублей локаций")
		if err := s.maintenance.DedupeLocations(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка слияния дублей")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (UTC)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
