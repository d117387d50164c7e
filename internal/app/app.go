// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, хранилище документов,
// репозитории, сервисы, обработчики и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"
	"net/http"

	goredis "github.com/go-redis/redis"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/config"
	"github.com/tsonthalia/travel-guardians/internal/db/postgres"
	"github.com/tsonthalia/travel-guardians/internal/db/redis"
	"github.com/tsonthalia/travel-guardians/internal/features/activity"
	"github.com/tsonthalia/travel-guardians/internal/features/locations"
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
	"github.com/tsonthalia/travel-guardians/internal/features/users"
	"github.com/tsonthalia/travel-guardians/internal/features/votes"
	"github.com/tsonthalia/travel-guardians/internal/jobs"
	"github.com/tsonthalia/travel-guardians/internal/server"
	"github.com/tsonthalia/travel-guardians/internal/store"
)

// App содержит все компоненты приложения.
type App struct {
	Server    *http.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	Cache     *goredis.Client
	Limiter   *server.RateLimiter

	cfg *config.Config
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	db := store.NewPostgres(pool)

	// === 2. Кэш (опционален) ===
	cache, err := redis.NewClient(cfg)
	if err != nil {
		// Без кэша приложение работает, только лента читается из БД.
		log.WithError(err).Warn("Кэш недоступен, продолжаем без него")
		cache = nil
	}

	// === 3. Репозитории ===
	usersRepo := users.NewRepository(db)
	scamsRepo := scams.NewRepository(db)
	locRepo := locations.NewRepository(db)

	// === 4. Сервисы ===
	usersService := users.NewService(usersRepo)
	locService := locations.NewService(locRepo)
	scamsService := scams.NewService(scamsRepo, usersRepo, locService, cache, cfg)
	votesService := votes.NewService(scamsRepo, usersRepo)
	activityService := activity.NewService(usersRepo, scamsRepo)

	// === 5. Обработчики ===
	handlers := server.Handlers{
		Users:     users.NewHandler(usersService),
		Scams:     scams.NewHandler(scamsService),
		Votes:     votes.NewHandler(votesService),
		Locations: locations.NewHandler(locService),
		Activity:  activity.NewHandler(activityService),
	}

	// === 6. HTTP-сервер ===
	limiter := server.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	router := server.NewRouter(handlers, limiter)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// === 7. Фоновые задачи ===
	maintenance := jobs.NewMaintenance(scamsRepo, locRepo)
	scheduler := jobs.NewScheduler(maintenance, cfg)

	return &App{
		Server:    srv,
		Scheduler: scheduler,
		DB:        pool,
		Cache:     cache,
		Limiter:   limiter,
		cfg:       cfg,
	}, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.Limiter.Close()
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			log.WithError(err).Warn("Ошибка закрытия кэша")
		}
	}
	a.DB.Close()
}
