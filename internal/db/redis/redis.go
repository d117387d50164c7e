// Package redis создаёт клиент Redis для кэша ленты и популярных локаций.
// Кэш опциональный: при пустом REDIS_ADDR сервис работает без него.
package redis

import (
	"fmt"

	"github.com/go-redis/redis"
	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/config"
)

// NewClient подключается к Redis. Возвращает nil, nil если адрес не задан —
// вызывающий код обязан переживать nil-клиент.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR не задан — кэш отключён")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("redis недоступен (%s): %w", cfg.RedisAddr, err)
	}

	log.Infof("Подключение к Redis установлено (%s)", cfg.RedisAddr)
	return client, nil
}
