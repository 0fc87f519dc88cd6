package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"eventify/internal/app/db"
	"eventify/internal/configs"
	"eventify/internal/pkg/logx"
)

// Open builds the Store selected by cfg.Backend.
// The returned close function releases backend connections and is never nil.
func Open(ctx context.Context, cfg configs.SessionConfig) (Store, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case configs.BackendMemory:
		return NewMemoryStore(), noop, nil

	case configs.BackendFile:
		return NewFileStore(cfg.FilePath, cfg.Slot), noop, nil

	case configs.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logx.Error(err, "Failed to close redis client")
			}
		}
		return NewRedisStore(client, cfg.Namespace, cfg.Slot), closeFn, nil

	case configs.BackendPostgres:
		pool, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresStore(pool, cfg.Namespace, cfg.Slot), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
