package main

import (
	"context"
	"fmt"

	"homebite/internal/auth"
	"homebite/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// newTokenStore builds the credential store selected by cfg. The returned
// close function releases any connection the store holds.
func newTokenStore(ctx context.Context, cfg config.TokenStoreConfig, logger zerolog.Logger) (auth.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.StoreMemory:
		return auth.NewMemoryStore(), noop, nil

	case config.StoreFile:
		logger.Debug().Str("path", cfg.Path).Msg("using file token store")
		return auth.NewFileStore(cfg.Path, logger), noop, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Debug().Str("addr", cfg.RedisAddr).Msg("using redis token store")
		return auth.NewRedisStore(rdb, cfg.RedisPrefix, cfg.RedisTTL()), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown token store backend %q", cfg.Backend)
	}
}
