package di

import (
	"context"

	"go.uber.org/zap"

	"quote_backend/internal/platform/config"
	"quote_backend/internal/platform/kvstore"
	"quote_backend/internal/platform/redis"
)

// Store is the persisted key/value backend shared by the quota counter and settings.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Ping(ctx context.Context) error
}

var (
	_ Store = (*kvstore.MemoryStore)(nil)
	_ Store = (*kvstore.RedisStore)(nil)
	_ Store = (*kvstore.GormStore)(nil)
)

// openStore returns the configured backend. An unreachable Redis falls back to the
// database store.
func (a *App) openStore(ctx context.Context) (Store, error) {
	switch a.Config.Store.Backend {
	case config.StoreMemory:
		a.Logger.Warn("settings and request counter are not persisted (memory store)")
		return kvstore.NewMemoryStore(), nil
	case config.StoreRedis:
		rdb, err := redis.NewRedisClient(ctx, a.Config.Redis, a.Logger)
		if err != nil {
			a.Logger.Warn("redis unavailable, using database store", zap.Error(err))
			break
		}
		a.Redis = rdb
		a.closers = append(a.closers, rdb.Close)
		return kvstore.NewRedisStore(rdb, a.Config.Redis.Prefix), nil
	}

	store := kvstore.NewGormStore(a.DB)
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
