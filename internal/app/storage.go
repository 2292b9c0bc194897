package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/fastfood_storefront/config"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/internal/repo/memory"
	"github.com/Gunvolt24/fastfood_storefront/internal/repo/postgres"
	rdsrepo "github.com/Gunvolt24/fastfood_storefront/internal/repo/redis"
)

// Драйверы хранилища корзины.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// openKVStore — хранилище по cfg.Storage.Driver и функция его закрытия.
func openKVStore(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.KVStore, func(), error) {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)); driver {
	case "", DriverMemory:
		log.Warnf(ctx, "cart storage is in-memory: cart will not survive restart")
		return memory.NewKVStore(), func() {}, nil

	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres pool: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		log.Infof(ctx, "cart storage: postgres")
		return postgres.NewKVStore(pool), pool.Close, nil

	case DriverRedis:
		client, err := rdsrepo.NewClient(ctx, rdsrepo.ClientConfig{
			URL:          cfg.Redis.URL,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Infof(ctx, "cart storage: redis prefix=%q ttl=%s", cfg.Redis.KeyPrefix, cfg.Redis.KeyTTL)
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warnf(ctx, "redis close: %v", err)
			}
		}
		return rdsrepo.NewKVStore(client, cfg.Redis.KeyPrefix, cfg.Redis.KeyTTL), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q (want memory|postgres|redis)", driver)
	}
}
