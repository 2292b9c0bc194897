//go:build integration

package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/Gunvolt24/fastfood_storefront/internal/repo/postgres"
)

// ApplyMigrationsGoose — применяет встроенные миграции (migrations.FS) к базе по DSN.
func ApplyMigrationsGoose(dsn string) error {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	defer pool.Close()

	return pgrepo.Migrate(ctx, pool)
}
