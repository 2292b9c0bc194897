package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что KVStore удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*KVStore)(nil)

// KVStore — хранилище «ключ → значение» на Postgres (таблица storefront_kv).
type KVStore struct {
	pool *pgxpool.Pool
}

// NewKVStore - конструктор KVStore.
func NewKVStore(pool *pgxpool.Pool) *KVStore { return &KVStore{pool: pool} }

// Get — значение по ключу; отсутствие строки не ошибка.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM storefront_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select kv %q: %w", key, err)
	}
	return value, true, nil
}

// Set — upsert по ключу.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value); err != nil {
		return fmt.Errorf("upsert kv %q: %w", key, err)
	}
	return nil
}
