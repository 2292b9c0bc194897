package ports

import "context"

// KVStore — долговременное строковое хранилище «ключ → значение» (аналог localStorage).
type KVStore interface {
	// Get — (value, true, nil) если ключ есть, ("", false, nil) если ключа нет.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set — записать значение по ключу (перезапись).
	Set(ctx context.Context, key, value string) error
}
