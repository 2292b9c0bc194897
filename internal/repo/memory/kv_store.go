// Пакет memory — KV-хранилище в памяти процесса (драйвер storage=memory и тесты).
package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
)

var _ ports.KVStore = (*KVStore)(nil)

// KVStore — map под RWMutex. Переживает только время жизни процесса.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
