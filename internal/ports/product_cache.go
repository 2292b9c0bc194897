package ports

import (
	"context"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// ProductCache — кэш списков товаров каталога.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий.
type ProductCache interface {
	// Get — вернуть список по ключу; (nil, false) при промахе/истечении TTL.
	Get(ctx context.Context, key string) ([]domain.Product, bool)

	// Set — сохранить/обновить список по ключу.
	Set(ctx context.Context, key string, products []domain.Product) error

	// Purge — удалить все записи (принудительное обновление каталога).
	Purge(ctx context.Context)
}
