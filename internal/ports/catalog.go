package ports

import (
	"context"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// CatalogClient — удалённый сервис каталога (GET /products). Только чтение.
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// CatalogReader — чтение каталога для верхних слоёв (HTTP).
// Refresh сбрасывает кэш и перечитывает каталог из удалённого сервиса.
type CatalogReader interface {
	Products(ctx context.Context, category string) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	Refresh(ctx context.Context) ([]domain.Product, error)
}
