package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/validate"
)

var _ ports.CatalogReader = (*CatalogService)(nil)

// catalogKey — ключ кэша для полного списка товаров.
const catalogKey = "catalog:all"

// CategoryAll — значение фильтра «все категории».
const CategoryAll = "all"

// CatalogService — каталог товаров через кэш (без знаний о транспорте).
type CatalogService struct {
	client ports.CatalogClient
	cache  ports.ProductCache
	log    ports.Logger
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(client ports.CatalogClient, cache ports.ProductCache, log ports.Logger) *CatalogService {
	return &CatalogService{client: client, cache: cache, log: log}
}

// Products — товары категории; пустая категория или "all" — весь каталог.
func (s *CatalogService) Products(ctx context.Context, category string) ([]domain.Product, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		return all, nil
	}
	filtered := make([]domain.Product, 0, len(all))
	for i := range all {
		if strings.EqualFold(all[i].Category, category) {
			filtered = append(filtered, all[i])
		}
	}
	return filtered, nil
}

// Product — товар по id; ErrProductNotFound, если в каталоге его нет.
func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	all, err := s.load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for i := range all {
		if all[i].ID == id {
			return all[i], nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: id=%s", domain.ErrProductNotFound, id)
}

// Refresh — сбросить кэш и перечитать каталог.
func (s *CatalogService) Refresh(ctx context.Context) ([]domain.Product, error) {
	s.cache.Purge(ctx)
	s.log.Infof(ctx, "catalog cache purged")
	return s.load(ctx)
}

// load — кэш, при промахе — API с записью в кэш. Невалидные товары отбрасываются.
func (s *CatalogService) load(ctx context.Context) ([]domain.Product, error) {
	if products, found := s.cache.Get(ctx, catalogKey); found {
		s.log.Debugf(ctx, "catalog cache hit products=%d", len(products))
		return products, nil
	}
	s.log.Infof(ctx, "catalog cache miss")

	start := time.Now()
	fetched, err := s.client.ListProducts(ctx)
	if err != nil {
		s.log.Errorf(ctx, "catalog fetch failed err=%v", err)
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(fetched))
	for i := range fetched {
		if err := validate.ValidateProduct(&fetched[i]); err != nil {
			s.log.Warnf(ctx, "catalog product skipped: %v", err)
			continue
		}
		products = append(products, fetched[i])
	}

	if err := s.cache.Set(ctx, catalogKey, products); err != nil {
		s.log.Warnf(ctx, "catalog cache.Set failed err=%v", err)
	}
	s.log.Infof(ctx, "catalog fetched products=%d skipped=%d took=%s",
		len(products), len(fetched)-len(products), time.Since(start))
	return products, nil
}
