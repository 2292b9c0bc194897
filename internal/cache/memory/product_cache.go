package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
)

var _ ports.ProductCache = (*ProductCache)(nil)

type entry struct {
	key       string
	products  []domain.Product
	expiresAt time.Time
}

// ProductCache — LRU со сроком жизни записи для списков товаров каталога.
// Срок отсчитывается от записи: чтение его не продлевает, каталог должен обновляться.
type ProductCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewProductCache — capacity <= 0 трактуется как 1, ttl <= 0 — без срока жизни.
func NewProductCache(capacity int, ttl time.Duration) *ProductCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ProductCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *ProductCache) Get(_ context.Context, key string) ([]domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, c.now()) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneProducts(ent.products), true
}

func (c *ProductCache) Set(_ context.Context, key string, products []domain.Product) error {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.products = cloneProducts(products)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		key:       key,
		products:  cloneProducts(products),
		expiresAt: c.expiryFrom(now),
	})
	c.index[key] = elem

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return nil
}

// Purge — сбросить все записи (ручное обновление каталога).
func (c *ProductCache) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.index = make(map[string]*list.Element)
	metrics.CacheOps.WithLabelValues("purged").Inc()
	metrics.CacheSize.Set(0)
}

// Len — число записей (включая ещё не вычищенные просроченные).
func (c *ProductCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
