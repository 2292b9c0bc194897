package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
)

// evictLRU — удаляет наименее используемую запись.
func (c *ProductCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement — удаляет запись из списка и индекса.
func (c *ProductCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.key)
	}
	c.ll.Remove(elem)
}

func (c *ProductCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *ProductCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет просроченные записи с хвоста до первой актуальной.
func (c *ProductCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		ent, ok := back.Value.(*entry)
		if ok && !now.After(ent.expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}

// cloneProducts — копия списка, чтобы вызывающий не менял данные внутри кэша.
func cloneProducts(products []domain.Product) []domain.Product {
	if products == nil {
		return nil
	}
	return append([]domain.Product(nil), products...)
}
