package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

func products(ids ...string) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Product{ID: id, Name: "item " + id, UnitPrice: decimal.NewFromInt(1)})
	}
	return out
}

// fakeClock — управляемое время для проверки TTL без sleep.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestSetGet_HitMiss(t *testing.T) {
	c := NewProductCache(2, 5*time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "all"); ok {
		t.Fatalf("expected miss before Set")
	}

	_ = c.Set(ctx, "all", products("p1", "p2"))
	got, ok := c.Get(ctx, "all")
	if !ok || len(got) != 2 || got[0].ID != "p1" {
		t.Fatalf("expected hit for all, got %v %v", got, ok)
	}
}

func TestTTL_ExpiryIsNotExtendedByReads(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProductCache(2, time.Minute)
	c.now = clock.now
	ctx := context.Background()

	_ = c.Set(ctx, "all", products("p1"))
	clock.advance(40 * time.Second)
	if _, ok := c.Get(ctx, "all"); !ok {
		t.Fatalf("expected hit before TTL")
	}
	clock.advance(40 * time.Second)
	if _, ok := c.Get(ctx, "all"); ok {
		t.Fatalf("expected miss after TTL (reads must not extend it)")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be removed on read")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewProductCache(2, 0) // 0 = без TTL
	ctx := context.Background()

	_ = c.Set(ctx, "A", products("a"))
	_ = c.Set(ctx, "B", products("b"))
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected hit for A")
	}
	// C вытесняет B (давно не читали)
	_ = c.Set(ctx, "C", products("c"))

	if _, ok := c.Get(ctx, "B"); ok {
		t.Fatalf("expected B to be evicted")
	}
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected A to stay")
	}
	if _, ok := c.Get(ctx, "C"); !ok {
		t.Fatalf("expected C to stay")
	}
}

func TestSet_OverwriteRefreshesExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProductCache(2, time.Minute)
	c.now = clock.now
	ctx := context.Background()

	_ = c.Set(ctx, "all", products("p1"))
	clock.advance(50 * time.Second)
	_ = c.Set(ctx, "all", products("p1", "p2"))
	clock.advance(50 * time.Second)

	got, ok := c.Get(ctx, "all")
	if !ok || len(got) != 2 {
		t.Fatalf("overwrite must replace value and refresh expiry, got %v %v", got, ok)
	}
}

func TestSet_PrunesExpiredTail(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProductCache(3, time.Minute)
	c.now = clock.now
	ctx := context.Background()

	_ = c.Set(ctx, "old", products("o"))
	clock.advance(2 * time.Minute)
	_ = c.Set(ctx, "new", products("n"))

	if c.Len() != 1 {
		t.Fatalf("expired tail must be pruned on Set, len=%d", c.Len())
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := NewProductCache(1, 0)
	ctx := context.Background()
	_ = c.Set(ctx, "all", products("p1"))

	got, _ := c.Get(ctx, "all")
	got[0].Name = "changed"

	again, _ := c.Get(ctx, "all")
	if again[0].Name != "item p1" {
		t.Fatalf("cache content must not be affected by caller changes")
	}
}

func TestPurge(t *testing.T) {
	c := NewProductCache(4, 0)
	ctx := context.Background()
	_ = c.Set(ctx, "all", products("p1"))
	_ = c.Set(ctx, "cat:drinks", products("p2"))

	c.Purge(ctx)
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after Purge")
	}
	if _, ok := c.Get(ctx, "all"); ok {
		t.Fatalf("expected miss after Purge")
	}
}

func TestNewProductCache_ZeroCapacity(t *testing.T) {
	c := NewProductCache(0, 0)
	ctx := context.Background()
	_ = c.Set(ctx, "a", products("1"))
	_ = c.Set(ctx, "b", products("2"))
	if c.Len() != 1 {
		t.Fatalf("capacity must be clamped to 1, len=%d", c.Len())
	}
}
