//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProduct — валидный товар каталога с уникальным id.
func MakeProduct(price string, opts ...func(*domain.Product)) domain.Product {
	p := domain.Product{
		ID:          "prod-" + UniqSuffix(),
		Name:        "X-Burger",
		Description: "Pão, carne e queijo",
		UnitPrice:   decimal.RequireFromString(price),
		Category:    "lanche",
	}
	for _, fn := range opts {
		fn(&p)
	}
	return p
}

// MakeCartLines — n строк корзины с уникальными id и ценой 10.50 × (i+1).
func MakeCartLines(n int) []domain.CartLine {
	lines := make([]domain.CartLine, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, domain.CartLine{
			ProductID: "prod-" + UniqSuffix(),
			Name:      "Item",
			UnitPrice: decimal.RequireFromString("10.50").Mul(decimal.NewFromInt(int64(i + 1))),
			Quantity:  i + 1,
		})
	}
	return lines
}

// MakeStatusEvent — событие статуса для уникального заказа.
func MakeStatusEvent(status string) domain.OrderStatusEvent {
	return domain.OrderStatusEvent{
		OrderID:   "ord-" + UniqSuffix(),
		Status:    status,
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func WithCategory(category string) func(*domain.Product) {
	return func(p *domain.Product) { p.Category = category }
}
