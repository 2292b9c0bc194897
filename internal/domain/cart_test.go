package domain_test

import (
	"testing"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

func TestNewCartLine_And_LineTotal(t *testing.T) {
	p := domain.Product{ID: "p1", Name: "X-Burger", UnitPrice: decimal.RequireFromString("15.9")}

	line := domain.NewCartLine(p)
	if line.ProductID != "p1" || line.Name != "X-Burger" || line.Quantity != 1 {
		t.Fatalf("unexpected line: %+v", line)
	}

	line.Quantity = 3
	if want := decimal.RequireFromString("47.7"); !line.LineTotal().Equal(want) {
		t.Fatalf("LineTotal = %s, want %s", line.LineTotal(), want)
	}
}
