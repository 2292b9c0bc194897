package ui

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestPresenter_RenderCart(t *testing.T) {
	p := NewPresenter(noopLogger{})
	lines := []domain.CartLine{
		{ProductID: "1", Name: "X-Burger", UnitPrice: decimal.RequireFromString("15.90"), Quantity: 2},
		{ProductID: "2", Name: "Refri", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1},
	}

	p.RenderCart(context.Background(), lines, decimal.RequireFromString("36.80"))

	s := p.Screen()
	if s.Count != 3 || len(s.Lines) != 2 {
		t.Fatalf("unexpected screen: %+v", s)
	}
	if s.TotalFormatted != "R$ 36,80" {
		t.Fatalf("TotalFormatted: got %q", s.TotalFormatted)
	}
	if got := testutil.ToFloat64(metrics.CartItems); got != 3 {
		t.Fatalf("CartItems gauge: got %v", got)
	}
	if got := testutil.ToFloat64(metrics.CartTotal); got != 36.8 {
		t.Fatalf("CartTotal gauge: got %v", got)
	}

	// рендер хранит копию строк
	lines[0].Quantity = 99
	if p.Screen().Lines[0].Quantity != 2 {
		t.Fatalf("presenter must keep its own copy of lines")
	}
}

func TestPresenter_EmptyCart(t *testing.T) {
	p := NewPresenter(noopLogger{})
	p.RenderCart(context.Background(), nil, decimal.Zero)

	s := p.Screen()
	if s.Count != 0 || s.Lines == nil || s.TotalFormatted != "R$ 0,00" {
		t.Fatalf("unexpected empty screen: %+v", s)
	}
}

func TestPresenter_OverlayAndConfirmation(t *testing.T) {
	p := NewPresenter(noopLogger{})
	ctx := context.Background()

	p.OpenCart(ctx)
	if !p.Screen().Open {
		t.Fatalf("overlay must be open")
	}

	p.DismissCart(ctx)
	p.ShowConfirmation(ctx, domain.OrderConfirmation{OrderID: "abc123", Status: "pending"})

	s := p.Screen()
	if s.Open {
		t.Fatalf("overlay must be dismissed")
	}
	if s.Confirmation == nil || s.Confirmation.OrderID != "abc123" || s.Confirmation.Status != "pending" {
		t.Fatalf("unexpected confirmation: %+v", s.Confirmation)
	}

	// Screen возвращает копию подтверждения
	s.Confirmation.OrderID = "zzz"
	if p.Screen().Confirmation.OrderID != "abc123" {
		t.Fatalf("confirmation must be copied")
	}
}
