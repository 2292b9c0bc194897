// Пакет ui — презентер сессии витрины: состояние экрана корзины и подтверждения заказа.
package ui

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
	"github.com/Gunvolt24/fastfood_storefront/pkg/money"
)

var (
	_ ports.CartView     = (*Presenter)(nil)
	_ ports.CheckoutView = (*Presenter)(nil)
)

// CartScreen — то, что видит пользователь.
type CartScreen struct {
	Lines          []domain.CartLine         `json:"lines"`
	Count          int                       `json:"count"`
	Total          decimal.Decimal           `json:"total"`
	TotalFormatted string                    `json:"totalFormatted"`
	Open           bool                      `json:"open"`
	Confirmation   *domain.OrderConfirmation `json:"confirmation,omitempty"`
}

// Presenter — последнее отрисованное состояние корзины, открыт ли оверлей,
// последнее подтверждение заказа.
type Presenter struct {
	mu           sync.RWMutex
	lines        []domain.CartLine
	total        decimal.Decimal
	open         bool
	confirmation *domain.OrderConfirmation

	log ports.Logger
}

func NewPresenter(log ports.Logger) *Presenter {
	return &Presenter{lines: []domain.CartLine{}, total: decimal.Zero, log: log}
}

// RenderCart — перерисовка корзины после мутации: счётчик, сумма, гейджи.
func (p *Presenter) RenderCart(ctx context.Context, lines []domain.CartLine, total decimal.Decimal) {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}

	p.mu.Lock()
	p.lines = append([]domain.CartLine(nil), lines...)
	p.total = total
	p.mu.Unlock()

	metrics.CartItems.Set(float64(count))
	metrics.CartTotal.Set(total.InexactFloat64())
	p.log.Debugf(ctx, "cart rendered lines=%d count=%d total=%s", len(lines), count, money.FormatBRL(total))
}

// OpenCart — показать оверлей корзины.
func (p *Presenter) OpenCart(ctx context.Context) {
	p.mu.Lock()
	p.open = true
	p.mu.Unlock()
	p.log.Debugf(ctx, "cart overlay opened")
}

// DismissCart — скрыть оверлей корзины.
func (p *Presenter) DismissCart(ctx context.Context) {
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()
	p.log.Debugf(ctx, "cart overlay dismissed")
}

// ShowConfirmation — показать номер и статус принятого заказа.
func (p *Presenter) ShowConfirmation(ctx context.Context, confirmation domain.OrderConfirmation) {
	c := confirmation
	p.mu.Lock()
	p.confirmation = &c
	p.mu.Unlock()
	p.log.Infof(ctx, "order confirmation shown order=%s status=%s", c.OrderID, c.Status)
}

// Screen — копия текущего состояния экрана.
func (p *Presenter) Screen() CartScreen {
	p.mu.RLock()
	defer p.mu.RUnlock()

	screen := CartScreen{
		Lines:          append([]domain.CartLine{}, p.lines...),
		Total:          p.total,
		TotalFormatted: money.FormatBRL(p.total),
		Open:           p.open,
	}
	for _, l := range p.lines {
		screen.Count += l.Quantity
	}
	if p.confirmation != nil {
		c := *p.confirmation
		screen.Confirmation = &c
	}
	return screen
}
