package ports

import (
	"context"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// CartView — отображение корзины; вызывается после каждой мутации.
type CartView interface {
	RenderCart(ctx context.Context, lines []domain.CartLine, total decimal.Decimal)
}

// CheckoutView — реакция интерфейса на успешное оформление заказа.
type CheckoutView interface {
	DismissCart(ctx context.Context)
	ShowConfirmation(ctx context.Context, confirmation domain.OrderConfirmation)
}
