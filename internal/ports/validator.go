package ports

import (
	"context"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// CartValidator — проверка списка строк корзины (например, после загрузки из хранилища).
type CartValidator interface {
	ValidateLines(ctx context.Context, lines []domain.CartLine) error
}

// StatusEventValidator — проверка события смены статуса заказа.
type StatusEventValidator interface {
	ValidateStatusEvent(ctx context.Context, event *domain.OrderStatusEvent) error
}
