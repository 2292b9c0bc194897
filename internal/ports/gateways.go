package ports

import (
	"context"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// OrderGateway — удалённый сервис заказов (POST /orders, GET /orders/{id}).
// Ошибка оборачивает domain.ErrNetwork (не-2xx, транспорт) или domain.ErrTimeout.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error)
	OrderStatus(ctx context.Context, orderID string) (domain.OrderConfirmation, error)
}

// CustomerGateway — удалённый сервис клиентов (POST /customers), «создать или получить».
type CustomerGateway interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) (domain.CustomerRef, error)
}
