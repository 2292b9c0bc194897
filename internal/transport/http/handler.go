package rest

import (
	"context"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/cart"
	"github.com/Gunvolt24/fastfood_storefront/internal/checkout"
	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/internal/ui"
)

// cartService — корзина сессии (internal/cart.Store).
type cartService interface {
	AddItem(ctx context.Context, product domain.Product) error
	RemoveItem(ctx context.Context, productID string) error
	UpdateQuantity(ctx context.Context, productID string, n int) error
	Clear(ctx context.Context) error
	Snapshot() cart.Snapshot
}

// checkoutRunner — оформление заказа (internal/checkout.Workflow).
type checkoutRunner interface {
	Run(ctx context.Context) (domain.OrderConfirmation, error)
	Snapshot() checkout.Snapshot
}

// screen — состояние экрана (internal/ui.Presenter).
type screen interface {
	OpenCart(ctx context.Context)
	Screen() ui.CartScreen
}

type notificationFeed interface {
	Recent(limit int) []domain.Notification
}

// statusTracker — статусы заказов из брокера (usecase.OrderTracker).
type statusTracker interface {
	Status(ctx context.Context, orderID string) (domain.OrderStatusEvent, bool, error)
}

// Deps — зависимости обработчиков. Tracker и Orders опциональны.
type Deps struct {
	Catalog  ports.CatalogReader
	Cart     cartService
	Checkout checkoutRunner
	Screen   screen
	Feed     notificationFeed
	Tracker  statusTracker
	Orders   ports.OrderGateway
}

// Handler — HTTP-обработчики сессии витрины.
type Handler struct {
	deps      Deps
	log       ports.Logger
	timeout   time.Duration
	sessionID string
}

// NewHandler — timeout ограничивает обработку одного запроса (0 — без ограничения).
func NewHandler(deps Deps, log ports.Logger, timeout time.Duration, sessionID string) *Handler {
	return &Handler{deps: deps, log: log, timeout: timeout, sessionID: sessionID}
}

// requestContext — контекст запроса с таймаутом обработчика.
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}
