package domain

import (
	"context"
	"errors"
)

// Базовые (sentinel) ошибки предметной области. Оборачиваются через fmt.Errorf("%w: ...").
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNetwork            = errors.New("network error")
	ErrCorruptState       = errors.New("corrupt stored cart")
	ErrTimeout            = errors.New("request timed out")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrProductNotFound    = errors.New("product not found")
)

// Имена видов ошибок (для уведомлений, метрик и ответов HTTP).
const (
	KindNone               = ""
	KindEmptyCart          = "EmptyCartError"
	KindNetwork            = "NetworkError"
	KindCorruptState       = "CorruptState"
	KindTimeout            = "Timeout"
	KindCheckoutInProgress = "CheckoutInProgress"
	KindProductNotFound    = "ProductNotFound"
	KindUnknown            = "Unknown"
)

// KindOf — вид ошибки по цепочке обёрток.
func KindOf(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyCart):
		return KindEmptyCart
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrCorruptState):
		return KindCorruptState
	case errors.Is(err, ErrCheckoutInProgress):
		return KindCheckoutInProgress
	case errors.Is(err, ErrProductNotFound):
		return KindProductNotFound
	default:
		return KindUnknown
	}
}
