package validate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
)

var _ ports.StatusEventValidator = (*StatusEventValidator)(nil)

// ErrInvalidStatusEvent — событие статуса заказа невалидно; такие события пропускаются.
var ErrInvalidStatusEvent = errors.New("order status event validation failed")

// StatusEventValidator — проверка событий смены статуса заказа.
type StatusEventValidator struct{}

// NewStatusEventValidator — конструктор StatusEventValidator.
func NewStatusEventValidator() *StatusEventValidator { return &StatusEventValidator{} }

// ValidateStatusEvent — проверяет поля и нормализует статус на месте.
func (v *StatusEventValidator) ValidateStatusEvent(_ context.Context, event *domain.OrderStatusEvent) error {
	if event == nil {
		return fmt.Errorf("%w: событие не может быть nil", ErrInvalidStatusEvent)
	}
	if event.OrderID == "" {
		return fmt.Errorf("%w: orderId обязателен", ErrInvalidStatusEvent)
	}
	status, ok := domain.NormalizeOrderStatus(event.Status)
	if !ok {
		return fmt.Errorf("%w: неизвестный статус %q", ErrInvalidStatusEvent, event.Status)
	}
	if event.UpdatedAt.IsZero() || event.UpdatedAt.Before(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("%w: updatedAt некорректен", ErrInvalidStatusEvent)
	}
	event.Status = status
	return nil
}
