package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
)

// Проверка, что CartValidator удовлетворяет интерфейсу ports.CartValidator.
var _ ports.CartValidator = (*CartValidator)(nil)

// ErrInvalidCart — базовая (sentinel error) ошибка валидации корзины.
var ErrInvalidCart = errors.New("cart validation failed")

// CartValidator — проверка строк корзины, прочитанных из хранилища или файла.
type CartValidator struct{}

// NewCartValidator — конструктор CartValidator.
// Возвращает ErrInvalidCart (с обёрнутой причиной) при любой проблеме.
func NewCartValidator() *CartValidator { return &CartValidator{} }

// ValidateLines — непустой productId, quantity >= 1, unitPrice >= 0, productId уникален.
// Пустая корзина валидна.
func (v *CartValidator) ValidateLines(_ context.Context, lines []domain.CartLine) error {
	seen := make(map[string]struct{}, len(lines))
	for i := range lines {
		line := &lines[i]
		if line.ProductID == "" {
			return fmt.Errorf("%w: lines[%d].productId обязателен", ErrInvalidCart, i)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: lines[%d].quantity должен быть >= 1", ErrInvalidCart, i)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: lines[%d].unitPrice должен быть неотрицательным", ErrInvalidCart, i)
		}
		if _, dup := seen[line.ProductID]; dup {
			return fmt.Errorf("%w: lines[%d].productId %q повторяется", ErrInvalidCart, i, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}
