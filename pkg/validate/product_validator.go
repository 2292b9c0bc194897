package validate

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// ErrInvalidProduct — товар из каталога не годится для витрины.
var ErrInvalidProduct = errors.New("product validation failed")

// ErrInvalidCustomer — профиль клиента для оформления заказа некорректен.
var ErrInvalidCustomer = errors.New("customer validation failed")

// ValidateProduct — id и название обязательны, цена неотрицательна.
func ValidateProduct(p *domain.Product) error {
	if p == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name обязателен (id=%s)", ErrInvalidProduct, p.ID)
	}
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: price должен быть неотрицательным (id=%s)", ErrInvalidProduct, p.ID)
	}
	return nil
}

// ValidateCustomer — имя обязательно, email должен разбираться как адрес.
func ValidateCustomer(c *domain.Customer) error {
	if c == nil {
		return fmt.Errorf("%w: клиент не может быть nil", ErrInvalidCustomer)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidCustomer)
	}
	if c.Email == "" {
		return fmt.Errorf("%w: email обязателен", ErrInvalidCustomer)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: email некорректен", ErrInvalidCustomer)
	}
	return nil
}
