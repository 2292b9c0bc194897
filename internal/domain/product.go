package domain

import "github.com/shopspring/decimal"

// Product — позиция каталога (только чтение, источник — внешний сервис каталога).
// Поля нормализуются один раз на границе API.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Category    string          `json:"category,omitempty"`
}
