package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
)

// ValidateCartFromJSON — строгий разбор снимка корзины (JSON-массив строк) и его валидация.
// Неизвестные поля и хвостовые данные считаются ошибкой; null — пустая корзина.
func ValidateCartFromJSON(ctx context.Context, validator ports.CartValidator, raw []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lines); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	if err := validator.ValidateLines(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}
