package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// encodeLines — JSON-массив строк корзины; пустая корзина кодируется как "[]".
func encodeLines(lines []domain.CartLine) (string, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(raw), nil
}

// decodeLines — обратная операция. Цена принимается и строкой, и числом.
// "null" и пустая строка дают пустую корзину; всё, что не разбирается, — ErrCorruptState.
func decodeLines(raw string) ([]domain.CartLine, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []domain.CartLine{}, nil
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(trimmed), &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}
