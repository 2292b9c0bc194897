package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ResolveFormat — для auto формат выбирается по расширению файла (по умолчанию JSON).
func ResolveFormat(filePath string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.EqualFold(filepath.Ext(filePath), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — валидирует файл снимков корзины (JSON или JSONL) и пишет валидный вывод в writer.
// Возвращает сводку вида "N valid / M invalid".
func ValidateFile(ctx context.Context, validator ports.CartValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	format = ResolveFormat(filePath, format)
	if format != FormatJSON && format != FormatJSONL {
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if format == FormatJSONL {
		result, err := ValidateJSONLStream(ctx, validator, file, ow)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d valid / %d invalid", result.ValidLinesCount, result.InvalidLinesCount), nil
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	lines, err := ValidateCartFromJSON(ctx, validator, raw)
	if err != nil {
		return "0 valid / 1 invalid", err
	}
	if err := writeCanonical(ow, lines); err != nil {
		return "", fmt.Errorf("write json: %w", err)
	}
	return "1 valid / 0 invalid", nil
}
