package ports

import (
	"context"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// Notifier — приёмник пользовательских уведомлений (fire-and-forget).
type Notifier interface {
	Notify(ctx context.Context, message string, severity domain.Severity)
}
