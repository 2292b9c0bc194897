// Пакет notify — приёмник пользовательских уведомлений: лог + ограниченная лента последних.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
)

// DefaultSize — размер ленты по умолчанию.
const DefaultSize = 50

var _ ports.Notifier = (*Feed)(nil)

// Feed — кольцевой буфер уведомлений; самые старые вытесняются.
type Feed struct {
	mu    sync.Mutex
	items []domain.Notification
	next  int
	full  bool

	log ports.Logger
	now func() time.Time
}

// NewFeed — size <= 0 заменяется на DefaultSize.
func NewFeed(size int, log ports.Logger) *Feed {
	if size <= 0 {
		size = DefaultSize
	}
	return &Feed{
		items: make([]domain.Notification, size),
		log:   log,
		now:   time.Now,
	}
}

// Notify — записать уведомление в ленту и в лог с уровнем по severity.
func (f *Feed) Notify(ctx context.Context, message string, severity domain.Severity) {
	n := domain.Notification{Message: message, Severity: severity, At: f.now().UTC()}

	f.mu.Lock()
	f.items[f.next] = n
	f.next = (f.next + 1) % len(f.items)
	if f.next == 0 {
		f.full = true
	}
	f.mu.Unlock()

	switch severity {
	case domain.SeverityError:
		f.log.Errorf(ctx, "notify [%s] %s", severity, message)
	case domain.SeverityWarning:
		f.log.Warnf(ctx, "notify [%s] %s", severity, message)
	default:
		f.log.Infof(ctx, "notify [%s] %s", severity, message)
	}
}

// Recent — до limit последних уведомлений, новые первыми. limit <= 0 — все.
func (f *Feed) Recent(limit int) []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	size := f.next
	if f.full {
		size = len(f.items)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]domain.Notification, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (f.next - i + len(f.items)) % len(f.items)
		out = append(out, f.items[idx])
	}
	return out
}

// Len — текущее число уведомлений в ленте.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return len(f.items)
	}
	return f.next
}
