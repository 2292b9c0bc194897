package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/validate"
)

// Префиксы ключей KV: последний статус заказа и отметка «заказ этой сессии».
const (
	statusKeyPrefix = "order_status:"
	watchKeyPrefix  = "order_watch:"
)

var _ ports.OrderWatcher = (*OrderTracker)(nil)

// statusMessages — что показать пользователю при смене статуса.
var statusMessages = map[string]struct {
	text     string
	severity domain.Severity
}{
	domain.OrderStatusPending:   {"Pedido #%s aguardando confirmação.", domain.SeverityInfo},
	domain.OrderStatusReceived:  {"Pedido #%s recebido.", domain.SeverityInfo},
	domain.OrderStatusPaid:      {"Pagamento do pedido #%s confirmado.", domain.SeveritySuccess},
	domain.OrderStatusPreparing: {"Pedido #%s está sendo preparado!", domain.SeverityInfo},
	domain.OrderStatusFinished:  {"Pedido #%s pronto!", domain.SeveritySuccess},
	domain.OrderStatusCancelled: {"Pedido #%s foi cancelado.", domain.SeverityWarning},
}

// OrderTracker — отслеживание статусов заказов сессии по событиям из брокера.
type OrderTracker struct {
	validator ports.StatusEventValidator
	kv        ports.KVStore
	notifier  ports.Notifier
	log       ports.Logger

	mu      sync.RWMutex
	latest  map[string]domain.OrderStatusEvent
	watched map[string]struct{}
}

// NewOrderTracker — DI-конструктор. kv опционален: без него статусы живут только в памяти.
func NewOrderTracker(
	validator ports.StatusEventValidator,
	kv ports.KVStore,
	notifier ports.Notifier,
	log ports.Logger,
) *OrderTracker {
	return &OrderTracker{
		validator: validator,
		kv:        kv,
		notifier:  notifier,
		log:       log,
		latest:    make(map[string]domain.OrderStatusEvent),
		watched:   make(map[string]struct{}),
	}
}

// Watch — отметить заказ как оформленный в этой сессии. Отметка в памяти ставится всегда,
// ошибка означает только, что она не переживёт рестарт.
func (t *OrderTracker) Watch(ctx context.Context, orderID string) error {
	t.mu.Lock()
	t.watched[orderID] = struct{}{}
	t.mu.Unlock()

	if t.kv == nil {
		return nil
	}
	if err := t.kv.Set(ctx, watchKeyPrefix+orderID, "1"); err != nil {
		return fmt.Errorf("persist watch order=%s: %w", orderID, err)
	}
	return nil
}

// isWatched — заказ этой сессии: память, затем KV (после рестарта).
func (t *OrderTracker) isWatched(ctx context.Context, orderID string) (bool, error) {
	t.mu.RLock()
	_, ok := t.watched[orderID]
	t.mu.RUnlock()
	if ok || t.kv == nil {
		return ok, nil
	}

	_, found, err := t.kv.Get(ctx, watchKeyPrefix+orderID)
	if err != nil {
		return false, fmt.Errorf("lookup watch order=%s: %w", orderID, err)
	}
	if found {
		t.mu.Lock()
		t.watched[orderID] = struct{}{}
		t.mu.Unlock()
	}
	return found, nil
}

// HandleStatusEvent — обработать событие статуса (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields);
//  2. валидация (validate.ErrInvalidStatusEvent — событие пропускается навсегда);
//  3. заказ не из этой сессии — событие пропускается без уведомления;
//  4. устаревшее событие (старше известного) игнорируется;
//  5. запись в KV (ошибка хранилища — временная, сообщение будет обработано повторно);
//  6. уведомление пользователя.
func (t *OrderTracker) HandleStatusEvent(ctx context.Context, raw []byte) error {
	var event domain.OrderStatusEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&event); err != nil {
		t.log.Warnf(ctx, "invalid status event json err=%v", err)
		return fmt.Errorf("%w: invalid json: %v", validate.ErrInvalidStatusEvent, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("%w: invalid json: trailing data", validate.ErrInvalidStatusEvent)
	}

	if err := t.validator.ValidateStatusEvent(ctx, &event); err != nil {
		t.log.Warnf(ctx, "status event rejected order=%s err=%v", event.OrderID, err)
		return err
	}

	mine, err := t.isWatched(ctx, event.OrderID)
	if err != nil {
		return err
	}
	if !mine {
		t.log.Debugf(ctx, "status event for foreign order=%s skipped", event.OrderID)
		return nil
	}

	t.mu.RLock()
	prev, known := t.latest[event.OrderID]
	t.mu.RUnlock()
	if known && !event.UpdatedAt.After(prev.UpdatedAt) {
		t.log.Debugf(ctx, "stale status event order=%s status=%s ignored", event.OrderID, event.Status)
		return nil
	}

	if t.kv != nil {
		encoded, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode status event: %w", err)
		}
		if err := t.kv.Set(ctx, statusKeyPrefix+event.OrderID, string(encoded)); err != nil {
			t.log.Errorf(ctx, "status persist failed order=%s err=%v", event.OrderID, err)
			return fmt.Errorf("persist status order=%s: %w", event.OrderID, err)
		}
	}

	t.mu.Lock()
	t.latest[event.OrderID] = event
	t.mu.Unlock()

	if msg, ok := statusMessages[event.Status]; ok {
		t.notifier.Notify(ctx, fmt.Sprintf(msg.text, event.OrderID), msg.severity)
	}
	t.log.Infof(ctx, "order status updated order=%s status=%s", event.OrderID, event.Status)
	return nil
}

// Status — последний известный статус заказа: сначала память, затем KV.
func (t *OrderTracker) Status(ctx context.Context, orderID string) (domain.OrderStatusEvent, bool, error) {
	t.mu.RLock()
	event, ok := t.latest[orderID]
	t.mu.RUnlock()
	if ok || t.kv == nil {
		return event, ok, nil
	}

	raw, found, err := t.kv.Get(ctx, statusKeyPrefix+orderID)
	if err != nil || !found {
		return domain.OrderStatusEvent{}, false, err
	}
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return domain.OrderStatusEvent{}, false, fmt.Errorf("%w: status order=%s: %v", domain.ErrCorruptState, orderID, err)
	}

	t.mu.Lock()
	t.latest[orderID] = event
	t.mu.Unlock()
	return event, true, nil
}
