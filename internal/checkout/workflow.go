// Пакет checkout — оформление заказа из корзины активной сессии.
//
// Одна попытка: Validating → (CreatingCustomer) → Submitting → Succeeded | Failed.
// Повторов нет: при ошибке корзина остаётся как есть, пользователь пробует снова.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
)

// Сообщения пользователю.
const (
	msgEmptyCart  = "Adicione itens ao carrinho primeiro!"
	msgProcessing = "Processando pedido..."
	msgInProgress = "Seu pedido já está sendo processado."
	msgFailed     = "Erro ao processar pedido. Tente novamente."
	msgTimeout    = "O pedido demorou demais para responder. Tente novamente."
	msgSucceeded  = "Pedido #%s realizado com sucesso!"
)

// persistTimeout — сколько ждать записи корзины после принятого заказа.
const persistTimeout = 5 * time.Second

// Cart — то, что workflow нужно от корзины.
type Cart interface {
	Lines() []domain.CartLine
	RemoveOrdered(ctx context.Context, ordered []domain.CartLine) error
}

// Options — параметры оформления.
// Timeout = 0 — без дедлайна на попытку.
type Options struct {
	CreateCustomer bool
	Customer       domain.Customer
	PriceMode      domain.PriceMode
	Timeout        time.Duration
}

// Workflow — конечный автомат оформления заказа. Одновременно выполняется не больше одной попытки.
type Workflow struct {
	cart      Cart
	orders    ports.OrderGateway
	customers ports.CustomerGateway
	view      ports.CheckoutView
	notifier  ports.Notifier
	watcher   ports.OrderWatcher
	log       ports.Logger
	opts      Options

	running atomic.Bool

	mu           sync.RWMutex
	state        State
	confirmation *domain.OrderConfirmation
	errKind      string
	attempts     int
}

// New — DI-конструктор. customers нужен только при opts.CreateCustomer; watcher опционален.
func New(
	cart Cart,
	orders ports.OrderGateway,
	customers ports.CustomerGateway,
	view ports.CheckoutView,
	notifier ports.Notifier,
	watcher ports.OrderWatcher,
	log ports.Logger,
	opts Options,
) *Workflow {
	if opts.PriceMode == "" {
		opts.PriceMode = domain.PriceModeClient
	}
	return &Workflow{
		cart:      cart,
		orders:    orders,
		customers: customers,
		view:      view,
		notifier:  notifier,
		watcher:   watcher,
		log:       log,
		opts:      opts,
	}
}

// Run — одна попытка оформления. Повторный вызов во время выполнения
// сразу возвращает ErrCheckoutInProgress и не трогает состояние.
func (w *Workflow) Run(ctx context.Context) (domain.OrderConfirmation, error) {
	if !w.running.CompareAndSwap(false, true) {
		w.log.Warnf(ctx, "checkout rejected: attempt already in flight")
		metrics.CheckoutAttempts.WithLabelValues("rejected", domain.KindCheckoutInProgress).Inc()
		w.notifier.Notify(ctx, msgInProgress, domain.SeverityWarning)
		return domain.OrderConfirmation{}, domain.ErrCheckoutInProgress
	}
	defer w.running.Store(false)

	w.begin()
	start := time.Now()

	lines := w.cart.Lines()
	if len(lines) == 0 {
		return w.fail(ctx, domain.ErrEmptyCart, start)
	}

	callCtx := ctx
	if w.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, w.opts.Timeout)
		defer cancel()
	}

	w.notifier.Notify(ctx, msgProcessing, domain.SeverityInfo)

	customerRef := ""
	if w.opts.CreateCustomer {
		w.setState(StateCreatingCustomer)
		ref, err := w.customers.CreateCustomer(callCtx, w.opts.Customer)
		if err != nil {
			return w.fail(ctx, fmt.Errorf("create customer: %w", classify(err)), start)
		}
		customerRef = ref.CustomerID
	}

	w.setState(StateSubmitting)
	req := BuildOrderRequest(lines, w.opts.PriceMode, customerRef)
	conf, err := w.orders.CreateOrder(callCtx, req)
	if err != nil {
		return w.fail(ctx, fmt.Errorf("create order: %w", classify(err)), start)
	}
	if conf.OrderID == "" {
		return w.fail(ctx, fmt.Errorf("%w: order service returned no order id", domain.ErrNetwork), start)
	}

	w.succeed(ctx, conf, lines, start)
	return conf, nil
}

// Snapshot — текущее состояние, последнее подтверждение, вид последней ошибки, число попыток.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := Snapshot{State: w.state, ErrorKind: w.errKind, Attempts: w.attempts}
	if w.confirmation != nil {
		c := *w.confirmation
		snap.Confirmation = &c
	}
	return snap
}

// State — текущее состояние.
func (w *Workflow) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Workflow) begin() {
	w.mu.Lock()
	w.attempts++
	w.state = StateValidating
	w.errKind = domain.KindNone
	w.mu.Unlock()
}

func (w *Workflow) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *Workflow) succeed(ctx context.Context, conf domain.OrderConfirmation, ordered []domain.CartLine, start time.Time) {
	// Заказ уже принят: запись не зависит от отмены запроса, иначе после рестарта
	// корзина вернулась бы с уже заказанными строками.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := w.cart.RemoveOrdered(persistCtx, ordered); err != nil {
		w.log.Warnf(ctx, "checkout: cart update after order=%s failed err=%v", conf.OrderID, err)
	}
	if w.watcher != nil {
		if err := w.watcher.Watch(persistCtx, conf.OrderID); err != nil {
			w.log.Warnf(ctx, "checkout: watch order=%s failed err=%v", conf.OrderID, err)
		}
	}

	w.mu.Lock()
	w.state = StateSucceeded
	w.confirmation = &conf
	w.mu.Unlock()

	if w.view != nil {
		w.view.DismissCart(ctx)
		w.view.ShowConfirmation(ctx, conf)
	}
	metrics.CheckoutAttempts.WithLabelValues("succeeded", domain.KindNone).Inc()
	w.notifier.Notify(ctx, fmt.Sprintf(msgSucceeded, conf.OrderID), domain.SeveritySuccess)
	w.log.Infof(ctx, "checkout succeeded order=%s status=%s lines=%d took=%s",
		conf.OrderID, conf.Status, len(ordered), time.Since(start))
}

func (w *Workflow) fail(ctx context.Context, err error, start time.Time) (domain.OrderConfirmation, error) {
	kind := domain.KindOf(err)

	w.mu.Lock()
	w.state = StateFailed
	w.errKind = kind
	w.mu.Unlock()

	metrics.CheckoutAttempts.WithLabelValues("failed", kind).Inc()

	switch kind {
	case domain.KindEmptyCart:
		w.log.Infof(ctx, "checkout skipped: cart is empty")
		w.notifier.Notify(ctx, msgEmptyCart, domain.SeverityError)
	case domain.KindTimeout:
		w.log.Warnf(ctx, "checkout timed out after %s err=%v", time.Since(start), err)
		w.notifier.Notify(ctx, msgTimeout, domain.SeverityError)
	default:
		w.log.Errorf(ctx, "checkout failed kind=%s err=%v", kind, err)
		w.notifier.Notify(ctx, msgFailed, domain.SeverityError)
	}
	return domain.OrderConfirmation{}, err
}

// classify — дедлайн превращается в ErrTimeout, всё остальное без вида — в ErrNetwork.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, domain.ErrNetwork):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
}
