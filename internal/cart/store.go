// Пакет cart — корзина активной сессии витрины.
//
// Store владеет упорядоченным списком строк (порядок добавления), после каждой
// мутации сначала перерисовывает представление, затем пишет копию в KV-хранилище.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// DefaultKey — ключ хранилища для сериализованной корзины.
const DefaultKey = "cart"

// Store — корзина сессии. Безопасна для конкурентного использования.
type Store struct {
	mu    sync.Mutex
	lines []domain.CartLine

	kv        ports.KVStore
	key       string
	view      ports.CartView
	validator ports.CartValidator
	log       ports.Logger
}

// New — DI-конструктор. Пустой key заменяется на DefaultKey; view и validator опциональны.
func New(kv ports.KVStore, key string, view ports.CartView, validator ports.CartValidator, log ports.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		lines:     []domain.CartLine{},
		kv:        kv,
		key:       key,
		view:      view,
		validator: validator,
		log:       log,
	}
}

// AddItem — +1 к существующей строке товара или новая строка с количеством 1 в конце списка.
func (s *Store) AddItem(ctx context.Context, product domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("%w: empty product id", domain.ErrProductNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, domain.NewCartLine(product))
	}
	metrics.CartOps.WithLabelValues("add").Inc()
	return s.commitLocked(ctx)
}

// RemoveItem — удалить строку товара; отсутствие строки не ошибка.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	metrics.CartOps.WithLabelValues("remove").Inc()
	return s.commitLocked(ctx)
}

// UpdateQuantity — n <= 0 удаляет строку; иначе задаёт количество.
// Для товара, которого нет в корзине, при n > 0 ничего не меняется.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		s.removeLocked(productID)
		metrics.CartOps.WithLabelValues("remove").Inc()
		return s.commitLocked(ctx)
	}

	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity = n
	} else {
		s.log.Debugf(ctx, "cart update ignored: product=%s not in cart", productID)
	}
	metrics.CartOps.WithLabelValues("update").Inc()
	return s.commitLocked(ctx)
}

// Clear — очистить корзину и сохранить пустое состояние.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []domain.CartLine{}
	metrics.CartOps.WithLabelValues("clear").Inc()
	return s.commitLocked(ctx)
}

// RemoveOrdered — вычесть заказанные количества. Строка, у которой количество дошло до нуля,
// удаляется; то, что добавлено после снимка заказа, остаётся в корзине.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ordered {
		i := s.indexOf(o.ProductID)
		if i < 0 {
			continue
		}
		if s.lines[i].Quantity <= o.Quantity {
			s.removeLocked(o.ProductID)
			continue
		}
		s.lines[i].Quantity -= o.Quantity
	}
	metrics.CartOps.WithLabelValues("remove_ordered").Inc()
	return s.commitLocked(ctx)
}

// Snapshot — строки, количество и сумма, снятые под одной блокировкой.
type Snapshot struct {
	Lines []domain.CartLine
	Count int
	Total decimal.Decimal
}

// Snapshot — согласованный снимок корзины.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Lines: s.snapshotLocked(), Count: countOf(s.lines), Total: totalOf(s.lines)}
}

// Total — сумма unitPrice * quantity по всем строкам.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.lines)
}

// Lines — копия строк в порядке добавления.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count — суммарное количество единиц товара.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countOf(s.lines)
}

// Len — число строк.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Save — записать текущие строки в хранилище.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

// Load — заменить строки сохранёнными. Нет записи — пустая корзина.
// Неразбираемые или невалидные данные — ошибка с ErrCorruptState, состояние в памяти не меняется.
func (s *Store) Load(ctx context.Context) error {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load cart key=%s: %w", s.key, err)
	}

	lines := []domain.CartLine{}
	if found {
		if lines, err = decodeLines(raw); err != nil {
			return err
		}
		if s.validator != nil {
			if err := s.validator.ValidateLines(ctx, lines); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrCorruptState, err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
	s.renderLocked(ctx)
	return nil
}

// Restore — восстановление при старте сессии. Повреждённая запись заменяется пустой корзиной.
// Ошибка возвращается только если хранилище недоступно; корзина при этом пустая.
func (s *Store) Restore(ctx context.Context) error {
	err := s.Load(ctx)
	switch {
	case err == nil:
		metrics.CartOps.WithLabelValues("restore").Inc()
		s.log.Infof(ctx, "cart restored key=%s lines=%d", s.key, s.Len())
		return nil
	case errors.Is(err, domain.ErrCorruptState):
		s.log.Warnf(ctx, "stored cart is corrupt, starting empty key=%s err=%v", s.key, err)
		metrics.CartOps.WithLabelValues("restore_corrupt").Inc()
		return s.Clear(ctx)
	default:
		s.log.Errorf(ctx, "cart restore failed key=%s err=%v", s.key, err)
		return err
	}
}

// commitLocked — перерисовка, затем запись. Ошибка записи не откатывает изменение в памяти.
func (s *Store) commitLocked(ctx context.Context) error {
	s.renderLocked(ctx)
	if err := s.saveLocked(ctx); err != nil {
		s.log.Warnf(ctx, "cart persist failed key=%s err=%v", s.key, err)
		return err
	}
	return nil
}

func (s *Store) renderLocked(ctx context.Context) {
	if s.view == nil {
		return
	}
	s.view.RenderCart(ctx, s.snapshotLocked(), totalOf(s.lines))
}

func (s *Store) saveLocked(ctx context.Context) error {
	raw, err := encodeLines(s.lines)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save cart key=%s: %w", s.key, err)
	}
	return nil
}

func (s *Store) removeLocked(productID string) {
	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

func (s *Store) indexOf(productID string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func countOf(lines []domain.CartLine) int {
	n := 0
	for i := range lines {
		n += lines[i].Quantity
	}
	return n
}

func totalOf(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].LineTotal())
	}
	return total
}
