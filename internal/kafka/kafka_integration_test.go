//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	ikafka "github.com/Gunvolt24/fastfood_storefront/internal/kafka"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	kvmemory "github.com/Gunvolt24/fastfood_storefront/internal/repo/memory"
	"github.com/Gunvolt24/fastfood_storefront/internal/testutil"
	"github.com/Gunvolt24/fastfood_storefront/internal/usecase"
	"github.com/Gunvolt24/fastfood_storefront/pkg/logger"
	"github.com/Gunvolt24/fastfood_storefront/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// 1) Валидное событие применяется: трекер знает статус, пользователь уведомлён
func TestKafka_StatusEvent_Applied_TC(t *testing.T) {
	env := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(env.kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(env.ctx, env.kf.Brokers[0], topic))

	env.runConsumer(t, topic, group, "first", env.tracker)

	ev := testutil.MakeStatusEvent("preparando")
	env.watch(t, env.tracker, ev.OrderID)
	writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, ev))

	got := waitStatus(t, env, ev.OrderID)
	require.Equal(t, domain.OrderStatusPreparing, got.Status)
	require.Contains(t, env.notes.messages(), "Pedido #"+ev.OrderID+" está sendo preparado!")
}

// 2) Не-JSON и невалидное событие пропускаются, следующее валидное применяется
func TestKafka_Skip_Invalid_Then_ApplyValid_TC(t *testing.T) {
	env := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(env.kf.BaseTopic + "-invalid-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(env.ctx, env.kf.Brokers[0], topic))

	env.runConsumer(t, topic, group, "first", env.tracker)

	writeMsg(t, env.ctx, env.kf.Brokers, topic, []byte("not-a-json"))

	bad := testutil.MakeStatusEvent("teleported")
	env.watch(t, env.tracker, bad.OrderID)
	writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, bad))

	ok := testutil.MakeStatusEvent(domain.OrderStatusFinished)
	env.watch(t, env.tracker, ok.OrderID)
	writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, ok))

	got := waitStatus(t, env, ok.OrderID)
	require.Equal(t, domain.OrderStatusFinished, got.Status)

	_, found, err := env.tracker.Status(env.ctx, bad.OrderID)
	require.NoError(t, err)
	require.False(t, found)
}

// 3) StartOffset="last": события, опубликованные до старта консьюмера, игнорируются
func TestKafka_StartOffset_Last_IgnoresOld_TC(t *testing.T) {
	env := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(env.kf.BaseTopic + "-last-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(env.ctx, env.kf.Brokers[0], topic))

	old := testutil.MakeStatusEvent(domain.OrderStatusPaid)
	env.watch(t, env.tracker, old.OrderID)
	writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, old))

	env.runConsumer(t, topic, group, "last", env.tracker)

	// публикуем новое повторно, пока не увидим применение: одно из сообщений
	// гарантированно окажется после стартовой позиции консьюмера
	fresh := testutil.MakeStatusEvent(domain.OrderStatusReceived)
	env.watch(t, env.tracker, fresh.OrderID)
	deadline := time.Now().Add(20 * time.Second)
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, fresh))

		_, found, err := env.tracker.Status(env.ctx, fresh.OrderID)
		require.NoError(t, err)
		if found {
			_, oldFound, err := env.tracker.Status(env.ctx, old.OrderID)
			require.NoError(t, err)
			require.False(t, oldFound)
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("status for %s not applied in time", fresh.OrderID)
		}
		<-ticker.C
	}
}

// 4) At-least-once: при временной ошибке оффсет не коммитится, после рестарта — передоставка
func TestKafka_Redelivery_AfterRestart_NoCommit_TC(t *testing.T) {
	env := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(env.kf.BaseTopic + "-redelivery-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(env.ctx, env.kf.Brokers[0], topic))

	ev := testutil.MakeStatusEvent(domain.OrderStatusPaid)
	env.watch(t, env.tracker, ev.OrderID)
	writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, ev))

	// Фаза 1: хранилище статусов недоступно; отметка заказа остаётся в памяти
	failing := usecase.NewOrderTracker(validate.NewStatusEventValidator(), failingKV{}, &collectNotifier{}, env.log)
	_ = failing.Watch(env.ctx, ev.OrderID)
	stop := env.runConsumer(t, topic, group, "first", failing)
	time.Sleep(2 * time.Second)
	stop()

	// Фаза 2: та же группа, рабочий трекер
	env.runConsumer(t, topic, group, "first", env.tracker)

	got := waitStatus(t, env, ev.OrderID)
	require.Equal(t, domain.OrderStatusPaid, got.Status)
}

// -----------------функции-помощники-----------------

type stack struct {
	ctx     context.Context
	kf      *testutil.KafkaEnv
	log     ports.Logger
	notes   *collectNotifier
	tracker *usecase.OrderTracker
}

func newStack(t *testing.T) *stack {
	t.Helper()

	// Длинный контекст — на контейнер
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "order-status-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// Короткий контекст — сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	notes := &collectNotifier{}
	tracker := usecase.NewOrderTracker(validate.NewStatusEventValidator(), kvmemory.NewKVStore(), notes, logg)

	return &stack{ctx: ctx, kf: kf, log: logg, notes: notes, tracker: tracker}
}

type handler interface {
	HandleStatusEvent(ctx context.Context, raw []byte) error
}

// runConsumer — запускает консьюмера; возвращает функцию остановки (её же вызывает Cleanup).
func (s *stack) runConsumer(t *testing.T, topic, group, startOffset string, h handler) func() {
	t.Helper()

	consumer := ikafka.NewConsumer(ikafka.ConsumerConfig{
		Brokers:        s.kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    startOffset,
		ProcessTimeout: 500 * time.Millisecond,
		RetryInitial:   100 * time.Millisecond,
		RetryMax:       500 * time.Millisecond,
	}, h, s.log)

	runCtx, cancelRun := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = consumer.Run(runCtx)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancelRun()
			<-done
			_ = consumer.Close()
		})
	}
	t.Cleanup(stop)

	// даём консьюмеру присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)
	return stop
}

func (s *stack) watch(t *testing.T, tr *usecase.OrderTracker, orderID string) {
	t.Helper()
	require.NoError(t, tr.Watch(s.ctx, orderID))
}

func waitStatus(t *testing.T, s *stack, orderID string) domain.OrderStatusEvent {
	t.Helper()
	deadline := time.Now().Add(25 * time.Second)
	for {
		got, found, err := s.tracker.Status(s.ctx, orderID)
		require.NoError(t, err)
		if found {
			return got
		}
		if time.Now().After(deadline) {
			t.Fatalf("status for %s not applied in time", orderID)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, payload []byte) {
	t.Helper()
	require.NoError(t, testutil.PublishStatusEvents(ctx, brokers, topic, payload))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

type collectNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *collectNotifier) Notify(_ context.Context, message string, _ domain.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, message)
}

func (n *collectNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// failingKV — хранилище, которое всегда отвечает временной ошибкой.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("kv unavailable")
}

func (failingKV) Set(context.Context, string, string) error { return errors.New("kv unavailable") }

// 5) События по заказам другой сессии пропускаются без уведомления
func TestKafka_ForeignOrder_Skipped_TC(t *testing.T) {
	env := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(env.kf.BaseTopic + "-foreign-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(env.ctx, env.kf.Brokers[0], topic))

	env.runConsumer(t, topic, group, "first", env.tracker)

	foreign := testutil.MakeStatusEvent(domain.OrderStatusFinished)
	mine := testutil.MakeStatusEvent(domain.OrderStatusFinished)
	env.watch(t, env.tracker, mine.OrderID)
	writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, foreign))
	writeMsg(t, env.ctx, env.kf.Brokers, topic, mustJSON(t, mine))

	waitStatus(t, env, mine.OrderID)

	_, found, err := env.tracker.Status(env.ctx, foreign.OrderID)
	require.NoError(t, err)
	require.False(t, found)
	for _, m := range env.notes.messages() {
		require.NotContains(t, m, foreign.OrderID)
	}
}
