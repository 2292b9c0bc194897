// Пакет kafka — потребитель событий статуса заказов (segmentio/kafka-go).
package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=consumer.go -destination=mocks/mock_consumer.go -package=mocks

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над kafka.Reader (подменяется моками в тестах).
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// statusHandler — разбор, валидация и применение события статуса.
// validate.ErrInvalidStatusEvent означает «пропустить навсегда».
type statusHandler interface {
	HandleStatusEvent(ctx context.Context, raw []byte) error
}

// Consumer — цикл чтения событий статуса с ручным коммитом (at-least-once).
type Consumer struct {
	reader         reader
	handler        statusHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — потребитель поверх kafka.Reader.
func NewConsumer(cfg ConsumerConfig, handler statusHandler, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, handler, log)
}

func newConsumer(r reader, cfg ConsumerConfig, handler statusHandler, log ports.Logger) *Consumer {
	cfg = cfg.withDefaults()
	return &Consumer{
		reader:         r,
		handler:        handler,
		log:            log,
		processTimeout: cfg.ProcessTimeout,
		retryInitial:   cfg.RetryInitial,
		retryMax:       cfg.RetryMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) успешная обработка или невалидное событие → CommitMessages;
// 3) временная ошибка → без коммита, пауза с джиттером, повторная обработка.
// Ошибки FetchMessage ретраятся с экспоненциальным backoff до отмены контекста.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "order status consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial
	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.handleMessage(ctx, rc.Topic, &msg) {
			c.commitSafely(ctx, &msg)
			continue
		}
		if !c.sleepWithBackoff(ctx, c.withJitterEqual(minDuration(c.retryInitial, 500*time.Millisecond))) {
			return ctx.Err()
		}
	}
}

// Close — закрывает reader; повторные вызовы безопасны.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
