// Пакет health — фоновый опрос доступности API витрины (GET /health).
package health

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
)

//go:generate mockgen -source=poller.go -destination=mocks/mock_poller.go -package=mocks

// checker — проверка здоровья API; nil — API доступен.
type checker interface {
	Health(ctx context.Context) error
}

// Poller — периодически опрашивает API. После ошибки интервал растёт
// экспоненциально (с джиттером) до maxBackoff; после успеха сбрасывается.
type Poller struct {
	checker    checker
	interval   time.Duration
	maxBackoff time.Duration
	log        ports.Logger
	jitterRand *rand.Rand

	up atomic.Bool
}

func NewPoller(c checker, interval, maxBackoff time.Duration, log ports.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if maxBackoff < interval {
		maxBackoff = interval
	}
	return &Poller{
		checker:    c,
		interval:   interval,
		maxBackoff: maxBackoff,
		log:        log,
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — блокирует до отмены контекста.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Infof(ctx, "api health poller started interval=%s", p.interval)

	wait := p.interval
	for {
		if err := p.checker.Health(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if p.up.Swap(false) {
				p.log.Warnf(ctx, "api became unavailable: %v", err)
			}
			metrics.APIUp.Set(0)
			wait = p.nextBackoff(wait)
		} else {
			if !p.up.Swap(true) {
				p.log.Infof(ctx, "api is available")
			}
			metrics.APIUp.Set(1)
			wait = p.interval
		}

		t := time.NewTimer(p.withJitter(wait))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Up — результат последней проверки.
func (p *Poller) Up() bool { return p.up.Load() }

func (p *Poller) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > p.maxBackoff {
		return p.maxBackoff
	}
	return current
}

// withJitter — ±10% от d.
func (p *Poller) withJitter(d time.Duration) time.Duration {
	spread := int64(d / 10)
	if spread <= 0 {
		return d
	}
	return d - time.Duration(spread) + time.Duration(p.jitterRand.Int63n(2*spread+1))
}
