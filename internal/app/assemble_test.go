package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/config"
	"github.com/Gunvolt24/fastfood_storefront/pkg/validate"
)

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadWithPrefix("STOREFRONT_ASSEMBLE_TEST")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.HTTP.GinMode = "test"
	return &cfg
}

func TestAssemble_MemoryDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Health.Enabled = true

	cleaned := false
	a, cleanup, err := assemble(context.Background(), cfg, nopLogger{}, func() { cleaned = true })
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if a.HTTPServer == nil || a.HTTPServer.Addr != cfg.HTTP.Addr {
		t.Fatalf("http server not configured: %+v", a.HTTPServer)
	}
	if a.MetricsServer == nil || a.MetricsServer.Addr != cfg.Metrics.Addr {
		t.Fatalf("metrics server expected on %s", cfg.Metrics.Addr)
	}
	if a.KafkaConsumer != nil {
		t.Fatalf("kafka consumer must be nil when disabled")
	}
	if a.HealthPoller == nil {
		t.Fatalf("health poller expected when enabled")
	}

	// роутер отвечает без сети
	w := httptest.NewRecorder()
	a.HTTPServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /cart status=%d body=%s", w.Code, w.Body.String())
	}

	cleanup()
	if !cleaned {
		t.Fatalf("cleanup must release logger")
	}
}

func TestAssemble_MetricsOnMainServer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Addr = cfg.HTTP.Addr

	a, cleanup, err := assemble(context.Background(), cfg, nopLogger{}, func() {})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	defer cleanup()

	if a.MetricsServer != nil {
		t.Fatalf("metrics server must be nil when it shares the HTTP address")
	}
}

func TestAssemble_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "sqlite"

	cleaned := false
	_, _, err := assemble(context.Background(), cfg, nopLogger{}, func() { cleaned = true })
	if err == nil {
		t.Fatalf("expected error for unknown storage driver")
	}
	if !cleaned {
		t.Fatalf("logger must be released on bootstrap error")
	}
}

func TestAssemble_InvalidCustomerProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Checkout.CreateCustomer = true
	cfg.Checkout.CustomerEmail = "not-an-email"

	_, _, err := assemble(context.Background(), cfg, nopLogger{}, func() {})
	if !errors.Is(err, validate.ErrInvalidCustomer) {
		t.Fatalf("want ErrInvalidCustomer, got %v", err)
	}
}

func TestAssemble_WriteTimeoutCoversHandlerTimeout(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.WriteTimeout = 10 * time.Second
	cfg.HTTP.HandlerTimeout = 15 * time.Second

	a, cleanup, err := assemble(context.Background(), cfg, nopLogger{}, func() {})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	defer cleanup()

	if got := a.HTTPServer.WriteTimeout; got <= cfg.HTTP.HandlerTimeout {
		t.Fatalf("WriteTimeout=%s must exceed HandlerTimeout=%s", got, cfg.HTTP.HandlerTimeout)
	}

	cfg.HTTP.WriteTimeout = 30 * time.Second
	if got := writeTimeout(context.Background(), cfg, nopLogger{}); got != 30*time.Second {
		t.Fatalf("sufficient WriteTimeout must be kept, got %s", got)
	}
}

func TestApplyGinMode_Unknown(t *testing.T) {
	// неизвестный режим не должен паниковать
	applyGinMode(context.Background(), "weird", nopLogger{})
	applyGinMode(context.Background(), "test", nopLogger{})
}
