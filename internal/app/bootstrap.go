// Пакет app — сборка зависимостей сессии витрины и жизненный цикл процесса.
package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gunvolt24/fastfood_storefront/config"
	cachemem "github.com/Gunvolt24/fastfood_storefront/internal/cache/memory"
	"github.com/Gunvolt24/fastfood_storefront/internal/cart"
	"github.com/Gunvolt24/fastfood_storefront/internal/checkout"
	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/health"
	"github.com/Gunvolt24/fastfood_storefront/internal/kafka"
	"github.com/Gunvolt24/fastfood_storefront/internal/notify"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/internal/transport/apiclient"
	rest "github.com/Gunvolt24/fastfood_storefront/internal/transport/http"
	"github.com/Gunvolt24/fastfood_storefront/internal/ui"
	"github.com/Gunvolt24/fastfood_storefront/internal/usecase"
	"github.com/Gunvolt24/fastfood_storefront/pkg/logger"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
	"github.com/Gunvolt24/fastfood_storefront/pkg/telemetry"
	"github.com/Gunvolt24/fastfood_storefront/pkg/validate"
)

// Runner — фоновый компонент, работающий до отмены контекста.
type Runner interface {
	Run(ctx context.Context) error
}

// App — собранное приложение и его внешние интерфейсы.
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер сессии
	MetricsServer   *http.Server          // отдельный /metrics; nil — метрики только на HTTPServer
	KafkaConsumer   ports.MessageConsumer // консьюмер статусов заказов (закрывает Run); nil — выключен
	HealthPoller    Runner                // опрос API; nil — выключен
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-серверов
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// writeTimeoutMargin — запас WriteTimeout над HandlerTimeout на запись ответа.
const writeTimeoutMargin = 5 * time.Second

// writeTimeout — WriteTimeout сервера не короче HandlerTimeout + запас,
// иначе ответ на поздно завершившийся запрос (201 после оформления) уходит в закрытое соединение.
func writeTimeout(ctx context.Context, cfg *config.Config, log ports.Logger) time.Duration {
	wt, ht := cfg.HTTP.WriteTimeout, cfg.HTTP.HandlerTimeout
	if wt <= 0 || ht <= 0 || wt > ht {
		return wt
	}
	log.Warnf(ctx, "HTTP write timeout %s <= handler timeout %s, raised to %s", wt, ht, ht+writeTimeoutMargin)
	return ht + writeTimeoutMargin
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	return assemble(ctx, cfg, logg, func() {
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	})
}

// assemble — сборка поверх готового логгера (отдельно для тестов).
func assemble(ctx context.Context, cfg *config.Config, logg ports.Logger, cleanupLogger func()) (*App, Cleanup, error) {
	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Одна сессия витрины на процесс.
	sessionID := uuid.NewString()
	logg.Infof(ctx, "storefront session id=%s", sessionID)

	// Профиль клиента проверяется до подключения к внешним ресурсам.
	customer := domain.Customer{
		Name:  cfg.Checkout.CustomerName,
		Email: cfg.Checkout.CustomerEmail,
		CPF:   cfg.Checkout.CustomerCPF,
	}
	if cfg.Checkout.CreateCustomer {
		if err := validate.ValidateCustomer(&customer); err != nil {
			cleanupLogger()
			return nil, func() {}, err
		}
	}

	// Хранилище корзины и статусов.
	kv, closeKV, err := openKVStore(ctx, cfg, logg)
	if err != nil {
		cleanupLogger()
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			SessionID:   sessionID,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Удалённый API витрины.
	api := apiclient.New(apiclient.Config{
		BaseURL:       cfg.API.BaseURL,
		ProductsPath:  cfg.API.ProductsPath,
		OrdersPath:    cfg.API.OrdersPath,
		CustomersPath: cfg.API.CustomersPath,
		HealthPath:    cfg.API.HealthPath,
		Timeout:       cfg.API.RequestTimeout,
	}, logg)

	// Сборка зависимостей доменного слоя.
	feed := notify.NewFeed(cfg.Notifications.FeedSize, logg)
	presenter := ui.NewPresenter(logg)
	catalog := usecase.NewCatalogService(api, cachemem.NewProductCache(cfg.Cache.Capacity, cfg.Cache.TTL), logg)

	cartStore := cart.New(kv, cfg.Storage.CartKey, presenter, validate.NewCartValidator(), logg)
	if rErr := cartStore.Restore(ctx); rErr != nil {
		logg.Warnf(ctx, "cart restore failed, starting with empty cart: %v", rErr)
	}

	tracker := usecase.NewOrderTracker(validate.NewStatusEventValidator(), kv, feed, logg)

	workflow := checkout.New(cartStore, api, api, presenter, feed, tracker, logg, checkout.Options{
		CreateCustomer: cfg.Checkout.CreateCustomer,
		Customer:       customer,
		PriceMode:      domain.ParsePriceMode(cfg.Checkout.PriceMode),
		Timeout:        cfg.Checkout.Timeout,
	})

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(rest.Deps{
		Catalog:  catalog,
		Cart:     cartStore,
		Checkout: workflow,
		Screen:   presenter,
		Feed:     feed,
		Tracker:  tracker,
		Orders:   api,
	}, logg, cfg.HTTP.HandlerTimeout, sessionID)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      writeTimeout(ctx, cfg, logg),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	if addr := cfg.Metrics.Addr; addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		app.MetricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	}

	// Консьюмер статусов заказов.
	if cfg.Kafka.Enabled {
		app.KafkaConsumer = kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, tracker, logg)
	}

	if cfg.Health.Enabled {
		app.HealthPoller = health.NewPoller(api, cfg.Health.Interval, cfg.Health.MaxBackoff, logg)
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		closeKV()
		cleanupLogger()
	}

	return app, cleanup, nil
}
