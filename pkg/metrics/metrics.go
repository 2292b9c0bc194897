package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Корзина и оформление заказа.
var (
	CartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart mutations by operation",
		},
		[]string{"op"}, // add|remove|update|clear|restore
	)
	CartItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Total quantity of items currently in the cart",
		},
	)
	CartTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_total",
			Help: "Current cart total in currency units",
		},
	)
	CheckoutAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkout_attempts_total",
			Help: "Checkout attempts by outcome and error kind",
		},
		[]string{"outcome", "kind"}, // outcome: succeeded|failed|rejected
	)
)

// Исходящие запросы к API витрины.
var (
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of outgoing API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "code"},
	)
	APIUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_api_up",
			Help: "1 if the last API health check succeeded",
		},
	)
)

// Kafka (статусы заказов).
var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

// Кэш каталога.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_operations_total",
			Help: "Catalog cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|purged
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cache_size",
			Help: "Number of product lists currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует все метрики в default registry; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CartOps, CartItems, CartTotal, CheckoutAttempts,
			APIRequestDuration, APIUp,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			CacheOps, CacheSize,
		)
	})
}
