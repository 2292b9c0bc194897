//go:generate mockgen -source=../kv_store.go      -destination=./mock_kv_store.go      -package=mocks
//go:generate mockgen -source=../product_cache.go -destination=./mock_product_cache.go -package=mocks
//go:generate mockgen -source=../catalog.go       -destination=./mock_catalog.go       -package=mocks
//go:generate mockgen -source=../gateways.go      -destination=./mock_gateways.go      -package=mocks
//go:generate mockgen -source=../notifier.go      -destination=./mock_notifier.go      -package=mocks

package mocks
