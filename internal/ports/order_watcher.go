package ports

import "context"

// OrderWatcher — заказы, оформленные в этой сессии; события статуса по чужим заказам не показываются.
type OrderWatcher interface {
	Watch(ctx context.Context, orderID string) error
}
