package ports

import "context"

// MessageConsumer — фоновый потребитель сообщений (Run блокирует до отмены контекста).
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
