// Пакет ctxmeta — нейтральный слой для метаданных запроса в context.Context
// (request_id, session_id, trace_id). HTTP-слой, HTTP-клиент и логгер зависят от него,
// но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// KeyRequestID — идентификатор входящего запроса (X-Request-ID).
	KeyRequestID ctxKey = "request_id"
	// KeySessionID — идентификатор сессии витрины (одна корзина на процесс).
	KeySessionID ctxKey = "session_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithSessionID кладёт session_id в контекст.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return withString(ctx, KeySessionID, sessionID)
}

// SessionIDFromContext достаёт session_id из контекста.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeySessionID)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
