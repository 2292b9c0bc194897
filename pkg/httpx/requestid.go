package httpx

import (
	"net/http"

	"github.com/Gunvolt24/fastfood_storefront/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID — заголовок корреляции запросов (входящих и исходящих).
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware:
// - принимает X-Request-ID от клиента или генерирует UUID
// - кладёт request_id и session_id в контекст
// - возвращает request_id в ответном заголовке
func RequestIDMiddleware(sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		if sessionID != "" {
			ctx = ctxmeta.WithSessionID(ctx, sessionID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// PropagateRequestID — проставляет X-Request-ID исходящему запросу:
// берёт id из контекста запроса, иначе генерирует новый. Возвращает итоговый id.
func PropagateRequestID(req *http.Request) string {
	if id := req.Header.Get(HeaderRequestID); id != "" {
		return id
	}
	id, ok := ctxmeta.RequestIDFromContext(req.Context())
	if !ok || id == "" {
		id = uuid.New().String()
	}
	req.Header.Set(HeaderRequestID, id)
	return id
}
