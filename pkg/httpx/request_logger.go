package httpx

import (
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — middleware для логирования HTTP-запросов сессии.
// Служебные маршруты (/metrics, /ping) не логируются; ответы 5xx пишутся как warning.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		sp, _ := ctxmeta.SpanIDFromContext(ctx)

		logf := log.Infof
		if c.Writer.Status() >= 500 {
			logf = log.Warnf
		}
		logf(ctx,
			"http %s %s status=%d duration=%s size=%d trace=%s span=%s ip=%s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
			tr, sp,
			c.ClientIP(),
		)
	}
}
