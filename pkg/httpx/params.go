package httpx

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimit — читает limit из query с дефолтом и границами [1, maxLimit].
// Нечисловое значение заменяется дефолтом.
func ParseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit := ClampInt(defaultLimit, 1, maxLimit)
	raw, ok := c.GetQuery("limit")
	if !ok {
		return limit
	}
	if v, err := strconv.Atoi(raw); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	return limit
}

// QueryTrimmed — значение query-параметра без пробелов по краям; "" если параметра нет.
func QueryTrimmed(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
