package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
)

// errorResponse — тело ответа с ошибкой.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// statusFor — HTTP-статус по виду ошибки.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError — ответ с ошибкой; внутренние детали 5xx наружу не отдаются.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	kind := domain.KindOf(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Errorf(c.Request.Context(), "%s failed err=%v", op, err)
		msg = "internal server error"
	} else {
		h.log.Warnf(c.Request.Context(), "%s failed kind=%s err=%v", op, kind, err)
	}
	c.JSON(status, errorResponse{Error: msg, Kind: kind})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
