package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/pkg/httpx"
)

const (
	defaultNotificationsLimit = 20
	maxNotificationsLimit     = 100
)

// orderStatusResponse — статус заказа и его источник (events | api).
type orderStatusResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Source  string `json:"source"`
}

func (h *Handler) runCheckout(c *gin.Context) {
	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	confirmation, err := h.deps.Checkout.Run(ctx)
	if err != nil {
		h.writeError(c, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

func (h *Handler) checkoutState(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Checkout.Snapshot())
}

func (h *Handler) notifications(c *gin.Context) {
	limit := httpx.ParseLimit(c, defaultNotificationsLimit, maxNotificationsLimit)
	c.JSON(http.StatusOK, h.deps.Feed.Recent(limit))
}

// orderStatus — сначала события из брокера, затем запрос к сервису заказов.
func (h *Handler) orderStatus(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	if h.deps.Tracker != nil {
		event, found, err := h.deps.Tracker.Status(ctx, id)
		if err != nil {
			h.log.Warnf(ctx, "tracked status lookup failed order=%s err=%v", id, err)
		}
		if found {
			c.JSON(http.StatusOK, orderStatusResponse{OrderID: event.OrderID, Status: event.Status, Source: "events"})
			return
		}
	}

	if h.deps.Orders == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		return
	}

	confirmation, err := h.deps.Orders.OrderStatus(ctx, id)
	if err != nil {
		var notFound interface{ NotFound() bool }
		if errors.As(err, &notFound) && notFound.NotFound() {
			c.JSON(http.StatusNotFound, errorResponse{Error: "order not found", Kind: domain.KindOf(err)})
			return
		}
		h.writeError(c, "order status", err)
		return
	}
	c.JSON(http.StatusOK, orderStatusResponse{OrderID: confirmation.OrderID, Status: confirmation.Status, Source: "api"})
}
