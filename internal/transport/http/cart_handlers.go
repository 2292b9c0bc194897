package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/pkg/money"
)

// cartResponse — содержимое корзины для клиента.
type cartResponse struct {
	Lines          []domain.CartLine `json:"lines"`
	Count          int               `json:"count"`
	Total          decimal.Decimal   `json:"total"`
	TotalFormatted string            `json:"totalFormatted"`
	Open           bool              `json:"open"`
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// cartView — строки, количество и сумма из одного снимка корзины.
func (h *Handler) cartView() cartResponse {
	snap := h.deps.Cart.Snapshot()
	return cartResponse{
		Lines:          snap.Lines,
		Count:          snap.Count,
		Total:          snap.Total,
		TotalFormatted: money.FormatBRL(snap.Total),
		Open:           h.deps.Screen.Screen().Open,
	}
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView())
}

// addItem — товар ищется в каталоге, цена берётся оттуда же.
func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductID) == "" {
		badRequest(c, "productId is required")
		return
	}

	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	product, err := h.deps.Catalog.Product(ctx, strings.TrimSpace(req.ProductID))
	if err != nil {
		h.writeError(c, "add item", err)
		return
	}
	if err := h.deps.Cart.AddItem(ctx, product); err != nil {
		h.writeError(c, "add item", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) updateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}

	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	if err := h.deps.Cart.UpdateQuantity(ctx, c.Param("id"), *req.Quantity); err != nil {
		h.writeError(c, "update quantity", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) removeItem(c *gin.Context) {
	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	if err := h.deps.Cart.RemoveItem(ctx, c.Param("id")); err != nil {
		h.writeError(c, "remove item", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) clearCart(c *gin.Context) {
	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	if err := h.deps.Cart.Clear(ctx); err != nil {
		h.writeError(c, "clear cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) openCart(c *gin.Context) {
	h.deps.Screen.OpenCart(c.Request.Context())
	c.JSON(http.StatusOK, h.cartView())
}
