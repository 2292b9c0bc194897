package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/fastfood_storefront/pkg/httpx"
)

func (h *Handler) listProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	products, err := h.deps.Catalog.Products(ctx, httpx.QueryTrimmed(c, "category"))
	if err != nil {
		h.writeError(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	product, err := h.deps.Catalog.Product(ctx, c.Param("id"))
	if err != nil {
		h.writeError(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) refreshProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	products, err := h.deps.Catalog.Refresh(ctx)
	if err != nil {
		h.writeError(c, "refresh products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}
