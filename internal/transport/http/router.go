// Пакет rest — HTTP API сессии витрины (gin): каталог, корзина, оформление заказа.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/fastfood_storefront/pkg/httpx"
)

// NewRouter — маршруты сессии. otelServiceName != "" включает трейсинг otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware(h.sessionID))
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProduct)
	r.POST("/products/refresh", h.refreshProducts)

	cart := r.Group("/cart")
	{
		cart.GET("", h.getCart)
		cart.DELETE("", h.clearCart)
		cart.POST("/open", h.openCart)
		cart.POST("/items", h.addItem)
		cart.PUT("/items/:id", h.updateQuantity)
		cart.DELETE("/items/:id", h.removeItem)
	}

	r.POST("/checkout", h.runCheckout)
	r.GET("/checkout", h.checkoutState)

	r.GET("/orders/:id", h.orderStatus)
	r.GET("/notifications", h.notifications)

	return r
}
