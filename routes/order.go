package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/order"
	"github.com/CharlieNndwa/e-commerce-app-v2/middleware"
)

// SetupOrderRoutes registers the order history endpoints. Orders are
// append-only: no update or delete routes exist.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken(deps.Cfg.JWTSecret))
	{
		orders.GET("", orderControllers.ListOrdersHandler(deps.DB))
		orders.POST("", orderControllers.CreateOrderHandler(deps.DB))
	}
}
