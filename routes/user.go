package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/cart"
	productControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/product"
	profileControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/profile"
	wishlistControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/wishlist"
	"github.com/CharlieNndwa/e-commerce-app-v2/middleware"
)

// SetupUserRoutes registers profile, cart, wishlist and product endpoints.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")

	// Product lookups are public; everything else requires a bearer token.
	api.GET("/products", productControllers.GetProducts(deps.DB))
	api.GET("/products/:id", productControllers.GetProductByID(deps.DB))

	protected := api.Group("")
	protected.Use(middleware.ValidateToken(deps.Cfg.JWTSecret))
	{
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileControllers.GetProfile(deps.DB))
			profileGroup.PUT("", profileControllers.UpdateProfile(deps.DB))
			profileGroup.DELETE("/deactivate", profileControllers.DeactivateProfile(deps.DB))
		}

		cartGroup := protected.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(deps.DB))
			cartGroup.POST("", cartControllers.SaveCart(deps.DB))
			cartGroup.DELETE("", cartControllers.ClearCart(deps.DB))
		}

		wishlistGroup := protected.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(deps.DB))
			wishlistGroup.POST("/add", wishlistControllers.AddToWishlist(deps.DB))
			wishlistGroup.DELETE("/remove/:productId", wishlistControllers.RemoveFromWishlist(deps.DB))
		}
	}
}
