package routes

import (
	"github.com/gin-gonic/gin"

	checkoutControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/checkout"
	"github.com/CharlieNndwa/e-commerce-app-v2/middleware"
)

// SetupCheckoutRoutes registers payment intent creation and the provider
// webhook. The webhook carries its own signature verification instead of a
// bearer token.
func SetupCheckoutRoutes(r *gin.Engine, deps Deps) {
	checkout := r.Group("/api/checkout")
	{
		checkout.POST("",
			middleware.ValidateToken(deps.Cfg.JWTSecret),
			checkoutControllers.CheckoutHandler(deps.DB, deps.Intents, deps.Mailer, deps.Cfg.Currency),
		)

		checkout.POST("/webhook",
			checkoutControllers.WebhookHandler(deps.DB, deps.Cfg.StripeWebhookSecret),
		)
	}
}
