package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CharlieNndwa/e-commerce-app-v2/auth"
	"github.com/CharlieNndwa/e-commerce-app-v2/config"
	checkoutControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/checkout"
	"github.com/CharlieNndwa/e-commerce-app-v2/mail"
)

// Deps carries the external collaborators handlers need: the database, the
// payment provider, the mailer, and the federated-login verifier. Any of the
// last three may be nil when unconfigured; the affected endpoints answer 502.
type Deps struct {
	DB       *gorm.DB
	Cfg      config.Config
	Intents  checkoutControllers.IntentCreator
	Mailer   mail.Mailer
	Verifier *auth.FirebaseVerifier
}

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Profile, cart, wishlist, products (JWT-protected where needed)
	SetupUserRoutes(r, deps)

	// Order history and order creation
	SetupOrderRoutes(r, deps)

	// Payment intent creation + provider webhook
	SetupCheckoutRoutes(r, deps)
}
