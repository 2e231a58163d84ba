package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CharlieNndwa/e-commerce-app-v2/auth"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", auth.SignupHandler(deps.DB, deps.Cfg.JWTSecret))
		authGroup.POST("/signin", auth.SigninHandler(deps.DB, deps.Cfg.JWTSecret))
		authGroup.POST("/google", auth.GoogleLoginHandler(deps.DB, deps.Cfg.JWTSecret, deps.Verifier))
	}
}
