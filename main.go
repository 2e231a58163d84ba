package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CharlieNndwa/e-commerce-app-v2/auth"
	"github.com/CharlieNndwa/e-commerce-app-v2/config"
	checkoutControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/checkout"
	"github.com/CharlieNndwa/e-commerce-app-v2/mail"
	"github.com/CharlieNndwa/e-commerce-app-v2/models"
	"github.com/CharlieNndwa/e-commerce-app-v2/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET must be set")
	}

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	deps := routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Intents:  buildIntents(cfg),
		Mailer:   buildMailer(cfg),
		Verifier: buildVerifier(cfg),
	}

	// Setup routes
	routes.SetupRoutes(r, deps)

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

func buildIntents(cfg config.Config) checkoutControllers.IntentCreator {
	if cfg.StripeSecretKey == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY not set; checkout will be unavailable")
		return nil
	}
	return checkoutControllers.NewStripeIntents(cfg.StripeSecretKey)
}

func buildMailer(cfg config.Config) mail.Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		log.Println("⚠️ SMTP not configured; order confirmation emails disabled")
		return nil
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})
}

func buildVerifier(cfg config.Config) *auth.FirebaseVerifier {
	verifier, err := auth.NewFirebaseVerifier(context.Background(), cfg.FirebaseCredentialsJSON, cfg.FirebaseProjectID)
	if err != nil {
		log.Printf("⚠️ Federated login disabled: %v", err)
		return nil
	}
	return verifier
}
