package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPPort string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret string

	CORSOrigin string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CatalogBaseURL string

	FirebaseCredentialsJSON string
	FirebaseProjectID       string
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPPort: get("PORT", "8080"),

		DatabaseURL: get("DATABASE_URL", ""),
		DBHost:      get("DB_HOST", "localhost"),
		DBPort:      get("DB_PORT", "5432"),
		DBUser:      get("DB_USER", "postgres"),
		DBPassword:  get("DB_PASSWORD", ""),
		DBName:      get("DB_NAME", "storefront"),

		JWTSecret: get("JWT_SECRET", ""),

		CORSOrigin: get("CORS_ORIGIN", "http://localhost:3000"),

		StripeSecretKey:     get("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: get("STRIPE_WEBHOOK_SECRET", ""),
		Currency:            get("CURRENCY", "zar"),

		SMTPHost: get("SMTP_HOST", ""),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: get("EMAIL_USER", ""),
		SMTPPass: get("EMAIL_PASS", ""),
		SMTPFrom: get("EMAIL_FROM", ""),

		CatalogBaseURL: get("CATALOG_BASE_URL", "https://api.escuelajs.co/api/v1"),

		FirebaseCredentialsJSON: get("FIREBASE_CREDENTIALS_JSON", ""),
		FirebaseProjectID:       get("FIREBASE_PROJECT_ID", ""),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
