// Command seed refreshes the local product snapshot from the external
// catalog. Run it before first boot and whenever the snapshot goes stale.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CharlieNndwa/e-commerce-app-v2/catalog"
	"github.com/CharlieNndwa/e-commerce-app-v2/config"
	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := openDB(cfg)
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := catalog.New(cfg.CatalogBaseURL)
	fetched, err := client.Products(ctx, catalog.ProductQuery{})
	if err != nil {
		log.Fatalf("❌ Failed to fetch catalog products: %v", err)
	}
	if len(fetched) == 0 {
		log.Fatal("❌ Catalog returned no products; keeping existing snapshot")
	}

	products := make([]models.Product, 0, len(fetched))
	for _, p := range fetched {
		products = append(products, models.Product{
			ID:          p.ID,
			Name:        p.Title,
			Description: p.Description,
			Images:      p.Images,
			Price:       p.Price,
			Category:    p.Category.Name,
			InStock:     true,
		})
	}

	// Upsert keyed by the catalog id so re-seeding refreshes in place.
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&products).Error; err != nil {
		log.Fatalf("❌ Failed to seed products: %v", err)
	}

	log.Printf("✅ Seeded %d products", len(products))
}

func openDB(cfg config.Config) *gorm.DB {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
