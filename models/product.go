package models

import "time"

// Product is a local snapshot of the external catalog, refreshed by the seed
// command. Used to validate wishlist adds and serve product lookups; it is not
// the authoritative catalog.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"` // catalog-assigned, not auto-increment
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Price       float64   `gorm:"not null" json:"price"`
	OldPrice    float64   `json:"oldPrice"`
	Rating      float64   `json:"rating"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Seller      string    `json:"seller"`
	InStock     bool      `gorm:"default:true" json:"inStock"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
