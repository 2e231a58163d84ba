package models

import "time"

// WishlistItem is unique per (user, product); adding a duplicate is a
// conflict, not a silent no-op.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_wishlist_user_product" json:"userId"`
	ProductID uint      `gorm:"uniqueIndex:idx_wishlist_user_product" json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}
