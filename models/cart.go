package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cartId"`
	UserID    string     `gorm:"uniqueIndex" json:"userId"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is a cart line with a product snapshot taken at add time. Price
// deliberately does not track later catalog price changes.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"index" json:"-"`
	ProductID uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Images    []string  `gorm:"serializer:json" json:"images"`
	Quantity  int       `json:"quantity"` // always >= 1
	AddedAt   time.Time `json:"addedAt"`
}
