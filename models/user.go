package models

import "time"

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"-"`
	Phone     string `json:"phone,omitempty"`
	Provider  string `json:"provider,omitempty"` // "password" or "google"
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	Cart     Cart           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Wishlist []WishlistItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist"`
	Orders   []Order        `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Address holds a shipping destination. Embedded in Order; all fields except
// Phone are required at checkout.
type Address struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}
