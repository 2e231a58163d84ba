package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending" // payment not completed yet
	PaymentStatusPaid    PaymentStatus = "Paid"    // provider confirmed the charge
	PaymentStatusFailed  PaymentStatus = "Failed"  // payment attempt failed
)

// Order is immutable once created except for the PaymentStatus transition
// (Pending -> Paid or Pending -> Failed). Items snapshot product identifiers
// and quantities only; the amount is computed server-side at checkout.
type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          string        `gorm:"index;not null" json:"userId"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64       `gorm:"not null" json:"totalAmount"`
	ShippingAddress Address       `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"paymentStatus"`
	TransactionRef  string        `gorm:"index" json:"transactionRef,omitempty"`
	CreatedAt       time.Time     `json:"orderDate"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	OrderID   uint `gorm:"index" json:"-"`
	ProductID uint `gorm:"not null" json:"productId"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}
