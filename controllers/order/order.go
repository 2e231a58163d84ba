package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

type OrderItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	TotalAmount     float64          `json:"totalAmount"`
	ShippingAddress models.Address   `json:"shippingAddress"`
}

// POST /api/orders
//
// Append-only: orders have no update or delete endpoints, so history stays
// immutable. Only the payment-confirmation path may move PaymentStatus.
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if len(req.Items) == 0 || req.TotalAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Items and total amount are required"})
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		order := models.Order{
			UserID:          userID,
			Items:           items,
			TotalAmount:     req.TotalAmount,
			ShippingAddress: req.ShippingAddress,
			PaymentStatus:   models.PaymentStatusPending,
		}
		if err := db.Create(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "orderId": order.ID})
	}
}

// GET /api/orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order history"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// FinalizeOrder writes the order record for a provider-confirmed payment. A
// Paid finalization also clears the persisted cart; a Failed one keeps it so
// the shopper can retry.
//
// Idempotent per transaction reference: the provider delivers events at least
// once, so a redelivered confirmation must not write a second order.
func FinalizeOrder(db *gorm.DB, userID string, items []models.OrderItem, totalAmount float64, addr models.Address, status models.PaymentStatus, transactionRef string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if transactionRef != "" {
			var count int64
			if err := tx.Model(&models.Order{}).
				Where("transaction_ref = ?", transactionRef).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				// Already finalized by an earlier delivery.
				return nil
			}
		}

		order := models.Order{
			UserID:          userID,
			Items:           items,
			TotalAmount:     totalAmount,
			ShippingAddress: addr,
			PaymentStatus:   status,
			TransactionRef:  transactionRef,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if status != models.PaymentStatusPaid {
			return nil
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			// No cart to clear; the order itself is already written.
			return nil
		}
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
}
