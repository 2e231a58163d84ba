package checkoutControllers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CharlieNndwa/e-commerce-app-v2/mail"
	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

type CheckoutRequest struct {
	ShippingAddress ShippingAddressInput `json:"shippingAddress" binding:"required"`
}

type ShippingAddressInput struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Street     string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
}

type snapshotLine struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

// ComputeTotal sums price * quantity over the persisted cart lines. The total
// is always recomputed here from the server copy; amounts in the request body
// are never trusted.
func ComputeTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// MinorUnits converts a total to the provider's integer minor-unit amount,
// rounding to the nearest cent.
func MinorUnits(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// POST /api/checkout
//
// Creates the provider payment intent for the persisted cart. Intent creation
// is mandatory-success; the confirmation email afterwards is fire-and-forget.
func CheckoutHandler(db *gorm.DB, intents IntentCreator, mailer mail.Mailer, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Please add items to proceed."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Please add items to proceed."})
			return
		}

		if intents == nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider is not configured"})
			return
		}

		total := ComputeTotal(cart.Items)
		txID := newTransactionRef()

		snapshot := make([]snapshotLine, 0, len(cart.Items))
		for _, item := range cart.Items {
			snapshot = append(snapshot, snapshotLine{ID: item.ProductID, Quantity: item.Quantity})
		}
		snapshotJSON, err := json.Marshal(snapshot)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode cart snapshot"})
			return
		}

		// Shipping details and the line snapshot ride along in provider
		// metadata so the webhook can finalize the order without trusting
		// anything client-side, and for reconciliation against provider
		// records.
		addr := req.ShippingAddress
		metadata := map[string]string{
			"userId":        userID,
			"transactionId": txID,
			"firstName":     addr.FirstName,
			"lastName":      addr.LastName,
			"email":         addr.Email,
			"phone":         addr.Phone,
			"address":       addr.Street,
			"city":          addr.City,
			"province":      addr.Province,
			"postalCode":    addr.PostalCode,
			"cartItems":     string(snapshotJSON),
		}

		description := "Order from your store | TX ID: " + txID
		clientSecret, err := intents.CreateIntent(c.Request.Context(), MinorUnits(total), currency, description, metadata)
		if err != nil {
			// Surfaced verbatim: the caller decides whether to retry payment.
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment processing failed", "details": err.Error()})
			return
		}

		go sendConfirmationEmail(mailer, addr.Email, txID, total)

		c.JSON(http.StatusOK, gin.H{
			"message":       "Payment intent created successfully",
			"clientSecret":  clientSecret,
			"transactionId": txID,
		})
	}
}

// sendConfirmationEmail runs outside the request lifecycle. Failure is logged
// and never reaches the checkout response.
func sendConfirmationEmail(mailer mail.Mailer, to, txID string, total decimal.Decimal) {
	if mailer == nil || to == "" {
		return
	}
	subject := fmt.Sprintf("Order Confirmation #%s", txID)
	body := fmt.Sprintf(
		"<h1>Thank you for your purchase!</h1>"+
			"<p>Your order is being processed. You will be redirected to the payment page shortly.</p>"+
			"<p>Total amount: R %s</p>"+
			"<p>Please use this reference number for any inquiries: %s</p>",
		total.StringFixed(2), txID,
	)
	if err := mailer.Send(to, subject, body); err != nil {
		log.Printf("❌ Failed to send confirmation email for %s: %v", txID, err)
	}
}

func newTransactionRef() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "tx_fallback"
	}
	return hex.EncodeToString(bytes)
}
