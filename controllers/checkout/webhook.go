package checkoutControllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"

	orderControllers "github.com/CharlieNndwa/e-commerce-app-v2/controllers/order"
	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

const webhookMaxBodyBytes = 65536

// POST /api/checkout/webhook
//
// Orders are finalized only from this signature-verified provider callback.
// Reaching the client-side success URL proves nothing; the redirect flag is
// never trusted for finalization.
func WebhookHandler(db *gorm.DB, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if webhookSecret == "" {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Webhook secret is not configured"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookMaxBodyBytes)
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}

		event, err := webhook.ConstructEventWithOptions(
			payload,
			c.GetHeader("Stripe-Signature"),
			webhookSecret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
		)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid webhook signature"})
			return
		}

		switch event.Type {
		case "payment_intent.succeeded":
			handlePaymentOutcome(c, db, event, models.PaymentStatusPaid)
		case "payment_intent.payment_failed":
			handlePaymentOutcome(c, db, event, models.PaymentStatusFailed)
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
		}
	}
}

func handlePaymentOutcome(c *gin.Context, db *gorm.DB, event stripe.Event, status models.PaymentStatus) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
		return
	}

	meta := intent.Metadata
	userID := meta["userId"]
	txID := meta["transactionId"]
	if userID == "" || txID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment intent is missing order metadata"})
		return
	}

	var snapshot []snapshotLine
	if err := json.Unmarshal([]byte(meta["cartItems"]), &snapshot); err != nil || len(snapshot) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment intent has no cart snapshot"})
		return
	}

	items := make([]models.OrderItem, 0, len(snapshot))
	for _, line := range snapshot {
		items = append(items, models.OrderItem{ProductID: line.ID, Quantity: line.Quantity})
	}

	addr := models.Address{
		FirstName:  meta["firstName"],
		LastName:   meta["lastName"],
		Email:      meta["email"],
		Phone:      meta["phone"],
		Street:     meta["address"],
		City:       meta["city"],
		Province:   meta["province"],
		PostalCode: meta["postalCode"],
	}

	totalAmount := float64(intent.Amount) / 100

	if err := orderControllers.FinalizeOrder(db, userID, items, totalAmount, addr, status, txID); err != nil {
		log.Printf("❌ Failed to finalize order for tx %s: %v", txID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize order"})
		return
	}

	log.Printf("✅ Order finalized for tx %s with payment status %s", txID, status)
	c.JSON(http.StatusOK, gin.H{"message": "Order finalized", "paymentStatus": status})
}
