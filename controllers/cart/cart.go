package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

type CartLineInput struct {
	ProductID uint     `json:"id" binding:"required"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Images    []string `json:"images"`
	Quantity  int      `json:"quantity"`
}

type SaveCartRequest struct {
	CartItems []CartLineInput `json:"cartItems"`
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart.Items})
	}
}

// POST /api/cart
//
// Replaces the whole persisted cart with the pushed snapshot. Last write wins
// at the granularity of the full cart; there is no per-line merging between
// writers. The snapshot is normalized on the way in: lines with quantity < 1
// are dropped and duplicate product lines are collapsed by summing quantities.
func SaveCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req SaveCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := normalizeLines(cart.CartID, req.CartItems)

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if len(items) == 0 {
				return nil
			}
			return tx.Create(&items).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart saved successfully", "cart": items})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func getOrCreateCart(db *gorm.DB, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return cart, err
		}
		return cart, nil
	}
	return cart, err
}

func normalizeLines(cartID uint, lines []CartLineInput) []models.CartItem {
	merged := make(map[uint]*models.CartItem)
	order := make([]uint, 0, len(lines))

	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if existing, ok := merged[line.ProductID]; ok {
			existing.Quantity += line.Quantity
			continue
		}
		merged[line.ProductID] = &models.CartItem{
			CartID:    cartID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Images:    line.Images,
			Quantity:  line.Quantity,
			AddedAt:   time.Now(),
		}
		order = append(order, line.ProductID)
	}

	items := make([]models.CartItem, 0, len(order))
	for _, id := range order {
		items = append(items, *merged[id])
	}
	return items
}
