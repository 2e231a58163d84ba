package wishlistControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CharlieNndwa/e-commerce-app-v2/errs"
	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

type AddWishlistRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// GET /api/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var items []models.WishlistItem
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /api/wishlist/add
//
// Duplicate adds are a 409, not a silent no-op, so the caller can tell
// "already saved" apart from "just saved".
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req AddWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := addItem(db, userID, req.ProductID)
		if err != nil {
			c.JSON(errs.Status(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Product added to wishlist successfully", "item": item})
	}
}

// DELETE /api/wishlist/remove/:productId
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("productId")

		if err := removeItem(db, userID, productID); err != nil {
			c.JSON(errs.Status(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist successfully"})
	}
}

func addItem(db *gorm.DB, userID string, productID uint) (models.WishlistItem, error) {
	var existing models.WishlistItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		return models.WishlistItem{}, fmt.Errorf("%w: product is already in your wishlist", errs.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.WishlistItem{}, fmt.Errorf("checking wishlist: %v", err)
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WishlistItem{}, fmt.Errorf("%w: product not found", errs.ErrNotFound)
		}
		return models.WishlistItem{}, fmt.Errorf("validating product: %v", err)
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	item := models.WishlistItem{
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     image,
		Category:  product.Category,
	}
	if err := db.Create(&item).Error; err != nil {
		return models.WishlistItem{}, fmt.Errorf("adding to wishlist: %v", err)
	}
	return item, nil
}

func removeItem(db *gorm.DB, userID, productID string) error {
	result := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("removing from wishlist: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: item not in wishlist", errs.ErrNotFound)
	}
	return nil
}
