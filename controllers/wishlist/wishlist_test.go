package wishlistControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/CharlieNndwa/e-commerce-app-v2/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.WishlistItem{}))
	return db
}

func newRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/api/wishlist", GetWishlist(db))
	r.POST("/api/wishlist/add", AddToWishlist(db))
	r.DELETE("/api/wishlist/remove/:productId", RemoveFromWishlist(db))
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		ID:       id,
		Name:     fmt.Sprintf("Product %d", id),
		Price:    99.90,
		Images:   []string{"https://example.com/p.jpg"},
		Category: "Clothes",
	}).Error)
}

func addToWishlist(t *testing.T, r *gin.Engine, productID uint) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(AddWishlistRequest{ProductID: productID})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wishlist/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddToWishlist(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 7)
	r := newRouter(db, "user-1")

	w := addToWishlist(t, r, 7)
	require.Equal(t, http.StatusCreated, w.Code)

	var items []models.WishlistItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Product 7", items[0].Name)
	assert.Equal(t, "Clothes", items[0].Category)
}

func TestAddDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 7)
	r := newRouter(db, "user-1")

	require.Equal(t, http.StatusCreated, addToWishlist(t, r, 7).Code)

	// The product ends up present either way, but the second add must be
	// reported as a conflict, not swallowed.
	w := addToWishlist(t, r, 7)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddUnknownProductIsNotFound(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := addToWishlist(t, r, 999)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveAbsentEntryIsNotFound(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/wishlist/remove/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveExistingEntry(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 7)
	r := newRouter(db, "user-1")
	require.Equal(t, http.StatusCreated, addToWishlist(t, r, 7).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/wishlist/remove/7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestWishlistsAreScopedPerUser(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 7)

	alice := newRouter(db, "alice")
	bob := newRouter(db, "bob")

	// Same product, two users; no conflict between them.
	require.Equal(t, http.StatusCreated, addToWishlist(t, alice, 7).Code)
	require.Equal(t, http.StatusCreated, addToWishlist(t, bob, 7).Code)

	w := httptest.NewRecorder()
	alice.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/wishlist", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.WishlistItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].UserID)
}
