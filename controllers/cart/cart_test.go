package cartControllers

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
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.WishlistItem{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func newRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/api/cart", GetCart(db))
	r.POST("/api/cart", SaveCart(db))
	r.DELETE("/api/cart", ClearCart(db))
	return r
}

func saveCart(t *testing.T, r *gin.Engine, lines []CartLineInput) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(SaveCartRequest{CartItems: lines})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func getCart(t *testing.T, r *gin.Engine) []models.CartItem {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart []models.CartItem `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Cart
}

func TestSaveCartReplacesWholeCart(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := saveCart(t, r, []CartLineInput{
		{ProductID: 1, Name: "Mug", Price: 50, Quantity: 2},
		{ProductID: 2, Name: "Shirt", Price: 120, Quantity: 1},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, getCart(t, r), 2)

	// A later snapshot fully replaces the earlier one, last write wins.
	w = saveCart(t, r, []CartLineInput{
		{ProductID: 3, Name: "Hat", Price: 80, Quantity: 1},
	})
	require.Equal(t, http.StatusOK, w.Code)

	items := getCart(t, r)
	require.Len(t, items, 1)
	assert.Equal(t, uint(3), items[0].ProductID)
}

func TestSaveCartNormalizesSnapshot(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := saveCart(t, r, []CartLineInput{
		{ProductID: 1, Name: "Mug", Price: 50, Quantity: 2},
		{ProductID: 1, Name: "Mug", Price: 50, Quantity: 3}, // duplicate line
		{ProductID: 2, Name: "Shirt", Price: 120, Quantity: 0},  // invalid quantity
		{ProductID: 3, Name: "Hat", Price: 80, Quantity: -4},    // invalid quantity
	})
	require.Equal(t, http.StatusOK, w.Code)

	items := getCart(t, r)
	require.Len(t, items, 1, "duplicates merged, sub-1 quantities dropped")
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestSaveCartInvariants(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	snapshots := [][]CartLineInput{
		{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 2}},
		{{ProductID: 1, Quantity: 3}},
		{{ProductID: 2, Quantity: 1}, {ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 0}},
		{},
		{{ProductID: 5, Quantity: 7}},
	}

	for _, snapshot := range snapshots {
		w := saveCart(t, r, snapshot)
		require.Equal(t, http.StatusOK, w.Code)

		seen := make(map[uint]bool)
		for _, item := range getCart(t, r) {
			assert.False(t, seen[item.ProductID], "at most one line per product")
			seen[item.ProductID] = true
			assert.GreaterOrEqual(t, item.Quantity, 1, "every line's quantity is >= 1")
		}
	}
}

func TestSaveCartRejectsMalformedBody(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	saveCart(t, r, []CartLineInput{{ProductID: 1, Quantity: 2}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, getCart(t, r))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	alice := newRouter(db, "alice")
	bob := newRouter(db, "bob")

	saveCart(t, alice, []CartLineInput{{ProductID: 1, Quantity: 1}})
	saveCart(t, bob, []CartLineInput{{ProductID: 2, Quantity: 4}})

	aliceItems := getCart(t, alice)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, uint(1), aliceItems[0].ProductID)

	bobItems := getCart(t, bob)
	require.Len(t, bobItems, 1)
	assert.Equal(t, uint(2), bobItems[0].ProductID)
}
