package orderControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func newRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/api/orders", ListOrdersHandler(db))
	r.POST("/api/orders", CreateOrderHandler(db))
	return r
}

func postOrder(t *testing.T, r *gin.Engine, req CreateOrderRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, httpReq)
	return w
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := postOrder(t, r, CreateOrderRequest{Items: nil, TotalAmount: 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsMissingAmount(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := postOrder(t, r, CreateOrderRequest{
		Items: []OrderItemInput{{ProductID: 1, Quantity: 2}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndListOrders(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	w := postOrder(t, r, CreateOrderRequest{
		Items:       []OrderItemInput{{ProductID: 1, Quantity: 2}, {ProductID: 5, Quantity: 1}},
		TotalAmount: 250,
		ShippingAddress: models.Address{
			FirstName: "Thandi", LastName: "Nkosi", Email: "thandi@example.com",
			Street: "12 Long Street", City: "Cape Town", Province: "Western Cape", PostalCode: "8001",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, models.PaymentStatusPending, orders[0].PaymentStatus)
	assert.InDelta(t, 250.0, orders[0].TotalAmount, 0.001)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Cape Town", orders[0].ShippingAddress.City)
}

func TestListOrdersMostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, "user-1")

	older := models.Order{
		UserID:        "user-1",
		TotalAmount:   100,
		PaymentStatus: models.PaymentStatusPaid,
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	newer := models.Order{
		UserID:        "user-1",
		TotalAmount:   200,
		PaymentStatus: models.PaymentStatusPaid,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.InDelta(t, 200.0, orders[0].TotalAmount, 0.001)
	assert.InDelta(t, 100.0, orders[1].TotalAmount, 0.001)
}

func TestListOrdersScopedToUser(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Order{UserID: "alice", TotalAmount: 10}).Error)
	require.NoError(t, db.Create(&models.Order{UserID: "bob", TotalAmount: 20}).Error)

	r := newRouter(db, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "alice", orders[0].UserID)
}

func TestFinalizeOrderPaidClearsCart(t *testing.T) {
	db := newTestDB(t)

	cart := models.Cart{UserID: "user-1"}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.CartID, ProductID: 1, Price: 100, Quantity: 2}).Error)

	items := []models.OrderItem{{ProductID: 1, Quantity: 2}}
	addr := models.Address{City: "Cape Town"}
	require.NoError(t, FinalizeOrder(db, "user-1", items, 200, addr, models.PaymentStatusPaid, "tx-1"))

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "tx-1", order.TransactionRef)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)
}

func TestFinalizeOrderRedeliveryWritesOneOrder(t *testing.T) {
	db := newTestDB(t)

	items := []models.OrderItem{{ProductID: 1, Quantity: 2}}
	addr := models.Address{City: "Cape Town"}
	require.NoError(t, FinalizeOrder(db, "user-1", items, 200, addr, models.PaymentStatusPaid, "tx-dup"))
	require.NoError(t, FinalizeOrder(db, "user-1", items, 200, addr, models.PaymentStatusPaid, "tx-dup"))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("transaction_ref = ?", "tx-dup").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFinalizeOrderDistinctRefsBothWritten(t *testing.T) {
	db := newTestDB(t)

	items := []models.OrderItem{{ProductID: 1, Quantity: 1}}
	require.NoError(t, FinalizeOrder(db, "user-1", items, 100, models.Address{}, models.PaymentStatusPaid, "tx-a"))
	require.NoError(t, FinalizeOrder(db, "user-1", items, 100, models.Address{}, models.PaymentStatusPaid, "tx-b"))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestFinalizeOrderFailedKeepsCart(t *testing.T) {
	db := newTestDB(t)

	cart := models.Cart{UserID: "user-1"}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.CartID, ProductID: 1, Price: 100, Quantity: 2}).Error)

	items := []models.OrderItem{{ProductID: 1, Quantity: 2}}
	require.NoError(t, FinalizeOrder(db, "user-1", items, 200, models.Address{}, models.PaymentStatusFailed, "tx-2"))

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}
