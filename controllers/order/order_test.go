package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/rutdvaj/fastbite/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Address{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func orderRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	orders := r.Group("/api/orders", asUser(userID))
	orders.GET("/user", GetUserOrders(db))
	orders.GET("/:orderID", GetOrderByID(db))
	orders.POST("/:orderID/cancel", CancelOrder(db))
	r.GET("/api/admin/orders", GetAllOrders(db))
	return r
}

var seedSeq int

func seedOrder(t *testing.T, db *gorm.DB, userID string, status models.OrderStatus) uint {
	t.Helper()
	seedSeq++
	order := models.Order{
		UserID:          userID,
		AddressID:       1,
		TotalAmount:     249,
		RazorpayOrderID: fmt.Sprintf("order_rzp_%d", seedSeq), // column is unique
		Status:          status,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
	return order.ID
}

func do(t *testing.T, r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrdersScopedToUser(t *testing.T) {
	db := setupDB(t)
	mine := seedOrder(t, db, "u1", models.OrderStatusPaid)
	theirs := seedOrder(t, db, "u2", models.OrderStatusPaid)

	r := orderRouter(db, "u1")

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", mine))
	if w.Code != http.StatusOK {
		t.Fatalf("own order: status = %d", w.Code)
	}

	// Another user's order is indistinguishable from a missing one.
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", theirs))
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign order: status = %d, want 404", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/orders/user")
	var body struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Orders) != 1 || body.Orders[0].ID != mine {
		t.Fatalf("listing = %+v, want only order %d", body.Orders, mine)
	}
}

func TestCancelForeignOrder(t *testing.T) {
	db := setupDB(t)
	theirs := seedOrder(t, db, "u2", models.OrderStatusPending)

	r := orderRouter(db, "u1")
	w := do(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", theirs))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var order models.Order
	if err := db.First(&order, theirs).Error; err != nil {
		t.Fatal(err)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("status = %s, a foreign cancel must not touch the order", order.Status)
	}
}

func TestGetAllOrdersStatusFilter(t *testing.T) {
	db := setupDB(t)
	seedOrder(t, db, "u1", models.OrderStatusPending)
	seedOrder(t, db, "u1", models.OrderStatusPaid)
	seedOrder(t, db, "u2", models.OrderStatusPaid)

	r := orderRouter(db, "admin")
	w := do(t, r, http.MethodGet, "/api/admin/orders?status=paid")

	var body struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Orders) != 2 {
		t.Fatalf("got %d orders, want 2 paid", len(body.Orders))
	}
	for _, o := range body.Orders {
		if o.Status != models.OrderStatusPaid {
			t.Fatalf("filter leaked order with status %s", o.Status)
		}
	}
}
