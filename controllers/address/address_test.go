package addressControllers

import (
	"bytes"
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
	if err := db.AutoMigrate(&models.Address{}); err != nil {
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

func addressRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	addr := r.Group("/api/address", asUser(userID))
	addr.POST("/add", AddAddress(db))
	addr.GET("/get", GetAddresses(db))
	addr.PUT("/:id", UpdateAddress(db))
	addr.PUT("/:id/default", SetDefaultAddress(db))
	addr.DELETE("/:id", DeleteAddress(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validAddress(name string) gin.H {
	return gin.H{
		"full_name":   name,
		"line1":       "1 Main St",
		"city":        "Pune",
		"postal_code": "411001",
	}
}

func defaultCount(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	return count
}

func TestAddAddressValidation(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "u1")

	w := doJSON(t, r, http.MethodPost, "/api/address/add", gin.H{"full_name": "No Street"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "u1")

	if w := doJSON(t, r, http.MethodPost, "/api/address/add", validAddress("First")); w.Code != http.StatusOK {
		t.Fatalf("add first: status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/address/add", validAddress("Second")); w.Code != http.StatusOK {
		t.Fatalf("add second: status = %d", w.Code)
	}

	var first models.Address
	if err := db.Where("user_id = ? AND full_name = ?", "u1", "First").First(&first).Error; err != nil {
		t.Fatal(err)
	}
	if !first.IsDefault {
		t.Fatal("first address must be the default")
	}
	if got := defaultCount(t, db, "u1"); got != 1 {
		t.Fatalf("default count = %d, want 1", got)
	}
}

func TestSetDefaultReassigns(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "u1")

	doJSON(t, r, http.MethodPost, "/api/address/add", validAddress("First"))
	doJSON(t, r, http.MethodPost, "/api/address/add", validAddress("Second"))

	var second models.Address
	if err := db.Where("user_id = ? AND full_name = ?", "u1", "Second").First(&second).Error; err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/address/%d/default", second.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("set default: status = %d", w.Code)
	}

	if err := db.First(&second, second.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !second.IsDefault {
		t.Fatal("second address must now be the default")
	}
	if got := defaultCount(t, db, "u1"); got != 1 {
		t.Fatalf("default count = %d, want exactly 1", got)
	}
}

func TestAddressScopedToUser(t *testing.T) {
	db := setupDB(t)
	owner := addressRouter(db, "u1")
	doJSON(t, owner, http.MethodPost, "/api/address/add", validAddress("Mine"))

	var mine models.Address
	if err := db.Where("user_id = ?", "u1").First(&mine).Error; err != nil {
		t.Fatal(err)
	}

	other := addressRouter(db, "u2")
	if w := doJSON(t, other, http.MethodPut, fmt.Sprintf("/api/address/%d/default", mine.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign set-default: status = %d, want 404", w.Code)
	}
	if w := doJSON(t, other, http.MethodDelete, fmt.Sprintf("/api/address/%d", mine.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: status = %d, want 404", w.Code)
	}

	if err := db.First(&mine, mine.ID).Error; err != nil {
		t.Fatal("address must survive foreign mutations")
	}
}

func TestDeleteAddress(t *testing.T) {
	db := setupDB(t)
	r := addressRouter(db, "u1")
	doJSON(t, r, http.MethodPost, "/api/address/add", validAddress("Mine"))

	var addr models.Address
	if err := db.Where("user_id = ?", "u1").First(&addr).Error; err != nil {
		t.Fatal(err)
	}

	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/address/%d", addr.ID), nil); w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/address/%d", addr.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", w.Code)
	}
}
