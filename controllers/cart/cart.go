package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rutdvaj/fastbite/models"
	"github.com/rutdvaj/fastbite/pricing"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Qty       int  `json:"qty"`
}

// normalizeQty applies the default of 1 and rejects negatives.
func normalizeQty(qty int) (int, bool) {
	if qty == 0 {
		return 1, true
	}
	if qty < 0 {
		return 0, false
	}
	return qty, true
}

func requestUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	return userIDVal.(string), true
}

// getOrCreateCart returns the user's cart row, creating it on first use.
func getOrCreateCart(tx *gorm.DB, userID string) (models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID}
		err = tx.Create(&cart).Error
	}
	return cart, err
}

// upsertIncrement adds qty to the user's line for productID in a single
// statement. Concurrent adds for the same line both land: the store is
// the arbiter of atomicity, the application never does a read-modify-
// write across two calls.
func upsertIncrement(tx *gorm.DB, cartID, productID uint, qty int) error {
	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
}

// POST /api/cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		qty, ok := normalizeQty(input.Qty)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := upsertIncrement(db, cart.CartID, input.ProductID, qty); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		var quantity int
		if err := db.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).
			Pluck("quantity", &quantity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"product_id": input.ProductID,
			"quantity":   quantity,
		})
	}
}

// POST /api/cart/subtract
func SubtractFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		qty, ok := normalizeQty(input.Qty)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// No cart means nothing to subtract from.
				c.JSON(http.StatusOK, gin.H{"removed": true})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		removed := false
		quantity := 0
		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.CartItem{}).
				Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Line already gone.
				removed = true
				return nil
			}

			if err := tx.Model(&models.CartItem{}).
				Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).
				Pluck("quantity", &quantity).Error; err != nil {
				return err
			}

			// A quantity at or below zero is never stored: the line is
			// deleted instead.
			if quantity <= 0 {
				removed = true
				return tx.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).
					Delete(&models.CartItem{}).Error
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		if removed {
			c.JSON(http.StatusOK, gin.H{"removed": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": false, "quantity": quantity})
	}
}

// CartLines returns the user's cart enriched with live product data.
// Prices follow the product table, not a snapshot taken at add time, so
// totals track the catalog until the moment an order is placed.
func CartLines(db *gorm.DB, userID string) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := db.Table("cart_items").
		Select("cart_items.product_id, cart_items.quantity, products.name, products.slug, products.price, products.image").
		Joins("JOIN carts ON carts.cart_id = cart_items.cart_id").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("carts.user_id = ? AND products.deleted_at IS NULL", userID).
		Scan(&lines).Error
	return lines, err
}

// GET /api/cart/get
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(c)
		if !ok {
			return
		}

		lines, err := CartLines(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		priced := make([]pricing.Line, len(lines))
		for i, l := range lines {
			priced[i] = pricing.Line{Price: l.Price, Quantity: l.Quantity}
		}
		subtotal, shipping, total := pricing.Totals(priced)

		c.JSON(http.StatusOK, gin.H{
			"items":    lines,
			"subtotal": subtotal,
			"shipping": shipping,
			"total":    total,
		})
	}
}

// DELETE /api/cart/remove
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(c)
		if !ok {
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// Clearing a nonexistent cart succeeds.
				c.JSON(http.StatusOK, gin.H{"success": true})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ClearCartItems removes all lines for a user. Shared with the
// checkout flow's post-paid cleanup.
func ClearCartItems(db *gorm.DB, userID string) error {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}
