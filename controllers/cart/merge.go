package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MergeInput struct {
	CartItems []CartLineInput `json:"cart_items"`
}

type CartLineInput struct {
	ProductID uint `json:"product_id"`
	Qty       int  `json:"qty"`
}

// POST /api/cart/merge
//
// Merges a client-held anonymous cart into the server cart. The merge
// is strictly additive: an existing line is incremented, never
// replaced, so two devices syncing concurrently end up with the sum of
// both carts regardless of interleaving. The whole batch runs in one
// transaction; a bad line rolls back every line.
func MergeCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(c)
		if !ok {
			return
		}

		var input MergeInput
		if err := c.ShouldBindJSON(&input); err != nil || input.CartItems == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart items format. Expected array."})
			return
		}

		// Validate the full batch before touching anything.
		for _, line := range input.CartItems {
			if line.ProductID == 0 || line.Qty <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart items format. Expected array."})
				return
			}
		}

		if len(input.CartItems) == 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "merged": 0})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			cart, err := getOrCreateCart(tx, userID)
			if err != nil {
				return err
			}
			for _, line := range input.CartItems {
				if err := upsertIncrement(tx, cart.CartID, line.ProductID, line.Qty); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "merged": len(input.CartItems)})
	}
}
