package paymentControllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	cartControllers "github.com/rutdvaj/fastbite/controllers/cart"
	orderControllers "github.com/rutdvaj/fastbite/controllers/order"
	"github.com/rutdvaj/fastbite/models"
	"github.com/rutdvaj/fastbite/pricing"
)

// Notifier sends the order-confirmation notification. Failures are
// logged and never alter order or cart state.
type Notifier interface {
	OrderConfirmation(order models.Order, email string) error
}

func requestUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	return userIDVal.(string), true
}

type CreateOrderInput struct {
	AddressID   uint    `json:"addressId"`
	TotalAmount float64 `json:"totalAmount"`
}

// POST /api/payments/createorder
//
// Step one of checkout. The cart is re-read and the total recomputed
// server side; the client's figure is a sanity input, never the amount
// charged. The pending order row is persisted only after the gateway
// accepts the order, so a gateway failure leaves no partial state.
func CreateOrder(db *gorm.DB, gw Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(c)
		if !ok {
			return
		}

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil || input.AddressID == 0 || input.TotalAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order details"})
			return
		}

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", input.AddressID, userID).First(&address).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		lines, err := cartControllers.CartLines(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		priced := make([]pricing.Line, len(lines))
		for i, l := range lines {
			priced[i] = pricing.Line{Price: l.Price, Quantity: l.Quantity}
		}
		subtotal, shipping, total := pricing.Totals(priced)

		receipt := "order_" + uuid.NewString()
		gatewayOrder, err := gw.CreateOrder(pricing.Paise(total), "INR", receipt, map[string]interface{}{
			"user_id":    userID,
			"address_id": input.AddressID,
		})
		if err != nil {
			log.Printf("gateway order creation failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway error", "details": err.Error()})
			return
		}

		order := models.Order{
			UserID:          userID,
			AddressID:       address.ID,
			Subtotal:        subtotal,
			ShippingCost:    shipping,
			TotalAmount:     total,
			Currency:        gatewayOrder.Currency,
			Receipt:         receipt,
			RazorpayOrderID: gatewayOrder.ID,
			Status:          models.OrderStatusPending,
			CreatedAt:       time.Now(),
		}
		for _, l := range lines {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: l.ProductID,
				Name:      l.Name,
				Slug:      l.Slug,
				Image:     l.Image,
				Price:     l.Price,
				Quantity:  l.Quantity,
			})
		}

		if err := db.Create(&order).Error; err != nil {
			log.Printf("failed to persist order for gateway order %s: %v", gatewayOrder.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order in database"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId":   gatewayOrder.ID,
			"amount":    gatewayOrder.Amount,
			"currency":  gatewayOrder.Currency,
			"dbOrderId": order.ID,
		})
	}
}

type VerifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	DBOrderID         uint   `json:"dbOrderId" binding:"required"`
}

// POST /api/payments/verify
//
// Step two of checkout. A signature mismatch leaves the order pending;
// the paid transition is a guarded update so a paid or cancelled order
// can never flip state. Cart cleanup and the confirmation email run
// after the transition commits and cannot undo it.
func VerifyPayment(db *gorm.DB, notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requestUserID(c)
		if !ok {
			return
		}

		var input VerifyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment verification fields"})
			return
		}

		secret := os.Getenv("RAZORPAY_KEY_SECRET")
		if !VerifySignature(secret, input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}

		res := db.Model(&models.Order{}).
			Where("id = ? AND user_id = ? AND razorpay_order_id = ? AND status = ?",
				input.DBOrderID, userID, input.RazorpayOrderID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":              models.OrderStatusPaid,
				"razorpay_payment_id": input.RazorpayPaymentID,
				"razorpay_signature":  input.RazorpaySignature,
			})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or already processed"})
			return
		}

		resp := gin.H{
			"success": true,
			"message": "Payment verified successfully",
			"orderId": input.DBOrderID,
		}

		// Payment success is authoritative: cleanup failure is logged
		// and surfaced only as a non-blocking warning.
		if err := cartControllers.ClearCartItems(db, userID); err != nil {
			log.Printf("failed to clear cart for user %s after payment: %v", userID, err)
			resp["warning"] = "Cart could not be cleared"
		}

		var order models.Order
		if err := db.Preload("Items").Preload("Address").First(&order, input.DBOrderID).Error; err == nil {
			orderControllers.BroadcastOrderPaid(order)
			if notifier != nil {
				go sendConfirmation(db, notifier, order)
			}
		} else {
			log.Printf("failed to reload order %d for notifications: %v", input.DBOrderID, err)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// sendConfirmation is best-effort: a failed email never touches order
// or cart state.
func sendConfirmation(db *gorm.DB, notifier Notifier, order models.Order) {
	var user models.User
	if err := db.First(&user, "id = ?", order.UserID).Error; err != nil {
		log.Printf("confirmation email skipped, user %s not found: %v", order.UserID, err)
		return
	}
	if err := notifier.OrderConfirmation(order, user.Email); err != nil {
		log.Printf("confirmation email for order %d failed: %v", order.ID, err)
	}
}
