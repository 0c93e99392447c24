package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	emailControllers "github.com/rutdvaj/fastbite/controllers/email"
	paymentControllers "github.com/rutdvaj/fastbite/controllers/payments"
	"github.com/rutdvaj/fastbite/middleware"
)

// SetupPaymentRoutes registers the checkout endpoints. The gateway and
// the notifier are built from the environment here; handlers only see
// the interfaces.
func SetupPaymentRoutes(api *gin.RouterGroup, db *gorm.DB) {
	gateway := paymentControllers.NewRazorpayGateway(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
	)

	var notifier paymentControllers.Notifier
	if apiKey := os.Getenv("SENDGRID_API_KEY"); apiKey != "" {
		notifier = emailControllers.NewSendGridNotifier(apiKey, os.Getenv("EMAIL_FROM"))
	}

	payments := api.Group("/payments")
	payments.Use(middleware.ValidateToken)
	{
		payments.POST("/createorder", paymentControllers.CreateOrder(db, gateway))
		payments.POST("/verify", paymentControllers.VerifyPayment(db, notifier))
	}
}
