package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/rutdvaj/fastbite/controllers/order"
	"github.com/rutdvaj/fastbite/middleware"
)

// SetupOrderRoutes registers the user-facing order endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.GET("/user", orderControllers.GetUserOrders(db))
		orders.GET("/:orderID", orderControllers.GetOrderByID(db))
		orders.POST("/:orderID/cancel", orderControllers.CancelOrder(db))
	}
}
