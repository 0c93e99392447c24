package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/rutdvaj/fastbite/controllers/order"
	"github.com/rutdvaj/fastbite/middleware"
)

// SetupAdminRoutes registers the API-key-protected admin surface:
// order listing, xlsx export and the live paid-order feed.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	admin := api.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/orders", orderControllers.GetAllOrders(db))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		admin.GET("/orders/ws", orderControllers.OrderFeedHandler)
	}
}
