package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/rutdvaj/fastbite/controllers/address"
	"github.com/rutdvaj/fastbite/middleware"
)

// SetupAddressRoutes registers the /api/address endpoints.
func SetupAddressRoutes(api *gin.RouterGroup, db *gorm.DB) {
	address := api.Group("/address")
	address.Use(middleware.ValidateToken)
	{
		address.POST("/add", addressControllers.AddAddress(db))
		address.GET("/get", addressControllers.GetAddresses(db))
		address.PUT("/:id", addressControllers.UpdateAddress(db))
		address.PUT("/:id/default", addressControllers.SetDefaultAddress(db))
		address.DELETE("/:id", addressControllers.DeleteAddress(db))
	}
}
