package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/rutdvaj/fastbite/controllers/product"
)

// SetupProductRoutes registers the public catalog endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:slug", productControllers.GetProductBySlug(db))
	}
}
