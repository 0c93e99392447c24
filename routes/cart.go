package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/rutdvaj/fastbite/controllers/cart"
	"github.com/rutdvaj/fastbite/middleware"
)

// SetupCartRoutes registers the /api/cart endpoints. All of them
// mutate or read per-user state, so all sit behind the JWT middleware.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.POST("/subtract", cartControllers.SubtractFromCart(db))
		cart.GET("/get", cartControllers.GetCart(db))
		cart.DELETE("/remove", cartControllers.ClearCart(db))
		cart.POST("/merge", cartControllers.MergeCart(db))
	}
}
