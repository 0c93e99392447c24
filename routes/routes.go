package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every /api route
// group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db)
	SetupProductRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupAddressRoutes(api, db)
	SetupPaymentRoutes(api, db)
	SetupOrderRoutes(api, db)
	SetupAdminRoutes(api, db)
}
