package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/swasthikkulal/parking-backend/internal/shared/middleware"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller Controller) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/admin/login", controller.Login) // POST /api/auth/admin/login
	}

	protected := router.Group("/auth")
	protected.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		protected.POST("/admin/change-password", controller.ChangePassword) // POST /api/auth/admin/change-password
	}
}
