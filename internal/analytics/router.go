package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/swasthikkulal/parking-backend/internal/shared/middleware"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller) {
	// Public lot overview
	router.GET("/user/slots/summary", controller.GetAvailabilitySummary) // GET /api/user/slots/summary

	// Admin analytics
	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", controller.GetDashboardStats)             // GET /api/admin/dashboard
		admin.GET("/sessions/payments", controller.GetPaymentAnalytics)   // GET /api/admin/sessions/payments
		admin.GET("/slots/analytics", controller.GetSectionStats)         // GET /api/admin/slots/analytics
	}
}
