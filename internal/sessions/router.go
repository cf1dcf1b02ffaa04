package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/swasthikkulal/parking-backend/internal/shared/middleware"
)

func SetupSessionRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - booking and self-service session management by token
	user := router.Group("/user")
	{
		user.GET("/slots/available", controller.ListAvailable)            // GET /api/user/slots/available - Eligible slots
		user.POST("/book", controller.Book)                               // POST /api/user/book - Book a slot
		user.GET("/session/:tokenId", controller.GetSession)              // GET /api/user/session/:tokenId - Session status
		user.PATCH("/session/:tokenId/extend", controller.Extend)         // PATCH /api/user/session/:tokenId/extend
		user.PATCH("/session/:tokenId/complete", controller.Complete)     // PATCH /api/user/session/:tokenId/complete
		user.PATCH("/session/:tokenId/cancel", controller.Cancel)         // PATCH /api/user/session/:tokenId/cancel
	}

	// Admin routes - fleet-wide session management
	admin := router.Group("/admin/sessions")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListSessions)                                  // GET /api/admin/sessions
		admin.GET("/vehicle/:vehicleNumber", controller.SessionsByVehicle)      // GET /api/admin/sessions/vehicle/:vehicleNumber
		admin.GET("/:sessionId", controller.GetSessionByID)                     // GET /api/admin/sessions/:sessionId
		admin.PATCH("/:sessionId/force-complete", controller.ForceComplete)     // PATCH /api/admin/sessions/:sessionId/force-complete
		admin.PATCH("/token/:tokenId/payment", controller.UpdatePayment)        // PATCH /api/admin/sessions/token/:tokenId/payment
		admin.DELETE("/purge", controller.PurgeOld)                             // DELETE /api/admin/sessions/purge - Retention purge
	}
}
