package slots

import (
	"github.com/gin-gonic/gin"

	"github.com/swasthikkulal/parking-backend/internal/shared/middleware"
)

func SetupSlotRoutes(router *gin.RouterGroup, controller Controller) {
	// Public rate card
	router.GET("/user/pricing", controller.GetPricingInfo)  // GET /api/user/pricing - Rate card
	router.GET("/user/slots/:slotId", controller.GetSlot)   // GET /api/user/slots/:slotId - Slot details

	// Public routes - anyone can browse the lot
	publicSlots := router.Group("/slots")
	{
		publicSlots.GET("", controller.ListSlots)                        // GET /api/slots - Browse slots
		publicSlots.GET("/:slotId", controller.GetSlot)                  // GET /api/slots/:slotId - Slot details
		publicSlots.GET("/number/:slotNumber", controller.GetSlotByNumber) // GET /api/slots/number/:slotNumber - Lookup by number
	}

	// Admin routes - slot management
	adminSlots := router.Group("/admin/slots")
	adminSlots.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminSlots.POST("", controller.CreateSlot)                // POST /api/admin/slots - Create slot
		adminSlots.POST("/generate", controller.GenerateSlots)    // POST /api/admin/slots/generate - Generate layout
		adminSlots.PUT("/bulk", controller.BulkUpdateSlots)       // PUT /api/admin/slots/bulk - Bulk update
		adminSlots.PUT("/:slotId", controller.UpdateSlot)         // PUT /api/admin/slots/:slotId - Update slot
		adminSlots.PATCH("/:slotId/toggle", controller.ToggleSlotActive) // PATCH /api/admin/slots/:slotId/toggle - Enable/disable
		adminSlots.DELETE("/all", controller.DeleteAllSlots)      // DELETE /api/admin/slots/all - Wipe layout
		adminSlots.DELETE("/:slotId", controller.DeleteSlot)      // DELETE /api/admin/slots/:slotId - Delete slot

		// Emergency mode
		adminSlots.POST("/:slotId/emergency", controller.SetEmergencyMode)     // POST /api/admin/slots/:slotId/emergency
		adminSlots.DELETE("/:slotId/emergency", controller.ClearEmergencyMode) // DELETE /api/admin/slots/:slotId/emergency
	}
}
