package slots

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swasthikkulal/parking-backend/internal/pricing"
	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/internal/shared/utils/response"
)

type Controller interface {
	CreateSlot(c *gin.Context)
	GetSlot(c *gin.Context)
	GetSlotByNumber(c *gin.Context)
	UpdateSlot(c *gin.Context)
	BulkUpdateSlots(c *gin.Context)
	ToggleSlotActive(c *gin.Context)
	DeleteSlot(c *gin.Context)
	DeleteAllSlots(c *gin.Context)
	ListSlots(c *gin.Context)
	GetPricingInfo(c *gin.Context)
	GenerateSlots(c *gin.Context)
	SetEmergencyMode(c *gin.Context)
	ClearEmergencyMode(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func parseSlotID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		response.Error(c, errs.InvalidArgument("invalid slot id"))
		return uuid.Nil, false
	}
	return id, true
}

func (ctrl *controller) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	slot, err := ctrl.service.CreateSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Slot created successfully", slot)
}

func (ctrl *controller) GetPricingInfo(c *gin.Context) {
	card := DefaultRateCard(pricing.OvertimeMultiplier, pricing.MinExtensionMinutes)
	response.Success(c, http.StatusOK, "Pricing information", card)
}

func (ctrl *controller) GetSlot(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	slot, err := ctrl.service.GetSlotByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slot retrieved successfully", slot)
}

func (ctrl *controller) GetSlotByNumber(c *gin.Context) {
	slot, err := ctrl.service.GetSlotByNumber(c.Request.Context(), c.Param("slotNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slot retrieved successfully", slot)
}

func (ctrl *controller) UpdateSlot(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	slot, err := ctrl.service.UpdateSlot(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slot updated successfully", slot)
}

func (ctrl *controller) BulkUpdateSlots(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	updated, err := ctrl.service.BulkUpdateSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slots updated successfully", gin.H{"updated": updated})
}

func (ctrl *controller) ToggleSlotActive(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	slot, err := ctrl.service.ToggleSlotActive(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slot status toggled", slot)
}

func (ctrl *controller) DeleteSlot(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteSlot(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slot deleted successfully", nil)
}

func (ctrl *controller) DeleteAllSlots(c *gin.Context) {
	deleted, err := ctrl.service.DeleteAllSlots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "All slots deleted", gin.H{"deleted": deleted})
}

func (ctrl *controller) ListSlots(c *gin.Context) {
	var query SlotListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := ctrl.service.ListSlots(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slots retrieved successfully", result)
}

func (ctrl *controller) GenerateSlots(c *gin.Context) {
	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := ctrl.service.GenerateSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Slot layout generated", result)
}

func (ctrl *controller) SetEmergencyMode(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	// Body is optional, critical priority is assumed when omitted.
	priority := 3
	var req EmergencyModeRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Priority != nil {
		priority = *req.Priority
	}

	slot, err := ctrl.service.SetEmergencyMode(c.Request.Context(), id, priority)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Slot switched to emergency mode", slot)
}

func (ctrl *controller) ClearEmergencyMode(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	slot, err := ctrl.service.ClearEmergencyMode(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Emergency mode cleared", slot)
}
