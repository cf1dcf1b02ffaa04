package sessions

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/internal/shared/utils/response"
	"github.com/swasthikkulal/parking-backend/internal/slots"
)

type Controller interface {
	ListAvailable(c *gin.Context)
	Book(c *gin.Context)
	GetSession(c *gin.Context)
	GetSessionByID(c *gin.Context)
	Extend(c *gin.Context)
	Complete(c *gin.Context)
	Cancel(c *gin.Context)
	ForceComplete(c *gin.Context)
	UpdatePayment(c *gin.Context)
	ListSessions(c *gin.Context)
	SessionsByVehicle(c *gin.Context)
	PurgeOld(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListAvailable(c *gin.Context) {
	vehicleClass := slots.VehicleClass(c.Query("vehicle_class"))

	available, err := ctrl.service.ListAvailable(c.Request.Context(), vehicleClass)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Available slots retrieved", gin.H{
		"count": len(available),
		"slots": available,
	})
}

func (ctrl *controller) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := ctrl.service.Book(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Slot booked successfully", result)
}

func (ctrl *controller) GetSession(c *gin.Context) {
	session, err := ctrl.service.GetSession(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved", session)
}

func (ctrl *controller) Extend(c *gin.Context) {
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	session, err := ctrl.service.Extend(c.Request.Context(), c.Param("tokenId"), req.AdditionalMinutes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session extended", session)
}

func (ctrl *controller) GetSessionByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.Error(c, errs.InvalidArgument("invalid session id"))
		return
	}

	session, err := ctrl.service.GetSessionByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved", session)
}

func (ctrl *controller) Complete(c *gin.Context) {
	var req CompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindingError(c, err)
			return
		}
	}

	result, err := ctrl.service.Complete(c.Request.Context(), c.Param("tokenId"), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session completed", result)
}

func (ctrl *controller) Cancel(c *gin.Context) {
	session, err := ctrl.service.Cancel(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session cancelled", session)
}

func (ctrl *controller) ForceComplete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.Error(c, errs.InvalidArgument("invalid session id"))
		return
	}

	var req ForceCompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindingError(c, err)
			return
		}
	}

	result, err := ctrl.service.ForceComplete(c.Request.Context(), id, req.PaymentMethod, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session force completed", result)
}

func (ctrl *controller) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	session, err := ctrl.service.UpdatePayment(c.Request.Context(), c.Param("tokenId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payment updated", session)
}

func (ctrl *controller) ListSessions(c *gin.Context) {
	var query SessionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := ctrl.service.ListSessions(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Sessions retrieved", result)
}

func (ctrl *controller) SessionsByVehicle(c *gin.Context) {
	result, err := ctrl.service.SessionsByVehicle(c.Request.Context(), c.Param("vehicleNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Sessions retrieved", gin.H{
		"count":    len(result),
		"sessions": result,
	})
}

func (ctrl *controller) PurgeOld(c *gin.Context) {
	purged, err := ctrl.service.PurgeOld(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Old sessions purged", gin.H{"purged": purged})
}
