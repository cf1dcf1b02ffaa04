package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/internal/shared/utils/response"
)

type Controller interface {
	Login(c *gin.Context)
	ChangePassword(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

func (ctrl *controller) ChangePassword(c *gin.Context) {
	adminIDRaw, exists := c.Get("admin_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	adminID, err := uuid.Parse(adminIDRaw.(string))
	if err != nil {
		response.Error(c, errs.InvalidArgument("invalid admin id in token"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), adminID, &req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Current password is incorrect", nil, nil)
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}
