package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasthikkulal/parking-backend/internal/shared/utils/response"
)

type Controller interface {
	GetDashboardStats(c *gin.Context)
	GetPaymentAnalytics(c *gin.Context)
	GetSectionStats(c *gin.Context)
	GetAvailabilitySummary(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboardStats(c *gin.Context) {
	stats, err := ctrl.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard stats retrieved", stats)
}

func (ctrl *controller) GetPaymentAnalytics(c *gin.Context) {
	analytics, err := ctrl.service.GetPaymentAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payment analytics retrieved", analytics)
}

func (ctrl *controller) GetSectionStats(c *gin.Context) {
	stats, err := ctrl.service.GetSectionStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Section stats retrieved", stats)
}

func (ctrl *controller) GetAvailabilitySummary(c *gin.Context) {
	summary, err := ctrl.service.GetAvailabilitySummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Availability summary retrieved", summary)
}
