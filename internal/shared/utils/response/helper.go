package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a success envelope with the given payload.
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error maps a service error onto the response envelope. The kind and reason
// are client-safe; wrapped causes never leave the server.
func Error(c *gin.Context, err error) {
	code := errs.HTTPStatus(err)
	RespondJSON(c, "error", code, errs.MessageOf(err), nil, ErrorDetail{
		Kind:   string(errs.KindOf(err)),
		Reason: errs.MessageOf(err),
	})
}

// BindingError reports a request parsing/validation failure.
func BindingError(c *gin.Context, err error) {
	RespondJSON(c, "error", http.StatusBadRequest, "invalid request body", nil, ErrorDetail{
		Kind:   string(errs.KindInvalidArgument),
		Reason: err.Error(),
	})
}
