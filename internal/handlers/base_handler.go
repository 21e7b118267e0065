package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/services"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/utils"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	reqArgs := append([]any{"method", c.Request.Method, "path", c.Request.URL.Path}, args...)
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, reqArgs...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	reqArgs := append([]any{"error", err, "method", c.Request.Method, "path", c.Request.URL.Path}, args...)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, reqArgs...)
}

// handleServiceError maps a service error kind onto an HTTP status. All
// handlers share this mapping.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindInvalidInput:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request",
			Details: err.Error(),
		})
	case services.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: err.Error(),
		})
	case services.KindForbidden:
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: err.Error(),
		})
	case services.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	case services.KindConflict:
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
