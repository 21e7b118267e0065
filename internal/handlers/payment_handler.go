package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/services"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/utils"
)

type PaymentHandler struct {
	BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService, logger utils.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    NewBaseHandler(logger),
		paymentService: paymentService,
	}
}

// CreatePayment records a fee obligation against a student.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Creating payment", "student_id", req.StudentID)

	payment, err := h.paymentService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment retrieves a payment by ID.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Getting payment", "payment_id", id)

	payment, err := h.paymentService.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListPayments lists payments. Students only ever see their own.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	query := services.ListPaymentsQuery{}
	query.Page, query.Limit = pageQuery(c)
	if studentID := c.Query("student_id"); studentID != "" {
		query.StudentID = &studentID
	}
	if status := c.Query("status"); status != "" {
		s := models.PaymentStatus(status)
		query.Status = &s
	}

	h.LogRequest(c, "Listing payments")

	resp, err := h.paymentService.List(c.Request.Context(), query, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdatePaymentStatus moves a payment along its lifecycle.
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	var req services.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Updating payment status", "payment_id", req.PaymentID, "status", req.Status)

	payment, err := h.paymentService.UpdateStatus(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// pageQuery reads the page and limit query parameters. Out-of-range values
// fall back to the service defaults.
func pageQuery(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit < 0 {
		limit = 0
	}
	return page, limit
}
