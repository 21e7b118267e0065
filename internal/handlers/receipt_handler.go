package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/services"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/utils"
)

type ReceiptHandler struct {
	BaseHandler
	receiptService services.ReceiptService
}

func NewReceiptHandler(receiptService services.ReceiptService, logger utils.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		BaseHandler:    NewBaseHandler(logger),
		receiptService: receiptService,
	}
}

// IssueReceipt settles a payment and records the receipt for it.
func (h *ReceiptHandler) IssueReceipt(c *gin.Context) {
	var req services.IssueReceiptRequest
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

	h.LogRequest(c, "Issuing receipt", "payment_id", req.PaymentID, "receipt_id", req.ReceiptID)

	receipt, err := h.receiptService.Issue(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// GetReceipt retrieves a receipt by its public receipt number.
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receiptID := c.Param("receipt_id")

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Getting receipt", "receipt_id", receiptID)

	receipt, err := h.receiptService.GetByReceiptID(c.Request.Context(), receiptID, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// ListReceipts lists receipts. Students only ever see their own.
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	query := services.ListReceiptsQuery{}
	query.Page, query.Limit = pageQuery(c)
	if studentID := c.Query("student_id"); studentID != "" {
		query.StudentID = &studentID
	}
	if receiptID := c.Query("receipt_id"); receiptID != "" {
		query.ReceiptID = &receiptID
	}

	h.LogRequest(c, "Listing receipts")

	resp, err := h.receiptService.List(c.Request.Context(), query, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
