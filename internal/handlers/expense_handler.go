package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/services"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/utils"
)

type ExpenseHandler struct {
	BaseHandler
	expenseService services.ExpenseService
}

func NewExpenseHandler(expenseService services.ExpenseService, logger utils.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		BaseHandler:    NewBaseHandler(logger),
		expenseService: expenseService,
	}
}

// CreateExpense records a departmental spending request.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req services.CreateExpenseRequest
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

	h.LogRequest(c, "Creating expense", "department", req.Department)

	expense, err := h.expenseService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetExpense retrieves an expense by ID.
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id := c.Param("id")

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Getting expense", "expense_id", id)

	expense, err := h.expenseService.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// ListExpenses lists expenses, optionally filtered by status or department.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	query := services.ListExpensesQuery{}
	query.Page, query.Limit = pageQuery(c)
	if status := c.Query("status"); status != "" {
		s := models.ExpenseStatus(status)
		query.Status = &s
	}
	if department := c.Query("department"); department != "" {
		query.Department = &department
	}
	if requestedBy := c.Query("requested_by"); requestedBy != "" {
		query.RequestedBy = &requestedBy
	}

	h.LogRequest(c, "Listing expenses")

	resp, err := h.expenseService.List(c.Request.Context(), query, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateExpenseStatus moves an expense along its approval lifecycle.
func (h *ExpenseHandler) UpdateExpenseStatus(c *gin.Context) {
	var req services.UpdateExpenseStatusRequest
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

	h.LogRequest(c, "Updating expense status", "expense_id", req.ExpenseID, "status", req.Status)

	expense, err := h.expenseService.UpdateStatus(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}
