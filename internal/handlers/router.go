package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/services"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	paymentHandler   *PaymentHandler
	expenseHandler   *ExpenseHandler
	receiptHandler   *ReceiptHandler
	projectHandler   *ProjectHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		paymentHandler:   NewPaymentHandler(serviceManager.Payment(), logger),
		expenseHandler:   NewExpenseHandler(serviceManager.Expense(), logger),
		receiptHandler:   NewReceiptHandler(serviceManager.Receipt(), logger),
		projectHandler:   NewProjectHandler(serviceManager.Project(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:   NewJWTAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Auth routes that work without a session
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/verify", hm.authHandler.Verify)
		auth.POST("/logout", hm.authHandler.Logout)
	}

	// Everything else requires authentication
	protected := v1.Group("")
	protected.Use(hm.authMiddleware.AuthMiddleware())
	{
		protected.GET("/auth/me", hm.authHandler.Me)

		// Payment routes. Students create and read their own (the service
		// scopes them); bursary staff drive status changes.
		payments := protected.Group("/payments")
		{
			payments.POST("", hm.paymentHandler.CreatePayment)
			payments.GET("", hm.paymentHandler.ListPayments)
			payments.GET("/:id", hm.paymentHandler.GetPayment)
			payments.PATCH("/update-status", hm.authMiddleware.RequireRoleMiddleware(models.RoleBursary), hm.paymentHandler.UpdatePaymentStatus)
		}

		// Expense routes. Any staff member may request; only bursary staff
		// approve and settle.
		expenses := protected.Group("/expenses")
		{
			expenses.POST("", hm.expenseHandler.CreateExpense)
			expenses.GET("", hm.expenseHandler.ListExpenses)
			expenses.GET("/:id", hm.expenseHandler.GetExpense)
			expenses.PATCH("", hm.authMiddleware.RequireRoleMiddleware(models.RoleBursary), hm.expenseHandler.UpdateExpenseStatus)
		}

		// Receipt routes. Issuance is a bursary operation; reads are scoped
		// by the service.
		receipts := protected.Group("/receipts")
		{
			receipts.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleBursary), hm.receiptHandler.IssueReceipt)
			receipts.GET("", hm.receiptHandler.ListReceipts)
			receipts.GET("/:receipt_id", hm.receiptHandler.GetReceipt)
		}

		// Project routes - staff create and assign, ownership enforced by
		// the service.
		projects := protected.Group("/projects")
		{
			projects.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleBursary), hm.projectHandler.CreateProject)
			projects.GET("", hm.projectHandler.ListProjects)
			projects.GET("/:id", hm.projectHandler.GetProject)
			projects.POST("/assign", hm.authMiddleware.RequireRoleMiddleware(models.RoleBursary), hm.projectHandler.AssignStudent)
		}

		// Report routes. Students submit; the owning supervisor reviews.
		reports := protected.Group("/project-reports")
		{
			reports.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.projectHandler.SubmitReport)
			reports.GET("", hm.projectHandler.ListReports)
			reports.PATCH("/review", hm.authMiddleware.RequireRoleMiddleware(models.RoleBursary), hm.projectHandler.ReviewReport)
		}

		// Dashboard routes - bursary staff and admins; export is admin only
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", hm.authMiddleware.RequireRoleMiddleware(models.RoleBursary), hm.dashboardHandler.GetFinancialStats)
			dashboard.GET("/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.dashboardHandler.ExportFinancialReport)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "unicross-pay",
		})
	})
}
