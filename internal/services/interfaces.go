package services

import (
	"context"
	"time"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreatePaymentRequest = validator.CreatePaymentRequest
type UpdatePaymentStatusRequest = validator.UpdatePaymentStatusRequest
type CreateExpenseRequest = validator.CreateExpenseRequest
type UpdateExpenseStatusRequest = validator.UpdateExpenseStatusRequest
type IssueReceiptRequest = validator.IssueReceiptRequest
type CreateProjectRequest = validator.CreateProjectRequest
type AssignStudentRequest = validator.AssignStudentRequest
type SubmitReportRequest = validator.SubmitReportRequest
type ReviewReportRequest = validator.ReviewReportRequest

// AuthResponse is returned on successful login or registration. The token is
// also set as an http-only cookie by the handler.
type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Pagination describes a page of a larger result set. Pages is the ceiling
// of Total over Limit.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func newPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

const defaultPageSize = 20

type PaymentListResponse struct {
	Payments   []*models.Payment `json:"payments"`
	Pagination Pagination        `json:"pagination"`
}

type ExpenseListResponse struct {
	Expenses   []*models.Expense `json:"expenses"`
	Pagination Pagination        `json:"pagination"`
}

type ReceiptListResponse struct {
	Receipts   []*models.Receipt `json:"receipts"`
	Pagination Pagination        `json:"pagination"`
}

type ProjectListResponse struct {
	Projects   []*models.Project `json:"projects"`
	Pagination Pagination        `json:"pagination"`
}

type ReportListResponse struct {
	Reports    []*models.ProjectReport `json:"reports"`
	Pagination Pagination              `json:"pagination"`
}

// ===== LIST QUERIES =====

type ListPaymentsQuery struct {
	StudentID *string
	Status    *models.PaymentStatus
	Page      int
	Limit     int
}

type ListExpensesQuery struct {
	Status      *models.ExpenseStatus
	Department  *string
	RequestedBy *string
	Page        int
	Limit       int
}

type ListReceiptsQuery struct {
	StudentID *string
	ReceiptID *string
	Page      int
	Limit     int
}

type ListProjectsQuery struct {
	SupervisorID *string
	Department   *string
	Status       *models.ProjectStatus
	Page         int
	Limit        int
}

type ListReportsQuery struct {
	ProjectID *string
	Status    *models.ReportStatus
	Page      int
	Limit     int
}

// ===== SERVICE INTERFACES =====

// AuthService owns registration, credential checks and token issuance.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	// VerifyToken validates a JWT and returns the persisted user it names.
	// Deactivated or deleted users fail verification even with a valid
	// signature.
	VerifyToken(ctx context.Context, token string) (*models.User, error)

	GetUser(ctx context.Context, id string) (*models.User, error)
}

// PaymentService owns the payment lifecycle. Students see only their own
// payments; bursary and admin staff see all and drive status changes.
type PaymentService interface {
	Create(ctx context.Context, req *CreatePaymentRequest, actor *models.User) (*models.Payment, error)
	GetByID(ctx context.Context, id string, actor *models.User) (*models.Payment, error)
	List(ctx context.Context, query ListPaymentsQuery, actor *models.User) (*PaymentListResponse, error)
	UpdateStatus(ctx context.Context, req *UpdatePaymentStatusRequest, actor *models.User) (*models.Payment, error)
}

// ExpenseService owns departmental spending requests.
type ExpenseService interface {
	Create(ctx context.Context, req *CreateExpenseRequest, actor *models.User) (*models.Expense, error)
	GetByID(ctx context.Context, id string, actor *models.User) (*models.Expense, error)
	List(ctx context.Context, query ListExpensesQuery, actor *models.User) (*ExpenseListResponse, error)
	UpdateStatus(ctx context.Context, req *UpdateExpenseStatusRequest, actor *models.User) (*models.Expense, error)
}

// ReceiptService issues immutable receipts against payments.
type ReceiptService interface {
	Issue(ctx context.Context, req *IssueReceiptRequest, actor *models.User) (*models.Receipt, error)
	GetByReceiptID(ctx context.Context, receiptID string, actor *models.User) (*models.Receipt, error)
	List(ctx context.Context, query ListReceiptsQuery, actor *models.User) (*ReceiptListResponse, error)
}

// ProjectService owns supervised projects, student assignment and report
// review.
type ProjectService interface {
	Create(ctx context.Context, req *CreateProjectRequest, actor *models.User) (*models.Project, error)
	GetByID(ctx context.Context, id string, actor *models.User) (*models.Project, error)
	List(ctx context.Context, query ListProjectsQuery, actor *models.User) (*ProjectListResponse, error)
	AssignStudent(ctx context.Context, req *AssignStudentRequest, actor *models.User) (*models.Project, error)

	SubmitReport(ctx context.Context, req *SubmitReportRequest, actor *models.User) (*models.ProjectReport, error)
	ReviewReport(ctx context.Context, req *ReviewReportRequest, actor *models.User) (*models.ProjectReport, error)
	ListReports(ctx context.Context, query ListReportsQuery, actor *models.User) (*ReportListResponse, error)
}

// DashboardService aggregates financial figures for bursary and admin staff.
type DashboardService interface {
	FinancialStats(ctx context.Context, actor *models.User) (*repositories.FinancialStats, error)

	// ExportFinancialReport renders the current figures as an xlsx workbook.
	ExportFinancialReport(ctx context.Context, actor *models.User) ([]byte, error)
}

// ServiceManager wires all services over one repository.
type ServiceManager interface {
	Auth() AuthService
	Payment() PaymentService
	Expense() ExpenseService
	Receipt() ReceiptService
	Project() ProjectService
	Dashboard() DashboardService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
