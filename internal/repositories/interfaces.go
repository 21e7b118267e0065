package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned on uniqueness violations (email, matric number,
// receipt id).
var ErrDuplicate = errors.New("record already exists")

// IsNotFoundError reports whether err means the record was absent,
// regardless of which layer produced it.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err means a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// ===== SHARED FILTER STRUCTS =====

// Filters are ANDed; nil fields are ignored. Limit/Offset of zero means the
// repository default.

type PaymentFilters struct {
	StudentID *string               `json:"student_id"`
	Status    *models.PaymentStatus `json:"status"`
	MatricNo  *string               `json:"matric_no"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}

type ExpenseFilters struct {
	Status      *models.ExpenseStatus `json:"status"`
	Department  *string               `json:"department"`
	RequestedBy *string               `json:"requested_by"`
	Limit       int                   `json:"limit"`
	Offset      int                   `json:"offset"`
}

type ReceiptFilters struct {
	StudentID  *string  `json:"student_id"`
	ReceiptID  *string  `json:"receipt_id"`
	PaymentIDs []string `json:"payment_ids"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
}

type ProjectFilters struct {
	SupervisorID *string               `json:"supervisor_id"`
	Department   *string               `json:"department"`
	Status       *models.ProjectStatus `json:"status"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

type ReportFilters struct {
	ProjectID  *string              `json:"project_id"`
	ProjectIDs []string             `json:"project_ids"`
	StudentID  *string              `json:"student_id"`
	Status     *models.ReportStatus `json:"status"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ===== DASHBOARD AGGREGATES =====

type FinancialStats struct {
	TotalCollected    float64 `json:"total_collected"`
	PendingAmount     float64 `json:"pending_amount"`
	RefundedAmount    float64 `json:"refunded_amount"`
	PaymentCount      int64   `json:"payment_count"`
	PaidPaymentCount  int64   `json:"paid_payment_count"`
	ExpenseTotal      float64 `json:"expense_total"`
	ApprovedExpenses  float64 `json:"approved_expenses"`
	PaidExpenses      float64 `json:"paid_expenses"`
	PendingExpenses   int64   `json:"pending_expenses"`
	ReceiptCount      int64   `json:"receipt_count"`
	ActiveStudentJobs int64   `json:"active_projects"`
}
