package validator

import (
	"time"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

// RegisterRequest creates a new user account. Role is validated against the
// closed role set; matric_no is additionally required for students (a
// business rule, checked by the BusinessValidator).
type RegisterRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=8"`
	Role      models.UserRole `json:"role" validate:"required,oneof=student bursary admin"`
	FirstName string          `json:"firstName" validate:"required,max=100"`
	LastName  string          `json:"lastName" validate:"required,max=100"`
	MatricNo  *string         `json:"matricNo" validate:"omitempty,max=50"`
}

// LoginRequest carries credentials. The optional role field is client intent
// only; the authoritative role always comes from the stored user record.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type CreatePaymentRequest struct {
	StudentID     string               `json:"studentId" validate:"required"`
	Amount        float64              `json:"amount" validate:"min=0"`
	Description   string               `json:"description" validate:"required"`
	DueDate       time.Time            `json:"dueDate" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=Paystack Flutterwave 'Bank Transfer' Cash Online"`
}

type UpdatePaymentStatusRequest struct {
	PaymentID string               `json:"paymentId" validate:"required"`
	Status    models.PaymentStatus `json:"status" validate:"required"`
	AdminID   *string              `json:"adminId"`
}

type CreateExpenseRequest struct {
	Department  string  `json:"department" validate:"required,max=100"`
	Amount      float64 `json:"amount" validate:"min=0"`
	Description string  `json:"description" validate:"required"`
	RequestedBy string  `json:"requestedBy" validate:"required"`
}

type UpdateExpenseStatusRequest struct {
	ExpenseID  string               `json:"expenseId" validate:"required"`
	Status     models.ExpenseStatus `json:"status" validate:"required"`
	ApprovedBy *string              `json:"approvedBy"`
	ReceiptRef *string              `json:"receiptRef"`
}

// IssueReceiptRequest settles a payment. ReceiptID is caller-supplied and is
// the idempotency key. Description and PaymentMethod fall back to the
// payment's own values when omitted.
type IssueReceiptRequest struct {
	PaymentID     string                `json:"paymentId" validate:"required"`
	IssuedBy      string                `json:"issuedBy" validate:"required"`
	ReceiptID     string                `json:"receiptId" validate:"required,max=100"`
	AmountPaid    float64               `json:"amountPaid" validate:"required,min=0"`
	Description   *string               `json:"description"`
	PaymentMethod *models.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=Paystack Flutterwave 'Bank Transfer' Cash Online"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Department  string `json:"department" validate:"required,max=100"`
	MaxStudents int    `json:"maxStudents" validate:"omitempty,min=1,max=50"`
}

type AssignStudentRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
}

type SubmitReportRequest struct {
	ProjectID     string  `json:"projectId" validate:"required"`
	Title         string  `json:"title" validate:"required,max=200"`
	Content       string  `json:"content" validate:"required"`
	AttachmentURL *string `json:"attachmentUrl" validate:"omitempty,url,max=500"`
}

type ReviewReportRequest struct {
	ReportID string              `json:"reportId" validate:"required"`
	Status   models.ReportStatus `json:"status" validate:"required,oneof=Reviewed Approved Rejected"`
	Feedback *string             `json:"feedback" validate:"omitempty,max=2000"`
}
