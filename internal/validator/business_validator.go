package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

// BusinessValidator enforces rules that struct tags cannot express: the
// status transition tables for financial records and cross-field rules on
// registration.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{validate: validator.New()}
}

// Transition tables. Any edge absent here is rejected; terminal states have
// no outgoing edges.
var (
	paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
		models.PaymentPending:  {models.PaymentPaid, models.PaymentFailed},
		models.PaymentPaid:     {models.PaymentRefunded},
		models.PaymentFailed:   {},
		models.PaymentRefunded: {},
	}

	expenseTransitions = map[models.ExpenseStatus][]models.ExpenseStatus{
		models.ExpensePending:  {models.ExpenseApproved, models.ExpenseRejected},
		models.ExpenseApproved: {models.ExpensePaid},
		models.ExpenseRejected: {},
		models.ExpensePaid:     {},
	}

	reportTransitions = map[models.ReportStatus][]models.ReportStatus{
		models.ReportSubmitted: {models.ReportReviewed, models.ReportApproved, models.ReportRejected},
		models.ReportReviewed:  {models.ReportApproved, models.ReportRejected},
		models.ReportApproved:  {},
		models.ReportRejected:  {},
	}
)

// ValidatePaymentTransition checks a payment status change against the
// transition table.
func (bv *BusinessValidator) ValidatePaymentTransition(current, next models.PaymentStatus) ValidationErrors {
	if !models.ValidPaymentStatus(next) {
		return ValidationErrors{{
			Field:   "status",
			Message: fmt.Sprintf("invalid status value %q", next),
			Value:   next,
			Rule:    "status_enum",
		}}
	}
	return checkTransition("status", string(current), string(next), allowedPayment(current, next))
}

// ValidateExpenseTransition checks an expense status change against the
// transition table.
func (bv *BusinessValidator) ValidateExpenseTransition(current, next models.ExpenseStatus) ValidationErrors {
	if !models.ValidExpenseStatus(next) {
		return ValidationErrors{{
			Field:   "status",
			Message: fmt.Sprintf("invalid status value %q", next),
			Value:   next,
			Rule:    "status_enum",
		}}
	}
	return checkTransition("status", string(current), string(next), allowedExpense(current, next))
}

// ValidateReportTransition checks a report review decision against the
// transition table.
func (bv *BusinessValidator) ValidateReportTransition(current, next models.ReportStatus) ValidationErrors {
	if !models.ValidReportStatus(next) || next == models.ReportSubmitted {
		return ValidationErrors{{
			Field:   "status",
			Message: fmt.Sprintf("invalid review status %q", next),
			Value:   next,
			Rule:    "status_enum",
		}}
	}
	return checkTransition("status", string(current), string(next), allowedReport(current, next))
}

// ValidateRegistration enforces cross-field registration rules: students
// must carry a matriculation number.
func (bv *BusinessValidator) ValidateRegistration(req *RegisterRequest) ValidationErrors {
	var errs ValidationErrors

	if req.Role == models.RoleStudent {
		if req.MatricNo == nil || strings.TrimSpace(*req.MatricNo) == "" {
			errs = append(errs, ValidationError{
				Field:   "matricno",
				Message: "is required for student accounts",
				Rule:    "business_logic",
			})
		}
	}

	return errs
}

func allowedPayment(current, next models.PaymentStatus) bool {
	for _, s := range paymentTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

func allowedExpense(current, next models.ExpenseStatus) bool {
	for _, s := range expenseTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

func allowedReport(current, next models.ReportStatus) bool {
	for _, s := range reportTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

func checkTransition(field, current, next string, allowed bool) ValidationErrors {
	if allowed {
		return nil
	}
	return ValidationErrors{{
		Field:   field,
		Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
		Value:   next,
		Rule:    "status_transition",
	}}
}
