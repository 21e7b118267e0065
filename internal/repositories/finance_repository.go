package repositories

import (
	"context"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

// PaymentRepository persists student payments. Payments are never deleted.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error

	// List returns payments newest-first with the total matching count.
	List(ctx context.Context, filters PaymentFilters) ([]*models.Payment, int64, error)
}

// ExpenseRepository persists departmental spending requests.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error

	List(ctx context.Context, filters ExpenseFilters) ([]*models.Expense, int64, error)
}

// ReceiptRepository persists issued receipts. Receipts are immutable after
// creation; there is no Update.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	GetByReceiptID(ctx context.Context, receiptID string) (*models.Receipt, error)
	ExistsByReceiptID(ctx context.Context, receiptID string) (bool, error)

	List(ctx context.Context, filters ReceiptFilters) ([]*models.Receipt, int64, error)
}

// DashboardRepository computes financial aggregates for admin reporting.
type DashboardRepository interface {
	FinancialStats(ctx context.Context) (*FinancialStats, error)
}
