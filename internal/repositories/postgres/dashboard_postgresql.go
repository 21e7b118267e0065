package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

// FinancialStats aggregates the figures shown on the bursary dashboard in a
// handful of grouped queries rather than loading whole tables.
func (r *dashboardRepository) FinancialStats(ctx context.Context) (*repositories.FinancialStats, error) {
	stats := &repositories.FinancialStats{}

	type statusSum struct {
		Status string
		Total  float64
		Count  int64
	}

	var paymentSums []statusSum
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("status, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("status").
		Scan(&paymentSums).Error
	if err != nil {
		return nil, handleDBError(err, "aggregate payments")
	}
	for _, row := range paymentSums {
		stats.PaymentCount += row.Count
		switch models.PaymentStatus(row.Status) {
		case models.PaymentPaid:
			stats.TotalCollected += row.Total
			stats.PaidPaymentCount = row.Count
		case models.PaymentPending:
			stats.PendingAmount += row.Total
		case models.PaymentRefunded:
			stats.RefundedAmount += row.Total
		}
	}

	var expenseSums []statusSum
	err = r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("status, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("status").
		Scan(&expenseSums).Error
	if err != nil {
		return nil, handleDBError(err, "aggregate expenses")
	}
	for _, row := range expenseSums {
		stats.ExpenseTotal += row.Total
		switch models.ExpenseStatus(row.Status) {
		case models.ExpenseApproved:
			stats.ApprovedExpenses += row.Total
		case models.ExpensePaid:
			stats.PaidExpenses += row.Total
		case models.ExpensePending:
			stats.PendingExpenses = row.Count
		}
	}

	err = r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Count(&stats.ReceiptCount).Error
	if err != nil {
		return nil, handleDBError(err, "count receipts")
	}

	err = r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("status = ?", models.ProjectOpen).
		Count(&stats.ActiveStudentJobs).Error
	if err != nil {
		return nil, handleDBError(err, "count open projects")
	}

	return stats, nil
}
