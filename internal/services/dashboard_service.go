package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) FinancialStats(ctx context.Context, actor *models.User) (*repositories.FinancialStats, error) {
	if actor.Role == models.RoleStudent {
		return nil, NewForbiddenError("dashboard figures are restricted to staff")
	}

	stats, err := s.repo.Dashboard().FinancialStats(ctx)
	if err != nil {
		return nil, NewInternalError("failed to compute financial stats", err)
	}
	return stats, nil
}

// ExportFinancialReport renders the current aggregates and the full payment
// and expense ledgers into an xlsx workbook.
func (s *dashboardService) ExportFinancialReport(ctx context.Context, actor *models.User) ([]byte, error) {
	if actor.Role == models.RoleStudent {
		return nil, NewForbiddenError("financial exports are restricted to staff")
	}

	stats, err := s.repo.Dashboard().FinancialStats(ctx)
	if err != nil {
		return nil, NewInternalError("failed to compute financial stats", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, NewInternalError("failed to build workbook", err)
	}

	summaryRows := [][]interface{}{
		{"UNICROSS Financial Report"},
		{"Generated", time.Now().Format(time.RFC3339)},
		{},
		{"Metric", "Value"},
		{"Total collected", stats.TotalCollected},
		{"Pending amount", stats.PendingAmount},
		{"Refunded amount", stats.RefundedAmount},
		{"Payments recorded", stats.PaymentCount},
		{"Payments settled", stats.PaidPaymentCount},
		{"Expense total", stats.ExpenseTotal},
		{"Approved expenses", stats.ApprovedExpenses},
		{"Paid expenses", stats.PaidExpenses},
		{"Pending expense requests", stats.PendingExpenses},
		{"Receipts issued", stats.ReceiptCount},
		{"Open projects", stats.ActiveStudentJobs},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, NewInternalError("failed to build workbook", err)
		}
	}

	if err := s.writePaymentsSheet(ctx, f); err != nil {
		return nil, err
	}
	if err := s.writeExpensesSheet(ctx, f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, NewInternalError("failed to serialize workbook", err)
	}

	s.logger.Info("Financial report exported", "exported_by", actor.ID, "bytes", buf.Len())
	return buf.Bytes(), nil
}

const exportBatchLimit = 1000

func (s *dashboardService) writePaymentsSheet(ctx context.Context, f *excelize.File) error {
	const sheet = "Payments"
	if _, err := f.NewSheet(sheet); err != nil {
		return NewInternalError("failed to build workbook", err)
	}

	header := []interface{}{"Payment ID", "Matric No", "Student", "Amount", "Method", "Status", "Payment Date", "Created"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return NewInternalError("failed to build workbook", err)
	}

	payments, _, err := s.repo.Payment().List(ctx, repositories.PaymentFilters{Limit: exportBatchLimit})
	if err != nil {
		return NewInternalError("failed to load payments for export", err)
	}

	for i, p := range payments {
		paidAt := ""
		if p.PaymentDate != nil {
			paidAt = p.PaymentDate.Format(time.RFC3339)
		}
		row := []interface{}{
			p.ID, p.MatricNo, p.StudentName, p.Amount,
			string(p.PaymentMethod), string(p.Status),
			paidAt, p.CreatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return NewInternalError("failed to build workbook", err)
		}
	}
	return nil
}

func (s *dashboardService) writeExpensesSheet(ctx context.Context, f *excelize.File) error {
	const sheet = "Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return NewInternalError("failed to build workbook", err)
	}

	header := []interface{}{"Expense ID", "Department", "Amount", "Status", "Requested By", "Approved Date", "Payment Date"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return NewInternalError("failed to build workbook", err)
	}

	expenses, _, err := s.repo.Expense().List(ctx, repositories.ExpenseFilters{Limit: exportBatchLimit})
	if err != nil {
		return NewInternalError("failed to load expenses for export", err)
	}

	for i, e := range expenses {
		approvedAt, paidAt := "", ""
		if e.ApprovedDate != nil {
			approvedAt = e.ApprovedDate.Format(time.RFC3339)
		}
		if e.PaymentDate != nil {
			paidAt = e.PaymentDate.Format(time.RFC3339)
		}
		row := []interface{}{
			e.ID, e.Department, e.Amount, string(e.Status),
			e.RequestedBy, approvedAt, paidAt,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return NewInternalError("failed to build workbook", err)
		}
	}
	return nil
}
