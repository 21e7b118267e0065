package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

func TestDashboardService(t *testing.T) {
	repo := newFakeRepository()
	manager, _ := newTestManager(t, repo)
	ctx := context.Background()

	bursar := seedUser(t, repo, models.RoleBursary, "bursar@unicross.edu.ng", "pass-word", nil)
	student := seedUser(t, repo, models.RoleStudent, "ada@unicross.edu.ng", "pass-word", strPtr("UNC/2024/001"))

	p, err := manager.Payment().Create(ctx, &CreatePaymentRequest{
		StudentID:   student.ID,
		Amount:      30000,
		Description: "fees",
		DueDate:     time.Now().AddDate(0, 1, 0),
	}, bursar)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := manager.Receipt().Issue(ctx, &IssueReceiptRequest{
		PaymentID:  p.ID,
		IssuedBy:   bursar.ID,
		ReceiptID:  "RCP-1",
		AmountPaid: 30000,
	}, bursar); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	t.Run("stats reflect settled payments", func(t *testing.T) {
		stats, err := manager.Dashboard().FinancialStats(ctx, bursar)
		if err != nil {
			t.Fatalf("FinancialStats() error = %v", err)
		}
		if stats.TotalCollected != 30000 {
			t.Errorf("TotalCollected = %v, want 30000", stats.TotalCollected)
		}
		if stats.ReceiptCount != 1 {
			t.Errorf("ReceiptCount = %d, want 1", stats.ReceiptCount)
		}
	})

	t.Run("students cannot read the dashboard", func(t *testing.T) {
		if _, err := manager.Dashboard().FinancialStats(ctx, student); !IsForbidden(err) {
			t.Errorf("expected forbidden error, got %v", err)
		}
		if _, err := manager.Dashboard().ExportFinancialReport(ctx, student); !IsForbidden(err) {
			t.Errorf("expected forbidden error, got %v", err)
		}
	})

	t.Run("export produces a readable workbook", func(t *testing.T) {
		data, err := manager.Dashboard().ExportFinancialReport(ctx, bursar)
		if err != nil {
			t.Fatalf("ExportFinancialReport() error = %v", err)
		}

		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("exported bytes are not a valid workbook: %v", err)
		}
		defer f.Close()

		for _, sheet := range []string{"Summary", "Payments", "Expenses"} {
			if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
				t.Errorf("missing sheet %q", sheet)
			}
		}

		rows, err := f.GetRows("Payments")
		if err != nil {
			t.Fatalf("GetRows() error = %v", err)
		}
		// Header plus the one settled payment.
		if len(rows) != 2 {
			t.Errorf("Payments sheet has %d rows, want 2", len(rows))
		}
	})
}
