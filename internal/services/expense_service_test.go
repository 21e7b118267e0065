package services

import (
	"context"
	"testing"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

func TestExpenseService_Lifecycle(t *testing.T) {
	repo := newFakeRepository()
	manager, _ := newTestManager(t, repo)
	expenses := manager.Expense()
	ctx := context.Background()

	bursar := seedUser(t, repo, models.RoleBursary, "bursar@unicross.edu.ng", "pass-word", nil)
	admin := seedUser(t, repo, models.RoleAdmin, "admin@unicross.edu.ng", "pass-word", nil)

	newPending := func(t *testing.T) *models.Expense {
		t.Helper()
		e, err := expenses.Create(ctx, &CreateExpenseRequest{
			Department:  "Library",
			Amount:      120000,
			Description: "journal subscriptions",
			RequestedBy: bursar.ID,
		}, bursar)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return e
	}

	t.Run("new expense starts Pending with no approval metadata", func(t *testing.T) {
		e := newPending(t)
		if e.Status != models.ExpensePending {
			t.Errorf("Status = %s, want Pending", e.Status)
		}
		if e.ApprovedBy != nil || e.ApprovedDate != nil {
			t.Error("pending expense must not carry approval metadata")
		}
	})

	t.Run("approval with an approver stamps metadata", func(t *testing.T) {
		e := newPending(t)
		updated, err := expenses.UpdateStatus(ctx, &UpdateExpenseStatusRequest{
			ExpenseID:  e.ID,
			Status:     models.ExpenseApproved,
			ApprovedBy: &admin.ID,
		}, admin)
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if updated.ApprovedBy == nil || *updated.ApprovedBy != admin.ID {
			t.Error("ApprovedBy not stamped")
		}
		if updated.ApprovedDate == nil {
			t.Error("ApprovedDate not stamped")
		}
	})

	t.Run("approval without an approver leaves metadata empty", func(t *testing.T) {
		e := newPending(t)
		updated, err := expenses.UpdateStatus(ctx, &UpdateExpenseStatusRequest{
			ExpenseID: e.ID,
			Status:    models.ExpenseApproved,
		}, admin)
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if updated.ApprovedBy != nil || updated.ApprovedDate != nil {
			t.Error("approval metadata stamped without an approver")
		}
	})

	t.Run("paying with a receipt ref stamps payment metadata", func(t *testing.T) {
		e := newPending(t)
		if _, err := expenses.UpdateStatus(ctx, &UpdateExpenseStatusRequest{
			ExpenseID: e.ID,
			Status:    models.ExpenseApproved,
		}, admin); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}

		updated, err := expenses.UpdateStatus(ctx, &UpdateExpenseStatusRequest{
			ExpenseID:  e.ID,
			Status:     models.ExpensePaid,
			ReceiptRef: strPtr("CHQ-7781"),
		}, admin)
		if err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if updated.PaymentDate == nil {
			t.Error("PaymentDate not stamped")
		}
		if updated.ReceiptRef == nil || *updated.ReceiptRef != "CHQ-7781" {
			t.Error("ReceiptRef not stamped")
		}
	})

	t.Run("Pending cannot jump straight to Paid", func(t *testing.T) {
		e := newPending(t)
		_, err := expenses.UpdateStatus(ctx, &UpdateExpenseStatusRequest{
			ExpenseID: e.ID,
			Status:    models.ExpensePaid,
		}, admin)
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	})

	t.Run("Rejected is terminal", func(t *testing.T) {
		e := newPending(t)
		if _, err := expenses.UpdateStatus(ctx, &UpdateExpenseStatusRequest{
			ExpenseID: e.ID,
			Status:    models.ExpenseRejected,
		}, admin); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		_, err := expenses.UpdateStatus(ctx, &UpdateExpenseStatusRequest{
			ExpenseID: e.ID,
			Status:    models.ExpenseApproved,
		}, admin)
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	})

	t.Run("unknown requester is not found", func(t *testing.T) {
		_, err := expenses.Create(ctx, &CreateExpenseRequest{
			Department:  "Works",
			Amount:      500,
			Description: "repairs",
			RequestedBy: "missing",
		}, bursar)
		if !IsNotFound(err) {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}
