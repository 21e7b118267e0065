package services

import (
	"context"
	"testing"
	"time"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/events"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

func TestReceiptService_Issue(t *testing.T) {
	repo := newFakeRepository()
	manager, publisher := newTestManager(t, repo)
	payments := manager.Payment()
	receipts := manager.Receipt()
	ctx := context.Background()

	bursar := seedUser(t, repo, models.RoleBursary, "bursar@unicross.edu.ng", "pass-word", nil)
	student := seedUser(t, repo, models.RoleStudent, "ada@unicross.edu.ng", "pass-word", strPtr("UNC/2024/001"))

	newPayment := func(t *testing.T) *models.Payment {
		t.Helper()
		p, err := payments.Create(ctx, &CreatePaymentRequest{
			StudentID:   student.ID,
			Amount:      45000,
			Description: "2024/2025 school fees",
			DueDate:     time.Now().AddDate(0, 1, 0),
		}, bursar)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return p
	}

	t.Run("issuing settles a pending payment", func(t *testing.T) {
		p := newPayment(t)
		r, err := receipts.Issue(ctx, &IssueReceiptRequest{
			PaymentID:  p.ID,
			IssuedBy:   bursar.ID,
			ReceiptID:  "RCP-0001",
			AmountPaid: 45000,
		}, bursar)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		if r.Status != models.ReceiptPaid {
			t.Errorf("receipt status = %s, want Paid", r.Status)
		}
		if r.MatricNo != p.MatricNo || r.StudentName != p.StudentName {
			t.Error("receipt must snapshot the payment's student identity")
		}
		if r.Description != p.Description {
			t.Errorf("Description = %q, want payment fallback %q", r.Description, p.Description)
		}

		settled, err := payments.GetByID(ctx, p.ID, bursar)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if settled.Status != models.PaymentPaid {
			t.Errorf("payment status = %s, want Paid", settled.Status)
		}
		if settled.PaymentDate == nil {
			t.Error("settled payment must carry a payment date")
		}
	})

	t.Run("issuing against an already paid payment keeps its payment date", func(t *testing.T) {
		p := newPayment(t)
		if _, err := payments.UpdateStatus(ctx, &UpdatePaymentStatusRequest{PaymentID: p.ID, Status: models.PaymentPaid}, bursar); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		paid, _ := payments.GetByID(ctx, p.ID, bursar)
		firstStamp := *paid.PaymentDate

		if _, err := receipts.Issue(ctx, &IssueReceiptRequest{
			PaymentID:  p.ID,
			IssuedBy:   bursar.ID,
			ReceiptID:  "RCP-0002",
			AmountPaid: 45000,
		}, bursar); err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		after, _ := payments.GetByID(ctx, p.ID, bursar)
		if !after.PaymentDate.Equal(firstStamp) {
			t.Error("payment date must not be re-stamped on receipt issue")
		}
	})

	t.Run("duplicate receipt id is a conflict", func(t *testing.T) {
		p := newPayment(t)
		_, err := receipts.Issue(ctx, &IssueReceiptRequest{
			PaymentID:  p.ID,
			IssuedBy:   bursar.ID,
			ReceiptID:  "RCP-0001",
			AmountPaid: 45000,
		}, bursar)
		if !IsConflict(err) {
			t.Errorf("expected conflict error, got %v", err)
		}

		// The payment must be untouched when the receipt write fails.
		fresh, _ := payments.GetByID(ctx, p.ID, bursar)
		if fresh.Status != models.PaymentPending {
			t.Errorf("payment status = %s, want Pending after failed issue", fresh.Status)
		}
	})

	t.Run("cannot receipt a refunded payment", func(t *testing.T) {
		p := newPayment(t)
		if _, err := payments.UpdateStatus(ctx, &UpdatePaymentStatusRequest{PaymentID: p.ID, Status: models.PaymentPaid}, bursar); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if _, err := payments.UpdateStatus(ctx, &UpdatePaymentStatusRequest{PaymentID: p.ID, Status: models.PaymentRefunded}, bursar); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}

		_, err := receipts.Issue(ctx, &IssueReceiptRequest{
			PaymentID:  p.ID,
			IssuedBy:   bursar.ID,
			ReceiptID:  "RCP-0003",
			AmountPaid: 45000,
		}, bursar)
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	})

	t.Run("unknown payment and issuer are not found", func(t *testing.T) {
		if _, err := receipts.Issue(ctx, &IssueReceiptRequest{
			PaymentID:  "missing",
			IssuedBy:   bursar.ID,
			ReceiptID:  "RCP-0004",
			AmountPaid: 1,
		}, bursar); !IsNotFound(err) {
			t.Errorf("expected not found for missing payment, got %v", err)
		}

		p := newPayment(t)
		if _, err := receipts.Issue(ctx, &IssueReceiptRequest{
			PaymentID:  p.ID,
			IssuedBy:   "missing",
			ReceiptID:  "RCP-0005",
			AmountPaid: 1,
		}, bursar); !IsNotFound(err) {
			t.Errorf("expected not found for missing issuer, got %v", err)
		}
	})

	t.Run("explicit description overrides the payment fallback", func(t *testing.T) {
		p := newPayment(t)
		r, err := receipts.Issue(ctx, &IssueReceiptRequest{
			PaymentID:   p.ID,
			IssuedBy:    bursar.ID,
			ReceiptID:   "RCP-0006",
			AmountPaid:  45000,
			Description: strPtr("cash settlement at bursary desk"),
		}, bursar)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if r.Description != "cash settlement at bursary desk" {
			t.Errorf("Description = %q, want override", r.Description)
		}
	})

	t.Run("publishes receipt.issued", func(t *testing.T) {
		for _, e := range publisher.GetPublishedEvents() {
			if e.Type == events.EventReceiptIssued {
				return
			}
		}
		t.Error("expected a receipt.issued event")
	})
}

func TestReceiptService_StudentScoping(t *testing.T) {
	repo := newFakeRepository()
	manager, _ := newTestManager(t, repo)
	payments := manager.Payment()
	receipts := manager.Receipt()
	ctx := context.Background()

	bursar := seedUser(t, repo, models.RoleBursary, "bursar@unicross.edu.ng", "pass-word", nil)
	ada := seedUser(t, repo, models.RoleStudent, "ada@unicross.edu.ng", "pass-word", strPtr("UNC/2024/001"))
	ben := seedUser(t, repo, models.RoleStudent, "ben@unicross.edu.ng", "pass-word", strPtr("UNC/2024/002"))

	p, err := payments.Create(ctx, &CreatePaymentRequest{
		StudentID:   ben.ID,
		Amount:      2000,
		Description: "hostel fee",
		DueDate:     time.Now().AddDate(0, 0, 30),
	}, bursar)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := receipts.Issue(ctx, &IssueReceiptRequest{
		PaymentID:  p.ID,
		IssuedBy:   bursar.ID,
		ReceiptID:  "RCP-BEN-1",
		AmountPaid: 2000,
	}, bursar); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := receipts.GetByReceiptID(ctx, "RCP-BEN-1", ada); !IsForbidden(err) {
		t.Errorf("expected forbidden for another student's receipt, got %v", err)
	}

	resp, err := receipts.List(ctx, ListReceiptsQuery{}, ada)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Receipts) != 0 {
		t.Errorf("student list leaked %d receipts", len(resp.Receipts))
	}
}
