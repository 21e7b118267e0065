package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the portal.
const (
	EventPaymentCreated       = "payment.created"
	EventPaymentStatusChanged = "payment.status_changed"
	EventExpenseCreated       = "expense.created"
	EventExpenseStatusChanged = "expense.status_changed"
	EventReceiptIssued        = "receipt.issued"
	EventReportReviewed       = "project_report.reviewed"
	EventUserRegistered       = "user.registered"
)

const (
	eventSource  = "unicross-pay"
	eventVersion = "1.0"
)

// Event is the envelope every published message carries.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope around the payload.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers domain events to downstream consumers
// (notifications, audit, reconciliation).
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// PaymentStatusChangedEvent is the payload for payment lifecycle events.
type PaymentStatusChangedEvent struct {
	PaymentID  string  `json:"payment_id"`
	StudentID  string  `json:"student_id"`
	MatricNo   string  `json:"matric_no"`
	Amount     float64 `json:"amount"`
	FromStatus string  `json:"from_status"`
	ToStatus   string  `json:"to_status"`
	ChangedBy  string  `json:"changed_by"`
}

// ExpenseStatusChangedEvent is the payload for expense lifecycle events.
type ExpenseStatusChangedEvent struct {
	ExpenseID  string  `json:"expense_id"`
	Department string  `json:"department"`
	Amount     float64 `json:"amount"`
	FromStatus string  `json:"from_status"`
	ToStatus   string  `json:"to_status"`
	ChangedBy  string  `json:"changed_by"`
}

// ReceiptIssuedEvent is the payload for receipt issuance.
type ReceiptIssuedEvent struct {
	ReceiptID  string  `json:"receipt_id"`
	PaymentID  string  `json:"payment_id"`
	StudentID  string  `json:"student_id"`
	AmountPaid float64 `json:"amount_paid"`
	IssuedBy   string  `json:"issued_by"`
}
