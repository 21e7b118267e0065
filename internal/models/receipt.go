package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptStatus string

const (
	ReceiptPaid      ReceiptStatus = "Paid"
	ReceiptRefunded  ReceiptStatus = "Refunded"
	ReceiptCancelled ReceiptStatus = "Cancelled"
)

// Receipt is the immutable proof of a settled Payment. ReceiptID is
// caller-supplied and globally unique; issuing a receipt forces the linked
// payment into Paid as part of the same transaction.
type Receipt struct {
	ID        string `json:"id" gorm:"primaryKey;size:255"`
	PaymentID string `json:"payment_id" gorm:"not null;index;size:255"`
	ReceiptID string `json:"receipt_id" gorm:"uniqueIndex;not null;size:100"`

	// Snapshots taken from the payment and issuer at issue time.
	StudentID     string        `json:"student_id" gorm:"not null;index;size:255"`
	StudentName   string        `json:"student_name" gorm:"not null;size:200"`
	MatricNo      string        `json:"matric_no" gorm:"not null;index;size:50"`
	AmountPaid    float64       `json:"amount_paid" gorm:"not null" validate:"min=0"`
	Description   string        `json:"description" gorm:"not null;type:text"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null;size:20"`

	Status     ReceiptStatus `json:"status" gorm:"default:Paid;size:20"`
	IssuedDate time.Time     `json:"issued_date" gorm:"not null;index"`
	IssuedBy   string        `json:"issued_by" gorm:"not null;size:255"`

	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
	Issuer  *User    `json:"issuer,omitempty" gorm:"foreignKey:IssuedBy"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Receipt) TableName() string {
	return "receipts"
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.IssuedDate.IsZero() {
		r.IssuedDate = time.Now()
	}
	return nil
}
