package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

type PaymentMethod string

const (
	MethodPaystack     PaymentMethod = "Paystack"
	MethodFlutterwave  PaymentMethod = "Flutterwave"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCash         PaymentMethod = "Cash"
	MethodOnline       PaymentMethod = "Online"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodPaystack, MethodFlutterwave, MethodBankTransfer, MethodCash, MethodOnline:
		return true
	}
	return false
}

// Payment is a student's financial obligation. MatricNo and StudentName are
// snapshots taken from the owning User at creation time; a later profile
// change does not rewrite past payments.
type Payment struct {
	ID          string  `json:"id" gorm:"primaryKey;size:255"`
	StudentID   string  `json:"student_id" gorm:"not null;index;size:255"`
	MatricNo    string  `json:"matric_no" gorm:"not null;index;size:50"`
	StudentName string  `json:"student_name" gorm:"not null;size:200"`
	Amount      float64 `json:"amount" gorm:"not null" validate:"min=0"`
	Description string  `json:"description" gorm:"not null;type:text"`

	PaymentMethod  PaymentMethod  `json:"payment_method" gorm:"not null;size:20"`
	Status         PaymentStatus  `json:"status" gorm:"default:Pending;index;size:20"`
	TransactionRef *string        `json:"transaction_ref,omitempty" gorm:"size:100"`
	PaymentDate    *time.Time     `json:"payment_date,omitempty" gorm:"index"`
	DueDate        datatypes.Date `json:"due_date" gorm:"not null;index"`

	Student *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
