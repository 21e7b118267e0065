package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "Pending"
	ExpenseApproved ExpenseStatus = "Approved"
	ExpenseRejected ExpenseStatus = "Rejected"
	ExpensePaid     ExpenseStatus = "Paid"
)

func ValidExpenseStatus(s ExpenseStatus) bool {
	switch s {
	case ExpensePending, ExpenseApproved, ExpenseRejected, ExpensePaid:
		return true
	}
	return false
}

// Expense is a departmental spending request. ApprovedBy and ApprovedDate are
// set only on an Approved transition; PaymentDate and ReceiptRef only on Paid.
type Expense struct {
	ID          string        `json:"id" gorm:"primaryKey;size:255"`
	Department  string        `json:"department" gorm:"not null;index;size:100"`
	Amount      float64       `json:"amount" gorm:"not null" validate:"min=0"`
	Description string        `json:"description" gorm:"not null;type:text"`
	Status      ExpenseStatus `json:"status" gorm:"default:Pending;index;size:20"`

	RequestedBy  string     `json:"requested_by" gorm:"not null;index;size:255"`
	ApprovedBy   *string    `json:"approved_by,omitempty" gorm:"size:255"`
	ApprovedDate *time.Time `json:"approved_date,omitempty"`
	PaymentDate  *time.Time `json:"payment_date,omitempty"`
	ReceiptRef   *string    `json:"receipt_ref,omitempty" gorm:"size:100"`

	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequestedBy"`
	Approver  *User `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
