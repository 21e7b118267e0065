package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleBursary UserRole = "bursary"
	RoleAdmin   UserRole = "admin"
)

// ValidRole reports whether r is one of the closed set of roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleBursary, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string   `json:"id" gorm:"primaryKey;size:255"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password  string   `json:"-" gorm:"not null;size:255"`
	FirstName string   `json:"first_name" gorm:"not null;size:100" validate:"required"`
	LastName  string   `json:"last_name" gorm:"not null;size:100" validate:"required"`
	Role      UserRole `json:"role" gorm:"not null;size:20;index" validate:"required,oneof=student bursary admin"`
	IsActive  bool     `json:"is_active" gorm:"default:true"`

	// MatricNo is required for students and unique across all users.
	MatricNo *string `json:"matric_no,omitempty" gorm:"uniqueIndex;size:50"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// FullName returns the display name snapshotted onto financial records.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail applies the canonical form used for lookups and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
