package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectOpen      ProjectStatus = "Open"
	ProjectClosed    ProjectStatus = "Closed"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectCancelled ProjectStatus = "Cancelled"
)

type ReportStatus string

const (
	ReportSubmitted ReportStatus = "Submitted"
	ReportReviewed  ReportStatus = "Reviewed"
	ReportApproved  ReportStatus = "Approved"
	ReportRejected  ReportStatus = "Rejected"
)

func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportSubmitted, ReportReviewed, ReportApproved, ReportRejected:
		return true
	}
	return false
}

// Project is a supervised work unit. AssignedStudents never exceeds
// MaxStudents; the project flips to Closed when the cap is reached.
type Project struct {
	ID           string        `json:"id" gorm:"primaryKey;size:255"`
	Title        string        `json:"title" gorm:"not null;size:200;index" validate:"required,max=200"`
	Description  string        `json:"description" gorm:"not null;type:text" validate:"required"`
	SupervisorID string        `json:"supervisor_id" gorm:"not null;index;size:255"`
	Department   string        `json:"department" gorm:"not null;index;size:100"`
	MaxStudents  int           `json:"max_students" gorm:"default:1" validate:"min=1"`
	Status       ProjectStatus `json:"status" gorm:"default:Open;index;size:20"`

	Supervisor       *User  `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID"`
	AssignedStudents []User `json:"assigned_students" gorm:"many2many:project_assignments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasStudent reports whether the student is already assigned.
func (p *Project) HasStudent(studentID string) bool {
	for _, s := range p.AssignedStudents {
		if s.ID == studentID {
			return true
		}
	}
	return false
}

// AtCapacity reports whether the assignment cap has been reached.
func (p *Project) AtCapacity() bool {
	return len(p.AssignedStudents) >= p.MaxStudents
}

// ProjectReport is a student submission against a project. The student must
// be assigned to the project at submission time; only the project's own
// supervisor may review it.
type ProjectReport struct {
	ID            string       `json:"id" gorm:"primaryKey;size:255"`
	ProjectID     string       `json:"project_id" gorm:"not null;index;size:255"`
	StudentID     string       `json:"student_id" gorm:"not null;index;size:255"`
	Title         string       `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Content       string       `json:"content" gorm:"not null;type:text" validate:"required"`
	AttachmentURL *string      `json:"attachment_url,omitempty" gorm:"size:500"`
	Status        ReportStatus `json:"status" gorm:"default:Submitted;index;size:20"`
	Feedback      *string      `json:"feedback,omitempty" gorm:"type:text"`

	SubmissionDate time.Time  `json:"submission_date" gorm:"not null;index"`
	ReviewDate     *time.Time `json:"review_date,omitempty"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectReport) TableName() string {
	return "project_reports"
}

func (r *ProjectReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SubmissionDate.IsZero() {
		r.SubmissionDate = time.Now()
	}
	return nil
}
