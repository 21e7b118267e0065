package repositories

import (
	"context"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

// ProjectRepository persists supervised projects and their student
// assignments.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error

	// GetByID loads the project with its supervisor and assigned students.
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error

	// AddStudent appends a student to the project's assignment set.
	AddStudent(ctx context.Context, project *models.Project, student *models.User) error

	List(ctx context.Context, filters ProjectFilters) ([]*models.Project, int64, error)

	// IDsBySupervisor returns the ids of all projects owned by a supervisor,
	// used to scope report listings.
	IDsBySupervisor(ctx context.Context, supervisorID string) ([]string, error)
}

// ProjectReportRepository persists student report submissions.
type ProjectReportRepository interface {
	Create(ctx context.Context, report *models.ProjectReport) error

	// GetByID loads the report with its project (including the project's
	// supervisor reference).
	GetByID(ctx context.Context, id string) (*models.ProjectReport, error)
	Update(ctx context.Context, report *models.ProjectReport) error

	List(ctx context.Context, filters ReportFilters) ([]*models.ProjectReport, int64, error)
}
