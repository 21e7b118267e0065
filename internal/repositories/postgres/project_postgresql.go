package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectPostgreSQL(db *gorm.DB) repositories.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return handleDBError(err, "create project")
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Preload("AssignedStudents").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, handleDBError(err, "get project by id")
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return handleDBError(err, "update project")
	}
	return nil
}

func (r *projectRepository) AddStudent(ctx context.Context, project *models.Project, student *models.User) error {
	err := r.db.WithContext(ctx).
		Model(project).
		Association("AssignedStudents").
		Append(student)
	if err != nil {
		return handleDBError(err, "assign student to project")
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Project{})
	if filters.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", *filters.SupervisorID)
	}
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count projects")
	}

	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	err := query.
		Preload("Supervisor").
		Preload("AssignedStudents").
		Find(&projects).Error
	if err != nil {
		return nil, 0, handleDBError(err, "list projects")
	}

	return projects, total, nil
}

func (r *projectRepository) IDsBySupervisor(ctx context.Context, supervisorID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("supervisor_id = ?", supervisorID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, handleDBError(err, "list project ids by supervisor")
	}
	return ids, nil
}

type projectReportRepository struct {
	db *gorm.DB
}

func NewProjectReportPostgreSQL(db *gorm.DB) repositories.ProjectReportRepository {
	return &projectReportRepository{db: db}
}

func (r *projectReportRepository) Create(ctx context.Context, report *models.ProjectReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return handleDBError(err, "create project report")
	}
	return nil
}

func (r *projectReportRepository) GetByID(ctx context.Context, id string) (*models.ProjectReport, error) {
	var report models.ProjectReport
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Student").
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, handleDBError(err, "get project report by id")
	}
	return &report, nil
}

func (r *projectReportRepository) Update(ctx context.Context, report *models.ProjectReport) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		return handleDBError(err, "update project report")
	}
	return nil
}

func (r *projectReportRepository) List(ctx context.Context, filters repositories.ReportFilters) ([]*models.ProjectReport, int64, error) {
	var reports []*models.ProjectReport
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ProjectReport{})
	if filters.ProjectID != nil {
		query = query.Where("project_id = ?", *filters.ProjectID)
	}
	if len(filters.ProjectIDs) > 0 {
		query = query.Where("project_id IN ?", filters.ProjectIDs)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count project reports")
	}

	query = applyPagination(query.Order("submission_date DESC"), filters.Limit, filters.Offset)
	if err := query.Preload("Project").Find(&reports).Error; err != nil {
		return nil, 0, handleDBError(err, "list project reports")
	}

	return reports, total, nil
}
