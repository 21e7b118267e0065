package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/events"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/validator"
)

type projectService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProjectService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ProjectService {
	return &projectService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *projectService) Create(ctx context.Context, req *CreateProjectRequest, actor *models.User) (*models.Project, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	maxStudents := req.MaxStudents
	if maxStudents < 1 {
		maxStudents = 1
	}

	// The creating staff member becomes the supervisor.
	project := &models.Project{
		Title:        req.Title,
		Description:  req.Description,
		SupervisorID: actor.ID,
		Department:   req.Department,
		MaxStudents:  maxStudents,
		Status:       models.ProjectOpen,
	}

	if err := s.repo.Project().Create(ctx, project); err != nil {
		return nil, NewInternalError("failed to create project", err)
	}

	s.logger.Info("Project created",
		"project_id", project.ID,
		"supervisor_id", project.SupervisorID,
		"max_students", project.MaxStudents)

	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string, actor *models.User) (*models.Project, error) {
	project, err := s.repo.Project().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("project")
		}
		return nil, NewInternalError("failed to get project", err)
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, query ListProjectsQuery, actor *models.User) (*ProjectListResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	filters := repositories.ProjectFilters{
		SupervisorID: query.SupervisorID,
		Department:   query.Department,
		Status:       query.Status,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	projects, total, err := s.repo.Project().List(ctx, filters)
	if err != nil {
		return nil, NewInternalError("failed to list projects", err)
	}

	return &ProjectListResponse{
		Projects:   projects,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (s *projectService) AssignStudent(ctx context.Context, req *AssignStudentRequest, actor *models.User) (*models.Project, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	project, err := s.repo.Project().GetByID(ctx, req.ProjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("project")
		}
		return nil, NewInternalError("failed to get project", err)
	}

	// Assignment belongs to the supervising staff member alone; admin role
	// does not override project ownership.
	if project.SupervisorID != actor.ID {
		return nil, NewForbiddenError("only the supervising staff member can assign students to this project")
	}

	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student")
		}
		return nil, NewInternalError("failed to look up student", err)
	}
	if student.Role != models.RoleStudent {
		return nil, NewInvalidInputError("only student accounts can be assigned to projects")
	}

	if project.HasStudent(student.ID) {
		return nil, NewInvalidInputError("student is already assigned to this project")
	}
	if project.AtCapacity() {
		return nil, NewInvalidInputError("project has reached its student capacity")
	}

	if err := s.repo.Project().AddStudent(ctx, project, student); err != nil {
		return nil, NewInternalError("failed to assign student", err)
	}
	project.AssignedStudents = append(project.AssignedStudents, *student)

	// Reaching capacity closes the project to further assignment.
	if project.AtCapacity() && project.Status == models.ProjectOpen {
		project.Status = models.ProjectClosed
		if err := s.repo.Project().Update(ctx, project); err != nil {
			return nil, NewInternalError("failed to close full project", err)
		}
	}

	s.logger.Info("Student assigned to project",
		"project_id", project.ID,
		"student_id", student.ID,
		"assigned_by", actor.ID,
		"status", project.Status)

	return project, nil
}

func (s *projectService) SubmitReport(ctx context.Context, req *SubmitReportRequest, actor *models.User) (*models.ProjectReport, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	if actor.Role != models.RoleStudent {
		return nil, NewForbiddenError("only students can submit project reports")
	}

	project, err := s.repo.Project().GetByID(ctx, req.ProjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("project")
		}
		return nil, NewInternalError("failed to get project", err)
	}

	if !project.HasStudent(actor.ID) {
		return nil, NewForbiddenError("you are not assigned to this project")
	}

	report := &models.ProjectReport{
		ProjectID:     project.ID,
		StudentID:     actor.ID,
		Title:         req.Title,
		Content:       req.Content,
		AttachmentURL: req.AttachmentURL,
		Status:        models.ReportSubmitted,
	}

	if err := s.repo.ProjectReport().Create(ctx, report); err != nil {
		return nil, NewInternalError("failed to create report", err)
	}

	s.logger.Info("Project report submitted",
		"report_id", report.ID,
		"project_id", project.ID,
		"student_id", actor.ID)

	return report, nil
}

func (s *projectService) ReviewReport(ctx context.Context, req *ReviewReportRequest, actor *models.User) (*models.ProjectReport, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	report, err := s.repo.ProjectReport().GetByID(ctx, req.ReportID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("report")
		}
		return nil, NewInternalError("failed to get report", err)
	}

	if report.Project == nil {
		return nil, NewInternalError("report has no project loaded", nil)
	}

	// Only the project's own supervisor reviews its reports; an admin role
	// alone is not enough.
	if report.Project.SupervisorID != actor.ID {
		return nil, NewForbiddenError("only the supervising staff member can review this report")
	}

	from := report.Status
	if errs := s.validator.GetBusinessValidator().ValidateReportTransition(from, req.Status); len(errs) > 0 {
		return nil, NewInvalidInputError(errs.Error())
	}

	now := time.Now()
	report.Status = req.Status
	report.ReviewDate = &now
	if req.Feedback != nil && *req.Feedback != "" {
		report.Feedback = req.Feedback
	}

	if err := s.repo.ProjectReport().Update(ctx, report); err != nil {
		return nil, NewInternalError("failed to update report", err)
	}

	s.logger.Info("Project report reviewed",
		"report_id", report.ID,
		"from", from,
		"to", report.Status,
		"reviewed_by", actor.ID)
	s.publish(ctx, events.NewEvent(events.EventReportReviewed, map[string]string{
		"report_id":   report.ID,
		"project_id":  report.ProjectID,
		"student_id":  report.StudentID,
		"from_status": string(from),
		"to_status":   string(report.Status),
		"reviewed_by": actor.ID,
	}))

	return report, nil
}

// ListReports scopes results by role: students see their own submissions,
// non-admin staff see reports for projects they supervise, admins see all.
func (s *projectService) ListReports(ctx context.Context, query ListReportsQuery, actor *models.User) (*ReportListResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	filters := repositories.ReportFilters{
		ProjectID: query.ProjectID,
		Status:    query.Status,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	switch actor.Role {
	case models.RoleStudent:
		filters.StudentID = &actor.ID
	case models.RoleAdmin:
		// Unscoped.
	default:
		ids, err := s.repo.Project().IDsBySupervisor(ctx, actor.ID)
		if err != nil {
			return nil, NewInternalError("failed to scope reports", err)
		}
		if len(ids) == 0 {
			return &ReportListResponse{
				Reports:    []*models.ProjectReport{},
				Pagination: newPagination(page, limit, 0),
			}, nil
		}
		filters.ProjectIDs = ids
	}

	reports, total, err := s.repo.ProjectReport().List(ctx, filters)
	if err != nil {
		return nil, NewInternalError("failed to list reports", err)
	}

	return &ReportListResponse{
		Reports:    reports,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (s *projectService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
