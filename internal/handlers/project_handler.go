package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/services"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/utils"
)

type ProjectHandler struct {
	BaseHandler
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService, logger utils.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    NewBaseHandler(logger),
		projectService: projectService,
	}
}

// CreateProject creates a project. The caller becomes its supervisor.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Creating project", "title", req.Title)

	project, err := h.projectService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject retrieves a project by ID.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Getting project", "project_id", id)

	project, err := h.projectService.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects lists projects with optional filters.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	query := services.ListProjectsQuery{}
	query.Page, query.Limit = pageQuery(c)
	if supervisorID := c.Query("supervisor_id"); supervisorID != "" {
		query.SupervisorID = &supervisorID
	}
	if department := c.Query("department"); department != "" {
		query.Department = &department
	}
	if status := c.Query("status"); status != "" {
		s := models.ProjectStatus(status)
		query.Status = &s
	}

	h.LogRequest(c, "Listing projects")

	resp, err := h.projectService.List(c.Request.Context(), query, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AssignStudent puts a student on a project.
func (h *ProjectHandler) AssignStudent(c *gin.Context) {
	var req services.AssignStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Assigning student to project", "project_id", req.ProjectID, "student_id", req.StudentID)

	project, err := h.projectService.AssignStudent(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// SubmitReport submits a progress report for a project.
func (h *ProjectHandler) SubmitReport(c *gin.Context) {
	var req services.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Submitting project report", "project_id", req.ProjectID)

	report, err := h.projectService.SubmitReport(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ReviewReport records the supervisor's verdict on a report.
func (h *ProjectHandler) ReviewReport(c *gin.Context) {
	var req services.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Reviewing project report", "report_id", req.ReportID, "status", req.Status)

	report, err := h.projectService.ReviewReport(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListReports lists reports visible to the caller.
func (h *ProjectHandler) ListReports(c *gin.Context) {
	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	query := services.ListReportsQuery{}
	query.Page, query.Limit = pageQuery(c)
	if projectID := c.Query("project_id"); projectID != "" {
		query.ProjectID = &projectID
	}
	if status := c.Query("status"); status != "" {
		s := models.ReportStatus(status)
		query.Status = &s
	}

	h.LogRequest(c, "Listing project reports")

	resp, err := h.projectService.ListReports(c.Request.Context(), query, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
