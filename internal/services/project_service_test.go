package services

import (
	"context"
	"testing"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
)

func TestProjectService_AssignStudent(t *testing.T) {
	repo := newFakeRepository()
	manager, _ := newTestManager(t, repo)
	projects := manager.Project()
	ctx := context.Background()

	supervisor := seedUser(t, repo, models.RoleBursary, "supervisor@unicross.edu.ng", "pass-word", nil)
	other := seedUser(t, repo, models.RoleBursary, "other@unicross.edu.ng", "pass-word", nil)
	admin := seedUser(t, repo, models.RoleAdmin, "admin@unicross.edu.ng", "pass-word", nil)
	ada := seedUser(t, repo, models.RoleStudent, "ada@unicross.edu.ng", "pass-word", strPtr("UNC/2024/001"))
	ben := seedUser(t, repo, models.RoleStudent, "ben@unicross.edu.ng", "pass-word", strPtr("UNC/2024/002"))
	chi := seedUser(t, repo, models.RoleStudent, "chi@unicross.edu.ng", "pass-word", strPtr("UNC/2024/003"))

	project, err := projects.Create(ctx, &CreateProjectRequest{
		Title:       "Fee reconciliation audit",
		Description: "Cross-check receipts against ledger entries",
		Department:  "Bursary",
		MaxStudents: 2,
	}, supervisor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if project.SupervisorID != supervisor.ID {
		t.Fatalf("SupervisorID = %s, want creator %s", project.SupervisorID, supervisor.ID)
	}
	if project.Status != models.ProjectOpen {
		t.Fatalf("Status = %s, want Open", project.Status)
	}

	t.Run("non-supervising staff cannot assign", func(t *testing.T) {
		_, err := projects.AssignStudent(ctx, &AssignStudentRequest{
			ProjectID: project.ID,
			StudentID: ada.ID,
		}, other)
		if !IsForbidden(err) {
			t.Errorf("expected forbidden error, got %v", err)
		}
	})

	t.Run("only student accounts can be assigned", func(t *testing.T) {
		_, err := projects.AssignStudent(ctx, &AssignStudentRequest{
			ProjectID: project.ID,
			StudentID: other.ID,
		}, supervisor)
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	})

	t.Run("supervisor assigns up to capacity", func(t *testing.T) {
		if _, err := projects.AssignStudent(ctx, &AssignStudentRequest{ProjectID: project.ID, StudentID: ada.ID}, supervisor); err != nil {
			t.Fatalf("AssignStudent() error = %v", err)
		}

		_, err := projects.AssignStudent(ctx, &AssignStudentRequest{ProjectID: project.ID, StudentID: ada.ID}, supervisor)
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input for duplicate assignment, got %v", err)
		}

		// Not even an admin assigns to a project they do not supervise.
		if _, err := projects.AssignStudent(ctx, &AssignStudentRequest{ProjectID: project.ID, StudentID: ben.ID}, admin); !IsForbidden(err) {
			t.Errorf("expected forbidden for non-supervising admin, got %v", err)
		}

		full, err := projects.AssignStudent(ctx, &AssignStudentRequest{ProjectID: project.ID, StudentID: ben.ID}, supervisor)
		if err != nil {
			t.Fatalf("AssignStudent() error = %v", err)
		}
		if full.Status != models.ProjectClosed {
			t.Errorf("Status = %s, want Closed at capacity", full.Status)
		}
		if len(full.AssignedStudents) != full.MaxStudents {
			t.Errorf("assigned %d, want %d", len(full.AssignedStudents), full.MaxStudents)
		}
	})

	t.Run("assignment beyond capacity is rejected", func(t *testing.T) {
		_, err := projects.AssignStudent(ctx, &AssignStudentRequest{ProjectID: project.ID, StudentID: chi.ID}, supervisor)
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input error, got %v", err)
		}

		stored, _ := projects.GetByID(ctx, project.ID, supervisor)
		if len(stored.AssignedStudents) > stored.MaxStudents {
			t.Errorf("assigned count %d exceeded cap %d", len(stored.AssignedStudents), stored.MaxStudents)
		}
	})
}

func TestProjectService_Reports(t *testing.T) {
	repo := newFakeRepository()
	manager, _ := newTestManager(t, repo)
	projects := manager.Project()
	ctx := context.Background()

	supervisor := seedUser(t, repo, models.RoleBursary, "supervisor@unicross.edu.ng", "pass-word", nil)
	outsider := seedUser(t, repo, models.RoleAdmin, "outsider@unicross.edu.ng", "pass-word", nil)
	ada := seedUser(t, repo, models.RoleStudent, "ada@unicross.edu.ng", "pass-word", strPtr("UNC/2024/001"))
	ben := seedUser(t, repo, models.RoleStudent, "ben@unicross.edu.ng", "pass-word", strPtr("UNC/2024/002"))

	project, err := projects.Create(ctx, &CreateProjectRequest{
		Title:       "Bursary digitization",
		Description: "Scan and index archived receipts",
		Department:  "Bursary",
		MaxStudents: 2,
	}, supervisor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := projects.AssignStudent(ctx, &AssignStudentRequest{ProjectID: project.ID, StudentID: ada.ID}, supervisor); err != nil {
		t.Fatalf("AssignStudent() error = %v", err)
	}

	t.Run("unassigned student cannot submit", func(t *testing.T) {
		_, err := projects.SubmitReport(ctx, &SubmitReportRequest{
			ProjectID: project.ID,
			Title:     "week 1",
			Content:   "progress notes",
		}, ben)
		if !IsForbidden(err) {
			t.Errorf("expected forbidden error, got %v", err)
		}
	})

	t.Run("staff cannot submit reports", func(t *testing.T) {
		_, err := projects.SubmitReport(ctx, &SubmitReportRequest{
			ProjectID: project.ID,
			Title:     "week 1",
			Content:   "progress notes",
		}, supervisor)
		if !IsForbidden(err) {
			t.Errorf("expected forbidden error, got %v", err)
		}
	})

	var reportID string
	t.Run("assigned student submits", func(t *testing.T) {
		report, err := projects.SubmitReport(ctx, &SubmitReportRequest{
			ProjectID: project.ID,
			Title:     "week 1",
			Content:   "scanned 1200 receipts",
		}, ada)
		if err != nil {
			t.Fatalf("SubmitReport() error = %v", err)
		}
		if report.Status != models.ReportSubmitted {
			t.Errorf("Status = %s, want Submitted", report.Status)
		}
		if report.SubmissionDate.IsZero() {
			t.Error("SubmissionDate not set")
		}
		reportID = report.ID
	})

	t.Run("only the supervising staff member reviews", func(t *testing.T) {
		_, err := projects.ReviewReport(ctx, &ReviewReportRequest{
			ReportID: reportID,
			Status:   models.ReportApproved,
		}, outsider)
		if !IsForbidden(err) {
			t.Errorf("expected forbidden error even for admin, got %v", err)
		}

		stored := repo.store.reports[reportID]
		if stored.Status != models.ReportSubmitted || stored.ReviewDate != nil {
			t.Error("rejected review attempt must leave the report unchanged")
		}
	})

	t.Run("supervisor review stamps date and feedback", func(t *testing.T) {
		report, err := projects.ReviewReport(ctx, &ReviewReportRequest{
			ReportID: reportID,
			Status:   models.ReportReviewed,
			Feedback: strPtr("good volume, verify ledger codes"),
		}, supervisor)
		if err != nil {
			t.Fatalf("ReviewReport() error = %v", err)
		}
		if report.ReviewDate == nil {
			t.Error("ReviewDate not stamped")
		}
		if report.Feedback == nil || *report.Feedback != "good volume, verify ledger codes" {
			t.Error("Feedback not recorded")
		}
	})

	t.Run("Reviewed can still be Approved", func(t *testing.T) {
		report, err := projects.ReviewReport(ctx, &ReviewReportRequest{
			ReportID: reportID,
			Status:   models.ReportApproved,
		}, supervisor)
		if err != nil {
			t.Fatalf("ReviewReport() error = %v", err)
		}
		if report.Status != models.ReportApproved {
			t.Errorf("Status = %s, want Approved", report.Status)
		}
	})

	t.Run("Approved is terminal", func(t *testing.T) {
		_, err := projects.ReviewReport(ctx, &ReviewReportRequest{
			ReportID: reportID,
			Status:   models.ReportRejected,
		}, supervisor)
		if !IsInvalidInput(err) {
			t.Errorf("expected invalid input error, got %v", err)
		}
	})
}

func TestProjectService_ListReportsScoping(t *testing.T) {
	repo := newFakeRepository()
	manager, _ := newTestManager(t, repo)
	projects := manager.Project()
	ctx := context.Background()

	supA := seedUser(t, repo, models.RoleBursary, "supa@unicross.edu.ng", "pass-word", nil)
	supB := seedUser(t, repo, models.RoleBursary, "supb@unicross.edu.ng", "pass-word", nil)
	admin := seedUser(t, repo, models.RoleAdmin, "admin@unicross.edu.ng", "pass-word", nil)
	ada := seedUser(t, repo, models.RoleStudent, "ada@unicross.edu.ng", "pass-word", strPtr("UNC/2024/001"))
	ben := seedUser(t, repo, models.RoleStudent, "ben@unicross.edu.ng", "pass-word", strPtr("UNC/2024/002"))

	submit := func(t *testing.T, sup *models.User, student *models.User, title string) {
		t.Helper()
		p, err := projects.Create(ctx, &CreateProjectRequest{
			Title:       title,
			Description: "desc",
			Department:  "Bursary",
		}, sup)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := projects.AssignStudent(ctx, &AssignStudentRequest{ProjectID: p.ID, StudentID: student.ID}, sup); err != nil {
			t.Fatalf("AssignStudent() error = %v", err)
		}
		if _, err := projects.SubmitReport(ctx, &SubmitReportRequest{ProjectID: p.ID, Title: title + " report", Content: "content"}, student); err != nil {
			t.Fatalf("SubmitReport() error = %v", err)
		}
	}

	submit(t, supA, ada, "project A")
	submit(t, supB, ben, "project B")

	t.Run("students see only their own reports", func(t *testing.T) {
		resp, err := projects.ListReports(ctx, ListReportsQuery{}, ada)
		if err != nil {
			t.Fatalf("ListReports() error = %v", err)
		}
		if len(resp.Reports) != 1 || resp.Reports[0].StudentID != ada.ID {
			t.Errorf("student scoping failed, got %d reports", len(resp.Reports))
		}
	})

	t.Run("supervisors see only their projects' reports", func(t *testing.T) {
		resp, err := projects.ListReports(ctx, ListReportsQuery{}, supA)
		if err != nil {
			t.Fatalf("ListReports() error = %v", err)
		}
		if len(resp.Reports) != 1 {
			t.Fatalf("supervisor scoping failed, got %d reports", len(resp.Reports))
		}
		if resp.Reports[0].StudentID != ada.ID {
			t.Error("supervisor saw a report from another supervisor's project")
		}
	})

	t.Run("supervisor with no projects sees an empty page", func(t *testing.T) {
		lonely := seedUser(t, repo, models.RoleBursary, "lonely@unicross.edu.ng", "pass-word", nil)
		resp, err := projects.ListReports(ctx, ListReportsQuery{}, lonely)
		if err != nil {
			t.Fatalf("ListReports() error = %v", err)
		}
		if len(resp.Reports) != 0 {
			t.Errorf("got %d reports, want 0", len(resp.Reports))
		}
	})

	t.Run("admins see everything", func(t *testing.T) {
		resp, err := projects.ListReports(ctx, ListReportsQuery{}, admin)
		if err != nil {
			t.Fatalf("ListReports() error = %v", err)
		}
		if len(resp.Reports) != 2 {
			t.Errorf("got %d reports, want 2", len(resp.Reports))
		}
	})
}
