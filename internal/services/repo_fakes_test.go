package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/events"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/validator"
)

// fakeStore is shared in-memory state for all fake sub-repositories.
type fakeStore struct {
	users    map[string]*models.User
	payments map[string]*models.Payment
	expenses map[string]*models.Expense
	receipts map[string]*models.Receipt
	projects map[string]*models.Project
	reports  map[string]*models.ProjectReport
}

type fakeRepository struct {
	store *fakeStore
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{store: &fakeStore{
		users:    make(map[string]*models.User),
		payments: make(map[string]*models.Payment),
		expenses: make(map[string]*models.Expense),
		receipts: make(map[string]*models.Receipt),
		projects: make(map[string]*models.Project),
		reports:  make(map[string]*models.ProjectReport),
	}}
}

func (r *fakeRepository) User() repositories.UserRepository       { return &fakeUserRepo{r.store} }
func (r *fakeRepository) Payment() repositories.PaymentRepository { return &fakePaymentRepo{r.store} }
func (r *fakeRepository) Expense() repositories.ExpenseRepository { return &fakeExpenseRepo{r.store} }
func (r *fakeRepository) Receipt() repositories.ReceiptRepository { return &fakeReceiptRepo{r.store} }
func (r *fakeRepository) Project() repositories.ProjectRepository { return &fakeProjectRepo{r.store} }
func (r *fakeRepository) ProjectReport() repositories.ProjectReportRepository {
	return &fakeReportRepo{r.store}
}
func (r *fakeRepository) Dashboard() repositories.DashboardRepository {
	return &fakeDashboardRepo{r.store}
}

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct{ s *fakeStore }

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = models.NormalizeEmail(user.Email)
	for _, u := range f.s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
		if u.MatricNo != nil && user.MatricNo != nil && *u.MatricNo == *user.MatricNo {
			return repositories.ErrDuplicate
		}
	}
	f.s.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.s.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	for _, u := range f.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetByMatricNo(ctx context.Context, matricNo string) (*models.User, error) {
	for _, u := range f.s.users {
		if u.MatricNo != nil && *u.MatricNo == matricNo {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.s.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.s.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByMatricNo(ctx context.Context, matricNo string) (bool, error) {
	_, err := f.GetByMatricNo(ctx, matricNo)
	if err == nil {
		return true, nil
	}
	return false, nil
}

// ===== PAYMENTS =====

type fakePaymentRepo struct{ s *fakeStore }

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	f.s.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	if p, ok := f.s.payments[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	f.s.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	var out []*models.Payment
	for _, p := range f.s.payments {
		if filters.StudentID != nil && p.StudentID != *filters.StudentID {
			continue
		}
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// ===== EXPENSES =====

type fakeExpenseRepo struct{ s *fakeStore }

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	f.s.expenses[expense.ID] = expense
	return nil
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	if e, ok := f.s.expenses[id]; ok {
		return e, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeExpenseRepo) Update(ctx context.Context, expense *models.Expense) error {
	f.s.expenses[expense.ID] = expense
	return nil
}

func (f *fakeExpenseRepo) List(ctx context.Context, filters repositories.ExpenseFilters) ([]*models.Expense, int64, error) {
	var out []*models.Expense
	for _, e := range f.s.expenses {
		if filters.Status != nil && e.Status != *filters.Status {
			continue
		}
		if filters.Department != nil && e.Department != *filters.Department {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

// ===== RECEIPTS =====

type fakeReceiptRepo struct{ s *fakeStore }

func (f *fakeReceiptRepo) Create(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.NewString()
	}
	for _, r := range f.s.receipts {
		if r.ReceiptID == receipt.ReceiptID {
			return repositories.ErrDuplicate
		}
	}
	f.s.receipts[receipt.ID] = receipt
	return nil
}

func (f *fakeReceiptRepo) GetByReceiptID(ctx context.Context, receiptID string) (*models.Receipt, error) {
	for _, r := range f.s.receipts {
		if r.ReceiptID == receiptID {
			return r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReceiptRepo) ExistsByReceiptID(ctx context.Context, receiptID string) (bool, error) {
	_, err := f.GetByReceiptID(ctx, receiptID)
	return err == nil, nil
}

func (f *fakeReceiptRepo) List(ctx context.Context, filters repositories.ReceiptFilters) ([]*models.Receipt, int64, error) {
	var out []*models.Receipt
	for _, r := range f.s.receipts {
		if filters.StudentID != nil && r.StudentID != *filters.StudentID {
			continue
		}
		if filters.ReceiptID != nil && r.ReceiptID != *filters.ReceiptID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

// ===== PROJECTS =====

type fakeProjectRepo struct{ s *fakeStore }

func (f *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	f.s.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if p, ok := f.s.projects[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	f.s.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) AddStudent(ctx context.Context, project *models.Project, student *models.User) error {
	stored := f.s.projects[project.ID]
	stored.AssignedStudents = append(stored.AssignedStudents, *student)
	return nil
}

func (f *fakeProjectRepo) List(ctx context.Context, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	var out []*models.Project
	for _, p := range f.s.projects {
		if filters.SupervisorID != nil && p.SupervisorID != *filters.SupervisorID {
			continue
		}
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectRepo) IDsBySupervisor(ctx context.Context, supervisorID string) ([]string, error) {
	var ids []string
	for _, p := range f.s.projects {
		if p.SupervisorID == supervisorID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// ===== PROJECT REPORTS =====

type fakeReportRepo struct{ s *fakeStore }

func (f *fakeReportRepo) Create(ctx context.Context, report *models.ProjectReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	f.s.reports[report.ID] = report
	return nil
}

func (f *fakeReportRepo) GetByID(ctx context.Context, id string) (*models.ProjectReport, error) {
	report, ok := f.s.reports[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if p, ok := f.s.projects[report.ProjectID]; ok {
		report.Project = p
	}
	return report, nil
}

func (f *fakeReportRepo) Update(ctx context.Context, report *models.ProjectReport) error {
	f.s.reports[report.ID] = report
	return nil
}

func (f *fakeReportRepo) List(ctx context.Context, filters repositories.ReportFilters) ([]*models.ProjectReport, int64, error) {
	var out []*models.ProjectReport
	for _, r := range f.s.reports {
		if filters.StudentID != nil && r.StudentID != *filters.StudentID {
			continue
		}
		if filters.Status != nil && r.Status != *filters.Status {
			continue
		}
		if len(filters.ProjectIDs) > 0 && !containsString(filters.ProjectIDs, r.ProjectID) {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// ===== DASHBOARD =====

type fakeDashboardRepo struct{ s *fakeStore }

func (f *fakeDashboardRepo) FinancialStats(ctx context.Context) (*repositories.FinancialStats, error) {
	stats := &repositories.FinancialStats{}
	for _, p := range f.s.payments {
		stats.PaymentCount++
		switch p.Status {
		case models.PaymentPaid:
			stats.TotalCollected += p.Amount
			stats.PaidPaymentCount++
		case models.PaymentPending:
			stats.PendingAmount += p.Amount
		}
	}
	for _, e := range f.s.expenses {
		stats.ExpenseTotal += e.Amount
	}
	stats.ReceiptCount = int64(len(f.s.receipts))
	return stats, nil
}

// ===== TEST HELPERS =====

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedUser(t *testing.T, repo *fakeRepository, role models.UserRole, email, password string, matricNo *string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
		MatricNo:  matricNo,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func strPtr(s string) *string { return &s }

func newTestManager(t *testing.T, repo *fakeRepository) (ServiceManager, *events.MockEventPublisher) {
	t.Helper()

	publisher := events.NewMockEventPublisher(testLogger())
	manager := NewServiceManager(ServiceManagerConfig{
		Repository: repo,
		Tokens:     NewTokenManager("test-secret", "unicross-pay"),
		Publisher:  publisher,
		Logger:     testLogger(),
		Validator:  validator.New(),
	})
	if err := manager.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize service manager: %v", err)
	}
	return manager, publisher
}
