package repositories

import "context"

// Repository aggregates all entity repositories behind one interface so
// services can run several writes inside a single transaction.
type Repository interface {
	User() UserRepository
	Payment() PaymentRepository
	Expense() ExpenseRepository
	Receipt() ReceiptRepository
	Project() ProjectRepository
	ProjectReport() ProjectReportRepository
	Dashboard() DashboardRepository

	// WithTransaction runs fn against a transaction-scoped Repository.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
