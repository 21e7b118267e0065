package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/events"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/validator"
)

// ServiceManagerConfig holds the dependencies shared by every service.
type ServiceManagerConfig struct {
	Repository repositories.Repository
	Tokens     *TokenManager
	Publisher  events.EventPublisher
	Logger     *slog.Logger
	Validator  *validator.Validator
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	config ServiceManagerConfig

	authService      AuthService
	paymentService   PaymentService
	expenseService   ExpenseService
	receiptService   ReceiptService
	projectService   ProjectService
	dashboardService DashboardService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager; Initialize must be called
// before any getter.
func NewServiceManager(config ServiceManagerConfig) ServiceManager {
	return &serviceManager{config: config}
}

// Initialize builds all services over the shared dependencies.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.config.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.config.Tokens == nil {
		return fmt.Errorf("token manager is required")
	}

	repo := sm.config.Repository
	logger := sm.config.Logger
	v := sm.config.Validator
	pub := sm.config.Publisher

	sm.authService = NewAuthService(repo, sm.config.Tokens, pub, logger, v)
	sm.paymentService = NewPaymentService(repo, pub, logger, v)
	sm.expenseService = NewExpenseService(repo, pub, logger, v)
	sm.receiptService = NewReceiptService(repo, pub, logger, v)
	sm.projectService = NewProjectService(repo, pub, logger, v)
	sm.dashboardService = NewDashboardService(repo, logger)

	sm.initialized = true
	logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Payment() PaymentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.paymentService
}

func (sm *serviceManager) Expense() ExpenseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.expenseService
}

func (sm *serviceManager) Receipt() ReceiptService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.receiptService
}

func (sm *serviceManager) Project() ProjectService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.projectService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

// HealthCheck verifies the backing repository is reachable.
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.config.Repository.Ping(ctx)
}

// Shutdown closes the event publisher; repository connections are owned by
// the repository manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.config.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.config.Logger.Info("Service manager shut down")

	return nil
}
