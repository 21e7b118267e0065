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

type expenseService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewExpenseService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ExpenseService {
	return &expenseService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *expenseService) Create(ctx context.Context, req *CreateExpenseRequest, actor *models.User) (*models.Expense, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	requester, err := s.repo.User().GetByID(ctx, req.RequestedBy)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("requesting user")
		}
		return nil, NewInternalError("failed to look up requester", err)
	}

	expense := &models.Expense{
		Department:  req.Department,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      models.ExpensePending,
		RequestedBy: requester.ID,
	}

	if err := s.repo.Expense().Create(ctx, expense); err != nil {
		return nil, NewInternalError("failed to create expense", err)
	}

	s.logger.Info("Expense created",
		"expense_id", expense.ID,
		"department", expense.Department,
		"amount", expense.Amount,
		"created_by", actor.ID)
	s.publish(ctx, events.NewEvent(events.EventExpenseCreated, events.ExpenseStatusChangedEvent{
		ExpenseID:  expense.ID,
		Department: expense.Department,
		Amount:     expense.Amount,
		ToStatus:   string(expense.Status),
		ChangedBy:  actor.ID,
	}))

	return expense, nil
}

func (s *expenseService) GetByID(ctx context.Context, id string, actor *models.User) (*models.Expense, error) {
	expense, err := s.repo.Expense().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("expense")
		}
		return nil, NewInternalError("failed to get expense", err)
	}
	return expense, nil
}

func (s *expenseService) List(ctx context.Context, query ListExpensesQuery, actor *models.User) (*ExpenseListResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	filters := repositories.ExpenseFilters{
		Status:      query.Status,
		Department:  query.Department,
		RequestedBy: query.RequestedBy,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	expenses, total, err := s.repo.Expense().List(ctx, filters)
	if err != nil {
		return nil, NewInternalError("failed to list expenses", err)
	}

	return &ExpenseListResponse{
		Expenses:   expenses,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (s *expenseService) UpdateStatus(ctx context.Context, req *UpdateExpenseStatusRequest, actor *models.User) (*models.Expense, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	expense, err := s.repo.Expense().GetByID(ctx, req.ExpenseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("expense")
		}
		return nil, NewInternalError("failed to get expense", err)
	}

	from := expense.Status
	if errs := s.validator.GetBusinessValidator().ValidateExpenseTransition(from, req.Status); len(errs) > 0 {
		return nil, NewInvalidInputError(errs.Error())
	}

	expense.Status = req.Status
	now := time.Now()
	switch req.Status {
	case models.ExpenseApproved:
		// Approval metadata is stamped only when an approver is named.
		if req.ApprovedBy != nil && *req.ApprovedBy != "" {
			expense.ApprovedBy = req.ApprovedBy
			expense.ApprovedDate = &now
		}
	case models.ExpensePaid:
		if req.ReceiptRef != nil && *req.ReceiptRef != "" {
			expense.PaymentDate = &now
			expense.ReceiptRef = req.ReceiptRef
		}
	}

	if err := s.repo.Expense().Update(ctx, expense); err != nil {
		return nil, NewInternalError("failed to update expense", err)
	}

	s.logger.Info("Expense status changed",
		"expense_id", expense.ID,
		"from", from,
		"to", expense.Status,
		"changed_by", actor.ID)
	s.publish(ctx, events.NewEvent(events.EventExpenseStatusChanged, events.ExpenseStatusChangedEvent{
		ExpenseID:  expense.ID,
		Department: expense.Department,
		Amount:     expense.Amount,
		FromStatus: string(from),
		ToStatus:   string(expense.Status),
		ChangedBy:  actor.ID,
	}))

	return expense, nil
}

func (s *expenseService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
