package services

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/events"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/validator"
)

type paymentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPaymentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) PaymentService {
	return &paymentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *paymentService) Create(ctx context.Context, req *CreatePaymentRequest, actor *models.User) (*models.Payment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	// Students may record payments against themselves; staff may record them
	// for any student.
	if actor.Role == models.RoleStudent && req.StudentID != actor.ID {
		return nil, NewForbiddenError("students can only create their own payments")
	}

	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student")
		}
		return nil, NewInternalError("failed to look up student", err)
	}
	if student.Role != models.RoleStudent {
		return nil, NewInvalidInputError("payments can only be created for student accounts")
	}
	if student.MatricNo == nil {
		return nil, NewInvalidInputError("student account has no matric number")
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.MethodOnline
	}

	// Matric number and name are snapshotted so later profile edits do not
	// rewrite financial history.
	payment := &models.Payment{
		StudentID:     student.ID,
		MatricNo:      *student.MatricNo,
		StudentName:   student.FullName(),
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: method,
		Status:        models.PaymentPending,
		DueDate:       datatypes.Date(req.DueDate),
	}

	if err := s.repo.Payment().Create(ctx, payment); err != nil {
		return nil, NewInternalError("failed to create payment", err)
	}

	s.logger.Info("Payment created",
		"payment_id", payment.ID,
		"student_id", payment.StudentID,
		"amount", payment.Amount,
		"created_by", actor.ID)
	s.publish(ctx, events.NewEvent(events.EventPaymentCreated, events.PaymentStatusChangedEvent{
		PaymentID: payment.ID,
		StudentID: payment.StudentID,
		MatricNo:  payment.MatricNo,
		Amount:    payment.Amount,
		ToStatus:  string(payment.Status),
		ChangedBy: actor.ID,
	}))

	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id string, actor *models.User) (*models.Payment, error) {
	payment, err := s.repo.Payment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("payment")
		}
		return nil, NewInternalError("failed to get payment", err)
	}

	if actor.Role == models.RoleStudent && payment.StudentID != actor.ID {
		return nil, NewForbiddenError("students can only view their own payments")
	}

	return payment, nil
}

func (s *paymentService) List(ctx context.Context, query ListPaymentsQuery, actor *models.User) (*PaymentListResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	filters := repositories.PaymentFilters{
		StudentID: query.StudentID,
		Status:    query.Status,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	// Students are always scoped to their own records, whatever the query
	// says.
	if actor.Role == models.RoleStudent {
		filters.StudentID = &actor.ID
	}

	payments, total, err := s.repo.Payment().List(ctx, filters)
	if err != nil {
		return nil, NewInternalError("failed to list payments", err)
	}

	return &PaymentListResponse{
		Payments:   payments,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (s *paymentService) UpdateStatus(ctx context.Context, req *UpdatePaymentStatusRequest, actor *models.User) (*models.Payment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	payment, err := s.repo.Payment().GetByID(ctx, req.PaymentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("payment")
		}
		return nil, NewInternalError("failed to get payment", err)
	}

	from := payment.Status
	if errs := s.validator.GetBusinessValidator().ValidatePaymentTransition(from, req.Status); len(errs) > 0 {
		return nil, NewInvalidInputError(errs.Error())
	}

	payment.Status = req.Status
	if req.Status == models.PaymentPaid && payment.PaymentDate == nil {
		now := time.Now()
		payment.PaymentDate = &now
	}

	if err := s.repo.Payment().Update(ctx, payment); err != nil {
		return nil, NewInternalError("failed to update payment", err)
	}

	s.logger.Info("Payment status changed",
		"payment_id", payment.ID,
		"from", from,
		"to", payment.Status,
		"changed_by", actor.ID)
	s.publish(ctx, events.NewEvent(events.EventPaymentStatusChanged, events.PaymentStatusChangedEvent{
		PaymentID:  payment.ID,
		StudentID:  payment.StudentID,
		MatricNo:   payment.MatricNo,
		Amount:     payment.Amount,
		FromStatus: string(from),
		ToStatus:   string(payment.Status),
		ChangedBy:  actor.ID,
	}))

	return payment, nil
}

func (s *paymentService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

// normalizePage clamps paging inputs to sane values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
