package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/events"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/validator"
)

type receiptService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewReceiptService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ReceiptService {
	return &receiptService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Issue settles a payment and records its receipt in one transaction. Either
// both documents are written or neither is; a crash can never leave a Paid
// payment without a receipt or a receipt against a Pending payment.
func (s *receiptService) Issue(ctx context.Context, req *IssueReceiptRequest, actor *models.User) (*models.Receipt, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	issuer, err := s.repo.User().GetByID(ctx, req.IssuedBy)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("issuing user")
		}
		return nil, NewInternalError("failed to look up issuer", err)
	}

	exists, err := s.repo.Receipt().ExistsByReceiptID(ctx, req.ReceiptID)
	if err != nil {
		return nil, NewInternalError("failed to check receipt id", err)
	}
	if exists {
		return nil, NewConflictError("a receipt with this receipt id already exists")
	}

	var receipt *models.Receipt
	var fromStatus models.PaymentStatus

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		payment, err := tx.Payment().GetByID(ctx, req.PaymentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewNotFoundError("payment")
			}
			return NewInternalError("failed to get payment", err)
		}

		switch payment.Status {
		case models.PaymentFailed, models.PaymentRefunded:
			return NewInvalidInputError("cannot issue a receipt against a " + string(payment.Status) + " payment")
		}

		fromStatus = payment.Status
		if payment.Status != models.PaymentPaid {
			now := time.Now()
			payment.Status = models.PaymentPaid
			payment.PaymentDate = &now
			if err := tx.Payment().Update(ctx, payment); err != nil {
				return NewInternalError("failed to settle payment", err)
			}
		}

		receipt = &models.Receipt{
			PaymentID:     payment.ID,
			ReceiptID:     req.ReceiptID,
			StudentID:     payment.StudentID,
			StudentName:   payment.StudentName,
			MatricNo:      payment.MatricNo,
			AmountPaid:    req.AmountPaid,
			Description:   payment.Description,
			PaymentMethod: payment.PaymentMethod,
			Status:        models.ReceiptPaid,
			IssuedBy:      issuer.ID,
		}
		if req.Description != nil && *req.Description != "" {
			receipt.Description = *req.Description
		}
		if req.PaymentMethod != nil && *req.PaymentMethod != "" {
			receipt.PaymentMethod = *req.PaymentMethod
		}

		if err := tx.Receipt().Create(ctx, receipt); err != nil {
			if repositories.IsDuplicateError(err) {
				return NewConflictError("a receipt with this receipt id already exists")
			}
			return NewInternalError("failed to create receipt", err)
		}

		return nil
	})
	if err != nil {
		// WithTransaction passes classified errors through unchanged.
		var se *ServiceError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, NewInternalError("receipt transaction failed", err)
	}

	s.logger.Info("Receipt issued",
		"receipt_id", receipt.ReceiptID,
		"payment_id", receipt.PaymentID,
		"amount_paid", receipt.AmountPaid,
		"issued_by", issuer.ID,
		"payment_was", fromStatus)
	s.publish(ctx, events.NewEvent(events.EventReceiptIssued, events.ReceiptIssuedEvent{
		ReceiptID:  receipt.ReceiptID,
		PaymentID:  receipt.PaymentID,
		StudentID:  receipt.StudentID,
		AmountPaid: receipt.AmountPaid,
		IssuedBy:   receipt.IssuedBy,
	}))

	return receipt, nil
}

func (s *receiptService) GetByReceiptID(ctx context.Context, receiptID string, actor *models.User) (*models.Receipt, error) {
	receipt, err := s.repo.Receipt().GetByReceiptID(ctx, receiptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("receipt")
		}
		return nil, NewInternalError("failed to get receipt", err)
	}

	if actor.Role == models.RoleStudent && receipt.StudentID != actor.ID {
		return nil, NewForbiddenError("students can only view their own receipts")
	}

	return receipt, nil
}

func (s *receiptService) List(ctx context.Context, query ListReceiptsQuery, actor *models.User) (*ReceiptListResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	filters := repositories.ReceiptFilters{
		StudentID: query.StudentID,
		ReceiptID: query.ReceiptID,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	if actor.Role == models.RoleStudent {
		filters.StudentID = &actor.ID
	}

	receipts, total, err := s.repo.Receipt().List(ctx, filters)
	if err != nil {
		return nil, NewInternalError("failed to list receipts", err)
	}

	return &ReceiptListResponse{
		Receipts:   receipts,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (s *receiptService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
