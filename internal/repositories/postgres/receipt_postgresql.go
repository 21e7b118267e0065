package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
)

type receiptRepository struct {
	db *gorm.DB
}

func NewReceiptPostgreSQL(db *gorm.DB) repositories.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		return handleDBError(err, "create receipt")
	}
	return nil
}

func (r *receiptRepository) GetByReceiptID(ctx context.Context, receiptID string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Preload("Payment").
		First(&receipt, "receipt_id = ?", receiptID).Error
	if err != nil {
		return nil, handleDBError(err, "get receipt by receipt id")
	}
	return &receipt, nil
}

func (r *receiptRepository) ExistsByReceiptID(ctx context.Context, receiptID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("receipt_id = ?", receiptID).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check receipt id exists")
	}
	return count > 0, nil
}

func (r *receiptRepository) List(ctx context.Context, filters repositories.ReceiptFilters) ([]*models.Receipt, int64, error) {
	var receipts []*models.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Receipt{})
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.ReceiptID != nil {
		query = query.Where("receipt_id = ?", *filters.ReceiptID)
	}
	if len(filters.PaymentIDs) > 0 {
		query = query.Where("payment_id IN ?", filters.PaymentIDs)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count receipts")
	}

	query = applyPagination(query.Order("issued_date DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&receipts).Error; err != nil {
		return nil, 0, handleDBError(err, "list receipts")
	}

	return receipts, total, nil
}
