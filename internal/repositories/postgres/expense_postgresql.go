package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
)

type expenseRepository struct {
	db *gorm.DB
}

func NewExpensePostgreSQL(db *gorm.DB) repositories.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return handleDBError(err, "create expense")
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Preload("Requester").
		First(&expense, "id = ?", id).Error
	if err != nil {
		return nil, handleDBError(err, "get expense by id")
	}
	return &expense, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	if err := r.db.WithContext(ctx).Save(expense).Error; err != nil {
		return handleDBError(err, "update expense")
	}
	return nil
}

func (r *expenseRepository) List(ctx context.Context, filters repositories.ExpenseFilters) ([]*models.Expense, int64, error) {
	var expenses []*models.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.RequestedBy != nil {
		query = query.Where("requested_by = ?", *filters.RequestedBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count expenses")
	}

	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&expenses).Error; err != nil {
		return nil, 0, handleDBError(err, "list expenses")
	}

	return expenses, total, nil
}
