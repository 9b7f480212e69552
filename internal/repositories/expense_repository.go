package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expense-manager/internal/models"
	"expense-manager/internal/reports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

func (r *ExpenseRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

// List returns the matching expenses, newest date first, with categories loaded
func (r *ExpenseRepository) List(ctx context.Context, filters models.TransactionFilters) ([]models.Expense, error) {
	query := applyTransactionFilters(r.db.WithContext(ctx).Model(&models.Expense{}), filters)

	expenses := []models.Expense{}
	err := query.
		Preload("Category").
		Order("date DESC").
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, nil
}

// ListInPeriod returns every expense of the user dated between start and end
// inclusive, with its category loaded. Order is unspecified.
func (r *ExpenseRepository) ListInPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, reports.Day(start), reports.Day(end)).
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in period: %w", err)
	}

	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	expense.Date = reports.Day(expense.Date)
	if err := expense.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]interface{}{
			"description": expense.Description,
			"amount":      expense.Amount,
			"date":        expense.Date,
			"category_id": expense.CategoryID,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

func (r *ExpenseRepository) ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check expenses for category: %w", err)
	}

	return count > 0, nil
}
