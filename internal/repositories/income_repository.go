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
	ErrIncomeNotFound = errors.New("income not found")
)

type IncomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepositoryInterface {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(ctx context.Context, income *models.Income) error {
	if income == nil {
		return errors.New("income cannot be nil")
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(income).Error; err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}

	return nil
}

func (r *IncomeRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Income, error) {
	var income models.Income
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&income).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	return &income, nil
}

// List returns the matching incomes, newest date first, with categories loaded
func (r *IncomeRepository) List(ctx context.Context, filters models.TransactionFilters) ([]models.Income, error) {
	query := applyTransactionFilters(r.db.WithContext(ctx).Model(&models.Income{}), filters)

	incomes := []models.Income{}
	err := query.
		Preload("Category").
		Order("date DESC").
		Order("created_at DESC").
		Find(&incomes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}

	return incomes, nil
}

// ListInPeriod returns every income of the user dated between start and end
// inclusive, with its category loaded. Order is unspecified.
func (r *IncomeRepository) ListInPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Income, error) {
	incomes := []models.Income{}
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, reports.Day(start), reports.Day(end)).
		Find(&incomes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes in period: %w", err)
	}

	return incomes, nil
}

func (r *IncomeRepository) Update(ctx context.Context, income *models.Income) error {
	if income == nil {
		return errors.New("income cannot be nil")
	}

	income.Date = reports.Day(income.Date)
	if err := income.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Model(&models.Income{}).
		Where("id = ? AND user_id = ?", income.ID, income.UserID).
		Updates(map[string]interface{}{
			"description": income.Description,
			"amount":      income.Amount,
			"date":        income.Date,
			"category_id": income.CategoryID,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update income: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIncomeNotFound
	}

	return nil
}

func (r *IncomeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Income{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete income: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIncomeNotFound
	}

	return nil
}

func (r *IncomeRepository) ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Income{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check incomes for category: %w", err)
	}

	return count > 0, nil
}
