package repositories

import (
	"context"
	"time"

	"expense-manager/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user persistence
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmailExcluding(email string, excludeUserID uuid.UUID) (*models.User, error)
	Update(user *models.User) error
	UpdateFields(userID uuid.UUID, fields map[string]interface{}) error
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
	UpdateLastLogin(userID uuid.UUID, at time.Time) error
	DeleteWithData(userID uuid.UUID) error
}

// BlacklistedTokenRepositoryInterface defines the contract for revoked token persistence
type BlacklistedTokenRepositoryInterface interface {
	Create(ctx context.Context, token *models.BlacklistedToken) error
	GetByJTI(ctx context.Context, jti string) (*models.BlacklistedToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// CategoryRepositoryInterface defines the contract for category persistence.
// Lookups are always scoped to the owning user.
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *models.Category) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID, categoryType models.CategoryType) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// ExpenseRepositoryInterface defines the contract for expense persistence
type ExpenseRepositoryInterface interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]models.Expense, error)
	ListInPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

// IncomeRepositoryInterface defines the contract for income persistence
type IncomeRepositoryInterface interface {
	Create(ctx context.Context, income *models.Income) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Income, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]models.Income, error)
	ListInPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Income, error)
	Update(ctx context.Context, income *models.Income) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}
