package services

import (
	"context"
	"time"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/reports"

	"github.com/google/uuid"
)

// AuthServiceInterface defines registration, login and logout
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

// TokenServiceInterface defines JWT access token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines the password policy and hashing
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// UserServiceInterface defines operations on the authenticated user's own profile
type UserServiceInterface interface {
	GetProfile(userID uuid.UUID) (*models.User, error)
	UpdateProfile(userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error)
	ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error
	DeleteAccount(userID uuid.UUID) error
}

// CategoryServiceInterface defines category management scoped to one user
type CategoryServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error)
	List(ctx context.Context, userID uuid.UUID, categoryType models.CategoryType) ([]models.Category, error)
	Get(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}

// ExpenseServiceInterface defines expense management scoped to one user
type ExpenseServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Expense, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]models.Expense, error)
	Get(ctx context.Context, userID, expenseID uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// IncomeServiceInterface defines income management scoped to one user
type IncomeServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Income, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]models.Income, error)
	Get(ctx context.Context, userID, incomeID uuid.UUID) (*models.Income, error)
	Update(ctx context.Context, userID, incomeID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Income, error)
	Delete(ctx context.Context, userID, incomeID uuid.UUID) error
}

// ReportServiceInterface computes read-only views over a user's entries
type ReportServiceInterface interface {
	// ComputeMonthlyReport aggregates one calendar month of expenses and incomes
	ComputeMonthlyReport(ctx context.Context, userID uuid.UUID, year, month int) (*reports.MonthlyReport, error)
	// GetCategoryReport lists every category of the given type with its all-time entries
	GetCategoryReport(ctx context.Context, userID uuid.UUID, categoryType models.CategoryType) ([]models.CategoryReport, error)
}

// TokenCleanupServiceInterface removes revoked tokens that have expired
type TokenCleanupServiceInterface interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
