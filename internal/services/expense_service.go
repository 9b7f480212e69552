package services

import (
	"errors"

	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
)

var ErrExpenseNotFound = errors.New("expense not found")

// NewExpenseService manages expenses filed under the user's EXPENSE categories.
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
) ExpenseServiceInterface {
	return &entryService[models.Expense, *models.Expense]{
		kind:         "expense",
		categoryType: models.CategoryTypeExpense,
		repo:         expenseRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		repoNotFound: repositories.ErrExpenseNotFound,
		errNotFound:  ErrExpenseNotFound,
	}
}
