package services

import (
	"errors"

	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
)

var ErrIncomeNotFound = errors.New("income not found")

// NewIncomeService manages incomes filed under the user's INCOME categories.
func NewIncomeService(
	incomeRepo repositories.IncomeRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
) IncomeServiceInterface {
	return &entryService[models.Income, *models.Income]{
		kind:         "income",
		categoryType: models.CategoryTypeIncome,
		repo:         incomeRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		repoNotFound: repositories.ErrIncomeNotFound,
		errNotFound:  ErrIncomeNotFound,
	}
}
