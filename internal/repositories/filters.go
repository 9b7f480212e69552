package repositories

import (
	"expense-manager/internal/models"
	"expense-manager/internal/reports"

	"gorm.io/gorm"
)

// applyTransactionFilters narrows an expenses or incomes query. Date bounds are
// compared as calendar days, both inclusive.
func applyTransactionFilters(query *gorm.DB, filters models.TransactionFilters) *gorm.DB {
	query = query.Where("user_id = ?", filters.UserID)

	if filters.StartDate != nil {
		query = query.Where("date >= ?", reports.Day(*filters.StartDate))
	}

	if filters.EndDate != nil {
		query = query.Where("date <= ?", reports.Day(*filters.EndDate))
	}

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}

	if filters.MinAmount != nil {
		query = query.Where("amount >= ?", *filters.MinAmount)
	}

	if filters.MaxAmount != nil {
		query = query.Where("amount <= ?", *filters.MaxAmount)
	}

	return query
}
