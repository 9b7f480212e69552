package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryReport lists one category with every entry ever recorded against it.
type CategoryReport struct {
	CategoryID   uuid.UUID             `json:"categoryId"`
	CategoryName string                `json:"categoryName"`
	Type         CategoryType          `json:"type"`
	Total        decimal.Decimal       `json:"total"`
	Entries      []CategoryReportEntry `json:"entries"`
}

type CategoryReportEntry struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}
