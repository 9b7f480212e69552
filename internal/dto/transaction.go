package dto

import (
	"time"

	"expense-manager/internal/models"
	"expense-manager/internal/reports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body for creating an expense or an income.
type CreateTransactionRequest struct {
	Description string           `json:"description" validate:"required,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,money_amount"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
	CategoryID  uuid.UUID        `json:"categoryId" validate:"required"`
}

// UpdateTransactionRequest is a partial update. Nil fields are left untouched.
type UpdateTransactionRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,money_amount"`
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
}

// TransactionQuery holds the list filters for expenses and incomes.
type TransactionQuery struct {
	StartDate  string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	CategoryID string `query:"categoryId" validate:"omitempty,uuid"`
	MinAmount  string `query:"minAmount" validate:"omitempty,money_amount"`
	MaxAmount  string `query:"maxAmount" validate:"omitempty,money_amount"`
}

// ToFilters converts the validated query into repository filters.
func (q TransactionQuery) ToFilters(userID uuid.UUID) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{UserID: userID}

	if q.StartDate != "" {
		start, err := models.ParseDate(q.StartDate)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}
	if q.EndDate != "" {
		end, err := models.ParseDate(q.EndDate)
		if err != nil {
			return filters, err
		}
		filters.EndDate = &end
	}
	if q.CategoryID != "" {
		id, err := uuid.Parse(q.CategoryID)
		if err != nil {
			return filters, err
		}
		filters.CategoryID = &id
	}
	if q.MinAmount != "" {
		amount, err := decimal.NewFromString(q.MinAmount)
		if err != nil {
			return filters, err
		}
		filters.MinAmount = &amount
	}
	if q.MaxAmount != "" {
		amount, err := decimal.NewFromString(q.MaxAmount)
		if err != nil {
			return filters, err
		}
		filters.MaxAmount = &amount
	}

	return filters, nil
}

type TransactionCategory struct {
	ID   uuid.UUID           `json:"id"`
	Name string              `json:"name"`
	Type models.CategoryType `json:"type"`
}

type TransactionResponse struct {
	ID          uuid.UUID            `json:"id"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Date        string               `json:"date"`
	CategoryID  uuid.UUID            `json:"categoryId"`
	Category    *TransactionCategory `json:"category,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func NewExpenseResponse(e *models.Expense) TransactionResponse {
	return newTransactionResponse(e.ID, e.Description, e.Amount, e.Date, &e.Category, e.CategoryID, e.CreatedAt, e.UpdatedAt)
}

func NewIncomeResponse(i *models.Income) TransactionResponse {
	return newTransactionResponse(i.ID, i.Description, i.Amount, i.Date, &i.Category, i.CategoryID, i.CreatedAt, i.UpdatedAt)
}

func NewExpenseResponses(expenses []models.Expense) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, NewExpenseResponse(&expenses[i]))
	}
	return out
}

func NewIncomeResponses(incomes []models.Income) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(incomes))
	for i := range incomes {
		out = append(out, NewIncomeResponse(&incomes[i]))
	}
	return out
}

func newTransactionResponse(id uuid.UUID, description string, amount decimal.Decimal, date time.Time,
	category *models.Category, categoryID uuid.UUID, createdAt, updatedAt time.Time) TransactionResponse {
	resp := TransactionResponse{
		ID:          id,
		Description: description,
		Amount:      amount,
		Date:        date.Format(reports.DateLayout),
		CategoryID:  categoryID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}

	// category is only present when it was preloaded
	if category != nil && category.ID != uuid.Nil {
		resp.Category = &TransactionCategory{
			ID:   category.ID,
			Name: category.Name,
			Type: category.Type,
		}
	}

	return resp
}
