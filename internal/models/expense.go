package models

import (
	"errors"
	"time"

	"expense-manager/internal/reports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_expenses_user_date,priority:2" json:"date"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_date,priority:1" json:"userId"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`

	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"`
	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return nil
}

func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.Date = reports.Day(e.Date)
	return e.Validate()
}

func (e *Expense) Validate() error {
	return validateEntry(e.Amount, e.Date, e.CategoryID, e.UserID)
}

// ToTransaction converts the row to the report engine's input. The category
// must be preloaded for the name to be filled in.
func (e *Expense) ToTransaction() reports.Transaction {
	return reports.Transaction{
		ID:           e.ID,
		Amount:       e.Amount,
		Date:         reports.Day(e.Date),
		CategoryID:   e.CategoryID,
		CategoryName: e.Category.Name,
		CategoryType: string(e.Category.Type),
		Kind:         reports.KindExpense,
	}
}

func (e *Expense) TableName() string {
	return "expenses"
}

func (e *Expense) Fields() EntryFields {
	return EntryFields{
		ID:          &e.ID,
		Description: &e.Description,
		Amount:      &e.Amount,
		Date:        &e.Date,
		CategoryID:  &e.CategoryID,
		UserID:      &e.UserID,
		Category:    &e.Category,
	}
}

// EntryFields points at the columns expenses and incomes have in common.
type EntryFields struct {
	ID          *uuid.UUID
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	CategoryID  *uuid.UUID
	UserID      *uuid.UUID
	Category    *Category
}

func validateEntry(amount decimal.Decimal, date time.Time, categoryID, userID uuid.UUID) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	if date.IsZero() {
		return errors.New("date is required")
	}

	if categoryID == uuid.Nil {
		return errors.New("category is required")
	}

	if userID == uuid.Nil {
		return errors.New("owner is required")
	}

	return nil
}
