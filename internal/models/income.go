package models

import (
	"time"

	"expense-manager/internal/reports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Income struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_incomes_user_date,priority:2" json:"date"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_incomes_user_date,priority:1" json:"userId"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`

	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"`
	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Income) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}

	return nil
}

func (i *Income) BeforeSave(tx *gorm.DB) error {
	i.Date = reports.Day(i.Date)
	return i.Validate()
}

func (i *Income) Validate() error {
	return validateEntry(i.Amount, i.Date, i.CategoryID, i.UserID)
}

func (i *Income) ToTransaction() reports.Transaction {
	return reports.Transaction{
		ID:           i.ID,
		Amount:       i.Amount,
		Date:         reports.Day(i.Date),
		CategoryID:   i.CategoryID,
		CategoryName: i.Category.Name,
		CategoryType: string(i.Category.Type),
		Kind:         reports.KindIncome,
	}
}

func (i *Income) TableName() string {
	return "incomes"
}

func (i *Income) Fields() EntryFields {
	return EntryFields{
		ID:          &i.ID,
		Description: &i.Description,
		Amount:      &i.Amount,
		Date:        &i.Date,
		CategoryID:  &i.CategoryID,
		UserID:      &i.UserID,
		Category:    &i.Category,
	}
}
