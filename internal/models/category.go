package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryType says whether a category groups expenses or incomes.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

var ErrInvalidCategoryType = errors.New("category type must be EXPENSE or INCOME")

func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// ParseCategoryType accepts the type in any letter case.
func ParseCategoryType(value string) (CategoryType, error) {
	t := CategoryType(strings.ToUpper(strings.TrimSpace(value)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategoryType, value)
	}
	return t, nil
}

type Category struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string       `gorm:"type:varchar(100);not null" json:"name"`
	Type      CategoryType `gorm:"type:varchar(10);not null;index" json:"type"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"not null" json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}

	if !c.Type.IsValid() {
		return ErrInvalidCategoryType
	}

	if c.UserID == uuid.Nil {
		return errors.New("category owner is required")
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
