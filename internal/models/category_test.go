package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryType(t *testing.T) {
	tests := []struct {
		input   string
		want    CategoryType
		wantErr bool
	}{
		{"EXPENSE", CategoryTypeExpense, false},
		{"income", CategoryTypeIncome, false},
		{" Expense ", CategoryTypeExpense, false},
		{"TRANSFER", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategoryType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCategoryType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Validate(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, (&Category{Name: "Food", Type: CategoryTypeExpense, UserID: owner}).Validate())
	assert.EqualError(t, (&Category{Name: " ", Type: CategoryTypeExpense, UserID: owner}).Validate(), "category name is required")
	assert.ErrorIs(t, (&Category{Name: "Food", Type: "OTHER", UserID: owner}).Validate(), ErrInvalidCategoryType)
	assert.Error(t, (&Category{Name: "Food", Type: CategoryTypeIncome}).Validate())
}

func TestCategory_BeforeCreate(t *testing.T) {
	c := Category{Name: "Salary", Type: CategoryTypeIncome, UserID: uuid.New()}

	require.NoError(t, c.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.NotZero(t, c.CreatedAt)
}
