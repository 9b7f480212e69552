package validation

import (
	"reflect"
	"strings"
	"sync"

	"expense-manager/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxMoneyScale is the number of decimal places stored for amounts.
const maxMoneyScale = 2

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	// decimals are validated through their string form
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("category_type", validateCategoryType)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})

	return &Validator{validate: v}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// validateMoneyAmount accepts non-negative amounts with at most two decimal places
func validateMoneyAmount(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	if amount.IsNegative() {
		return false
	}

	return amount.Equal(amount.Truncate(maxMoneyScale))
}

// validateCategoryType accepts EXPENSE or INCOME in any letter case
func validateCategoryType(fl validator.FieldLevel) bool {
	_, err := models.ParseCategoryType(fl.Field().String())
	return err == nil
}
