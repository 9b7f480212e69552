package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilters narrows expense and income listings. Nil fields are ignored;
// date bounds are inclusive.
type TransactionFilters struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}
