// Package reports turns a user's expenses and incomes for one calendar month
// into a MonthlyReport: totals, per-category breakdowns and a daily balance
// series. Everything here is pure; fetching the transactions is the caller's job.
package reports

import (
	"bytes"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tags a Transaction as money going out or coming in.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Transaction is the engine's view of a single expense or income.
// Amount is never negative; the sign is carried by Kind.
type Transaction struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Date         time.Time
	CategoryID   uuid.UUID
	CategoryName string
	CategoryType string
	Kind         Kind
}

func (t Transaction) signedAmount() decimal.Decimal {
	switch t.Kind {
	case KindExpense:
		return t.Amount.Neg()
	case KindIncome:
		return t.Amount
	default:
		panic(fmt.Sprintf("reports: unknown transaction kind %q", t.Kind))
	}
}

// chronological returns a sorted copy ordered by calendar day, then ID.
func chronological(txns []Transaction) []Transaction {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		if c := Day(a.Date).Compare(Day(b.Date)); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return sorted
}
