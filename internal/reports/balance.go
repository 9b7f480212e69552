package reports

import (
	"github.com/shopspring/decimal"
)

type DailyBalance struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// ReconstructDailyBalances walks expenses and incomes in date order keeping a
// running total, and records that total on each day a transaction happened.
// Days without any transaction report 0, not the previous day's total.
func ReconstructDailyBalances(expenses, incomes []Transaction, p Period) []DailyBalance {
	balances := make([]DailyBalance, p.Days())
	for i := range balances {
		balances[i] = DailyBalance{
			Date:    p.Start.AddDate(0, 0, i).Format(DateLayout),
			Balance: decimal.Zero,
		}
	}

	merged := make([]Transaction, 0, len(expenses)+len(incomes))
	merged = append(merged, expenses...)
	merged = append(merged, incomes...)

	running := decimal.Zero
	for _, t := range chronological(merged) {
		if !p.Contains(t.Date) {
			continue
		}
		running = running.Add(t.signedAmount())
		balances[p.dayIndex(t.Date)].Balance = running
	}

	return balances
}
