package reports

import (
	"github.com/shopspring/decimal"
)

type CategoryTotals struct {
	Expenses []CategoryTotal `json:"expenses"`
	Incomes  []CategoryTotal `json:"incomes"`
}

// MonthlyReport is built fresh for every request and never stored.
type MonthlyReport struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	TotalIncomes   decimal.Decimal `json:"totalIncomes"`
	Balance        decimal.Decimal `json:"balance"`
	CategoryTotals CategoryTotals  `json:"categoryTotals"`
	DailyBalances  []DailyBalance  `json:"dailyBalances"`
}

// Assemble builds the report for year/month from the month's expenses and
// incomes. Transactions dated outside the month are ignored.
func Assemble(year, month int, expenses, incomes []Transaction) *MonthlyReport {
	period := ResolvePeriod(year, month)

	expenses = inPeriod(expenses, period)
	incomes = inPeriod(incomes, period)

	totalExpenses := sum(expenses)
	totalIncomes := sum(incomes)

	return &MonthlyReport{
		Year:          year,
		Month:         month,
		StartDate:     period.Start.Format(DateLayout),
		EndDate:       period.End.Format(DateLayout),
		TotalExpenses: totalExpenses,
		TotalIncomes:  totalIncomes,
		Balance:       totalIncomes.Sub(totalExpenses),
		CategoryTotals: CategoryTotals{
			Expenses: GroupByCategory(expenses),
			Incomes:  GroupByCategory(incomes),
		},
		DailyBalances: ReconstructDailyBalances(expenses, incomes, period),
	}
}

func inPeriod(txns []Transaction, p Period) []Transaction {
	kept := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if p.Contains(t.Date) {
			kept = append(kept, t)
		}
	}
	return kept
}

func sum(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total
}
