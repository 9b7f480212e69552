package reports

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
}

// GroupByCategory sums amounts per category. Categories appear in the order
// their first transaction does chronologically; categories without
// transactions are absent.
func GroupByCategory(txns []Transaction) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[uuid.UUID]int, len(txns))

	for _, t := range chronological(txns) {
		if i, ok := index[t.CategoryID]; ok {
			totals[i].Total = totals[i].Total.Add(t.Amount)
			continue
		}
		index[t.CategoryID] = len(totals)
		totals = append(totals, CategoryTotal{
			CategoryID: t.CategoryID,
			Name:       t.CategoryName,
			Total:      t.Amount,
		})
	}

	return totals
}
