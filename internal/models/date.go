package models

import (
	"fmt"
	"time"

	"expense-manager/internal/reports"
)

// ParseDate parses a YYYY-MM-DD calendar day into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	d, err := time.ParseInLocation(reports.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return d, nil
}
