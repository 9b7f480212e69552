package reports

import (
	"errors"
	"time"
)

// DateLayout is the calendar-day format used in reports and request parameters.
const DateLayout = "2006-01-02"

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// Period is an inclusive range of calendar days, both ends at UTC midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// ResolvePeriod returns the first and last day of the given month.
// Month must already be validated with ValidateMonth.
func ResolvePeriod(year, month int) Period {
	return Period{
		Start: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		// day 0 of the following month is the last day of this one
		End: time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC),
	}
}

// Days is the number of calendar days in the period.
func (p Period) Days() int {
	return p.dayIndex(p.End) + 1
}

// Contains reports whether t falls on one of the period's days.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) dayIndex(t time.Time) int {
	return int(Day(t).Sub(p.Start).Hours() / 24)
}

// Day strips the time of day from t, keeping the calendar date as seen in t's
// own location, and returns it as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
