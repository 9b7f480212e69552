package dto

// MonthlyReportQuery identifies the calendar month of a report.
type MonthlyReportQuery struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

type CategoryReportQuery struct {
	Type string `query:"type" validate:"required,category_type"`
}
