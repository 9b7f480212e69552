package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"expense-manager/internal/database"
	"expense-manager/internal/reports"
	"expense-manager/internal/repositories"
	"expense-manager/internal/services"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

var (
	positive = color.New(color.FgGreen, color.Bold).SprintFunc()
	negative = color.New(color.FgRed, color.Bold).SprintFunc()
)

type reportOptions struct {
	user   string
	year   int
	month  int
	asJSON bool
}

// validate fills in the current month when year or month is omitted.
func (o *reportOptions) validate(now time.Time) error {
	if strings.TrimSpace(o.user) == "" {
		return errors.New("--user is required")
	}
	if o.year == 0 {
		o.year = now.Year()
	}
	if o.month == 0 {
		o.month = int(now.Month())
	}
	if o.year < 1 || o.year > 9999 {
		return fmt.Errorf("--year must be between 1 and 9999, got %d", o.year)
	}
	if err := reports.ValidateMonth(o.month); err != nil {
		return fmt.Errorf("--month: %w", err)
	}
	return nil
}

func (app *App) newReportCommand() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a user's monthly report",
		Example: "  expensectl report --user ada@example.com --year 2024 --month 3\n" +
			"  expensectl report --user 6f1c... --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(time.Now().UTC()); err != nil {
				return err
			}

			cfg := app.loadConfig()

			db, err := database.New(&cfg.Database, logger.Silent)
			if err != nil {
				return err
			}
			defer db.Close()

			userID, err := resolveUserID(repositories.NewUserRepository(db.DB), opts.user)
			if err != nil {
				return err
			}

			reportService := services.NewReportService(
				repositories.NewExpenseRepository(db.DB),
				repositories.NewIncomeRepository(db.DB),
				repositories.NewCategoryRepository(db.DB),
				services.NewPrometheusMetrics(prometheus.NewRegistry()),
				cfg.Report,
			)

			report, err := reportService.ComputeMonthlyReport(cmd.Context(), userID, opts.year, opts.month)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(app.out, report)
			}
			out, err := renderReport(report)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(app.out, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "User ID or email address")
	cmd.Flags().IntVarP(&opts.year, "year", "y", 0, "Report year (default: current year)")
	cmd.Flags().IntVarP(&opts.month, "month", "m", 0, "Report month 1-12 (default: current month)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the report as JSON")

	return cmd
}

// resolveUserID accepts either a user ID or an email address.
func resolveUserID(userRepo repositories.UserRepositoryInterface, value string) (uuid.UUID, error) {
	if id, err := uuid.Parse(value); err == nil {
		if _, err := userRepo.GetByID(id); err != nil {
			return uuid.Nil, fmt.Errorf("user %s: %w", value, err)
		}
		return id, nil
	}

	user, err := userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return uuid.Nil, fmt.Errorf("user %s: %w", value, err)
	}
	return user.ID, nil
}

func writeJSON(w io.Writer, report *reports.MonthlyReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// renderReport lays the report out as summary, category and daily tables.
// A month without transactions gets a note instead of the last two.
func renderReport(report *reports.MonthlyReport) (string, error) {
	var b strings.Builder

	title := time.Date(report.Year, time.Month(report.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	b.WriteString(pterm.DefaultSection.Sprint("Monthly report - " + title))

	summary, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(pterm.TableData{
		{"Period", "Expenses", "Incomes", "Balance"},
		{report.StartDate + " .. " + report.EndDate, report.TotalExpenses.StringFixed(2), report.TotalIncomes.StringFixed(2), signed(report.Balance)},
	}).Srender()
	if err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	b.WriteString(summary + "\n\n")

	if len(report.CategoryTotals.Expenses) == 0 && len(report.CategoryTotals.Incomes) == 0 {
		b.WriteString("No transactions this month.\n")
		return b.String(), nil
	}

	categories := pterm.TableData{{"Type", "Category", "Total"}}
	for _, c := range report.CategoryTotals.Expenses {
		categories = append(categories, []string{"Expense", c.Name, c.Total.StringFixed(2)})
	}
	for _, c := range report.CategoryTotals.Incomes {
		categories = append(categories, []string{"Income", c.Name, c.Total.StringFixed(2)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(categories).Srender()
	if err != nil {
		return "", fmt.Errorf("render categories: %w", err)
	}
	b.WriteString(table + "\n\n")

	daily := pterm.TableData{{"Date", "Balance"}}
	for _, d := range report.DailyBalances {
		daily = append(daily, []string{d.Date, signed(d.Balance)})
	}
	table, err = pterm.DefaultTable.WithHasHeader().WithData(daily).Srender()
	if err != nil {
		return "", fmt.Errorf("render daily balances: %w", err)
	}
	b.WriteString(table + "\n")

	return b.String(), nil
}

func signed(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return negative(amount.StringFixed(2))
	}
	return positive(amount.StringFixed(2))
}
