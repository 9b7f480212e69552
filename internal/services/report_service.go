package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expense-manager/internal/config"
	"expense-manager/internal/models"
	"expense-manager/internal/reports"
	"expense-manager/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidMonth  = reports.ErrInvalidMonth
	ErrReportTimeout = errors.New("report data could not be fetched in time")
)

type reportService struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	incomeRepo   repositories.IncomeRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	fetchTimeout time.Duration
}

func NewReportService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	incomeRepo repositories.IncomeRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	cfg config.ReportConfig,
) ReportServiceInterface {
	return &reportService{
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		fetchTimeout: cfg.FetchTimeout,
	}
}

// ComputeMonthlyReport fetches the month's expenses and incomes in parallel
// and assembles them into a report. Nothing is written or cached.
func (s *reportService) ComputeMonthlyReport(ctx context.Context, userID uuid.UUID, year, month int) (*reports.MonthlyReport, error) {
	if err := reports.ValidateMonth(month); err != nil {
		return nil, err
	}

	started := time.Now()
	period := reports.ResolvePeriod(year, month)

	ctx, cancel := s.withFetchTimeout(ctx)
	defer cancel()

	var expenses []models.Expense
	var incomes []models.Income

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.ListInPeriod(gctx, userID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("failed to fetch expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		incomes, err = s.incomeRepo.ListInPeriod(gctx, userID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("failed to fetch incomes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"status": "failed"})
		if timedOut(ctx, err) {
			slog.Warn("monthly report fetch timed out",
				"user_id", userID,
				"year", year,
				"month", month,
				"timeout", s.fetchTimeout)
			return nil, fmt.Errorf("%w: %v", ErrReportTimeout, err)
		}
		slog.Error("failed to fetch monthly report data",
			"user_id", userID,
			"year", year,
			"month", month,
			"error", err)
		return nil, err
	}

	report := reports.Assemble(year, month, expenseTransactions(expenses), incomeTransactions(incomes))

	elapsed := time.Since(started)
	s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"status": "success"})
	s.metrics.RecordProcessingTime(MetricReportDuration, elapsed)

	slog.Info("monthly report generated",
		"user_id", userID,
		"year", year,
		"month", month,
		"expense_count", len(expenses),
		"income_count", len(incomes),
		"duration_ms", elapsed.Milliseconds())

	return report, nil
}

// GetCategoryReport lists every category of categoryType with its all-time
// total and entries, newest first. Unused categories are listed with a zero total.
func (s *reportService) GetCategoryReport(ctx context.Context, userID uuid.UUID, categoryType models.CategoryType) ([]models.CategoryReport, error) {
	if !categoryType.IsValid() {
		return nil, models.ErrInvalidCategoryType
	}

	ctx, cancel := s.withFetchTimeout(ctx)
	defer cancel()

	var categories []models.Category
	var entries []categoryEntry

	filters := models.TransactionFilters{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.ListByUser(gctx, userID, categoryType)
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if categoryType == models.CategoryTypeExpense {
			var expenses []models.Expense
			expenses, err = s.expenseRepo.List(gctx, filters)
			entries = expenseEntries(expenses)
		} else {
			var incomes []models.Income
			incomes, err = s.incomeRepo.List(gctx, filters)
			entries = incomeEntries(incomes)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch entries: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if timedOut(ctx, err) {
			return nil, fmt.Errorf("%w: %v", ErrReportTimeout, err)
		}
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]categoryEntry, len(categories))
	for _, e := range entries {
		byCategory[e.categoryID] = append(byCategory[e.categoryID], e)
	}

	result := make([]models.CategoryReport, 0, len(categories))
	for _, c := range categories {
		report := models.CategoryReport{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Type:         c.Type,
			Total:        decimal.Zero,
			Entries:      make([]models.CategoryReportEntry, 0, len(byCategory[c.ID])),
		}
		for _, e := range byCategory[c.ID] {
			report.Total = report.Total.Add(e.entry.Amount)
			report.Entries = append(report.Entries, e.entry)
		}
		result = append(result, report)
	}

	return result, nil
}

func (s *reportService) withFetchTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.fetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.fetchTimeout)
}

// timedOut also catches drivers that drop the context error from their own.
func timedOut(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

type categoryEntry struct {
	categoryID uuid.UUID
	entry      models.CategoryReportEntry
}

func expenseTransactions(expenses []models.Expense) []reports.Transaction {
	txns := make([]reports.Transaction, 0, len(expenses))
	for i := range expenses {
		txns = append(txns, expenses[i].ToTransaction())
	}
	return txns
}

func incomeTransactions(incomes []models.Income) []reports.Transaction {
	txns := make([]reports.Transaction, 0, len(incomes))
	for i := range incomes {
		txns = append(txns, incomes[i].ToTransaction())
	}
	return txns
}

func expenseEntries(expenses []models.Expense) []categoryEntry {
	out := make([]categoryEntry, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, categoryEntry{
			categoryID: e.CategoryID,
			entry: models.CategoryReportEntry{
				ID:          e.ID,
				Description: e.Description,
				Amount:      e.Amount,
				Date:        e.Date.Format(reports.DateLayout),
			},
		})
	}
	return out
}

func incomeEntries(incomes []models.Income) []categoryEntry {
	out := make([]categoryEntry, 0, len(incomes))
	for _, i := range incomes {
		out = append(out, categoryEntry{
			categoryID: i.CategoryID,
			entry: models.CategoryReportEntry{
				ID:          i.ID,
				Description: i.Description,
				Amount:      i.Amount,
				Date:        i.Date.Format(reports.DateLayout),
			},
		})
	}
	return out
}
