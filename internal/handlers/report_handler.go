package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/models"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	minReportYear = 1
	maxReportYear = 9999
)

// ReportHandler serves the read-only report views
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetMonthlyReport computes the caller's report for one calendar month. The
// monthly-totals, expenses-by-category and balance-overview routes serve the
// same payload.
// @Summary Monthly report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param year query int true "Year, e.g. 2024"
// @Param month query int true "Month 1-12"
// @Success 200 {object} reports.MonthlyReport
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_002, VALIDATION_003 or VALIDATION_004"
// @Failure 504 {object} errors.ErrorResponse "REPORT_002 - data fetch timed out"
// @Router /reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	query, done, err := bindMonthlyReportQuery(c)
	if done {
		return err
	}

	report, err := h.reportService.ComputeMonthlyReport(c.Request().Context(), userID, query.Year, query.Month)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrInvalidMonth):
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		case stderrors.Is(err, services.ErrReportTimeout):
			return SendError(c, errors.ReportTimeout)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}

// GetCategoryReport lists every category of one type with its all-time total and entries
// @Summary Category report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param type query string true "EXPENSE or INCOME"
// @Success 200 {object} SuccessResponse{data=[]models.CategoryReport,meta=ListMeta}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Router /reports/categories [get]
func (h *ReportHandler) GetCategoryReport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.CategoryReportQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(query); err != nil {
		return err
	}

	categoryType, err := models.ParseCategoryType(query.Type)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	result, err := h.reportService.GetCategoryReport(c.Request().Context(), userID, categoryType)
	if err != nil {
		if stderrors.Is(err, services.ErrReportTimeout) {
			return SendError(c, errors.ReportTimeout)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: result,
		Meta: ListMeta{Count: len(result)},
	})
}

// bindMonthlyReportQuery requires integer year and month within range.
func bindMonthlyReportQuery(c echo.Context) (query dto.MonthlyReportQuery, done bool, err error) {
	var present bool

	for _, p := range []struct {
		name     string
		min, max int
		dst      *int
	}{
		{"year", minReportYear, maxReportYear, &query.Year},
		{"month", 1, 12, &query.Month},
	} {
		*p.dst, present, err = getIntQueryParam(c, p.name)
		switch {
		case !present:
			return query, true, SendError(c, errors.ValidationRequiredField, errors.WithDetails(p.name+" is required"))
		case err != nil:
			return query, true, SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(p.name+" must be an integer"))
		case *p.dst < p.min || *p.dst > p.max:
			return query, true, SendError(c, errors.ValidationOutOfRange,
				errors.WithDetails(fmt.Sprintf("%s must be between %d and %d", p.name, p.min, p.max)))
		}
	}

	return query, false, nil
}
