package handlers

import (
	stderrors "errors"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/models"
	"expense-manager/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindTransactionQuery reads and validates the list filters shared by expenses
// and incomes. When done is true the request has been answered (or err must be
// returned to the error handler) and the caller stops.
func bindTransactionQuery(c echo.Context, userID uuid.UUID) (filters models.TransactionFilters, done bool, err error) {
	var query dto.TransactionQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return filters, true, SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(query); err != nil {
		return filters, true, err
	}

	filters, err = query.ToFilters(userID)
	if err != nil {
		return filters, true, SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return filters, true, SendError(c, errors.ValidationOutOfRange, errors.WithDetails("endDate must not be before startDate"))
	}

	if filters.MinAmount != nil && filters.MaxAmount != nil && filters.MaxAmount.LessThan(*filters.MinAmount) {
		return filters, true, SendError(c, errors.ValidationOutOfRange, errors.WithDetails("maxAmount must not be below minAmount"))
	}

	return filters, false, nil
}

// sendEntryError maps expense and income service errors. notFound is the
// code for the entry kind being handled.
func sendEntryError(c echo.Context, err error, notFound errors.ErrorCode) error {
	switch {
	case stderrors.Is(err, services.ErrExpenseNotFound), stderrors.Is(err, services.ErrIncomeNotFound):
		return SendError(c, notFound)
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, services.ErrCategoryTypeMismatch):
		return SendError(c, errors.CategoryTypeMismatch)
	case stderrors.Is(err, services.ErrInvalidEntry):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
