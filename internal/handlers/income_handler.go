package handlers

import (
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// IncomeHandler handles the caller's incomes
type IncomeHandler struct {
	incomeService services.IncomeServiceInterface
}

func NewIncomeHandler(incomeService services.IncomeServiceInterface) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncome records an income under one of the caller's INCOME categories
// @Summary Create income
// @Tags Incomes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Income"
// @Success 201 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001"
// @Failure 422 {object} errors.ErrorResponse "CATEGORY_003 - not an INCOME category"
// @Router /incomes [post]
func (h *IncomeHandler) CreateIncome(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	income, err := h.incomeService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return sendEntryError(c, err, errors.IncomeNotFound)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{Data: dto.NewIncomeResponse(income)})
}

// ListIncomes lists the caller's incomes, newest first
// @Summary List incomes
// @Tags Incomes
// @Security BearerAuth
// @Produce json
// @Param startDate query string false "From date (YYYY-MM-DD), inclusive"
// @Param endDate query string false "To date (YYYY-MM-DD), inclusive"
// @Param categoryId query string false "Category ID"
// @Param minAmount query string false "Minimum amount"
// @Param maxAmount query string false "Maximum amount"
// @Success 200 {object} SuccessResponse{data=[]dto.TransactionResponse,meta=ListMeta}
// @Router /incomes [get]
func (h *IncomeHandler) ListIncomes(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, done, err := bindTransactionQuery(c, userID)
	if done {
		return err
	}

	incomes, err := h.incomeService.List(c.Request().Context(), filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.NewIncomeResponses(incomes),
		Meta: ListMeta{Count: len(incomes)},
	})
}

// GetIncome returns one of the caller's incomes
// @Summary Get income
// @Tags Incomes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "INCOME_001"
// @Router /incomes/{id} [get]
func (h *IncomeHandler) GetIncome(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	incomeID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid income ID"))
	}

	income, err := h.incomeService.Get(c.Request().Context(), userID, incomeID)
	if err != nil {
		return sendEntryError(c, err, errors.IncomeNotFound)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewIncomeResponse(income)})
}

// UpdateIncome changes the given fields of an income
// @Summary Update income
// @Tags Incomes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "INCOME_001 or CATEGORY_001"
// @Failure 422 {object} errors.ErrorResponse "CATEGORY_003"
// @Router /incomes/{id} [patch]
func (h *IncomeHandler) UpdateIncome(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	incomeID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid income ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	income, err := h.incomeService.Update(c.Request().Context(), userID, incomeID, &req)
	if err != nil {
		return sendEntryError(c, err, errors.IncomeNotFound)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewIncomeResponse(income)})
}

// DeleteIncome deletes one of the caller's incomes
// @Summary Delete income
// @Tags Incomes
// @Security BearerAuth
// @Param id path string true "Income ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "INCOME_001"
// @Router /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	incomeID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid income ID"))
	}

	if err := h.incomeService.Delete(c.Request().Context(), userID, incomeID); err != nil {
		return sendEntryError(c, err, errors.IncomeNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}
