package handlers

import (
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles the caller's expenses
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpense records an expense under one of the caller's EXPENSE categories
// @Summary Create expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Expense"
// @Success 201 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001"
// @Failure 422 {object} errors.ErrorResponse "CATEGORY_003 - not an EXPENSE category"
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
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

	expense, err := h.expenseService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return sendEntryError(c, err, errors.ExpenseNotFound)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{Data: dto.NewExpenseResponse(expense)})
}

// ListExpenses lists the caller's expenses, newest first
// @Summary List expenses
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param startDate query string false "From date (YYYY-MM-DD), inclusive"
// @Param endDate query string false "To date (YYYY-MM-DD), inclusive"
// @Param categoryId query string false "Category ID"
// @Param minAmount query string false "Minimum amount"
// @Param maxAmount query string false "Maximum amount"
// @Success 200 {object} SuccessResponse{data=[]dto.TransactionResponse,meta=ListMeta}
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, done, err := bindTransactionQuery(c, userID)
	if done {
		return err
	}

	expenses, err := h.expenseService.List(c.Request().Context(), filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.NewExpenseResponses(expenses),
		Meta: ListMeta{Count: len(expenses)},
	})
}

// GetExpense returns one of the caller's expenses
// @Summary Get expense
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid expense ID"))
	}

	expense, err := h.expenseService.Get(c.Request().Context(), userID, expenseID)
	if err != nil {
		return sendEntryError(c, err, errors.ExpenseNotFound)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewExpenseResponse(expense)})
}

// UpdateExpense changes the given fields of an expense
// @Summary Update expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 or CATEGORY_001"
// @Failure 422 {object} errors.ErrorResponse "CATEGORY_003"
// @Router /expenses/{id} [patch]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid expense ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.Update(c.Request().Context(), userID, expenseID, &req)
	if err != nil {
		return sendEntryError(c, err, errors.ExpenseNotFound)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewExpenseResponse(expense)})
}

// DeleteExpense deletes one of the caller's expenses
// @Summary Delete expense
// @Tags Expenses
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid expense ID"))
	}

	if err := h.expenseService.Delete(c.Request().Context(), userID, expenseID); err != nil {
		return sendEntryError(c, err, errors.ExpenseNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}
