package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/services"
	"expense-manager/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestEntryHandlers(t *testing.T) {
	suite.Run(t, new(EntryHandlerSuite))
}

// EntryHandlerSuite covers the expense and income handlers, which share binding and error mapping.
type EntryHandlerSuite struct {
	handlerSuite
	ctrl           *gomock.Controller
	expenseService *service_mocks.MockExpenseServiceInterface
	incomeService  *service_mocks.MockIncomeServiceInterface
	expenses       *ExpenseHandler
	incomes        *IncomeHandler
}

func (s *EntryHandlerSuite) SetupTest() {
	s.setupEcho()
	s.ctrl = gomock.NewController(s.T())
	s.expenseService = service_mocks.NewMockExpenseServiceInterface(s.ctrl)
	s.incomeService = service_mocks.NewMockIncomeServiceInterface(s.ctrl)
	s.expenses = NewExpenseHandler(s.expenseService)
	s.incomes = NewIncomeHandler(s.incomeService)
}

func (s *EntryHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EntryHandlerSuite) expense(amount string) *models.Expense {
	category := models.Category{ID: uuid.New(), Name: "Food", Type: models.CategoryTypeExpense, UserID: s.userID}
	return &models.Expense{
		ID:          uuid.New(),
		Description: gofakeit.Sentence(3),
		Amount:      decimal.RequireFromString(amount),
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CategoryID:  category.ID,
		UserID:      s.userID,
		Category:    category,
	}
}

func (s *EntryHandlerSuite) createBody(categoryID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"description": "Groceries",
		"amount":      42.5,
		"date":        "2024-03-15",
		"categoryId":  categoryID.String(),
	}
}

func (s *EntryHandlerSuite) TestCreateExpense() {
	created := s.expense("42.5")

	s.expenseService.EXPECT().Create(gomock.Any(), s.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, req *dto.CreateTransactionRequest) (*models.Expense, error) {
			s.Equal("42.5", req.Amount.String())
			s.Equal("2024-03-15", req.Date)
			s.Equal(created.CategoryID, req.CategoryID)
			return created, nil
		})

	c, rec := s.authedContext(http.MethodPost, "/api/v1/expenses", s.createBody(created.CategoryID))

	s.NoError(s.expenses.CreateExpense(c))
	s.expectStatus(rec, http.StatusCreated)

	var got dto.TransactionResponse
	s.decodeData(rec, &got)
	s.Equal(created.ID, got.ID)
	s.Equal("2024-03-15", got.Date)
	s.True(got.Amount.Equal(decimal.RequireFromString("42.5")))
	s.Require().NotNil(got.Category)
	s.Equal("Food", got.Category.Name)
}

func (s *EntryHandlerSuite) TestCreateExpense_ZeroAmountAllowed() {
	created := s.expense("0")
	s.expenseService.EXPECT().Create(gomock.Any(), s.userID, gomock.Any()).Return(created, nil)

	body := s.createBody(created.CategoryID)
	body["amount"] = 0
	c, rec := s.authedContext(http.MethodPost, "/api/v1/expenses", body)

	s.NoError(s.expenses.CreateExpense(c))
	s.expectStatus(rec, http.StatusCreated)
}

func (s *EntryHandlerSuite) TestCreateExpense_RejectedBodies() {
	categoryID := uuid.New()
	cases := map[string]func(map[string]interface{}){
		"negative amount":     func(b map[string]interface{}) { b["amount"] = -1 },
		"three decimals":      func(b map[string]interface{}) { b["amount"] = "1.005" },
		"missing amount":      func(b map[string]interface{}) { delete(b, "amount") },
		"bad date":            func(b map[string]interface{}) { b["date"] = "15/03/2024" },
		"missing category":    func(b map[string]interface{}) { delete(b, "categoryId") },
		"missing description": func(b map[string]interface{}) { b["description"] = "" },
	}

	for name, mutate := range cases {
		s.Run(name, func() {
			body := s.createBody(categoryID)
			mutate(body)
			c, _ := s.authedContext(http.MethodPost, "/api/v1/expenses", body)

			s.Error(s.expenses.CreateExpense(c))
		})
	}
}

func (s *EntryHandlerSuite) TestCreateExpense_ServiceErrors() {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"foreign category", services.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_001"},
		{"income category", services.ErrCategoryTypeMismatch, http.StatusUnprocessableEntity, "CATEGORY_003"},
		{"invalid entry", services.ErrInvalidEntry, http.StatusBadRequest, "VALIDATION_001"},
		{"store failure", errors.New("deadlock"), http.StatusInternalServerError, "SYSTEM_001"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.expenseService.EXPECT().Create(gomock.Any(), s.userID, gomock.Any()).Return(nil, tc.err)

			c, rec := s.authedContext(http.MethodPost, "/api/v1/expenses", s.createBody(uuid.New()))

			s.NoError(s.expenses.CreateExpense(c))
			s.assertError(rec, tc.status, tc.code)
		})
	}
}

func (s *EntryHandlerSuite) TestListExpenses_Filters() {
	categoryID := uuid.New()

	s.expenseService.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filters models.TransactionFilters) ([]models.Expense, error) {
			s.Equal(s.userID, filters.UserID)
			s.Require().NotNil(filters.StartDate)
			s.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *filters.StartDate)
			s.Require().NotNil(filters.EndDate)
			s.Require().NotNil(filters.CategoryID)
			s.Equal(categoryID, *filters.CategoryID)
			s.Require().NotNil(filters.MinAmount)
			s.Equal("10", filters.MinAmount.String())
			s.Nil(filters.MaxAmount)
			return []models.Expense{*s.expense("12"), *s.expense("30")}, nil
		})

	target := "/api/v1/expenses?startDate=2024-03-01&endDate=2024-03-31&categoryId=" + categoryID.String() + "&minAmount=10"
	c, rec := s.authedContext(http.MethodGet, target, nil)

	s.NoError(s.expenses.ListExpenses(c))
	s.expectStatus(rec, http.StatusOK)

	var got []dto.TransactionResponse
	s.decodeData(rec, &got)
	s.Len(got, 2)
}

func (s *EntryHandlerSuite) TestListExpenses_InvertedRanges() {
	for _, target := range []string{
		"/api/v1/expenses?startDate=2024-03-31&endDate=2024-03-01",
		"/api/v1/expenses?minAmount=50&maxAmount=10",
	} {
		c, rec := s.authedContext(http.MethodGet, target, nil)

		s.NoError(s.expenses.ListExpenses(c))
		s.assertError(rec, http.StatusBadRequest, "VALIDATION_004")
	}
}

func (s *EntryHandlerSuite) TestListExpenses_InvalidFilter() {
	c, _ := s.authedContext(http.MethodGet, "/api/v1/expenses?categoryId=not-a-uuid", nil)

	s.Error(s.expenses.ListExpenses(c))
}

func (s *EntryHandlerSuite) TestGetExpense_NotFound() {
	id := uuid.New()
	s.expenseService.EXPECT().Get(gomock.Any(), s.userID, id).Return(nil, services.ErrExpenseNotFound)

	c, rec := s.authedContext(http.MethodGet, "/api/v1/expenses/"+id.String(), nil)

	s.NoError(s.expenses.GetExpense(s.withID(c, id.String())))
	s.assertError(rec, http.StatusNotFound, "EXPENSE_001")
}

func (s *EntryHandlerSuite) TestUpdateExpense_PartialBody() {
	existing := s.expense("15.25")

	s.expenseService.EXPECT().Update(gomock.Any(), s.userID, existing.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Expense, error) {
			s.Require().NotNil(req.Amount)
			s.Equal("15.25", req.Amount.String())
			s.Nil(req.Description)
			s.Nil(req.Date)
			s.Nil(req.CategoryID)
			return existing, nil
		})

	c, rec := s.authedContext(http.MethodPatch, "/api/v1/expenses/"+existing.ID.String(), map[string]interface{}{"amount": "15.25"})

	s.NoError(s.expenses.UpdateExpense(s.withID(c, existing.ID.String())))
	s.expectStatus(rec, http.StatusOK)
}

func (s *EntryHandlerSuite) TestDeleteExpense() {
	id := uuid.New()
	s.expenseService.EXPECT().Delete(gomock.Any(), s.userID, id).Return(nil)

	c, rec := s.authedContext(http.MethodDelete, "/api/v1/expenses/"+id.String(), nil)

	s.NoError(s.expenses.DeleteExpense(s.withID(c, id.String())))
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *EntryHandlerSuite) TestCreateIncome_ExpenseCategoryRejected() {
	s.incomeService.EXPECT().Create(gomock.Any(), s.userID, gomock.Any()).Return(nil, services.ErrCategoryTypeMismatch)

	c, rec := s.authedContext(http.MethodPost, "/api/v1/incomes", s.createBody(uuid.New()))

	s.NoError(s.incomes.CreateIncome(c))
	s.assertError(rec, http.StatusUnprocessableEntity, "CATEGORY_003")
}

func (s *EntryHandlerSuite) TestDeleteIncome_NotFound() {
	id := uuid.New()
	s.incomeService.EXPECT().Delete(gomock.Any(), s.userID, id).Return(services.ErrIncomeNotFound)

	c, rec := s.authedContext(http.MethodDelete, "/api/v1/incomes/"+id.String(), nil)

	s.NoError(s.incomes.DeleteIncome(s.withID(c, id.String())))
	s.assertError(rec, http.StatusNotFound, "INCOME_001")
}

func (s *EntryHandlerSuite) TestListIncomes() {
	s.incomeService.EXPECT().List(gomock.Any(), models.TransactionFilters{UserID: s.userID}).Return(nil, nil)

	c, rec := s.authedContext(http.MethodGet, "/api/v1/incomes", nil)

	s.NoError(s.incomes.ListIncomes(c))
	s.expectStatus(rec, http.StatusOK)
	s.Contains(rec.Body.String(), `"data":[]`)
}
