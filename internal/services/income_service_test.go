package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/repositories/repository_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IncomeServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	incomeRepo   *repository_mocks.MockIncomeRepositoryInterface
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	metrics      *PrometheusMetrics
	service      IncomeServiceInterface
	ctx          context.Context
	userID       uuid.UUID
}

func TestIncomeServiceSuite(t *testing.T) {
	suite.Run(t, new(IncomeServiceTestSuite))
}

func (s *IncomeServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.incomeRepo = repository_mocks.NewMockIncomeRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.metrics = NewPrometheusMetrics(prometheus.NewRegistry()).(*PrometheusMetrics)
	s.service = NewIncomeService(s.incomeRepo, s.categoryRepo, s.metrics)
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *IncomeServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *IncomeServiceTestSuite) category(categoryType models.CategoryType) *models.Category {
	return &models.Category{ID: uuid.New(), Name: gofakeit.Word(), Type: categoryType, UserID: s.userID}
}

func (s *IncomeServiceTestSuite) income(category *models.Category) *models.Income {
	return &models.Income{
		ID:          uuid.New(),
		Description: "Salary",
		Amount:      decimal.NewFromInt(3000),
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CategoryID:  category.ID,
		UserID:      s.userID,
		Category:    *category,
	}
}

func (s *IncomeServiceTestSuite) writes(operation string) float64 {
	return testutil.ToFloat64(s.metrics.entriesWrittenTotal.WithLabelValues("income", operation))
}

func (s *IncomeServiceTestSuite) TestCreate_FillsEntry() {
	category := s.category(models.CategoryTypeIncome)
	amount := decimal.RequireFromString("2500.75")
	req := &dto.CreateTransactionRequest{
		Description: "  March salary ",
		Amount:      &amount,
		Date:        "2024-03-28",
		CategoryID:  category.ID,
	}

	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, category.ID, s.userID).Return(category, nil)
	s.incomeRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, i *models.Income) error {
		s.Equal("March salary", i.Description)
		s.Equal(time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC), i.Date)
		s.Equal(s.userID, i.UserID)
		s.Equal(category.ID, i.CategoryID)
		i.ID = uuid.New()
		return nil
	})

	income, err := s.service.Create(s.ctx, s.userID, req)

	s.NoError(err)
	s.NotEqual(uuid.Nil, income.ID)
	s.Equal("2500.75", income.Amount.String())
	s.Equal(category.Name, income.Category.Name)
	s.Equal(1.0, s.writes("create"))
}

func (s *IncomeServiceTestSuite) TestCreate_CategoryOfOtherUser() {
	categoryID := uuid.New()
	amount := decimal.NewFromInt(10)
	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, categoryID, s.userID).Return(nil, repositories.ErrCategoryNotFound)

	income, err := s.service.Create(s.ctx, s.userID, &dto.CreateTransactionRequest{
		Amount:     &amount,
		Date:       "2024-03-01",
		CategoryID: categoryID,
	})

	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(income)
	s.Equal(0.0, s.writes("create"))
}

func (s *IncomeServiceTestSuite) TestCreate_InvalidDate() {
	category := s.category(models.CategoryTypeIncome)
	amount := decimal.NewFromInt(10)
	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, category.ID, s.userID).Return(category, nil)

	income, err := s.service.Create(s.ctx, s.userID, &dto.CreateTransactionRequest{
		Amount:     &amount,
		Date:       "2024-02-30",
		CategoryID: category.ID,
	})

	s.ErrorIs(err, ErrInvalidEntry)
	s.Nil(income)
}

func (s *IncomeServiceTestSuite) TestCreate_RepositoryError() {
	category := s.category(models.CategoryTypeIncome)
	amount := decimal.NewFromInt(10)
	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, category.ID, s.userID).Return(category, nil)
	s.incomeRepo.EXPECT().Create(s.ctx, gomock.Any()).Return(errors.New("connection reset"))

	income, err := s.service.Create(s.ctx, s.userID, &dto.CreateTransactionRequest{
		Amount:     &amount,
		Date:       "2024-03-01",
		CategoryID: category.ID,
	})

	s.ErrorContains(err, "failed to create income")
	s.Nil(income)
}

func (s *IncomeServiceTestSuite) TestGet_NotFound() {
	id := uuid.New()
	s.incomeRepo.EXPECT().GetByIDForUser(s.ctx, id, s.userID).Return(nil, repositories.ErrIncomeNotFound)

	income, err := s.service.Get(s.ctx, s.userID, id)

	s.ErrorIs(err, ErrIncomeNotFound)
	s.Nil(income)
}

func (s *IncomeServiceTestSuite) TestUpdate_PartialFields() {
	category := s.category(models.CategoryTypeIncome)
	existing := s.income(category)
	description := " Bonus "

	s.incomeRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.incomeRepo.EXPECT().Update(s.ctx, existing).Return(nil)

	income, err := s.service.Update(s.ctx, s.userID, existing.ID, &dto.UpdateTransactionRequest{
		Description: &description,
	})

	s.NoError(err)
	s.Equal("Bonus", income.Description)
	s.Equal("3000", income.Amount.String())
	s.Equal(1, income.Date.Day())
	s.Equal(category.ID, income.CategoryID)
	s.Equal(1.0, s.writes("update"))
}

func (s *IncomeServiceTestSuite) TestUpdate_MoveToOwnIncomeCategory() {
	existing := s.income(s.category(models.CategoryTypeIncome))
	target := s.category(models.CategoryTypeIncome)

	s.incomeRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, target.ID, s.userID).Return(target, nil)
	s.incomeRepo.EXPECT().Update(s.ctx, existing).Return(nil)

	income, err := s.service.Update(s.ctx, s.userID, existing.ID, &dto.UpdateTransactionRequest{CategoryID: &target.ID})

	s.NoError(err)
	s.Equal(target.ID, income.CategoryID)
	s.Equal(target.Name, income.Category.Name)
}

func (s *IncomeServiceTestSuite) TestUpdate_MoveToExpenseCategoryRejected() {
	existing := s.income(s.category(models.CategoryTypeIncome))
	target := s.category(models.CategoryTypeExpense)

	s.incomeRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, target.ID, s.userID).Return(target, nil)

	income, err := s.service.Update(s.ctx, s.userID, existing.ID, &dto.UpdateTransactionRequest{CategoryID: &target.ID})

	s.ErrorIs(err, ErrCategoryTypeMismatch)
	s.Nil(income)
	s.Equal(0.0, s.writes("update"))
}

func (s *IncomeServiceTestSuite) TestUpdate_NegativeAmount() {
	existing := s.income(s.category(models.CategoryTypeIncome))
	amount := decimal.NewFromInt(-5)

	s.incomeRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)

	income, err := s.service.Update(s.ctx, s.userID, existing.ID, &dto.UpdateTransactionRequest{Amount: &amount})

	s.ErrorIs(err, ErrInvalidEntry)
	s.Nil(income)
}

func (s *IncomeServiceTestSuite) TestUpdate_NotFound() {
	id := uuid.New()
	s.incomeRepo.EXPECT().GetByIDForUser(s.ctx, id, s.userID).Return(nil, repositories.ErrIncomeNotFound)

	income, err := s.service.Update(s.ctx, s.userID, id, &dto.UpdateTransactionRequest{})

	s.ErrorIs(err, ErrIncomeNotFound)
	s.Nil(income)
}

func (s *IncomeServiceTestSuite) TestDelete_Success() {
	id := uuid.New()
	s.incomeRepo.EXPECT().Delete(s.ctx, id, s.userID).Return(nil)

	s.NoError(s.service.Delete(s.ctx, s.userID, id))
	s.Equal(1.0, s.writes("delete"))
}

func (s *IncomeServiceTestSuite) TestList_PassesFilters() {
	filters := models.TransactionFilters{UserID: s.userID}
	expected := []models.Income{{ID: uuid.New()}, {ID: uuid.New()}}
	s.incomeRepo.EXPECT().List(s.ctx, filters).Return(expected, nil)

	incomes, err := s.service.List(s.ctx, filters)

	s.NoError(err)
	s.Equal(expected, incomes)
}
