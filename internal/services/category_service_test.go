package services

import (
	"context"
	"errors"
	"testing"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/repositories/repository_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	expenseRepo  *repository_mocks.MockExpenseRepositoryInterface
	incomeRepo   *repository_mocks.MockIncomeRepositoryInterface
	service      CategoryServiceInterface
	ctx          context.Context
	userID       uuid.UUID
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.incomeRepo = repository_mocks.NewMockIncomeRepositoryInterface(s.ctrl)
	s.service = NewCategoryService(s.categoryRepo, s.expenseRepo, s.incomeRepo)
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *CategoryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CategoryServiceTestSuite) category(categoryType models.CategoryType) *models.Category {
	return &models.Category{
		ID:     uuid.New(),
		Name:   gofakeit.Word(),
		Type:   categoryType,
		UserID: s.userID,
	}
}

func (s *CategoryServiceTestSuite) TestCreate_NormalizesType() {
	req := &dto.CreateCategoryRequest{Name: "  Groceries ", Type: "expense"}

	s.categoryRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Category) error {
		s.Equal("Groceries", c.Name)
		s.Equal(models.CategoryTypeExpense, c.Type)
		s.Equal(s.userID, c.UserID)
		return nil
	})

	category, err := s.service.Create(s.ctx, s.userID, req)

	s.NoError(err)
	s.Equal(models.CategoryTypeExpense, category.Type)
}

func (s *CategoryServiceTestSuite) TestCreate_InvalidType() {
	category, err := s.service.Create(s.ctx, s.userID, &dto.CreateCategoryRequest{Name: "Gifts", Type: "TRANSFER"})

	s.ErrorIs(err, models.ErrInvalidCategoryType)
	s.Nil(category)
}

func (s *CategoryServiceTestSuite) TestCreate_BlankName() {
	category, err := s.service.Create(s.ctx, s.userID, &dto.CreateCategoryRequest{Name: "   ", Type: "INCOME"})

	s.ErrorIs(err, ErrInvalidCategory)
	s.Nil(category)
}

func (s *CategoryServiceTestSuite) TestList_PassesTypeFilter() {
	expected := []models.Category{*s.category(models.CategoryTypeIncome)}
	s.categoryRepo.EXPECT().ListByUser(s.ctx, s.userID, models.CategoryTypeIncome).Return(expected, nil)

	categories, err := s.service.List(s.ctx, s.userID, models.CategoryTypeIncome)

	s.NoError(err)
	s.Equal(expected, categories)
}

func (s *CategoryServiceTestSuite) TestGet_NotFound() {
	id := uuid.New()
	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, id, s.userID).Return(nil, repositories.ErrCategoryNotFound)

	category, err := s.service.Get(s.ctx, s.userID, id)

	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(category)
}

func (s *CategoryServiceTestSuite) TestUpdate_RenameOnly() {
	existing := s.category(models.CategoryTypeExpense)
	name := "Rent"

	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.categoryRepo.EXPECT().Update(s.ctx, existing).Return(nil)

	category, err := s.service.Update(s.ctx, s.userID, existing.ID, &dto.UpdateCategoryRequest{Name: &name})

	s.NoError(err)
	s.Equal("Rent", category.Name)
}

func (s *CategoryServiceTestSuite) TestUpdate_TypeChangeRefusedWhenInUse() {
	existing := s.category(models.CategoryTypeExpense)
	newType := "INCOME"

	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.expenseRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(true, nil)
	s.incomeRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, nil)

	category, err := s.service.Update(s.ctx, s.userID, existing.ID, &dto.UpdateCategoryRequest{Type: &newType})

	s.ErrorIs(err, ErrCategoryInUse)
	s.Nil(category)
}

func (s *CategoryServiceTestSuite) TestUpdate_TypeChangeAllowedWhenUnused() {
	existing := s.category(models.CategoryTypeExpense)
	newType := "income"

	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.expenseRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, nil)
	s.incomeRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, nil)
	s.categoryRepo.EXPECT().Update(s.ctx, existing).Return(nil)

	category, err := s.service.Update(s.ctx, s.userID, existing.ID, &dto.UpdateCategoryRequest{Type: &newType})

	s.NoError(err)
	s.Equal(models.CategoryTypeIncome, category.Type)
}

func (s *CategoryServiceTestSuite) TestDelete_Unused() {
	existing := s.category(models.CategoryTypeIncome)

	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.expenseRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, nil)
	s.incomeRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, nil)
	s.categoryRepo.EXPECT().Delete(s.ctx, existing.ID, s.userID).Return(nil)

	s.NoError(s.service.Delete(s.ctx, s.userID, existing.ID))
}

func (s *CategoryServiceTestSuite) TestDelete_InUseByIncome() {
	existing := s.category(models.CategoryTypeIncome)

	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.expenseRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, nil)
	s.incomeRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(true, nil)

	s.ErrorIs(s.service.Delete(s.ctx, s.userID, existing.ID), ErrCategoryInUse)
}

func (s *CategoryServiceTestSuite) TestDelete_UsageCheckFails() {
	existing := s.category(models.CategoryTypeExpense)

	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, existing.ID, s.userID).Return(existing, nil)
	s.expenseRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, errors.New("db down"))
	s.incomeRepo.EXPECT().ExistsForCategory(gomock.Any(), existing.ID).Return(false, nil).AnyTimes()

	err := s.service.Delete(s.ctx, s.userID, existing.ID)

	s.Error(err)
	s.NotErrorIs(err, ErrCategoryInUse)
}

func (s *CategoryServiceTestSuite) TestDelete_NotOwned() {
	id := uuid.New()
	s.categoryRepo.EXPECT().GetByIDForUser(s.ctx, id, s.userID).Return(nil, repositories.ErrCategoryNotFound)

	s.ErrorIs(s.service.Delete(s.ctx, s.userID, id), ErrCategoryNotFound)
}
