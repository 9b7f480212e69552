package handlers

import (
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
	"github.com/stretchr/testify/suite"
)

func TestCategoryHandler(t *testing.T) {
	suite.Run(t, new(CategoryHandlerSuite))
}

type CategoryHandlerSuite struct {
	handlerSuite
	ctrl            *gomock.Controller
	categoryService *service_mocks.MockCategoryServiceInterface
	handler         *CategoryHandler
}

func (s *CategoryHandlerSuite) SetupTest() {
	s.setupEcho()
	s.ctrl = gomock.NewController(s.T())
	s.categoryService = service_mocks.NewMockCategoryServiceInterface(s.ctrl)
	s.handler = NewCategoryHandler(s.categoryService)
}

func (s *CategoryHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CategoryHandlerSuite) category(categoryType models.CategoryType) *models.Category {
	return &models.Category{
		ID:        uuid.New(),
		Name:      gofakeit.Word(),
		Type:      categoryType,
		UserID:    s.userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (s *CategoryHandlerSuite) TestCreateCategory() {
	created := s.category(models.CategoryTypeExpense)

	s.categoryService.EXPECT().Create(gomock.Any(), s.userID, &dto.CreateCategoryRequest{Name: created.Name, Type: "EXPENSE"}).
		Return(created, nil)

	c, rec := s.authedContext(http.MethodPost, "/api/v1/categories", map[string]string{"name": created.Name, "type": "EXPENSE"})

	s.NoError(s.handler.CreateCategory(c))
	s.expectStatus(rec, http.StatusCreated)

	var got dto.CategoryResponse
	s.decodeData(rec, &got)
	s.Equal(created.ID, got.ID)
	s.Equal(models.CategoryTypeExpense, got.Type)
}

func (s *CategoryHandlerSuite) TestCreateCategory_InvalidType() {
	c, _ := s.authedContext(http.MethodPost, "/api/v1/categories", map[string]string{"name": "Gifts", "type": "TRANSFER"})

	s.Error(s.handler.CreateCategory(c))
}

func (s *CategoryHandlerSuite) TestListCategories_TypeFilter() {
	categories := []models.Category{*s.category(models.CategoryTypeIncome), *s.category(models.CategoryTypeIncome)}
	s.categoryService.EXPECT().List(gomock.Any(), s.userID, models.CategoryTypeIncome).Return(categories, nil)

	c, rec := s.authedContext(http.MethodGet, "/api/v1/categories?type=income", nil)

	s.NoError(s.handler.ListCategories(c))
	s.expectStatus(rec, http.StatusOK)

	var got []dto.CategoryResponse
	s.decodeData(rec, &got)
	s.Len(got, 2)
	s.Contains(rec.Body.String(), `"count":2`)
}

func (s *CategoryHandlerSuite) TestListCategories_NoFilter() {
	s.categoryService.EXPECT().List(gomock.Any(), s.userID, models.CategoryType("")).Return([]models.Category{}, nil)

	c, rec := s.authedContext(http.MethodGet, "/api/v1/categories", nil)

	s.NoError(s.handler.ListCategories(c))
	s.expectStatus(rec, http.StatusOK)
	s.Contains(rec.Body.String(), `"data":[]`)
}

func (s *CategoryHandlerSuite) TestGetCategory_NotFound() {
	id := uuid.New()
	s.categoryService.EXPECT().Get(gomock.Any(), s.userID, id).Return(nil, services.ErrCategoryNotFound)

	c, rec := s.authedContext(http.MethodGet, "/api/v1/categories/"+id.String(), nil)

	s.NoError(s.handler.GetCategory(s.withID(c, id.String())))
	s.assertError(rec, http.StatusNotFound, "CATEGORY_001")
}

func (s *CategoryHandlerSuite) TestGetCategory_InvalidID() {
	c, rec := s.authedContext(http.MethodGet, "/api/v1/categories/abc", nil)

	s.NoError(s.handler.GetCategory(s.withID(c, "abc")))
	s.assertError(rec, http.StatusBadRequest, "VALIDATION_007")
}

func (s *CategoryHandlerSuite) TestUpdateCategory_TypeChangeInUse() {
	id := uuid.New()
	s.categoryService.EXPECT().Update(gomock.Any(), s.userID, id, gomock.Any()).Return(nil, services.ErrCategoryInUse)

	c, rec := s.authedContext(http.MethodPatch, "/api/v1/categories/"+id.String(), map[string]string{"type": "INCOME"})

	s.NoError(s.handler.UpdateCategory(s.withID(c, id.String())))
	s.assertError(rec, http.StatusConflict, "CATEGORY_002")
}

func (s *CategoryHandlerSuite) TestDeleteCategory() {
	id := uuid.New()
	s.categoryService.EXPECT().Delete(gomock.Any(), s.userID, id).Return(nil)

	c, rec := s.authedContext(http.MethodDelete, "/api/v1/categories/"+id.String(), nil)

	s.NoError(s.handler.DeleteCategory(s.withID(c, id.String())))
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *CategoryHandlerSuite) TestDeleteCategory_InUse() {
	id := uuid.New()
	s.categoryService.EXPECT().Delete(gomock.Any(), s.userID, id).Return(services.ErrCategoryInUse)

	c, rec := s.authedContext(http.MethodDelete, "/api/v1/categories/"+id.String(), nil)

	s.NoError(s.handler.DeleteCategory(s.withID(c, id.String())))
	s.assertError(rec, http.StatusConflict, "CATEGORY_002")
}
