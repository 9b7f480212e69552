package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/models"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles the user's expense and income categories
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory creates a category for the caller
// @Summary Create category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} SuccessResponse{data=dto.CategoryResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return sendCategoryError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{Data: dto.NewCategoryResponse(category)})
}

// ListCategories lists the caller's categories, optionally of one type
// @Summary List categories
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param type query string false "EXPENSE or INCOME"
// @Success 200 {object} SuccessResponse{data=[]dto.CategoryResponse,meta=ListMeta}
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.CategoryQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(query); err != nil {
		return err
	}

	var categoryType models.CategoryType
	if query.Type != "" {
		categoryType, _ = models.ParseCategoryType(query.Type)
	}

	categories, err := h.categoryService.List(c.Request().Context(), userID, categoryType)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.NewCategoryResponses(categories),
		Meta: ListMeta{Count: len(categories)},
	})
}

// GetCategory returns one of the caller's categories
// @Summary Get category
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} SuccessResponse{data=dto.CategoryResponse}
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid category ID"))
	}

	category, err := h.categoryService.Get(c.Request().Context(), userID, categoryID)
	if err != nil {
		return sendCategoryError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewCategoryResponse(category)})
}

// UpdateCategory renames a category or changes its type
// @Summary Update category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=dto.CategoryResponse}
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_002 - type change on a used category"
// @Router /categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid category ID"))
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), userID, categoryID, &req)
	if err != nil {
		return sendCategoryError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewCategoryResponse(category)})
}

// DeleteCategory deletes a category no expense or income refers to
// @Summary Delete category
// @Tags Categories
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_002"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid category ID"))
	}

	if err := h.categoryService.Delete(c.Request().Context(), userID, categoryID); err != nil {
		return sendCategoryError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func sendCategoryError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, services.ErrCategoryInUse):
		return SendError(c, errors.CategoryInUse)
	case stderrors.Is(err, services.ErrInvalidCategory), stderrors.Is(err, models.ErrInvalidCategoryType):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
