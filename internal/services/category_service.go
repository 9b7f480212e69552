package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryInUse        = errors.New("category still has expenses or incomes")
	ErrCategoryTypeMismatch = errors.New("category type does not match the entry")
	ErrInvalidCategory      = errors.New("invalid category")
)

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	expenseRepo  repositories.ExpenseRepositoryInterface
	incomeRepo   repositories.IncomeRepositoryInterface
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	incomeRepo repositories.IncomeRepositoryInterface,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	categoryType, err := models.ParseCategoryType(req.Type)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:   strings.TrimSpace(req.Name),
		Type:   categoryType,
		UserID: userID,
	}

	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("category created",
		"user_id", userID,
		"category_id", category.ID,
		"type", category.Type)

	return category, nil
}

// List returns the user's categories, optionally restricted to one type.
func (s *categoryService) List(ctx context.Context, userID uuid.UUID, categoryType models.CategoryType) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID, categoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByIDForUser(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.Get(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}

	if req.Type != nil {
		categoryType, err := models.ParseCategoryType(*req.Type)
		if err != nil {
			return nil, err
		}

		// entries already filed under the category would end up on the wrong side
		if categoryType != category.Type {
			inUse, err := s.inUse(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			if inUse {
				return nil, ErrCategoryInUse
			}
		}
		category.Type = categoryType
	}

	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete removes a category that no expense or income references.
func (s *categoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, categoryID); err != nil {
		return err
	}

	inUse, err := s.inUse(ctx, categoryID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, categoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	slog.Info("category deleted", "user_id", userID, "category_id", categoryID)

	return nil
}

// inUse checks expenses and incomes concurrently.
func (s *categoryService) inUse(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var hasExpenses, hasIncomes bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hasExpenses, err = s.expenseRepo.ExistsForCategory(gctx, categoryID)
		return err
	})
	g.Go(func() error {
		var err error
		hasIncomes, err = s.incomeRepo.ExistsForCategory(gctx, categoryID)
		return err
	})

	if err := g.Wait(); err != nil {
		return false, fmt.Errorf("failed to check category usage: %w", err)
	}

	return hasExpenses || hasIncomes, nil
}
