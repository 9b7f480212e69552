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
)

var ErrInvalidEntry = errors.New("invalid entry")

// entryRepository is the part of the expense and income repositories the
// entry service needs.
type entryRepository[E any] interface {
	Create(ctx context.Context, entry *E) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*E, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]E, error)
	Update(ctx context.Context, entry *E) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type entryModel[E any] interface {
	*E
	Fields() models.EntryFields
	Validate() error
}

// entryService implements the create/list/get/update/delete flow shared by
// expenses and incomes. kind names the entry in logs, metrics and errors.
type entryService[E any, P entryModel[E]] struct {
	kind         string
	categoryType models.CategoryType
	repo         entryRepository[E]
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	repoNotFound error
	errNotFound  error
}

// Create records an entry under one of the user's categories of the matching type.
func (s *entryService[E, P]) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*E, error) {
	category, err := ownedCategory(ctx, s.categoryRepo, userID, req.CategoryID, s.categoryType)
	if err != nil {
		return nil, err
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	entry := P(new(E))
	f := entry.Fields()
	*f.Description = strings.TrimSpace(req.Description)
	*f.Amount = *req.Amount
	*f.Date = date
	*f.CategoryID = category.ID
	*f.UserID = userID

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	if err := s.repo.Create(ctx, (*E)(entry)); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}
	*f.Category = *category

	recordEntryWrite(s.metrics, s.kind, "create")
	slog.Info(s.kind+" created",
		"user_id", userID,
		s.kind+"_id", *f.ID,
		"category_id", category.ID)

	return (*E)(entry), nil
}

func (s *entryService[E, P]) List(ctx context.Context, filters models.TransactionFilters) ([]E, error) {
	entries, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.kind, err)
	}
	return entries, nil
}

func (s *entryService[E, P]) Get(ctx context.Context, userID, entryID uuid.UUID) (*E, error) {
	entry, err := s.repo.GetByIDForUser(ctx, entryID, userID)
	if err != nil {
		if errors.Is(err, s.repoNotFound) {
			return nil, s.errNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.kind, err)
	}
	return entry, nil
}

// Update applies the non-nil fields of req. A new category must belong to the
// user and have the same type as the entry.
func (s *entryService[E, P]) Update(ctx context.Context, userID, entryID uuid.UUID, req *dto.UpdateTransactionRequest) (*E, error) {
	found, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	entry := P(found)
	f := entry.Fields()

	if req.CategoryID != nil && *req.CategoryID != *f.CategoryID {
		category, err := ownedCategory(ctx, s.categoryRepo, userID, *req.CategoryID, s.categoryType)
		if err != nil {
			return nil, err
		}
		*f.CategoryID = category.ID
		*f.Category = *category
	}

	if req.Description != nil {
		*f.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		*f.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
		*f.Date = date
	}

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	if err := s.repo.Update(ctx, found); err != nil {
		if errors.Is(err, s.repoNotFound) {
			return nil, s.errNotFound
		}
		return nil, fmt.Errorf("failed to update %s: %w", s.kind, err)
	}

	recordEntryWrite(s.metrics, s.kind, "update")

	return found, nil
}

func (s *entryService[E, P]) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if err := s.repo.Delete(ctx, entryID, userID); err != nil {
		if errors.Is(err, s.repoNotFound) {
			return s.errNotFound
		}
		return fmt.Errorf("failed to delete %s: %w", s.kind, err)
	}

	recordEntryWrite(s.metrics, s.kind, "delete")
	slog.Info(s.kind+" deleted", "user_id", userID, s.kind+"_id", entryID)

	return nil
}

// ownedCategory loads a category of the user and checks it files entries of want.
func ownedCategory(ctx context.Context, repo repositories.CategoryRepositoryInterface, userID, categoryID uuid.UUID, want models.CategoryType) (*models.Category, error) {
	category, err := repo.GetByIDForUser(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category.Type != want {
		return nil, ErrCategoryTypeMismatch
	}

	return category, nil
}

func recordEntryWrite(metrics MetricsRecorderInterface, kind, operation string) {
	metrics.IncrementCounter(MetricEntryWritten, map[string]string{
		"kind":      kind,
		"operation": operation,
	})
}
