package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email is already in use")
	ErrInvalidProfile    = errors.New("invalid profile")
)

type userService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
}

func NewUserService(userRepo repositories.UserRepositoryInterface, passwordService PasswordServiceInterface) UserServiceInterface {
	return &userService{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

func (s *userService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of req. An email already used by
// another account is rejected.
func (s *userService) UpdateProfile(userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != user.Name {
			updates["name"] = name
			user.Name = name
		}
	}

	if req.Email != nil {
		email := models.NormalizeEmail(*req.Email)
		if email != user.Email {
			taken, err := s.userRepo.GetByEmailExcluding(email, userID)
			if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if taken != nil {
				return nil, ErrEmailAlreadyInUse
			}
			updates["email"] = email
			user.Email = email
		}
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	now := time.Now()
	updates["updated_at"] = now

	if err := s.userRepo.UpdateFields(userID, updates); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailAlreadyExists):
			return nil, ErrEmailAlreadyInUse
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.UpdatedAt = now

	slog.Info("user profile updated", "user_id", userID, "fields", len(updates)-1)

	return user, nil
}

func (s *userService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == req.NewPassword {
		return ErrSamePassword
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if !s.passwordService.ComparePassword(req.CurrentPassword, user.PasswordHash) {
		return ErrCurrentPasswordWrong
	}

	hashed, err := s.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	fields := map[string]interface{}{
		"password_hash": hashed,
		"updated_at":    time.Now(),
	}
	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("user password changed", "user_id", userID)

	return nil
}

// DeleteAccount removes the user and everything they own.
func (s *userService) DeleteAccount(userID uuid.UUID) error {
	if err := s.userRepo.DeleteWithData(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted", "user_id", userID)

	return nil
}
