package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the authenticated user's own profile
type UserHandler struct {
	userService services.UserServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the caller's profile
// @Summary Get current user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse{data=dto.UserResponse}
// @Failure 401 {object} errors.ErrorResponse "AUTH_002"
// @Failure 404 {object} errors.ErrorResponse "USER_001"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		return h.sendUserError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewUserResponse(user)})
}

// UpdateMe changes the caller's name and/or email
// @Summary Update current user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Failure 409 {object} errors.ErrorResponse "USER_002 - email in use"
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		return h.sendUserError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewUserResponse(user),
		Message: "Profile updated successfully",
	})
}

// ChangePassword replaces the caller's password after checking the current one
// @Summary Change password
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 or AUTH_006"
// @Failure 401 {object} errors.ErrorResponse "AUTH_001 - current password wrong"
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.userService.ChangePassword(userID, &req); err != nil {
		switch {
		case stderrors.Is(err, services.ErrCurrentPasswordWrong):
			return SendError(c, errors.AuthInvalidCredentials, errors.WithMessage("Current password is incorrect"))
		case stderrors.Is(err, services.ErrSamePassword):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		case services.IsPolicyViolation(err):
			return SendError(c, errors.AuthWeakPassword, errors.WithDetails(policyDetail(err)))
		}
		return h.sendUserError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Password changed successfully"})
}

// DeleteMe removes the caller together with all their categories, expenses and incomes
// @Summary Delete current user
// @Tags Users
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "USER_001"
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	if err := h.userService.DeleteAccount(userID); err != nil {
		return h.sendUserError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) sendUserError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrUserNotFound):
		return SendError(c, errors.UserNotFound)
	case stderrors.Is(err, services.ErrEmailAlreadyInUse):
		return SendError(c, errors.UserAlreadyExists)
	case stderrors.Is(err, services.ErrInvalidProfile):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
