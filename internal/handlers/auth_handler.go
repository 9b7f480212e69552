package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"expense-manager/internal/dto"
	"expense-manager/internal/errors"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} SuccessResponse{data=dto.UserResponse} "User created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 or AUTH_006 (weak password)"
// @Failure 409 {object} errors.ErrorResponse "USER_002 - email already registered"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrUserAlreadyExists):
			return SendError(c, errors.UserAlreadyExists)
		case services.IsPolicyViolation(err):
			return SendError(c, errors.AuthWeakPassword, errors.WithDetails(policyDetail(err)))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewUserResponse(user),
		Message: "User registered successfully",
	})
}

// Login handles user authentication
// @Summary Login user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse "Access token"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Failure 401 {object} errors.ErrorResponse "AUTH_001 - invalid credentials"
// @Failure 403 {object} errors.ErrorResponse "AUTH_005 - account locked"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrAccountLocked):
			return SendError(c, errors.AuthAccountLocked)
		case stderrors.Is(err, services.ErrInvalidCredentials):
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout revokes the bearer token used for this request
// @Summary Logout user
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse "Logout successful"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002, AUTH_003 or AUTH_004"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return SendError(c, errors.AuthMissingToken)
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return SendError(c, errors.AuthInvalidToken)
	}

	// a token that survived RequireAuth but cannot be revoked must not look logged out
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Logout successful",
	})
}

// policyDetail names the password rule that failed without the hashing context.
func policyDetail(err error) string {
	rules := []error{
		services.ErrPasswordEmpty,
		services.ErrPasswordTooShort,
		services.ErrPasswordTooLong,
		services.ErrPasswordNoLetter,
		services.ErrPasswordNoNumber,
	}
	for _, rule := range rules {
		if stderrors.Is(err, rule) {
			return rule.Error()
		}
	}
	return err.Error()
}
