package middleware

import (
	stderrors "errors"

	"expense-manager/internal/errors"
	"expense-manager/internal/handlers"
	"expense-manager/internal/repositories"
	"expense-manager/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid bearer token
// and checks that the token has not been revoked by a logout
func RequireAuth(tokenService services.TokenServiceInterface, blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidToken, errors.WithDetails("Authorization header must be 'Bearer <token>'"))
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidToken)
			}

			revoked, err := blacklistedTokenRepo.GetByJTI(c.Request().Context(), claims.ID)
			if err != nil && !stderrors.Is(err, repositories.ErrTokenNotFound) {
				return handlers.SendSystemError(c, err)
			}
			if err == nil && revoked != nil {
				return handlers.SendError(c, errors.AuthInvalidToken, errors.WithDetails("Token has been revoked"))
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidToken, errors.WithDetails("Invalid user ID in token"))
			}

			c.Set(handlers.UserIDContextKey, userID)
			c.Set("user_email", claims.Email)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
