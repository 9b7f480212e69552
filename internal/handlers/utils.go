package handlers

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserIDContextKey is where RequireAuth stores the authenticated user's ID
const UserIDContextKey = "user_id"

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext returns ErrUnauthorized if the user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get(UserIDContextKey)
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

func getIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// getIntQueryParam reports whether the parameter was present and parses it strictly.
func getIntQueryParam(c echo.Context, name string) (int, bool, error) {
	param := c.QueryParam(name)
	if param == "" {
		return 0, false, nil
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, true, err
	}

	return value, true, nil
}
