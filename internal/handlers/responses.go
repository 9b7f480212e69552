package handlers

import (
	"log/slog"
	"net/http"

	"expense-manager/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers answer every error through SendError (4xx and business rules) or
// SendSystemError (anything the client must not see the details of). Returning
// a raw error is reserved for validator errors, which CustomHTTPErrorHandler
// renders with per-field details.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse wraps resource payloads
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ListMeta accompanies list payloads
type ListMeta struct {
	Count int `json:"count"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError logs err and answers with a generic SYSTEM_001
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err)

	return c.JSON(http.StatusInternalServerError, errors.NewSystemError(traceID))
}
