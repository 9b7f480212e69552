package errors

import (
	"fmt"
	"sort"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption customizes a response built by NewErrorResponse
type ErrorOption func(*ErrorDetail)

// WithDetails replaces the detail lines.
func WithDetails(details ...string) ErrorOption {
	return func(d *ErrorDetail) {
		d.Details = details
	}
}

// WithMessage overrides the catalog message.
func WithMessage(message string) ErrorOption {
	return func(d *ErrorDetail) {
		d.Message = message
	}
}

func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	detail := ErrorDetail{
		Code:    string(code),
		Message: GetErrorMessage(code),
		TraceID: traceID,
	}
	for _, opt := range opts {
		opt(&detail)
	}
	return &ErrorResponse{Error: detail}
}

// NewValidationError builds a VALIDATION_001 response with one "field: message"
// detail per entry, sorted by field name.
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, field+": "+fieldErrors[field])
	}

	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// NewSystemError is the SYSTEM_001 body shown in place of an internal error.
// The cause is never part of the response.
func NewSystemError(traceID string) *ErrorResponse {
	return NewErrorResponse(SystemInternalError, traceID)
}

func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
