package errors

import "net/http"

// ErrorCode is the stable, machine-readable code returned in every error body
type ErrorCode string

// Authentication (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidToken       ErrorCode = "AUTH_004"
	AuthAccountLocked      ErrorCode = "AUTH_005"
	AuthWeakPassword       ErrorCode = "AUTH_006"
)

// Request validation (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
	ValidationInvalidID     ErrorCode = "VALIDATION_007"
)

// Users (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
)

// Categories (CATEGORY_*)
const (
	CategoryNotFound     ErrorCode = "CATEGORY_001"
	CategoryInUse        ErrorCode = "CATEGORY_002"
	CategoryTypeMismatch ErrorCode = "CATEGORY_003"
)

// Expenses (EXPENSE_*)
const (
	ExpenseNotFound ErrorCode = "EXPENSE_001"
)

// Incomes (INCOME_*)
const (
	IncomeNotFound ErrorCode = "INCOME_001"
)

// Reports (REPORT_*)
const (
	ReportInvalidPeriod ErrorCode = "REPORT_001"
	ReportTimeout       ErrorCode = "REPORT_002"
)

// System (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

type codeInfo struct {
	message string
	status  int
}

// catalog holds the default message and HTTP status of every code.
var catalog = map[ErrorCode]codeInfo{
	AuthInvalidCredentials: {"Invalid email or password", http.StatusUnauthorized},
	AuthMissingToken:       {"Authorization token is required", http.StatusUnauthorized},
	AuthExpiredToken:       {"Authorization token has expired", http.StatusUnauthorized},
	AuthInvalidToken:       {"Invalid or revoked authorization token", http.StatusUnauthorized},
	AuthAccountLocked:      {"Account is locked after too many failed login attempts", http.StatusForbidden},
	AuthWeakPassword:       {"Password does not meet the minimum requirements", http.StatusBadRequest},

	ValidationGeneral:       {"Validation failed", http.StatusBadRequest},
	ValidationRequiredField: {"Required field is missing", http.StatusBadRequest},
	ValidationInvalidFormat: {"Invalid field format", http.StatusBadRequest},
	ValidationOutOfRange:    {"Field value is out of allowed range", http.StatusBadRequest},
	ValidationInvalidEmail:  {"Invalid email address format", http.StatusBadRequest},
	ValidationInvalidDate:   {"Invalid date, expected YYYY-MM-DD", http.StatusBadRequest},
	ValidationInvalidID:     {"Invalid identifier format", http.StatusBadRequest},

	UserNotFound:      {"User not found", http.StatusNotFound},
	UserAlreadyExists: {"A user with this email already exists", http.StatusConflict},

	CategoryNotFound:     {"Category not found", http.StatusNotFound},
	CategoryInUse:        {"Category is referenced by existing expenses or incomes", http.StatusConflict},
	CategoryTypeMismatch: {"Category type does not match the transaction kind", http.StatusUnprocessableEntity},

	ExpenseNotFound: {"Expense not found", http.StatusNotFound},
	IncomeNotFound:  {"Income not found", http.StatusNotFound},

	ReportInvalidPeriod: {"Report period is invalid", http.StatusBadRequest},
	ReportTimeout:       {"Report computation timed out", http.StatusGatewayTimeout},

	SystemInternalError:      {"An unexpected error occurred. Please contact support with trace ID", http.StatusInternalServerError},
	SystemDatabaseError:      {"Database connection error", http.StatusInternalServerError},
	SystemServiceUnavailable: {"Service temporarily unavailable", http.StatusServiceUnavailable},
	SystemConfigurationError: {"System configuration error", http.StatusInternalServerError},
	SystemUnexpectedError:    {"An unexpected error occurred", http.StatusInternalServerError},
	SystemRateLimitExceeded:  {"Rate limit exceeded. Please try again later", http.StatusTooManyRequests},
}

// GetErrorMessage returns the default message for code, or a generic one
// for codes that are not registered.
func GetErrorMessage(code ErrorCode) string {
	if info, ok := catalog[code]; ok {
		return info.message
	}
	return "An error occurred"
}

// GetHTTPStatus returns the status a code is answered with. Unknown codes are 500.
func GetHTTPStatus(code ErrorCode) int {
	if info, ok := catalog[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

func IsValidErrorCode(code ErrorCode) bool {
	_, ok := catalog[code]
	return ok
}
