package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Notification parsing error codes (PARSE_*)
const (
	ParseAmountNotFound      ErrorCode = "PARSE_001"
	ParseDescriptionNotFound ErrorCode = "PARSE_002"
	ParseDateNotFound        ErrorCode = "PARSE_003"
	ParseSubjectNotFound     ErrorCode = "PARSE_004"
	ParseBadEncoding         ErrorCode = "PARSE_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
	ValidationBadPattern    ErrorCode = "VALIDATION_005"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound        ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount   ErrorCode = "TRANSACTION_002"
	TransactionInvalidCategory ErrorCode = "TRANSACTION_003"
	TransactionInvalidID       ErrorCode = "TRANSACTION_004"
)

// Allowance error codes (ALLOWANCE_*)
const (
	AllowanceInvalidAmount ErrorCode = "ALLOWANCE_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Parsing errors; the message text matches the responses the original
	// notification webhooks returned to the provider
	ParseAmountNotFound:      "Could not parse transaction amount",
	ParseDescriptionNotFound: "Could not parse transaction description",
	ParseDateNotFound:        "Could not parse transaction date",
	ParseSubjectNotFound:     "Could not find email subject",
	ParseBadEncoding:         "Could not decode notification payload",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationBadPattern:    "Invalid search pattern",

	// Transaction errors
	TransactionNotFound:        "Transaction not found",
	TransactionInvalidAmount:   "Invalid transaction amount",
	TransactionInvalidCategory: "Invalid transaction category",
	TransactionInvalidID:       "Invalid transaction ID format",

	// Allowance errors
	AllowanceInvalidAmount: "Invalid allowance amount",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
