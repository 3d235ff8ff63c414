package domain

import (
	"fmt"
	"strings"
)

// ErrorCode identifies a class of failure the HTTP layer knows how to map.
type ErrorCode string

const (
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeQuotaExceeded ErrorCode = "QUOTA_EXCEEDED"

	CodeLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
	CodeLedgerError     ErrorCode = "LEDGER_ERROR"

	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
)

// DomainError is the error type every layer below the HTTP boundary
// returns. Cause is kept for server-side logging and never serialized.
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Cause }

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string, cause error) *DomainError {
	return NewError(CodeUnauthorized, message, cause)
}

// NewQuotaExceededError carries the observed spend and the ceiling in the
// error context so operators can see both in logs.
func NewQuotaExceededError(email string, spent, limit float64) *DomainError {
	return &DomainError{
		Code:    CodeQuotaExceeded,
		Message: "Cost limit exceeded, please contact support",
		Context: map[string]interface{}{
			"email": email,
			"spent": spent,
			"limit": limit,
		},
	}
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to generate quiz", cause)
}

func NewLedgerError(message string, cause error) *DomainError {
	return NewError(CodeLedgerError, message, cause)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors so the caller sees every
// problem in one response.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, detail string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid value: %s", detail)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value),
	}
}
