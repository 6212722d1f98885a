package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("validation failed")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// SchemaViolationError is fatal for its document: the assembled output
// does not conform to the output contract. It carries the unmodified
// upstream payload so operators can diagnose without re-running the model.
type SchemaViolationError struct {
	FileName string
	Detail   error
	Raw      []byte
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation for %q: %v", e.FileName, e.Detail)
}

func (e *SchemaViolationError) Unwrap() error { return e.Detail }

// EmptyExtractionError is fatal for its document: no dimension candidate
// survived classification. Distinct from SchemaViolationError because the
// document may be well-formed yet contain no usable data.
type EmptyExtractionError struct {
	FileName string
	Dropped  int
	Raw      []byte
}

func (e *EmptyExtractionError) Error() string {
	return fmt.Sprintf("no usable dimensions extracted from %q (%d candidates dropped)", e.FileName, e.Dropped)
}
