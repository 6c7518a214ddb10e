package errors

import (
	stderrors "errors"
	"fmt"

	"agrismart/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of the wrapped error
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is (or wraps) an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"

	CodeUnknownCategory  = "UNKNOWN_CATEGORY"
	CodeMissingArtifact  = "MISSING_ARTIFACT"
	CodeMalformedInput   = "MALFORMED_INPUT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
)

// Common error constructors
func ConfigInvalid(message string, cause error) *AppError {
	return &AppError{Code: CodeConfigInvalid, Message: message, Cause: cause}
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

// UnknownCategory reports a categorical value that was not seen when the encoders were fitted.
func UnknownCategory(field, value string) *AppError {
	return &AppError{
		Code:    CodeUnknownCategory,
		Message: fmt.Sprintf("unknown %s %q: not seen during training", field, value),
		Cause:   core.ErrUnknownCategory,
	}
}

// MissingArtifact reports an absent or unreadable persisted artifact.
func MissingArtifact(name string, cause error) *AppError {
	if cause == nil {
		cause = core.ErrMissingArtifact
	} else {
		cause = fmt.Errorf("%w: %w", core.ErrMissingArtifact, cause)
	}
	return &AppError{
		Code:    CodeMissingArtifact,
		Message: fmt.Sprintf("artifact %s unavailable", name),
		Cause:   cause,
	}
}

// MalformedInput reports a missing or unparseable command-line JSON argument.
func MalformedInput(message string) *AppError {
	return &AppError{
		Code:    CodeMalformedInput,
		Message: message,
		Cause:   core.ErrMalformedInput,
	}
}

// InsufficientData reports a dataset that cannot support training. The cause
// always matches core.ErrInsufficientData.
func InsufficientData(message string, cause error) *AppError {
	switch {
	case cause == nil:
		cause = core.ErrInsufficientData
	case !stderrors.Is(cause, core.ErrInsufficientData):
		cause = fmt.Errorf("%w: %w", core.ErrInsufficientData, cause)
	}
	return &AppError{
		Code:    CodeInsufficientData,
		Message: message,
		Cause:   cause,
	}
}
