package errors

import "fmt"

// ErrorType classifies an AppError. The value is also its log name.
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeDatabase       ErrorType = "database"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypePermission     ErrorType = "permission"
	ErrorTypeNotInitialized ErrorType = "not_initialized"
	ErrorTypeExecution      ErrorType = "execution"
	ErrorTypePolicy         ErrorType = "policy"
	ErrorTypeConfiguration  ErrorType = "configuration"
)

func (et ErrorType) String() string {
	if et == "" {
		return "unknown"
	}
	return string(et)
}

// AppError is returned by every layer below the HTTP and CLI boundaries.
// Message is safe to show to a client; Details never is.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Details map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so sentinels
// such as ErrNotInitialized work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// Detail returns a recorded detail such as the failed statement.
func (e *AppError) Detail(key string) (any, bool) {
	v, ok := e.Details[key]
	return v, ok
}

// WithMessage replaces the client-facing message.
func (e *AppError) WithMessage(message string) *AppError {
	e.Message = message
	return e
}
