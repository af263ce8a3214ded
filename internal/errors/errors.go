package errors

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is matched by every not-initialized AppError via errors.Is.
var ErrNotInitialized = &AppError{Type: ErrorTypeNotInitialized, Code: "NOT_INITIALIZED"}

// newError builds an AppError; details are key/value pairs.
func newError(t ErrorType, code, message string, cause error, details ...any) *AppError {
	e := &AppError{Type: t, Code: code, Message: message, Cause: cause}
	if len(details) > 0 {
		e.Details = make(map[string]any, len(details)/2)
		for i := 0; i+1 < len(details); i += 2 {
			e.Details[fmt.Sprint(details[i])] = details[i+1]
		}
	}
	return e
}

// NewValidationError reports input that failed validation. cause is usually
// a *validation.ValidationError carrying per-field messages.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause)
}

func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, "NOT_FOUND", fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		"resource", resource, "identifier", identifier)
}

// NewDatabaseError wraps a failure the caller should not see the details of.
func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, "DATABASE_ERROR", "database operation failed: "+operation, cause,
		"operation", operation)
}

// NewExecutionError wraps a statement failure. The message is the backend's
// own message, unmodified.
func NewExecutionError(statement string, cause error) *AppError {
	message := "statement execution failed"
	if cause != nil {
		message = cause.Error()
	}
	return newError(ErrorTypeExecution, "EXECUTION_FAILED", message, cause, "statement", statement)
}

// NewNotInitializedError is returned when the database is used before its
// initialization has completed.
func NewNotInitializedError(component string) *AppError {
	return newError(ErrorTypeNotInitialized, ErrNotInitialized.Code, component+" not initialized", nil,
		"component", component)
}

// NewPolicyError reports a statement rejected by the read-only query gate.
func NewPolicyError(reason string) *AppError {
	return newError(ErrorTypePolicy, "POLICY_REJECTED", reason, nil)
}

// NewConfigurationError reports missing or invalid startup configuration.
func NewConfigurationError(field string, cause error) *AppError {
	return newError(ErrorTypeConfiguration, "CONFIGURATION_ERROR", "invalid configuration: "+field, cause,
		"field", field)
}

func NewTimeoutError(operation string, timeout any) *AppError {
	return newError(ErrorTypeTimeout, "TIMEOUT", "operation timed out: "+operation, nil,
		"operation", operation, "timeout", timeout)
}

// NewPermissionError reports an operation the environment forbids.
func NewPermissionError(operation string, resource string) *AppError {
	return newError(ErrorTypePermission, "PERMISSION_DENIED",
		fmt.Sprintf("permission denied for %s on %s", operation, resource), nil,
		"operation", operation, "resource", resource)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// Faults whose own message would leak internals get a generic one.
var genericMessages = map[ErrorType]string{
	ErrorTypeDatabase:       "A database error occurred. Please try again.",
	ErrorTypeTimeout:        "The operation timed out. Please try again.",
	ErrorTypeNotInitialized: "The database is not ready yet. Please try again.",
}

// GetUserMessage returns the message to show a client for err
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if msg, generic := genericMessages[appErr.Type]; generic {
		return msg
	}
	return appErr.Message
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// Caller mistakes, not system faults.
var quietTypes = map[ErrorType]bool{
	ErrorTypeValidation: true,
	ErrorTypeNotFound:   true,
	ErrorTypePolicy:     true,
	ErrorTypePermission: true,
}

// ShouldLogError reports whether err is worth an error log line
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !quietTypes[appErr.Type]
}
