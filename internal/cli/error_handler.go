package cli

import (
	stderrors "errors"
	"fmt"

	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// handledError carries a terminal-friendly message while keeping the
// original error reachable through errors.Is and errors.As.
type handledError struct {
	msg string
	err error
}

func (e *handledError) Error() string { return e.msg }

func (e *handledError) Unwrap() error { return e.err }

// ErrorHandler turns service errors into messages fit for a terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user-facing message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if ve, ok := validation.AsValidationError(err); ok {
		return &handledError{fmt.Sprintf("failed to %s: %s", operation, ve.Summary()), err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &handledError{fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)), err}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple returns the user-facing message alone
func (eh *ErrorHandler) HandleSimple(err error) error {
	var handled *handledError
	if stderrors.As(err, &handled) {
		return err
	}

	if ve, ok := validation.AsValidationError(err); ok {
		return &handledError{ve.Summary(), err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &handledError{errors.GetUserMessage(err), err}
	}

	return err
}

// IsPolicyError checks if a statement was refused by the query gate
func (eh *ErrorHandler) IsPolicyError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypePolicy)
}

// ExitCode maps an error to a process exit status. Refused or malformed
// input exits with 2, everything else with 1.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case validation.IsValidationError(err),
		errors.IsErrorType(err, errors.ErrorTypeValidation),
		eh.IsPolicyError(err):
		return 2
	default:
		return 1
	}
}
