package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind says which rule a field broke.
type Kind string

const (
	KindRequired Kind = "required"
	KindFormat   Kind = "invalid_format"
	KindLength   Kind = "invalid_length"
	KindValue    Kind = "invalid_value"
)

// FieldError is one broken rule. It marshals in the shape clients receive
// under "errors".
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"type"`
	Message string `json:"msg"`
	Value   any    `json:"value,omitempty"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationError collects every broken rule of one input, in the order the
// rules were checked.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// NewValidationError returns an empty collection to add to.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationError) add(field string, kind Kind, message string, value any) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Kind: kind, Message: message, Value: value})
}

// Required records a missing or blank field.
func (ve *ValidationError) Required(field, message string) {
	ve.add(field, KindRequired, message, nil)
}

// Format records a value that does not parse.
func (ve *ValidationError) Format(field string, value any, message string) {
	ve.add(field, KindFormat, message, value)
}

// TooLong records a value longer than max characters.
func (ve *ValidationError) TooLong(field, label string, value any, max int) {
	ve.add(field, KindLength, fmt.Sprintf("%s must not exceed %d characters", label, max), value)
}

// Invalid records a value outside the allowed set.
func (ve *ValidationError) Invalid(field string, value any, message string) {
	ve.add(field, KindValue, message, value)
}

// ErrOrNil returns ve when it holds errors and nil otherwise.
func (ve *ValidationError) ErrOrNil() error {
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// Summary is a message suitable for a terminal.
func (ve *ValidationError) Summary() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	lines := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		lines[i] = "- " + fe.Message
	}
	return "Multiple validation errors occurred:\n" + strings.Join(lines, "\n")
}

// IsValidationError checks if an error is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// AsValidationError unwraps err to a ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
