package validation

import (
	"fmt"
	"strings"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// Field names as they appear in request bodies and error responses.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldDueDateTime = "dueDateTime"
)

const (
	msgTitleRequired  = "Title is required"
	msgTitleEmpty     = "Title cannot be empty"
	msgDueRequired    = "Due date and time is required"
	msgDueInvalid     = "Due date and time must be a valid ISO 8601 date"
	msgTaskIDPositive = "Task ID must be a positive integer"
	labelTitle        = "Title"
	labelDescription  = "Description"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateCreate checks create input and returns it with title and
// description trimmed.
func (tv *TaskValidator) ValidateCreate(in domain.CreateTaskInput) (domain.CreateTaskInput, error) {
	ve := NewValidationError()

	in.Title = tv.validator.TrimAndValidateString(in.Title)
	if !tv.validator.IsNonEmptyString(in.Title) {
		ve.Required(FieldTitle, msgTitleRequired)
	} else {
		tv.checkTitleLength(ve, in.Title)
	}

	in.Description = tv.trimDescription(ve, in.Description)
	if in.Description != nil && *in.Description == "" {
		// A blank description is stored as NULL.
		in.Description = nil
	}
	tv.checkStatus(ve, in.Status)

	if !tv.validator.IsNonEmptyString(in.DueDateTime) {
		ve.Required(FieldDueDateTime, msgDueRequired)
	} else if !tv.validator.IsValidISO8601(in.DueDateTime) {
		ve.Format(FieldDueDateTime, in.DueDateTime, msgDueInvalid)
	}

	return in, ve.ErrOrNil()
}

// ValidateUpdate checks the supplied fields of update input and returns it
// with title and description trimmed.
func (tv *TaskValidator) ValidateUpdate(id int64, in domain.UpdateTaskInput) (domain.UpdateTaskInput, error) {
	ve := NewValidationError()

	if !tv.validator.IsValidTaskID(id) {
		ve.Invalid(FieldID, id, msgTaskIDPositive)
	}

	if in.Title != nil {
		title := tv.validator.TrimAndValidateString(*in.Title)
		in.Title = &title
		if !tv.validator.IsNonEmptyString(title) {
			ve.Required(FieldTitle, msgTitleEmpty)
		} else {
			tv.checkTitleLength(ve, title)
		}
	}

	in.Description = tv.trimDescription(ve, in.Description)
	tv.checkStatus(ve, in.Status)

	if in.DueDateTime != nil && !tv.validator.IsValidISO8601(*in.DueDateTime) {
		ve.Format(FieldDueDateTime, *in.DueDateTime, msgDueInvalid)
	}

	return in, ve.ErrOrNil()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		ve := NewValidationError()
		ve.Invalid(FieldID, id, msgTaskIDPositive)
		return ve
	}
	return nil
}

// ParseTaskID validates a raw path parameter
func (tv *TaskValidator) ParseTaskID(raw string) (int64, error) {
	id, ok := tv.validator.ParseTaskID(raw)
	if !ok {
		ve := NewValidationError()
		ve.Invalid(FieldID, raw, msgTaskIDPositive)
		return 0, ve
	}
	return id, nil
}

func (tv *TaskValidator) checkTitleLength(ve *ValidationError, title string) {
	if max := tv.validator.titleMaxLength(); !tv.validator.IsWithinLength(title, max) {
		ve.TooLong(FieldTitle, labelTitle, title, max)
	}
}

func (tv *TaskValidator) trimDescription(ve *ValidationError, description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := tv.validator.TrimAndValidateString(*description)
	if max := tv.validator.descriptionMaxLength(); !tv.validator.IsWithinLength(trimmed, max) {
		ve.TooLong(FieldDescription, labelDescription, trimmed, max)
	}
	return &trimmed
}

func (tv *TaskValidator) checkStatus(ve *ValidationError, status *domain.TaskStatus) {
	if status == nil || status.IsValid() {
		return
	}
	names := make([]string, 0, 3)
	for _, s := range domain.AllStatuses() {
		names = append(names, string(s))
	}
	ve.Invalid(FieldStatus, *status, fmt.Sprintf("Status must be one of: %s", strings.Join(names, ", ")))
}
