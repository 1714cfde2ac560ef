// file: internal/models/validation.go
package models

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// ===============================
// VALIDATION ERRORS
// ===============================

// ValidationError represents a validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("validation failed with %d errors", len(e))
}

// Add adds a validation error
func (e *ValidationErrors) Add(field, message, code string, value interface{}) {
	*e = append(*e, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
		Value:   value,
	})
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// GetField returns all errors for a specific field
func (e ValidationErrors) GetField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range e {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// ===============================
// VALIDATOR INTERFACE
// ===============================

// Validator defines the validation interface
type Validator interface {
	Validate() ValidationErrors
}

// ValidationContext provides context for validation
type ValidationContext struct {
	IsUpdate bool
	Logger   *zap.Logger
}

// ===============================
// CORE VALIDATORS
// ===============================

// RequiredStringValidator validates that a string field is present
func RequiredStringValidator(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field),
			Code:    "required",
			Value:   value,
		}
	}
	return nil
}

// MaxLengthValidator validates a string's maximum length
func MaxLengthValidator(field, value string, max int) *ValidationError {
	if len(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at most %d characters", field, max),
			Code:    "max_length",
			Value:   value,
		}
	}
	return nil
}

// NonNegativeValidator validates that a numeric field is not negative
func NonNegativeValidator(field string, value int) *ValidationError {
	if value < 0 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s cannot be negative", field),
			Code:    "negative",
			Value:   value,
		}
	}
	return nil
}

// URLValidator validates an optional URL field
func URLValidator(field, value string) *ValidationError {
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a valid URL", field),
			Code:    "invalid_url",
			Value:   value,
		}
	}
	return nil
}

// ===============================
// MODEL VALIDATORS
// ===============================

// Validate validates a coloring event
func (e ColoringEvent) Validate() ValidationErrors {
	var errors ValidationErrors

	if !ValidColoringEventType(e.Type) {
		errors.Add("type", fmt.Sprintf("unknown event type '%s'", e.Type), "invalid_type", e.Type)
	}
	if err := NonNegativeValidator("duration_seconds", e.DurationSeconds); err != nil {
		errors = append(errors, *err)
	}
	if err := NonNegativeValidator("colors_used", e.ColorsUsed); err != nil {
		errors = append(errors, *err)
	}
	if err := MaxLengthValidator("brush_type", e.BrushType, 64); err != nil {
		errors = append(errors, *err)
	}
	if e.Type == EventBrushUsed {
		if err := RequiredStringValidator("brush_type", e.BrushType); err != nil {
			errors = append(errors, *err)
		}
	}

	return errors
}

// Validate validates a child profile
func (p ChildProfile) Validate() ValidationErrors {
	var errors ValidationErrors

	if err := RequiredStringValidator("name", p.Name); err != nil {
		errors = append(errors, *err)
	}
	if err := MaxLengthValidator("name", p.Name, 100); err != nil {
		errors = append(errors, *err)
	}

	return errors
}

// Validate validates a notification before it is persisted
func (n Notification) Validate() ValidationErrors {
	var errors ValidationErrors

	if err := RequiredStringValidator("title", n.Title); err != nil {
		errors = append(errors, *err)
	}
	if err := MaxLengthValidator("title", n.Title, 255); err != nil {
		errors = append(errors, *err)
	}
	if err := MaxLengthValidator("body", n.Body, 2000); err != nil {
		errors = append(errors, *err)
	}

	return errors
}
