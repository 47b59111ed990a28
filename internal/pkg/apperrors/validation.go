package apperrors

import "strings"

// FieldError is one failed field rule, worded for the end user.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed rule of a single input. It unwraps to
// ErrValidationFailed. No write happens when one is returned.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates an empty ValidationError to be filled with Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make([]FieldError, 0)}
}

// Add appends a field failure and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Messages returns the user-facing messages in the order they were added.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// HasField reports whether the named field failed.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// OrNil returns nil when nothing failed so callers can write `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
