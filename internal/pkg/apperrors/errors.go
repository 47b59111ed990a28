package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrResourceNotFound = errors.New("resource not found")
	ErrAlreadyLinked    = errors.New("already linked")
	ErrMismatch         = errors.New("association mismatch")
	ErrInvalidType      = errors.New("invalid document type")
	ErrInvalidStatus    = errors.New("invalid read status")
	ErrStorageFailure   = errors.New("storage failure")
)

// Entity specific not-found errors
var (
	ErrCourseNotFound   = NewResourceNotFoundError("course not found")
	ErrSyllabusNotFound = NewResourceNotFoundError("syllabus not found")
	ErrDocumentNotFound = NewResourceNotFoundError("document not found")
	ErrTagNotFound      = NewResourceNotFoundError("tag not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewAlreadyLinkedError reports an association that must be removed before relinking.
func NewAlreadyLinkedError(message string) error {
	return NewCustomError(ErrAlreadyLinked, message)
}

// NewMismatchError reports an unlink whose target is not the current link.
func NewMismatchError(message string) error {
	return NewCustomError(ErrMismatch, message)
}

// NewInvalidTypeError reports a document type outside the recognized set.
func NewInvalidTypeError(raw string, valid []string) error {
	shown := raw
	if shown == "" {
		shown = "missing"
	}
	msg := fmt.Sprintf("invalid document type: %s. Must be one of: %s", shown, strings.Join(valid, ", "))
	return NewCustomError(ErrInvalidType, msg).
		WithDetails(map[string]interface{}{"documentType": raw})
}

// NewInvalidStatusError reports a read status outside the recognized set.
func NewInvalidStatusError(raw string, valid []string) error {
	msg := fmt.Sprintf("invalid read status %q. Must be one of: %s", raw, strings.Join(valid, ", "))
	return NewCustomError(ErrInvalidStatus, msg).
		WithDetails(map[string]interface{}{"status": raw})
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

