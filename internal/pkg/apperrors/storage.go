package apperrors

import (
	"errors"
	"fmt"
)

// StorageError wraps a persistence failure. errors.Is matches both
// ErrStorageFailure and the wrapped driver error.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err unless it already carries a domain kind.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageFailure, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorageFailure, e.Err}
}

// IsDomainError reports whether err already belongs to a non-storage kind.
func IsDomainError(err error) bool {
	return Is(err, ErrValidationFailed,
		ErrResourceNotFound,
		ErrAlreadyLinked,
		ErrMismatch,
		ErrInvalidType,
		ErrInvalidStatus,
		ErrStorageFailure,
	)
}

// IsStorageFailure reports whether err came from the persistence layer.
func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}
