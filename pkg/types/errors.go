package types

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every service operation returns nil or an error matching
// exactly one of these with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// Image transform errors. They reach callers wrapped in a *ValidationError.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image too large")
)

// Store lifecycle and transaction errors. They reach callers wrapped in a
// *StorageError.
var (
	ErrStoreDetached      = errors.New("store is detached")
	ErrAlreadyAttached    = errors.New("store is already attached")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrNotInScope         = errors.New("collection not in transaction scope")
	ErrReadOnly           = errors.New("transaction is read-only")
	ErrTxDone             = errors.New("transaction has already finished")
	ErrInvalidID          = errors.New("invalid record ID")
	ErrSchemaVersion      = errors.New("unsupported schema version")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports caller-supplied data that violates a
// precondition. Err, when set, is the underlying cause (for example
// ErrTooLarge).
type ValidationError struct {
	Errors []FieldError
	Err    error
}

func (e *ValidationError) Error() string {
	var msg string
	if len(e.Errors) == 1 {
		msg = fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	} else {
		parts := make([]string, len(e.Errors))
		for i, fe := range e.Errors {
			parts[i] = fe.Field + ": " + fe.Message
		}
		msg = fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(parts, "; "))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrorCause creates a ValidationError for a single field
// carrying the error that caused it.
func NewValidationErrorCause(field string, cause error) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: "rejected"}},
		Err:    cause,
	}
}

// NotFoundError reports an operation on an ID that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StorageError reports a failure of the underlying store. It is opaque to
// callers and may be transient.
type StorageError struct {
	Op  string // e.g. "put flashcard", "commit transaction"
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage: %s failed", e.Op)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStorage}
	}
	return []error{ErrStorage, e.Err}
}

// NewStorageError wraps err as a StorageError for op. A nil err yields nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Normalize maps err onto the three error kinds. Errors that already match
// ErrValidation, ErrNotFound or ErrStorage are returned unchanged; anything
// else becomes a StorageError for op.
func Normalize(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsUserError reports whether err is a validation or not-found error, the
// kinds a caller can correct.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}
