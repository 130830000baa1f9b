package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflicting state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrConcurrentModification indicates an account row changed under us
// (version mismatch on save). The whole operation is safe to retry.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrAccountNotActive indicates a balance mutation was attempted against a
// non-active account.
var ErrAccountNotActive = errors.New("account is not active")

// ErrInvalidLienState indicates a release was attempted on a transaction
// that is not a completed, unreversed lien.
var ErrInvalidLienState = errors.New("lien cannot be released")

// ErrUnbalancedEntry indicates a journal entry's debits and credits do not
// sum equally. This is an internal invariant violation and is never
// silently swallowed.
var ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

// AppError wraps an underlying error with a status code and a
// human-readable message. Repositories return these for infrastructure
// failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
