package apperr

import "fmt"

// AuthenticationError covers bad credentials and missing sessions.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func Authentication(format string, args ...interface{}) *AuthenticationError {
	return &AuthenticationError{Message: fmt.Sprintf(format, args...)}
}

// AccountCreationError covers duplicate or invalid signup input.
type AccountCreationError struct {
	Message string
}

func (e *AccountCreationError) Error() string {
	return e.Message
}

func AccountCreation(format string, args ...interface{}) *AccountCreationError {
	return &AccountCreationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means no document matched a lookup key.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError means the caller is authenticated but does not own the
// resource the operation targets.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func Forbidden(format string, args ...interface{}) *ForbiddenError {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// StorageError means the object store is unavailable or rejected a write.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(err error, format string, args ...interface{}) *StorageError {
	return &StorageError{Message: fmt.Sprintf(format, args...), Err: err}
}
