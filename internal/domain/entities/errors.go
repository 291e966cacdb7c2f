package entities

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrHomeDirUnavailable = errors.New("cannot determine user home directory")
	ErrLockPoisoned       = errors.New("store lock poisoned by an earlier failure")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrCorruptDocument    = errors.New("document is corrupt")
)

// StorageError reports a failed read or write of a persisted document.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ServiceError wraps a failure raised while a service operation talked to the store.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ErrorKind names the category of a core error once it reaches the gateway.
type ErrorKind string

const (
	KindDirectory       ErrorKind = "directory"
	KindStorageIO       ErrorKind = "storage_io"
	KindLock            ErrorKind = "lock"
	KindValidation      ErrorKind = "validation"
	KindInvalidDocument ErrorKind = "invalid_document"
	KindNotFound        ErrorKind = "not_found"
	KindCanceled        ErrorKind = "canceled"
	KindInternal        ErrorKind = "internal"
)

// KindOf classifies an error chain. Order matters: a storage error caused by a
// corrupt document is still reported as storage_io.
func KindOf(err error) ErrorKind {
	var storageErr *StorageError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLockPoisoned):
		return KindLock
	case errors.Is(err, ErrHomeDirUnavailable):
		return KindDirectory
	case errors.As(err, &storageErr):
		return KindStorageIO
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInvalidDocument):
		return KindInvalidDocument
	case errors.Is(err, ErrTaskNotFound):
		return KindNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}
