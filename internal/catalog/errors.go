package catalog

import "errors"

// ValidationError reports bad or missing caller input.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ErrNotFound is returned when no item with the requested ID exists.
var ErrNotFound = errors.New("item not found")

// StorageError wraps a database or filesystem failure. Raw driver errors
// never cross the service boundary.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
