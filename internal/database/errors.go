package database

import "fmt"

// ValidationError signals malformed or missing required input: empty
// strings, bad date formats, disallowed durations.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func errValidation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError signals a uniqueness violation, such as a duplicate
// category name or sprint code.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func errConflict(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func errNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// StorageError wraps an underlying I/O, schema, or transaction failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// ImportError signals that the legacy snapshot was unreadable or
// malformed.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("legacy import from %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
