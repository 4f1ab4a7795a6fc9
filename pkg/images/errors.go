package images

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the named file does not exist.
var ErrNotFound = errors.New("file not found")

// ErrUnsafeFilename is returned for names containing path separators or
// parent-directory sequences.
var ErrUnsafeFilename = errors.New("unsafe filename")

// ValidationError rejects an upload candidate before any processing. The
// reason is user-facing.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// StorageError wraps a filesystem failure inside the store.
type StorageError struct {
	Op   string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
