package tags

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by codec reads.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrUnreadable indicates the file exists but is not a readable
	// audio file with tags.
	ErrUnreadable = errors.New("file is not a readable audio file")
)

// WriteError indicates a failed tag write and carries the failing path so
// callers can report which file of a batch failed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing tags to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
