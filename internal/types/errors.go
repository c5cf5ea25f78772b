package types

import (
	"errors"
	"fmt"
)

// ErrUnsupported is matched by errors.Is for every UnsupportedOperationError.
var ErrUnsupported = errors.New("operation not supported")

// ErrNoPicture is returned when a picture operation finds no picture frame.
var ErrNoPicture = errors.New("no picture present")

// UnsupportedFormatError is returned when a file's type cannot be determined
// or has no adapter.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when a tag library rejects the file structure.
type CorruptedFileError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file: %s", e.Path, e.Reason)
}

func (e *CorruptedFileError) Unwrap() error {
	return e.Err
}

// UnsupportedWriteError indicates the adapter opened the file read-only.
type UnsupportedWriteError struct {
	Reason   string
	FileType FileType
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.FileType, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.FileType)
}

// UnsupportedOperationError is returned when an operation needs a capability
// the file's adapter does not have, such as picture access on a WavPack file.
type UnsupportedOperationError struct {
	Op       string
	FileType FileType
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: not supported for %s files", e.Op, e.FileType)
}

// Is reports ErrUnsupported as a match.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupported
}
