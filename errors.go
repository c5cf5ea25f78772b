package tagbridge

import (
	"github.com/simonhull/tagbridge/internal/types"
)

// ErrUnsupported is matched by errors.Is for every UnsupportedOperationError.
var ErrUnsupported = types.ErrUnsupported

// ErrNoPicture is returned by picture operations when the file has no
// embedded picture.
var ErrNoPicture = types.ErrNoPicture

// UnsupportedFormatError is returned when no adapter handles a file.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is returned when a tag cannot be parsed.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedWriteError is returned when a file was opened read-only.
type UnsupportedWriteError = types.UnsupportedWriteError

// UnsupportedOperationError is returned when the file's format lacks the
// capability an operation needs, such as embedded pictures.
type UnsupportedOperationError = types.UnsupportedOperationError
