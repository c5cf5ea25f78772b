// Package registry maps file types to the adapters that open them.
package registry

import (
	"github.com/simonhull/tagbridge/internal/types"
)

// Opener is the interface all format adapters implement.
type Opener interface {
	// Open parses the tag of the file at path. The returned file owns any
	// handle it keeps and releases it on Close.
	Open(path string, cfg types.OpenConfig) (types.TaggedFile, error)
}

// OpenerFunc adapts a plain function to Opener.
type OpenerFunc func(path string, cfg types.OpenConfig) (types.TaggedFile, error)

// Open calls f.
func (f OpenerFunc) Open(path string, cfg types.OpenConfig) (types.TaggedFile, error) {
	return f(path, cfg)
}

// openers maps file types to their adapters.
var openers = make(map[types.FileType]Opener)

// Register registers an opener for a file type.
// This is called by adapter packages during initialization (init functions).
// A later registration for the same type replaces the earlier one.
func Register(fileType types.FileType, opener Opener) {
	openers[fileType] = opener
}

// Get returns the opener for a given file type.
// Returns nil if no opener is registered for the type.
func Get(fileType types.FileType) Opener {
	return openers[fileType]
}

// Registered lists the file types that have an opener.
func Registered() []types.FileType {
	var out []types.FileType
	for _, t := range types.FileTypes() {
		if openers[t] != nil {
			out = append(out, t)
		}
	}
	return out
}
