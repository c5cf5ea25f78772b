// Package types defines the contracts shared by the facade and the format
// adapters: the property map, the canonical field view, the tagged-file
// interface and its optional capabilities.
package types

import (
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/textenc"
)

// Tag is the fixed set of canonical fields every adapter exposes.
//
// Getters read the adapter's native state at call time and setters write
// through immediately. Absent fields read as "" or 0. Setting "" or 0
// removes the field.
type Tag interface {
	Title() string
	Artist() string
	Album() string
	Comment() string
	Genre() string
	Year() uint
	Track() uint

	SetTitle(string)
	SetArtist(string)
	SetAlbum(string)
	SetComment(string)
	SetGenre(string)
	SetYear(uint)
	SetTrack(uint)
}

// TaggedFile is an opened file as seen through a format adapter.
type TaggedFile interface {
	FileType() FileType

	// Tag returns the canonical field view. It stays valid until Close.
	Tag() Tag

	// Properties translates the native tag into a fresh PropertyMap.
	Properties() *PropertyMap

	// SetProperties replaces the whole native tag with props and returns
	// the keys the format could not store. Nothing is written to disk
	// until Save.
	SetProperties(props *PropertyMap) (unsupported []string)

	// AudioProperties reports stream properties; ok is false when the
	// decoder could not read them.
	AudioProperties() (props AudioProperties, ok bool)

	Save() error
	Close() error
}

// PictureSource is implemented by adapters whose format embeds pictures.
//
// "First" is the first picture-carrying frame or block in native order.
type PictureSource interface {
	FirstPicture() (Picture, bool)

	// RemoveFirstPicture drops the first picture and reports whether one
	// existed. Later pictures are kept in order.
	RemoveFirstPicture() bool

	// AddPicture appends a picture after any existing ones.
	AddPicture(Picture) error
}

// OpenConfig carries the settings an adapter needs when opening a file.
type OpenConfig struct {
	// TextEncoding is used for text the adapter writes, where the format
	// lets the writer choose.
	TextEncoding textenc.Encoding

	Logger *zap.Logger
}

// Log returns the configured logger or a no-op logger.
func (c OpenConfig) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
