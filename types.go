package tagbridge

import (
	"io"

	"github.com/simonhull/tagbridge/internal/types"
)

// PropertyMap maps upper-case keys to ordered lists of values.
type PropertyMap = types.PropertyMap

// NewPropertyMap returns an empty PropertyMap.
func NewPropertyMap() *PropertyMap {
	return types.NewPropertyMap()
}

// Tag gives access to the canonical fields every format supports.
type Tag = types.Tag

// AudioProperties are the stream properties reported by a file.
type AudioProperties = types.AudioProperties

// FileType identifies the container and tag format of a file.
type FileType = types.FileType

// File types.
const (
	FileTypeUnknown   = types.FileTypeUnknown
	FileTypeMPEG      = types.FileTypeMPEG
	FileTypeOggVorbis = types.FileTypeOggVorbis
	FileTypeFLAC      = types.FileTypeFLAC
	FileTypeMPC       = types.FileTypeMPC
	FileTypeOggFLAC   = types.FileTypeOggFLAC
	FileTypeWavPack   = types.FileTypeWavPack
	FileTypeSpeex     = types.FileTypeSpeex
	FileTypeTrueAudio = types.FileTypeTrueAudio
	FileTypeMP4       = types.FileTypeMP4
	FileTypeASF       = types.FileTypeASF
)

// DetectFormat identifies the file type from content, falling back to the
// extension of path.
func DetectFormat(r io.ReaderAt, size int64, path string) (FileType, error) {
	return types.DetectFormat(r, size, path)
}
