// Package taglibfile adapts the formats whose tags are read and written
// through TagLib's own property interface: Ogg Vorbis, Ogg FLAC, Speex,
// Musepack, WavPack, TrueAudio and ASF.
//
// It also serves audio properties for adapters whose tag libraries do not
// decode stream headers.
package taglibfile

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"go.senan.xyz/taglib"
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/canon"
	"github.com/simonhull/tagbridge/internal/keys"
	"github.com/simonhull/tagbridge/internal/registry"
	"github.com/simonhull/tagbridge/internal/types"
)

// Swapped out in tests.
var (
	readTags       = taglib.ReadTags
	writeTags      = taglib.WriteTags
	readProperties = taglib.ReadProperties
)

// FileTypes lists the types this package registers for.
var FileTypes = []types.FileType{
	types.FileTypeOggVorbis,
	types.FileTypeOggFLAC,
	types.FileTypeSpeex,
	types.FileTypeMPC,
	types.FileTypeWavPack,
	types.FileTypeTrueAudio,
	types.FileTypeASF,
}

// File holds the tag of a TagLib-backed file as a property map. Changes
// stay in memory until Save writes the whole map back.
type File struct {
	path     string
	fileType types.FileType
	props    *types.PropertyMap
	log      *zap.Logger
	view     *canon.Tag
}

var _ types.TaggedFile = (*File)(nil)

// Open reads the tag of the file at path, which the caller has identified
// as fileType.
func Open(path string, fileType types.FileType, cfg types.OpenConfig) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	raw, err := readTags(path)
	if err != nil {
		return nil, &types.CorruptedFileError{Path: path, Reason: "read " + fileType.String() + " tag", Err: err}
	}

	f := &File{
		path:     path,
		fileType: fileType,
		props:    fromRaw(raw),
		log:      cfg.Log().With(zap.String("path", path)),
	}
	f.view = canon.New(f)
	return f, nil
}

// fromRaw sorts TagLib's unordered map into a PropertyMap.
func fromRaw(raw map[string][]string) *types.PropertyMap {
	props := types.NewPropertyMap()
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		props.Append(key, raw[key]...)
	}
	return props
}

// FileType reports the type the file was opened as.
func (f *File) FileType() types.FileType { return f.fileType }

// Tag returns the canonical field view.
func (f *File) Tag() types.Tag { return f.view }

// Properties returns a copy of the pending property map.
func (f *File) Properties() *types.PropertyMap { return f.props.Clone() }

// SetProperties replaces the stored map. Keys TagLib cannot carry as a
// property name are dropped and reported.
func (f *File) SetProperties(props *types.PropertyMap) []string {
	next := types.NewPropertyMap()
	var unsupported []string
	for key, values := range props.All() {
		if !keys.Valid(key) {
			unsupported = append(unsupported, key)
			continue
		}
		next.Set(key, values...)
	}
	f.props = next
	return unsupported
}

// AudioProperties reads the stream properties through TagLib.
func (f *File) AudioProperties() (types.AudioProperties, bool) {
	props, err := ReadAudioProperties(f.path)
	if err != nil {
		f.log.Debug("no audio properties", zap.Error(err))
		return types.AudioProperties{}, false
	}
	return props, true
}

// Save writes the map back, clearing properties that are no longer set.
func (f *File) Save() error {
	if err := writeTags(f.path, f.props.Map(), taglib.Clear); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; TagLib holds no handle between calls.
func (f *File) Close() error { return nil }

// ReadAudioProperties returns the stream properties TagLib decodes for
// the file at path.
func ReadAudioProperties(path string) (types.AudioProperties, error) {
	p, err := readProperties(path)
	if err != nil {
		return types.AudioProperties{}, fmt.Errorf("read audio properties: %w", err)
	}
	return types.AudioProperties{
		Length:     p.Length,
		Bitrate:    int(p.Bitrate),
		SampleRate: int(p.SampleRate),
		Channels:   int(p.Channels),
	}, nil
}

func opener(fileType types.FileType) registry.Opener {
	return registry.OpenerFunc(func(path string, cfg types.OpenConfig) (types.TaggedFile, error) {
		f, err := Open(path, fileType, cfg)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
}

func init() {
	for _, ft := range FileTypes {
		registry.Register(ft, opener(ft))
	}
}
