// Package mp4 adapts MP4/M4A files carrying iTunes metadata atoms.
package mp4

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/Sorrow446/go-mp4tag"
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/canon"
	"github.com/simonhull/tagbridge/internal/keys"
	"github.com/simonhull/tagbridge/internal/registry"
	"github.com/simonhull/tagbridge/internal/taglibfile"
	"github.com/simonhull/tagbridge/internal/types"
)

// File is an MP4 file whose atoms are edited in memory and written on Save.
type File struct {
	path     string
	handle   *mp4tag.MP4
	saved    *mp4tag.MP4Tags
	props    *types.PropertyMap
	pictures []*mp4tag.MP4Picture
	// pictures differ from what is on disk
	picturesDirty bool
	log           *zap.Logger
	view          *canon.Tag
}

var (
	_ types.TaggedFile    = (*File)(nil)
	_ types.PictureSource = (*File)(nil)
)

// Open reads the iTunes atoms of the file at path.
func Open(path string, cfg types.OpenConfig) (types.TaggedFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	handle, err := mp4tag.Open(path)
	if err != nil {
		return nil, &types.CorruptedFileError{Path: path, Reason: "open MP4", Err: err}
	}
	// Keep free-form names as written so descriptions map back to keys.
	handle.UpperCustom(false)
	tags, err := handle.Read()
	if err != nil {
		_ = handle.Close()
		return nil, &types.CorruptedFileError{Path: path, Reason: "read iTunes atoms", Err: err}
	}

	f := &File{
		path:     path,
		handle:   handle,
		saved:    tags,
		props:    toProperties(tags),
		pictures: slices.Clone(tags.Pictures),
		log:      cfg.Log().With(zap.String("path", path)),
	}
	f.view = canon.New(f)
	return f, nil
}

// FileType reports FileTypeMP4.
func (f *File) FileType() types.FileType { return types.FileTypeMP4 }

// Tag returns the canonical field view.
func (f *File) Tag() types.Tag { return f.view }

// Properties returns a copy of the pending property map.
func (f *File) Properties() *types.PropertyMap { return f.props.Clone() }

// SetProperties keeps the representable part of props. Invalid track,
// disc or BPM numbers, dates without a year and malformed free-form keys
// are reported. DATE is narrowed to the year that will be written.
func (f *File) SetProperties(props *types.PropertyMap) []string {
	tags, unsupported := fromProperties(props)
	next := props.Clone()
	for _, key := range unsupported {
		next.Delete(key)
	}
	if tags.Year > 0 {
		next.Set(keys.Date, strconv.Itoa(int(tags.Year)))
	}
	f.props = next
	return unsupported
}

// AudioProperties reads the stream properties through TagLib.
func (f *File) AudioProperties() (types.AudioProperties, bool) {
	props, err := taglibfile.ReadAudioProperties(f.path)
	if err != nil {
		f.log.Debug("no audio properties", zap.Error(err))
		return types.AudioProperties{}, false
	}
	return props, true
}

// FirstPicture returns the first cover atom. MP4 covers carry no picture
// type, so every cover reports as a front cover.
func (f *File) FirstPicture() (types.Picture, bool) {
	if len(f.pictures) == 0 {
		return types.Picture{}, false
	}
	data := f.pictures[0].Data
	return types.Picture{
		MIMEType: types.DetectMIMEType(data),
		Type:     types.PictureFrontCover,
		Data:     data,
	}, true
}

// RemoveFirstPicture drops the first cover atom.
func (f *File) RemoveFirstPicture() bool {
	if len(f.pictures) == 0 {
		return false
	}
	f.pictures = f.pictures[1:]
	f.picturesDirty = true
	return true
}

// AddPicture appends a cover. Only JPEG and PNG can be stored.
func (f *File) AddPicture(p types.Picture) error {
	switch types.DetectMIMEType(p.Data) {
	case "image/jpeg", "image/png":
	default:
		return fmt.Errorf("add picture: MP4 covers must be JPEG or PNG")
	}
	f.pictures = append(f.pictures, &mp4tag.MP4Picture{Data: p.Data})
	f.picturesDirty = true
	return nil
}

// Save writes the pending atoms and covers.
func (f *File) Save() error {
	tags, _ := fromProperties(f.props)
	del := deletions(f.saved, tags)
	if f.picturesDirty {
		del = append(del, "allpictures")
		tags.Pictures = f.pictures
	}

	if err := f.handle.Write(tags, del); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	tags.Pictures = slices.Clone(f.pictures)
	f.saved = tags
	f.picturesDirty = false
	return nil
}

// Close releases the file handle.
func (f *File) Close() error {
	if f.handle == nil {
		return nil
	}
	err := f.handle.Close()
	f.handle = nil
	return err
}

func init() {
	registry.Register(types.FileTypeMP4, registry.OpenerFunc(Open))
}
