// Package flac adapts native FLAC files: the Vorbis comment block carries
// the properties and PICTURE blocks carry embedded images.
package flac

import (
	"fmt"
	"io"
	"os"

	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/canon"
	"github.com/simonhull/tagbridge/internal/fsutil"
	"github.com/simonhull/tagbridge/internal/registry"
	"github.com/simonhull/tagbridge/internal/types"
	"github.com/simonhull/tagbridge/internal/vorbis"
)

const defaultVendor = "tagbridge"

// File is an opened FLAC file. The whole stream is held in memory by
// go-flac and written back on Save.
type File struct {
	path   string
	size   int64
	stream *goflac.File
	log    *zap.Logger
	tag    *canon.Tag
}

var (
	_ types.TaggedFile    = (*File)(nil)
	_ types.PictureSource = (*File)(nil)
)

// Open parses the FLAC file at path.
func Open(path string, cfg types.OpenConfig) (types.TaggedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	stream, err := goflac.ParseFile(path)
	if err != nil {
		return nil, &types.CorruptedFileError{Path: path, Reason: "parse FLAC stream", Err: err}
	}

	f := &File{
		path:   path,
		size:   info.Size(),
		stream: stream,
		log:    cfg.Log().With(zap.String("path", path)),
	}
	f.tag = canon.New(f)
	return f, nil
}

// FileType reports FileTypeFLAC.
func (f *File) FileType() types.FileType { return types.FileTypeFLAC }

// Tag returns the canonical field view.
func (f *File) Tag() types.Tag { return f.tag }

// comments returns the first VORBIS_COMMENT block and its index, or -1.
func (f *File) comments() (*flacvorbis.MetaDataBlockVorbisComment, int) {
	for i, block := range f.stream.Meta {
		if block.Type != goflac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			f.log.Warn("unreadable Vorbis comment block", zap.Error(err))
			return nil, i
		}
		return cmt, i
	}
	return nil, -1
}

// Properties translates the Vorbis comment block.
func (f *File) Properties() *types.PropertyMap {
	cmt, _ := f.comments()
	if cmt == nil {
		return types.NewPropertyMap()
	}
	props, skipped := vorbis.ToProperties(cmt.Comments)
	if len(skipped) > 0 {
		f.log.Debug("skipped malformed comments", zap.Int("count", len(skipped)))
	}
	return props
}

// SetProperties replaces the Vorbis comment block, keeping its vendor string.
func (f *File) SetProperties(props *types.PropertyMap) []string {
	comments, unsupported := vorbis.FromProperties(props)

	existing, idx := f.comments()
	vendor := defaultVendor
	if existing != nil && existing.Vendor != "" {
		vendor = existing.Vendor
	}
	cmt := &flacvorbis.MetaDataBlockVorbisComment{Vendor: vendor, Comments: comments}
	block := cmt.Marshal()

	if idx >= 0 {
		f.stream.Meta[idx] = &block
	} else {
		f.stream.Meta = append(f.stream.Meta, &block)
	}
	return unsupported
}

// AudioProperties decodes the STREAMINFO block.
func (f *File) AudioProperties() (types.AudioProperties, bool) {
	for _, block := range f.stream.Meta {
		if block.Type != goflac.StreamInfo {
			continue
		}
		props, err := parseStreamInfo(block.Data, f.size)
		if err != nil {
			f.log.Warn("bad STREAMINFO", zap.Error(err))
			return types.AudioProperties{}, false
		}
		return props, true
	}
	return types.AudioProperties{}, false
}

// pictureIndexes lists the positions of PICTURE blocks in block order.
func (f *File) pictureIndexes() []int {
	var out []int
	for i, block := range f.stream.Meta {
		if block.Type == goflac.Picture {
			out = append(out, i)
		}
	}
	return out
}

// FirstPicture returns the first readable PICTURE block.
func (f *File) FirstPicture() (types.Picture, bool) {
	for _, i := range f.pictureIndexes() {
		pic, err := flacpicture.ParseFromMetaDataBlock(*f.stream.Meta[i])
		if err != nil {
			f.log.Warn("unreadable PICTURE block", zap.Int("block", i), zap.Error(err))
			continue
		}
		return types.Picture{
			MIMEType:    pic.MIME,
			Type:        types.PictureType(pic.PictureType),
			Description: pic.Description,
			Data:        pic.ImageData,
		}, true
	}
	return types.Picture{}, false
}

// RemoveFirstPicture drops the first PICTURE block.
func (f *File) RemoveFirstPicture() bool {
	idx := f.pictureIndexes()
	if len(idx) == 0 {
		return false
	}
	i := idx[0]
	f.stream.Meta = append(f.stream.Meta[:i], f.stream.Meta[i+1:]...)
	return true
}

// AddPicture appends a PICTURE block.
func (f *File) AddPicture(p types.Picture) error {
	mime := p.MIMEType
	if mime == "" {
		mime = types.DetectMIMEType(p.Data)
	}
	pic, err := flacpicture.NewFromImageData(flacpicture.PictureType(p.Type), p.Description, p.Data, mime)
	if err != nil {
		// Dimensions could not be decoded; store the block without them.
		f.log.Debug("picture dimensions unavailable", zap.Error(err))
		pic = &flacpicture.MetadataBlockPicture{
			PictureType: flacpicture.PictureType(p.Type),
			MIME:        mime,
			Description: p.Description,
			ImageData:   p.Data,
		}
	}
	block := pic.Marshal()
	f.stream.Meta = append(f.stream.Meta, &block)
	return nil
}

// Save rewrites the whole file atomically.
func (f *File) Save() error {
	err := fsutil.WriteFileAtomic(f.path, func(w io.Writer) error {
		_, err := w.Write(f.stream.Marshal())
		return err
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}

// Close drops the in-memory stream.
func (f *File) Close() error {
	f.stream = nil
	return nil
}

func init() {
	registry.Register(types.FileTypeFLAC, registry.OpenerFunc(Open))
}
