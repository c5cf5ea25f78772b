// Package mpeg adapts MPEG audio files carrying ID3v2 tags.
//
// ID3v2.3 and 2.4 tags are read and written with github.com/bogem/id3v2.
// ID3v2.2 tags, which that library rejects, are read with
// github.com/dhowden/tag and exposed read-only.
package mpeg

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/bogem/id3v2/v2"
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/canon"
	"github.com/simonhull/tagbridge/internal/keys"
	"github.com/simonhull/tagbridge/internal/registry"
	"github.com/simonhull/tagbridge/internal/textenc"
	"github.com/simonhull/tagbridge/internal/types"
)

const (
	pictureFrameID = "APIC"
	commentFrameID = "COMM"
	lyricsFrameID  = "USLT"
	userTextID     = "TXXX"
	defaultLang    = "eng"
)

// File is an MPEG file with a writable ID3v2.3/2.4 tag.
type File struct {
	path     string
	tag      *id3v2.Tag
	encoding id3v2.Encoding
	log      *zap.Logger
	view     *canon.Tag
}

var (
	_ types.TaggedFile    = (*File)(nil)
	_ types.PictureSource = (*File)(nil)
)

// Open parses the ID3v2 tag of the file at path. A file without a tag
// opens with an empty ID3v2.4 tag.
func Open(path string, cfg types.OpenConfig) (types.TaggedFile, error) {
	log := cfg.Log().With(zap.String("path", path))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		log.Info("ID3v2 revision not writable, opening read-only")
		return openLegacy(path, log)
	}
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		return nil, &types.CorruptedFileError{Path: path, Reason: "parse ID3v2 tag", Err: err}
	}

	f := &File{
		path:     path,
		tag:      tag,
		encoding: frameEncoding(cfg.TextEncoding, tag.Version()),
		log:      log,
	}
	tag.SetDefaultEncoding(f.encoding)
	f.view = canon.New(f)
	return f, nil
}

// frameEncoding maps the configured write encoding onto an ID3v2 text
// encoding. ID3v2.3 has no UTF-8 or UTF-16BE, so those become UTF-16.
func frameEncoding(e textenc.Encoding, version byte) id3v2.Encoding {
	switch e {
	case textenc.UTF8:
		if version == 3 {
			return id3v2.EncodingUTF16
		}
		return id3v2.EncodingUTF8
	case textenc.UTF16:
		return id3v2.EncodingUTF16
	case textenc.UTF16BE:
		if version == 3 {
			return id3v2.EncodingUTF16
		}
		return id3v2.EncodingUTF16BE
	default:
		return id3v2.EncodingISO
	}
}

// FileType reports FileTypeMPEG.
func (f *File) FileType() types.FileType { return types.FileTypeMPEG }

// Tag returns the canonical field view.
func (f *File) Tag() types.Tag { return f.view }

// Properties translates the tag's frames. Frame IDs are visited in sorted
// order and frames sharing an ID in tag order.
func (f *File) Properties() *types.PropertyMap {
	props := types.NewPropertyMap()
	all := f.tag.AllFrames()

	for _, id := range slices.Sorted(maps.Keys(all)) {
		for _, framer := range all[id] {
			switch fr := framer.(type) {
			case id3v2.TextFrame:
				if key, ok := textFrameKeys[id]; ok {
					props.Append(key, splitText(fr.Text)...)
				}
			case id3v2.UserDefinedTextFrame:
				// No description means no key; SetProperties keeps these.
				if fr.Description == "" {
					continue
				}
				props.Append(keys.FromDescription(fr.Description), splitText(fr.Value)...)
			case id3v2.CommentFrame:
				props.Append(describedKey(keys.Comment, fr.Description), splitText(fr.Text)...)
			case id3v2.UnsynchronisedLyricsFrame:
				props.Append(describedKey(keys.Lyrics, fr.ContentDescriptor), splitText(fr.Lyrics)...)
			}
		}
	}
	return props
}

// describedFrame is the language and exact description of an existing
// COMM or USLT frame, reused when the frame's key is written back.
type describedFrame struct {
	lang, desc string
}

// describedFrames indexes the existing COMM and USLT frames by property
// key. The first frame for a key wins.
func (f *File) describedFrames() map[string]describedFrame {
	out := make(map[string]describedFrame)
	remember := func(key string, d describedFrame) {
		if _, ok := out[key]; !ok {
			out[key] = d
		}
	}
	for _, framer := range f.tag.GetFrames(commentFrameID) {
		if fr, ok := framer.(id3v2.CommentFrame); ok {
			remember(describedKey(keys.Comment, fr.Description), describedFrame{fr.Language, fr.Description})
		}
	}
	for _, framer := range f.tag.GetFrames(lyricsFrameID) {
		if fr, ok := framer.(id3v2.UnsynchronisedLyricsFrame); ok {
			remember(describedKey(keys.Lyrics, fr.ContentDescriptor), describedFrame{fr.Language, fr.ContentDescriptor})
		}
	}
	return out
}

// undescribedUserText returns the TXXX frames without a description.
func (f *File) undescribedUserText() []id3v2.UserDefinedTextFrame {
	var out []id3v2.UserDefinedTextFrame
	for _, framer := range f.tag.GetFrames(userTextID) {
		if fr, ok := framer.(id3v2.UserDefinedTextFrame); ok && fr.Description == "" {
			out = append(out, fr)
		}
	}
	return out
}

// SetProperties removes every frame Properties would translate and writes
// new frames from props. Rewritten COMM and USLT frames keep the language
// and description spelling of the frame they replace.
func (f *File) SetProperties(props *types.PropertyMap) []string {
	described := f.describedFrames()
	kept := f.undescribedUserText()

	for id := range textFrameKeys {
		f.tag.DeleteFrames(id)
	}
	f.tag.DeleteFrames(userTextID)
	f.tag.DeleteFrames(commentFrameID)
	f.tag.DeleteFrames(lyricsFrameID)
	for _, fr := range kept {
		f.tag.AddUserDefinedTextFrame(fr)
	}

	frameFor := func(key, desc string) describedFrame {
		if d, ok := described[key]; ok {
			return d
		}
		return describedFrame{lang: defaultLang, desc: desc}
	}

	version := f.tag.Version()
	var unsupported []string
	for key, values := range props.All() {
		if desc, ok := splitDescribed(key, keys.Comment); ok {
			d := frameFor(key, desc)
			f.tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    f.encoding,
				Language:    d.lang,
				Description: d.desc,
				Text:        joinText(values),
			})
			continue
		}
		if desc, ok := splitDescribed(key, keys.Lyrics); ok {
			d := frameFor(key, desc)
			f.tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
				Encoding:          f.encoding,
				Language:          d.lang,
				ContentDescriptor: d.desc,
				Lyrics:            joinText(values),
			})
			continue
		}
		if id := frameForKey(key, version); id != "" {
			f.tag.AddTextFrame(id, f.encoding, joinText(values))
			continue
		}
		if !keys.Valid(key) {
			unsupported = append(unsupported, key)
			continue
		}
		f.tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    f.encoding,
			Description: keys.ToDescription(key),
			Value:       joinText(values),
		})
	}
	return unsupported
}

// AudioProperties decodes the first MPEG frame header after the tag.
func (f *File) AudioProperties() (types.AudioProperties, bool) {
	return audioPropertiesAt(f.path, f.log)
}

func (f *File) pictures() []id3v2.PictureFrame {
	var out []id3v2.PictureFrame
	for _, framer := range f.tag.GetFrames(pictureFrameID) {
		if pf, ok := framer.(id3v2.PictureFrame); ok {
			out = append(out, pf)
		}
	}
	return out
}

// FirstPicture returns the first APIC frame in tag order.
func (f *File) FirstPicture() (types.Picture, bool) {
	pics := f.pictures()
	if len(pics) == 0 {
		return types.Picture{}, false
	}
	pf := pics[0]
	return types.Picture{
		MIMEType:    pf.MimeType,
		Type:        types.PictureType(pf.PictureType),
		Description: pf.Description,
		Data:        pf.Picture,
	}, true
}

// RemoveFirstPicture drops the first APIC frame and re-adds the rest in
// their original order.
func (f *File) RemoveFirstPicture() bool {
	pics := f.pictures()
	if len(pics) == 0 {
		return false
	}
	f.tag.DeleteFrames(pictureFrameID)
	for _, pf := range pics[1:] {
		f.tag.AddAttachedPicture(pf)
	}
	return true
}

// AddPicture appends an APIC frame. ID3v2 allows one picture per picture
// type, so an existing picture of the same type is replaced.
func (f *File) AddPicture(p types.Picture) error {
	mime := p.MIMEType
	if mime == "" {
		mime = types.DetectMIMEType(p.Data)
	}
	if mime == "" {
		return fmt.Errorf("add picture: unknown image format")
	}
	f.tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    f.encoding,
		MimeType:    mime,
		PictureType: byte(p.Type),
		Description: p.Description,
		Picture:     p.Data,
	})
	return nil
}

// Save writes the tag back to the file.
func (f *File) Save() error {
	if err := f.tag.Save(); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.tag.Close()
}

func audioPropertiesAt(path string, log *zap.Logger) (types.AudioProperties, bool) {
	file, err := os.Open(path)
	if err != nil {
		log.Warn("open for audio properties", zap.Error(err))
		return types.AudioProperties{}, false
	}
	defer file.Close() //nolint:errcheck // Read-only handle

	info, err := file.Stat()
	if err != nil {
		return types.AudioProperties{}, false
	}
	props, err := readAudioProperties(file, info.Size(), path)
	if err != nil {
		log.Debug("no audio properties", zap.Error(err))
		return types.AudioProperties{}, false
	}
	return props, true
}

func init() {
	registry.Register(types.FileTypeMPEG, registry.OpenerFunc(Open))
}
