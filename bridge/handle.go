package bridge

import (
	"github.com/simonhull/tagbridge"
	"github.com/simonhull/tagbridge/internal/multivalue"
)

// Handle is an open file whose string results are host byte strings.
type Handle struct {
	s *Session
	f *tagbridge.File
}

// File returns the underlying file.
func (h *Handle) File() *tagbridge.File { return h.f }

// IsValid reports whether the handle's file is open.
func (h *Handle) IsValid() bool { return h != nil && h.f.IsValid() }

func (h *Handle) Title() []byte   { return h.s.bytes(h.f.Tag().Title()) }
func (h *Handle) Artist() []byte  { return h.s.bytes(h.f.Tag().Artist()) }
func (h *Handle) Album() []byte   { return h.s.bytes(h.f.Tag().Album()) }
func (h *Handle) Comment() []byte { return h.s.bytes(h.f.Tag().Comment()) }
func (h *Handle) Genre() []byte   { return h.s.bytes(h.f.Tag().Genre()) }
func (h *Handle) Year() uint      { return h.f.Tag().Year() }
func (h *Handle) Track() uint     { return h.f.Tag().Track() }

func (h *Handle) SetTitle(v []byte)   { h.f.Tag().SetTitle(h.s.string(v)) }
func (h *Handle) SetArtist(v []byte)  { h.f.Tag().SetArtist(h.s.string(v)) }
func (h *Handle) SetAlbum(v []byte)   { h.f.Tag().SetAlbum(h.s.string(v)) }
func (h *Handle) SetComment(v []byte) { h.f.Tag().SetComment(h.s.string(v)) }
func (h *Handle) SetGenre(v []byte)   { h.f.Tag().SetGenre(h.s.string(v)) }
func (h *Handle) SetYear(v uint)      { h.f.Tag().SetYear(v) }
func (h *Handle) SetTrack(v uint)     { h.f.Tag().SetTrack(v) }

// Property returns the values of key joined with "; ", or nil when key is
// absent.
func (h *Handle) Property(key []byte) []byte {
	v, ok := h.f.Property(h.s.string(key))
	if !ok {
		return nil
	}
	return h.s.bytes(v)
}

// PropertyAttrs reports the value count for key and the length of the
// host-encoded string Property would return.
func (h *Handle) PropertyAttrs(key []byte) (count, length int, ok bool) {
	values, ok := h.f.Properties().Get(h.s.string(key))
	if !ok {
		return 0, 0, false
	}
	return len(values), len(h.s.codec.Bytes(multivalue.Join(values))), true
}

// PropertyKeyAt returns the key at index, or nil past the end.
func (h *Handle) PropertyKeyAt(index int) []byte {
	key, ok := h.f.PropertyKeyAt(index)
	if !ok {
		return nil
	}
	return h.s.bytes(key)
}

// SetProperty sets key from a host string; see tagbridge.File.SetProperty.
// It returns the keys the format rejected.
func (h *Handle) SetProperty(key, value []byte, multi bool) []string {
	return h.f.SetProperty(h.s.string(key), h.s.string(value), multi)
}

// PropertiesJSON returns the JSON rendering of the property map.
func (h *Handle) PropertiesJSON() []byte {
	return h.s.bytes(h.f.PropertiesJSON())
}

// PropertiesJSONLength returns the length of the host-encoded JSON
// rendering.
func (h *Handle) PropertiesJSONLength() int {
	if h.s.codec.Encoding() == tagbridge.EncodingUTF8 {
		return h.f.PropertiesJSONLength()
	}
	return len(h.s.codec.Bytes(h.f.PropertiesJSON()))
}

// PictureAttrs returns the MIME type and type code of the first picture.
func (h *Handle) PictureAttrs() (mimeType []byte, pictureType tagbridge.PictureType, err error) {
	attrs, err := h.f.PictureAttrs()
	if err != nil {
		return nil, 0, err
	}
	return h.s.bytes(attrs.MIMEType), attrs.Type, nil
}

// ExportPicture writes the first picture to the host-encoded path.
func (h *Handle) ExportPicture(path []byte) error {
	return h.f.ExportPictureFile(h.s.string(path))
}

// RemovePicture removes the first picture.
func (h *Handle) RemovePicture() (bool, error) {
	return h.f.RemovePicture()
}

// AudioProperties passes through the stream properties.
func (h *Handle) AudioProperties() (tagbridge.AudioProperties, bool) {
	return h.f.AudioProperties()
}

// Save writes the tag back to disk.
func (h *Handle) Save(opts ...tagbridge.SaveOption) error {
	return h.f.Save(opts...)
}

// Close closes the file. Strings returned earlier remain valid.
func (h *Handle) Close() error {
	return h.f.Close()
}
