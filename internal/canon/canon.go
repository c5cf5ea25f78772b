// Package canon implements the canonical field view on top of any adapter
// that can translate its native tag to and from a PropertyMap.
package canon

import (
	"strconv"
	"strings"

	"github.com/simonhull/tagbridge/internal/keys"
	"github.com/simonhull/tagbridge/internal/types"
)

// Store is the part of an adapter the canonical view needs.
type Store interface {
	Properties() *types.PropertyMap
	SetProperties(*types.PropertyMap) []string
}

// Tag reads and writes canonical fields through a Store. Every call goes
// to the store, so it always reflects the adapter's current native state.
type Tag struct {
	store Store
}

var _ types.Tag = (*Tag)(nil)

// New returns a canonical view over store.
func New(store Store) *Tag {
	return &Tag{store: store}
}

func (t *Tag) first(key string) string {
	values, ok := t.store.Properties().Get(key)
	if !ok {
		return ""
	}
	return values[0]
}

func (t *Tag) set(key, value string) {
	props := t.store.Properties()
	props.Set(key, value)
	t.store.SetProperties(props)
}

func (t *Tag) Title() string   { return t.first(keys.Title) }
func (t *Tag) Artist() string  { return t.first(keys.Artist) }
func (t *Tag) Album() string   { return t.first(keys.Album) }
func (t *Tag) Comment() string { return t.first(keys.Comment) }
func (t *Tag) Genre() string   { return t.first(keys.Genre) }

// Year returns the leading year of DATE, so "2004-05-17" reads as 2004.
func (t *Tag) Year() uint {
	return LeadingNumber(t.first(keys.Date))
}

// Track returns the track number, ignoring any "/total" suffix.
func (t *Tag) Track() uint {
	return LeadingNumber(t.first(keys.TrackNumber))
}

func (t *Tag) SetTitle(v string)   { t.set(keys.Title, v) }
func (t *Tag) SetArtist(v string)  { t.set(keys.Artist, v) }
func (t *Tag) SetAlbum(v string)   { t.set(keys.Album, v) }
func (t *Tag) SetComment(v string) { t.set(keys.Comment, v) }
func (t *Tag) SetGenre(v string)   { t.set(keys.Genre, v) }

func (t *Tag) SetYear(v uint) { t.set(keys.Date, formatUint(v)) }

// SetTrack replaces the track number and keeps an existing "/total".
func (t *Tag) SetTrack(v uint) {
	if v == 0 {
		t.set(keys.TrackNumber, "")
		return
	}
	value := formatUint(v)
	if _, total, ok := strings.Cut(t.first(keys.TrackNumber), "/"); ok && total != "" {
		value += "/" + total
	}
	t.set(keys.TrackNumber, value)
}

// LeadingNumber parses the decimal digits at the start of s. It returns 0
// when s does not start with a digit or the number overflows.
func LeadingNumber(s string) uint {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseUint(s[:end], 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

func formatUint(v uint) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(v), 10)
}
