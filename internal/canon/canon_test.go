package canon

import (
	"slices"
	"testing"

	"github.com/simonhull/tagbridge/internal/types"
)

// memStore keeps a PropertyMap and records how often it was written.
type memStore struct {
	props  *types.PropertyMap
	writes int
}

func (s *memStore) Properties() *types.PropertyMap { return s.props.Clone() }

func (s *memStore) SetProperties(p *types.PropertyMap) []string {
	s.props = p.Clone()
	s.writes++
	return nil
}

func newStore(m map[string][]string) *memStore {
	return &memStore{props: types.PropertyMapFromMap(m)}
}

func TestTag_Getters(t *testing.T) {
	tag := New(newStore(map[string][]string{
		"TITLE":       {"Song", "Alt Title"},
		"ARTIST":      {"Band"},
		"ALBUM":       {"Record"},
		"COMMENT":     {"note"},
		"GENRE":       {"Rock"},
		"DATE":        {"2004-05-17"},
		"TRACKNUMBER": {"7/12"},
	}))

	if got := tag.Title(); got != "Song" {
		t.Errorf("Title() = %q", got)
	}
	if got := tag.Artist(); got != "Band" {
		t.Errorf("Artist() = %q", got)
	}
	if got := tag.Album(); got != "Record" {
		t.Errorf("Album() = %q", got)
	}
	if got := tag.Comment(); got != "note" {
		t.Errorf("Comment() = %q", got)
	}
	if got := tag.Genre(); got != "Rock" {
		t.Errorf("Genre() = %q", got)
	}
	if got := tag.Year(); got != 2004 {
		t.Errorf("Year() = %d", got)
	}
	if got := tag.Track(); got != 7 {
		t.Errorf("Track() = %d", got)
	}
}

func TestTag_EmptyDefaults(t *testing.T) {
	tag := New(newStore(nil))
	if tag.Title() != "" || tag.Genre() != "" || tag.Year() != 0 || tag.Track() != 0 {
		t.Error("absent fields should read as zero values")
	}
}

func TestTag_SettersWriteThrough(t *testing.T) {
	store := newStore(map[string][]string{"TRACKNUMBER": {"3/10"}, "GENRE": {"Rock"}})
	tag := New(store)

	tag.SetTitle("New Title")
	if got, _ := store.props.Get("TITLE"); !slices.Equal(got, []string{"New Title"}) {
		t.Errorf("TITLE = %q", got)
	}
	if tag.Title() != "New Title" {
		t.Errorf("Title() = %q after set", tag.Title())
	}

	tag.SetTrack(4)
	if got, _ := store.props.Get("TRACKNUMBER"); !slices.Equal(got, []string{"4/10"}) {
		t.Errorf("TRACKNUMBER = %q, want total kept", got)
	}

	tag.SetYear(1999)
	if tag.Year() != 1999 {
		t.Errorf("Year() = %d", tag.Year())
	}

	tag.SetGenre("")
	if store.props.Contains("GENRE") {
		t.Error("SetGenre(\"\") should remove GENRE")
	}
	tag.SetTrack(0)
	if store.props.Contains("TRACKNUMBER") {
		t.Error("SetTrack(0) should remove TRACKNUMBER")
	}

	if store.writes != 5 {
		t.Errorf("writes = %d, want 5", store.writes)
	}
}

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want uint
	}{
		{"2004", 2004},
		{"2004-05-17", 2004},
		{" 12/15", 12},
		{"", 0},
		{"abc", 0},
		{"99999999999", 0},
	}
	for _, tt := range tests {
		if got := LeadingNumber(tt.in); got != tt.want {
			t.Errorf("LeadingNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
