package types

import (
	"slices"
	"strings"
	"testing"
)

func TestPropertyMap_Set(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []string
		present bool
	}{
		{"single", []string{"Rock"}, []string{"Rock"}, true},
		{"drops empty", []string{"Rock", "", "Alternative"}, []string{"Rock", "Alternative"}, true},
		{"no values removes", nil, nil, false},
		{"only empty removes", []string{"", ""}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPropertyMap()
			m.Set("GENRE", "Jazz")
			m.Set("GENRE", tt.values...)

			got, ok := m.Get("GENRE")
			if ok != tt.present {
				t.Fatalf("Get() ok = %v, want %v", ok, tt.present)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
			if !tt.present && m.Len() != 0 {
				t.Errorf("Len() = %d after removal, want 0", m.Len())
			}
		})
	}
}

func TestPropertyMap_KeysNormalized(t *testing.T) {
	var m PropertyMap
	m.Set("artist", "A")
	m.Append("Artist", "B")

	if got := m.Keys(); !slices.Equal(got, []string{"ARTIST"}) {
		t.Errorf("Keys() = %q", got)
	}
	if got, _ := m.Get("ARTIST"); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Get() = %q", got)
	}
}

func TestPropertyMap_ReplaceKeepsPosition(t *testing.T) {
	m := NewPropertyMap()
	m.Set("TITLE", "t")
	m.Set("ARTIST", "a")
	m.Set("ALBUM", "b")
	m.Set("ARTIST", "x", "y")

	if got := m.Keys(); !slices.Equal(got, []string{"TITLE", "ARTIST", "ALBUM"}) {
		t.Errorf("Keys() = %q", got)
	}

	m.Delete("ARTIST")
	m.Delete("MISSING")
	if got := m.Keys(); !slices.Equal(got, []string{"TITLE", "ALBUM"}) {
		t.Errorf("Keys() after delete = %q", got)
	}
}

func TestPropertyMap_KeyAtEnumeratesOnce(t *testing.T) {
	m := PropertyMapFromMap(map[string][]string{
		"TITLE":  {"Song"},
		"ARTIST": {"A", "B"},
		"GENRE":  {"Rock; Pop"},
	})

	seen := map[string]bool{}
	for i := range m.Len() {
		key, ok := m.KeyAt(i)
		if !ok {
			t.Fatalf("KeyAt(%d) not found", i)
		}
		if seen[key] {
			t.Fatalf("KeyAt(%d) = %q repeated", i, key)
		}
		seen[key] = true

		count, length, ok := m.Attrs(key)
		values, _ := m.Get(key)
		if !ok || count != len(values) || length != len(strings.Join(values, "; ")) {
			t.Errorf("Attrs(%q) = %d, %d, %v", key, count, length, ok)
		}
	}
	if len(seen) != 3 {
		t.Errorf("enumerated %d keys, want 3", len(seen))
	}
	if _, ok := m.KeyAt(3); ok {
		t.Error("KeyAt(Len()) should be not found")
	}
	if _, ok := m.KeyAt(-1); ok {
		t.Error("KeyAt(-1) should be not found")
	}
}

func TestPropertyMap_GetReturnsCopy(t *testing.T) {
	m := NewPropertyMap()
	m.Set("TITLE", "Song")

	got, _ := m.Get("TITLE")
	got[0] = "changed"

	if again, _ := m.Get("TITLE"); again[0] != "Song" {
		t.Errorf("Get() aliased internal storage: %q", again)
	}
}

func TestPropertyMap_CloneAndEqual(t *testing.T) {
	a := NewPropertyMap()
	a.Set("TITLE", "Song")
	a.Set("ARTIST", "A", "B")

	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone not equal")
	}

	b.Set("ARTIST", "A")
	if a.Equal(b) {
		t.Error("Equal() ignores value differences")
	}

	c := NewPropertyMap()
	c.Set("ARTIST", "A", "B")
	c.Set("TITLE", "Song")
	if !a.Equal(c) {
		t.Error("Equal() should ignore order")
	}
}

func TestPropertyMap_NilSafe(t *testing.T) {
	var m *PropertyMap
	if m.Len() != 0 || m.Contains("X") || m.Keys() != nil {
		t.Error("nil map should behave as empty")
	}
	if _, ok := m.Get("X"); ok {
		t.Error("Get() on nil map found a value")
	}
	if len(m.Map()) != 0 {
		t.Error("Map() on nil map not empty")
	}
}

func TestPropertyMap_Filter(t *testing.T) {
	m := NewPropertyMap()
	m.Set("MUSICBRAINZ_ALBUMID", "x")
	m.Set("TITLE", "t")
	m.Set("MUSICBRAINZ_TRACKID", "y")

	var got []string
	for key := range m.Filter(func(k string) bool { return strings.HasPrefix(k, "MUSICBRAINZ_") }) {
		got = append(got, key)
	}
	if !slices.Equal(got, []string{"MUSICBRAINZ_ALBUMID", "MUSICBRAINZ_TRACKID"}) {
		t.Errorf("Filter() = %q", got)
	}
}
