package propjson

import (
	"encoding/json"
	"testing"

	"github.com/simonhull/tagbridge/internal/types"
)

func props(kv ...any) *types.PropertyMap {
	m := types.NewPropertyMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1].([]string)...)
	}
	return m
}

func TestRender_Legacy(t *testing.T) {
	tests := []struct {
		name string
		m    *types.PropertyMap
		want string
	}{
		{"empty", props(), "{  }"},
		{"nil", nil, "{  }"},
		{"single", props("ARTIST", []string{"Queen"}), `{ "ARTIST": "Queen" }`},
		{
			"multi value",
			props("ALBUM", []string{"Greatest Hits", "Live"}),
			`{ "ALBUM": "Greatest Hits; Live" }`,
		},
		{
			"two keys keep insertion order",
			props("TITLE", []string{"Bohemian Rhapsody"}, "ARTIST", []string{"Queen"}),
			`{ "TITLE": "Bohemian Rhapsody", "ARTIST": "Queen" }`,
		},
		{"quote escaped", props("A", []string{`x"y`}), `{ "A": "x\"y" }`},
		{"separator inside value untouched", props("ARTIST", []string{"A; B"}), `{ "ARTIST": "A; B" }`},
		{"backslash untouched", props("A", []string{`c:\music`}), `{ "A": "c:\music" }`},
		{"newline untouched", props("A", []string{"a\nb"}), "{ \"A\": \"a\nb\" }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.m, Legacy)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if n := RenderedLength(tt.m, Legacy); n != len(got) {
				t.Errorf("RenderedLength() = %d, len(Render()) = %d", n, len(got))
			}
		})
	}
}

func TestRender_Strict(t *testing.T) {
	m := props(
		"COMMENT", []string{"line one\nline two\ttabbed", `say "hi"`},
		"PATH", []string{`c:\music\x01`},
		"TITLE", []string{"Motörhead \x01"},
	)

	got := Render(m, Strict)
	if n := RenderedLength(m, Strict); n != len(got) {
		t.Fatalf("RenderedLength() = %d, len(Render()) = %d", n, len(got))
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("strict rendering is not valid JSON: %v\n%s", err, got)
	}
	if want := "line one\nline two\ttabbed; say \"hi\""; decoded["COMMENT"] != want {
		t.Errorf("COMMENT = %q, want %q", decoded["COMMENT"], want)
	}
	if want := `c:\music\x01`; decoded["PATH"] != want {
		t.Errorf("PATH = %q, want %q", decoded["PATH"], want)
	}
	if want := "Motörhead \x01"; decoded["TITLE"] != want {
		t.Errorf("TITLE = %q, want %q", decoded["TITLE"], want)
	}
}

func TestRender_Deterministic(t *testing.T) {
	m := types.PropertyMapFromMap(map[string][]string{
		"B": {"2"}, "A": {"1"}, "C": {"3", "4"},
	})
	first := Render(m, Legacy)
	for range 10 {
		if got := Render(m, Legacy); got != first {
			t.Fatalf("Render() not deterministic: %q vs %q", got, first)
		}
	}
	if want := `{ "A": "1", "B": "2", "C": "3; 4" }`; first != want {
		t.Errorf("Render() = %q, want %q", first, want)
	}
}
