package taglibfile

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"go.senan.xyz/taglib"

	"github.com/simonhull/tagbridge/internal/registry"
	"github.com/simonhull/tagbridge/internal/types"
)

// fakeTagLib replaces the TagLib calls with an in-memory store.
type fakeTagLib struct {
	tags    map[string][]string
	written map[string][]string
	opts    taglib.WriteOption
	props   taglib.Properties
	err     error
}

func install(t *testing.T, fake *fakeTagLib) string {
	t.Helper()
	origRead, origWrite, origProps := readTags, writeTags, readProperties
	t.Cleanup(func() {
		readTags, writeTags, readProperties = origRead, origWrite, origProps
	})

	readTags = func(string) (map[string][]string, error) {
		if fake.err != nil {
			return nil, fake.err
		}
		return maps.Clone(fake.tags), nil
	}
	writeTags = func(_ string, tags map[string][]string, opts taglib.WriteOption) error {
		fake.written, fake.opts = tags, opts
		return nil
	}
	readProperties = func(string) (taglib.Properties, error) {
		return fake.props, fake.err
	}

	path := filepath.Join(t.TempDir(), "test.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen_Properties(t *testing.T) {
	path := install(t, &fakeTagLib{tags: map[string][]string{
		"TITLE":  {"Song"},
		"ARTIST": {"A", "B"},
		"DATE":   {"1999"},
	}})

	f, err := Open(path, types.FileTypeOggVorbis, types.OpenConfig{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if got := f.Properties().Keys(); !slices.Equal(got, []string{"ARTIST", "DATE", "TITLE"}) {
		t.Errorf("Keys() = %q, want sorted keys", got)
	}
	if got := f.Tag().Year(); got != 1999 {
		t.Errorf("Year() = %d", got)
	}
	if got := f.FileType(); got != types.FileTypeOggVorbis {
		t.Errorf("FileType() = %v", got)
	}
}

func TestOpen_Errors(t *testing.T) {
	fake := &fakeTagLib{err: errors.New("invalid file")}
	path := install(t, fake)

	var corrupted *types.CorruptedFileError
	if _, err := Open(path, types.FileTypeASF, types.OpenConfig{}); !errors.As(err, &corrupted) {
		t.Errorf("Open() error = %v, want CorruptedFileError", err)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.wv"), types.FileTypeWavPack, types.OpenConfig{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() missing file error = %v", err)
	}
}

func TestSetProperties_Save(t *testing.T) {
	fake := &fakeTagLib{tags: map[string][]string{"TITLE": {"Old"}, "ALBUM": {"Gone"}}}
	path := install(t, fake)

	f, err := Open(path, types.FileTypeWavPack, types.OpenConfig{})
	if err != nil {
		t.Fatal(err)
	}

	f.Tag().SetTitle("New")
	props := f.Properties()
	props.Delete("ALBUM")
	props.Set("GENRE", "Rock", "Pop")
	props.Set("BAD=KEY", "x")

	if unsupported := f.SetProperties(props); !slices.Equal(unsupported, []string{"BAD=KEY"}) {
		t.Errorf("unsupported = %q", unsupported)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	want := map[string][]string{"TITLE": {"New"}, "GENRE": {"Rock", "Pop"}}
	if !maps.EqualFunc(fake.written, want, slices.Equal) {
		t.Errorf("written = %v, want %v", fake.written, want)
	}
	if fake.opts != taglib.Clear {
		t.Errorf("write options = %v, want Clear", fake.opts)
	}
}

func TestReadAudioProperties(t *testing.T) {
	path := install(t, &fakeTagLib{props: taglib.Properties{
		Length:     205 * time.Second,
		Bitrate:    320,
		SampleRate: 44100,
		Channels:   2,
	}})

	got, err := ReadAudioProperties(path)
	if err != nil {
		t.Fatal(err)
	}
	want := types.AudioProperties{Length: 205 * time.Second, Bitrate: 320, SampleRate: 44100, Channels: 2}
	if got != want {
		t.Errorf("ReadAudioProperties() = %+v, want %+v", got, want)
	}
}

func TestRegistered(t *testing.T) {
	for _, ft := range FileTypes {
		if registry.Get(ft) == nil {
			t.Errorf("no opener registered for %v", ft)
		}
	}
}
