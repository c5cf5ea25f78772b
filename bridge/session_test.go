package bridge

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/tagbridge"
)

func writeMP3(t *testing.T, title string) string {
	t.Helper()
	tag := id3v2.NewEmptyTag()
	if title != "" {
		tag.AddTextFrame("TIT2", id3v2.EncodingUTF8, title)
	}
	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	for range 4 {
		frame := make([]byte, 417)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		buf.Write(frame)
	}

	path := filepath.Join(t.TempDir(), "song.mp3")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(tagbridge.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func openHandle(t *testing.T, s *Session, path string) *Handle {
	t.Helper()
	h, err := s.Open([]byte(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestEncodingSwitch_DoesNotAffectReturnedStrings(t *testing.T) {
	s := newSession(t)
	h := openHandle(t, s, writeMP3(t, "Café"))

	utf8Title := h.Title()
	if !bytes.Equal(utf8Title, []byte("Café")) {
		t.Fatalf("UTF-8 Title() = %x", utf8Title)
	}

	if err := s.SetStringEncoding(tagbridge.EncodingLatin1); err != nil {
		t.Fatal(err)
	}
	latin1Title := h.Title()

	if !bytes.Equal(latin1Title, []byte{'C', 'a', 'f', 0xE9}) {
		t.Errorf("Latin-1 Title() = %x", latin1Title)
	}
	if !bytes.Equal(utf8Title, []byte("Café")) {
		t.Errorf("earlier string changed to %x", utf8Title)
	}
}

func TestSetStringEncoding_Rejects(t *testing.T) {
	s := newSession(t)
	if err := s.SetStringEncoding(tagbridge.EncodingUTF16); err == nil {
		t.Error("SetStringEncoding(UTF-16) succeeded")
	}
	if got := s.Config().StringEncoding; got != tagbridge.EncodingUTF8 {
		t.Errorf("encoding changed to %v after a rejected switch", got)
	}
}

func TestLatin1Input(t *testing.T) {
	s := newSession(t)
	h := openHandle(t, s, writeMP3(t, ""))
	if err := s.SetStringEncoding(tagbridge.EncodingLatin1); err != nil {
		t.Fatal(err)
	}

	h.SetTitle([]byte{'N', 0xE4, 'h', 'e'})
	if got := h.File().Tag().Title(); got != "Nähe" {
		t.Errorf("Title() = %q, want Nähe", got)
	}
}

func TestFreeStrings(t *testing.T) {
	s := newSession(t)
	h := openHandle(t, s, writeMP3(t, "Song"))

	h.Title()
	h.PropertiesJSON()
	if n, size := s.Tracked(); n != 2 || size != len("Song")+len(`{ "TITLE": "Song" }`) {
		t.Errorf("Tracked() = %d, %d", n, size)
	}
	if got := s.FreeStrings(); got != 2 {
		t.Errorf("FreeStrings() = %d, want 2", got)
	}
	if n, _ := s.Tracked(); n != 0 {
		t.Errorf("Tracked() after free = %d", n)
	}

	s.SetStringManagement(false)
	title := h.Title()
	if n, _ := s.Tracked(); n != 0 {
		t.Errorf("unmanaged string tracked (%d)", n)
	}
	if got := s.FreeStrings(); got != 0 || string(title) != "Song" {
		t.Errorf("FreeStrings() = %d with management off, title %q", got, title)
	}
}

func TestProperties(t *testing.T) {
	s := newSession(t)
	h := openHandle(t, s, writeMP3(t, "Song"))

	h.SetProperty([]byte("ALBUM"), []byte("Greatest Hits; Live"), true)

	if got := string(h.Property([]byte("album"))); got != "Greatest Hits; Live" {
		t.Errorf("Property(album) = %q", got)
	}
	if h.Property([]byte("MISSING")) != nil {
		t.Error("Property(MISSING) != nil")
	}

	count, length, ok := h.PropertyAttrs([]byte("ALBUM"))
	if !ok || count != 2 || length != len("Greatest Hits; Live") {
		t.Errorf("PropertyAttrs() = %d, %d, %v", count, length, ok)
	}
	if h.PropertyKeyAt(2) != nil {
		t.Error("PropertyKeyAt(2) past the end != nil")
	}
	if got := h.PropertiesJSONLength(); got != len(h.PropertiesJSON()) {
		t.Errorf("PropertiesJSONLength() = %d, want %d", got, len(h.PropertiesJSON()))
	}
}

func TestPictureAttrs_NoPicture(t *testing.T) {
	s := newSession(t)
	h := openHandle(t, s, writeMP3(t, "Song"))

	if _, _, err := h.PictureAttrs(); !errors.Is(err, tagbridge.ErrNoPicture) {
		t.Errorf("PictureAttrs() error = %v", err)
	}
	out := filepath.Join(t.TempDir(), "cover.jpg")
	if err := h.ExportPicture([]byte(out)); !errors.Is(err, tagbridge.ErrNoPicture) {
		t.Errorf("ExportPicture() error = %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("ExportPicture() created a file without a picture")
	}
}

func TestID3v2TextEncoding(t *testing.T) {
	s := newSession(t)
	if err := s.SetID3v2TextEncoding(tagbridge.EncodingUTF16); err != nil {
		t.Fatal(err)
	}
	path := writeMP3(t, "")
	h := openHandle(t, s, path)
	h.SetTitle([]byte("日本"))
	if err := h.Save(); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()
	frame, ok := tag.GetLastFrame("TIT2").(id3v2.TextFrame)
	if !ok || !frame.Encoding.Equals(id3v2.EncodingUTF16) || frame.Text != "日本" {
		t.Errorf("TIT2 = %+v", frame)
	}

	if err := s.SetID3v2TextEncoding(tagbridge.Encoding(9)); err == nil {
		t.Error("SetID3v2TextEncoding(9) succeeded")
	}
}
