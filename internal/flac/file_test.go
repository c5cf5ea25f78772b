package flac

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/simonhull/tagbridge/internal/types"
)

// streamInfo builds a STREAMINFO body for the given stream parameters.
func streamInfo(sampleRate, channels, bitsPerSample, totalSamples uint64) []byte {
	data := make([]byte, streamInfoLength)
	binary.BigEndian.PutUint16(data[0:], 4096)
	binary.BigEndian.PutUint16(data[2:], 4096)
	packed := sampleRate<<44 | (channels-1)<<41 | (bitsPerSample-1)<<36 | totalSamples
	binary.BigEndian.PutUint64(data[10:], packed)
	return data
}

// createMinimalFLAC returns a FLAC stream with STREAMINFO as its only
// metadata block, followed by a few bytes of fake frame data.
func createMinimalFLAC() []byte {
	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write([]byte{0x80, 0x00, 0x00, streamInfoLength}) // last block, STREAMINFO
	buf.Write(streamInfo(44100, 2, 16, 44100*10))
	buf.Write([]byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00})
	return buf.Bytes()
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.flac")
	if err := os.WriteFile(path, createMinimalFLAC(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func openFixture(t *testing.T, path string) *File {
	t.Helper()
	tf, err := Open(path, types.OpenConfig{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = tf.Close() })
	return tf.(*File)
}

func TestParseStreamInfo(t *testing.T) {
	props, err := parseStreamInfo(streamInfo(48000, 1, 24, 48000*90), 1_000_000)
	if err != nil {
		t.Fatalf("parseStreamInfo() error = %v", err)
	}
	if props.SampleRate != 48000 || props.Channels != 1 {
		t.Errorf("props = %+v", props)
	}
	if props.Length != 90*time.Second {
		t.Errorf("Length = %v, want 90s", props.Length)
	}
	// 1,000,000 bytes * 8 / 90 s / 1000 = 88 kb/s
	if props.Bitrate != 88 {
		t.Errorf("Bitrate = %d, want 88", props.Bitrate)
	}

	if _, err := parseStreamInfo(make([]byte, 10), 0); err == nil {
		t.Error("short STREAMINFO should fail")
	}
}

func TestOpen_EmptyTag(t *testing.T) {
	f := openFixture(t, writeFixture(t))

	if f.FileType() != types.FileTypeFLAC {
		t.Errorf("FileType() = %v", f.FileType())
	}
	if f.Properties().Len() != 0 {
		t.Errorf("Properties() = %v, want empty", f.Properties().Map())
	}
	if _, ok := f.FirstPicture(); ok {
		t.Error("FirstPicture() found a picture in an empty file")
	}
	if f.RemoveFirstPicture() {
		t.Error("RemoveFirstPicture() reported removal on an empty file")
	}

	audio, ok := f.AudioProperties()
	if !ok {
		t.Fatal("AudioProperties() not available")
	}
	if audio.SampleRate != 44100 || audio.Channels != 2 || audio.LengthSeconds() != 10 {
		t.Errorf("AudioProperties() = %+v", audio)
	}
}

func TestOpen_NotFLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flac")
	if err := os.WriteFile(path, []byte("not a flac file at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, types.OpenConfig{}); err == nil {
		t.Fatal("Open() should fail for non-FLAC data")
	}
}

func TestSetPropertiesSaveReopen(t *testing.T) {
	path := writeFixture(t)
	f := openFixture(t, path)

	props := types.NewPropertyMap()
	props.Set("TITLE", "Song")
	props.Set("ARTIST", "A", "B")
	props.Set("NOT=VALID", "x")

	unsupported := f.SetProperties(props)
	if !slices.Equal(unsupported, []string{"NOT=VALID"}) {
		t.Errorf("unsupported = %q", unsupported)
	}
	f.Tag().SetAlbum("Record")

	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again := openFixture(t, path)
	got := again.Properties()
	if v, _ := got.Get("ARTIST"); !slices.Equal(v, []string{"A", "B"}) {
		t.Errorf("ARTIST = %q", v)
	}
	if again.Tag().Title() != "Song" || again.Tag().Album() != "Record" {
		t.Errorf("title/album = %q/%q", again.Tag().Title(), again.Tag().Album())
	}
	if got.Contains("NOT=VALID") {
		t.Error("invalid key was stored")
	}
	if _, ok := again.AudioProperties(); !ok {
		t.Error("STREAMINFO lost on save")
	}
}

func TestPictures(t *testing.T) {
	path := writeFixture(t)
	f := openFixture(t, path)

	first := types.Picture{MIMEType: "image/jpeg", Type: types.PictureFrontCover, Description: "front", Data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 1}}
	second := types.Picture{MIMEType: "image/png", Type: types.PictureBackCover, Description: "back", Data: []byte{0x89, 'P', 'N', 'G', 2}}
	for _, p := range []types.Picture{first, second} {
		if err := f.AddPicture(p); err != nil {
			t.Fatalf("AddPicture() error = %v", err)
		}
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again := openFixture(t, path)
	pic, ok := again.FirstPicture()
	if !ok {
		t.Fatal("FirstPicture() not found")
	}
	if pic.MIMEType != "image/jpeg" || pic.Type != types.PictureFrontCover || !bytes.Equal(pic.Data, first.Data) {
		t.Errorf("FirstPicture() = %v", pic)
	}

	if !again.RemoveFirstPicture() {
		t.Fatal("RemoveFirstPicture() = false")
	}
	pic, ok = again.FirstPicture()
	if !ok || pic.Type != types.PictureBackCover || !bytes.Equal(pic.Data, second.Data) {
		t.Errorf("after removal FirstPicture() = %v, %v; want the back cover", pic, ok)
	}
	if len(again.pictureIndexes()) != 1 {
		t.Errorf("pictures left = %d, want 1", len(again.pictureIndexes()))
	}
}
