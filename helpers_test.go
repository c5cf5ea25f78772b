package tagbridge_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

var (
	jpegData = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngData  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
)

// mpegFrames returns n silent 128 kb/s 44.1 kHz stereo Layer III frames.
func mpegFrames(n int) []byte {
	var buf bytes.Buffer
	for range n {
		frame := make([]byte, 417)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		buf.Write(frame)
	}
	return buf.Bytes()
}

// createMP3 returns an MPEG stream whose ID3v2.4 tag holds the given text
// frames.
func createMP3(frames map[string]string) []byte {
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	for id, text := range frames {
		tag.AddTextFrame(id, id3v2.EncodingUTF8, text)
	}

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		panic(err)
	}
	buf.Write(mpegFrames(8))
	return buf.Bytes()
}

// createFLAC returns a FLAC stream with only a STREAMINFO block.
func createFLAC() []byte {
	info := make([]byte, 34)
	binary.BigEndian.PutUint16(info[0:], 4096)
	binary.BigEndian.PutUint16(info[2:], 4096)
	binary.BigEndian.PutUint64(info[10:], 44100<<44|1<<41|15<<36|44100*5)

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write([]byte{0x80, 0x00, 0x00, 34})
	buf.Write(info)
	buf.Write([]byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00})
	return buf.Bytes()
}

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
