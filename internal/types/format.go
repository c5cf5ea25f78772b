package types

import (
	"bytes"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/simonhull/tagbridge/internal/binary"
)

// FileType identifies the container an adapter understands.
type FileType int

const (
	// FileTypeUnknown means detection failed; Open refuses such files.
	FileTypeUnknown FileType = iota
	// FileTypeMPEG is MPEG audio with ID3v2 tags.
	FileTypeMPEG
	// FileTypeOggVorbis is Vorbis audio in an Ogg container.
	FileTypeOggVorbis
	// FileTypeFLAC is native FLAC.
	FileTypeFLAC
	// FileTypeMPC is Musepack.
	FileTypeMPC
	// FileTypeOggFLAC is FLAC in an Ogg container.
	FileTypeOggFLAC
	// FileTypeWavPack is WavPack.
	FileTypeWavPack
	// FileTypeSpeex is Speex in an Ogg container.
	FileTypeSpeex
	// FileTypeTrueAudio is TrueAudio (TTA).
	FileTypeTrueAudio
	// FileTypeMP4 is an ISO base media file with iTunes metadata.
	FileTypeMP4
	// FileTypeASF is Windows Media (ASF/WMA).
	FileTypeASF
)

var fileTypeNames = [...]string{
	FileTypeUnknown:   "Unknown",
	FileTypeMPEG:      "MPEG",
	FileTypeOggVorbis: "Ogg Vorbis",
	FileTypeFLAC:      "FLAC",
	FileTypeMPC:       "MPC",
	FileTypeOggFLAC:   "Ogg FLAC",
	FileTypeWavPack:   "WavPack",
	FileTypeSpeex:     "Speex",
	FileTypeTrueAudio: "TrueAudio",
	FileTypeMP4:       "MP4",
	FileTypeASF:       "ASF",
}

func (t FileType) String() string {
	if t < 0 || int(t) >= len(fileTypeNames) {
		return "FileType(" + strconv.Itoa(int(t)) + ")"
	}
	return fileTypeNames[t]
}

// Extensions returns common file extensions for this type.
func (t FileType) Extensions() []string {
	switch t {
	case FileTypeMPEG:
		return []string{".mp3", ".mp2"}
	case FileTypeOggVorbis:
		return []string{".ogg"}
	case FileTypeFLAC:
		return []string{".flac"}
	case FileTypeMPC:
		return []string{".mpc", ".mp+"}
	case FileTypeOggFLAC:
		return []string{".oga"}
	case FileTypeWavPack:
		return []string{".wv"}
	case FileTypeSpeex:
		return []string{".spx"}
	case FileTypeTrueAudio:
		return []string{".tta"}
	case FileTypeMP4:
		return []string{".m4a", ".m4b", ".m4p", ".mp4", ".3g2"}
	case FileTypeASF:
		return []string{".wma", ".asf"}
	default:
		return nil
	}
}

// FileTypes lists every supported type in declaration order.
func FileTypes() []FileType {
	return []FileType{
		FileTypeMPEG, FileTypeOggVorbis, FileTypeFLAC, FileTypeMPC, FileTypeOggFLAC,
		FileTypeWavPack, FileTypeSpeex, FileTypeTrueAudio, FileTypeMP4, FileTypeASF,
	}
}

// FileTypeFromExtension maps a path's extension to a FileType.
func FileTypeFromExtension(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return FileTypeUnknown
	}
	for _, t := range FileTypes() {
		for _, e := range t.Extensions() {
			if e == ext {
				return t
			}
		}
	}
	return FileTypeUnknown
}

var asfHeaderGUID = []byte{
	0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
	0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
}

// DetectFormat determines the file type by examining magic bytes.
//
// A leading ID3v2 tag is skipped before sniffing, since FLAC, TrueAudio and
// Musepack files are sometimes written with one. When the signature is not
// recognized the extension of path decides. Detection does not validate
// the rest of the file.
func DetectFormat(r io.ReaderAt, size int64, path string) (FileType, error) {
	if size < 4 {
		return extensionFallback(path, "file too small")
	}

	sr := binary.NewSafeReader(r, size, path)

	start, hadID3 := binary.ID3v2Size(sr)
	t, known := sniff(sr, start)
	if t != FileTypeUnknown {
		return t, nil
	}
	if known {
		return FileTypeUnknown, &UnsupportedFormatError{Path: path, Reason: "unsupported Ogg codec"}
	}
	if hadID3 {
		// An ID3v2 tag followed by something unrecognised is almost always
		// an MPEG stream whose first frame is not aligned to the tag end.
		return FileTypeMPEG, nil
	}
	return extensionFallback(path, "unrecognised signature")
}

func extensionFallback(path, reason string) (FileType, error) {
	if t := FileTypeFromExtension(path); t != FileTypeUnknown {
		return t, nil
	}
	return FileTypeUnknown, &UnsupportedFormatError{Path: path, Reason: reason}
}

// sniff identifies the signature at off. known is true when the container
// was recognised even though its content is not supported, so the caller
// must not fall back to the extension.
func sniff(sr *binary.SafeReader, off int64) (t FileType, known bool) {
	if !sr.Has(off, 4) {
		return FileTypeUnknown, false
	}
	magic, err := sr.Bytes(off, 4, "file magic bytes")
	if err != nil {
		return FileTypeUnknown, false
	}

	switch string(magic) {
	case "fLaC":
		return FileTypeFLAC, true
	case "OggS":
		return sniffOgg(sr, off), true
	case "MPCK":
		return FileTypeMPC, true
	case "wvpk":
		return FileTypeWavPack, true
	case "TTA1":
		return FileTypeTrueAudio, true
	}
	if string(magic[:3]) == "MP+" {
		return FileTypeMPC, true
	}

	// MPEG frame sync: 11 set bits.
	if magic[0] == 0xFF && magic[1]&0xE0 == 0xE0 {
		return FileTypeMPEG, true
	}

	if sr.Has(off, len(asfHeaderGUID)) {
		if guid, err := sr.Bytes(off, len(asfHeaderGUID), "ASF header GUID"); err == nil &&
			bytes.Equal(guid, asfHeaderGUID) {
			return FileTypeASF, true
		}
	}

	if sr.Has(off+4, 4) {
		if atomType, err := sr.Bytes(off+4, 4, "ftyp atom type"); err == nil && string(atomType) == "ftyp" {
			return FileTypeMP4, true
		}
	}

	return FileTypeUnknown, false
}

// sniffOgg reads the first packet of the first Ogg page to find the codec.
// Ogg page header: 27 bytes fixed, then a segment table of page_segments bytes.
func sniffOgg(sr *binary.SafeReader, off int64) FileType {
	segCount, err := binary.Read[uint8](sr, off+26, "segment count")
	if err != nil {
		return FileTypeUnknown
	}
	packet := off + 27 + int64(segCount)
	if !sr.Has(packet, 8) {
		return FileTypeUnknown
	}
	codec, err := sr.Bytes(packet, 8, "codec magic")
	if err != nil {
		return FileTypeUnknown
	}
	switch {
	case string(codec[:7]) == "\x01vorbis":
		return FileTypeOggVorbis
	case string(codec) == "Speex   ":
		return FileTypeSpeex
	case string(codec[:5]) == "\x7fFLAC":
		return FileTypeOggFLAC
	}
	return FileTypeUnknown
}
