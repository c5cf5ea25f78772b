package types

import "fmt"

// Picture is an embedded image as stored in a tag frame or block.
type Picture struct {
	// MIME type recorded by the frame, e.g. "image/jpeg".
	MIMEType string

	Type PictureType

	Description string

	// Raw image bytes, exactly as stored.
	Data []byte
}

// PictureType classifies the picture. Values are shared by ID3v2 APIC
// frames and FLAC PICTURE blocks.
type PictureType byte

const (
	PictureOther PictureType = iota
	PictureFileIcon
	PictureOtherFileIcon
	PictureFrontCover
	PictureBackCover
	PictureLeaflet
	PictureMedia
	PictureLeadArtist
	PictureArtist
	PictureConductor
	PictureBand
	PictureComposer
	PictureLyricist
	PictureRecordingLocation
	PictureDuringRecording
	PictureDuringPerformance
	PictureVideoCapture
	PictureBrightFish
	PictureIllustration
	PictureBandLogotype
	PicturePublisherLogotype
)

var pictureTypeNames = [...]string{
	"Other",
	"File icon",
	"Other file icon",
	"Front cover",
	"Back cover",
	"Leaflet page",
	"Media",
	"Lead artist",
	"Artist",
	"Conductor",
	"Band",
	"Composer",
	"Lyricist",
	"Recording location",
	"During recording",
	"During performance",
	"Video capture",
	"A bright coloured fish",
	"Illustration",
	"Band logotype",
	"Publisher logotype",
}

func (t PictureType) String() string {
	if int(t) < len(pictureTypeNames) {
		return pictureTypeNames[t]
	}
	return fmt.Sprintf("PictureType(%d)", byte(t))
}

// PictureAttrs describes the first picture without its payload.
type PictureAttrs struct {
	MIMEType string
	Type     PictureType
	Size     int
}

// Attrs returns the picture's attributes.
func (p Picture) Attrs() PictureAttrs {
	return PictureAttrs{MIMEType: p.MIMEType, Type: p.Type, Size: len(p.Data)}
}

// String returns a short description such as "Front cover (JPEG, 245KB)".
func (p Picture) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Type, mimeToFormat(p.MIMEType), formatSize(len(p.Data)))
}

// DetectMIMEType sniffs an image MIME type from magic bytes.
// It returns "" when the format is not recognised.
func DetectMIMEType(data []byte) string {
	if len(data) < 4 {
		return ""
	}

	switch {
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case data[0] == 0x89 && string(data[1:4]) == "PNG":
		return "image/png"
	case string(data[:3]) == "GIF":
		return "image/gif"
	case data[0] == 'B' && data[1] == 'M':
		return "image/bmp"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	}
	return ""
}

func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func mimeToFormat(mime string) string {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "JPEG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	case "image/webp":
		return "WebP"
	default:
		return "Image"
	}
}
