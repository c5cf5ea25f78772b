package tagbridge

import (
	"github.com/simonhull/tagbridge/internal/types"
)

// Picture is an embedded image with its MIME type and classification.
type Picture = types.Picture

// PictureType classifies an embedded picture using the ID3v2 APIC codes,
// which FLAC PICTURE blocks share.
type PictureType = types.PictureType

// PictureAttrs describes a picture without its data.
type PictureAttrs = types.PictureAttrs

// Picture types.
const (
	PictureOther             = types.PictureOther
	PictureFileIcon          = types.PictureFileIcon
	PictureOtherFileIcon     = types.PictureOtherFileIcon
	PictureFrontCover        = types.PictureFrontCover
	PictureBackCover         = types.PictureBackCover
	PictureLeaflet           = types.PictureLeaflet
	PictureMedia             = types.PictureMedia
	PictureLeadArtist        = types.PictureLeadArtist
	PictureArtist            = types.PictureArtist
	PictureConductor         = types.PictureConductor
	PictureBand              = types.PictureBand
	PictureComposer          = types.PictureComposer
	PictureLyricist          = types.PictureLyricist
	PictureRecordingLocation = types.PictureRecordingLocation
	PictureDuringRecording   = types.PictureDuringRecording
	PictureDuringPerformance = types.PictureDuringPerformance
	PictureVideoCapture      = types.PictureVideoCapture
	PictureBrightFish        = types.PictureBrightFish
	PictureIllustration      = types.PictureIllustration
	PictureBandLogotype      = types.PictureBandLogotype
	PicturePublisherLogotype = types.PicturePublisherLogotype
)

// DetectMIMEType returns the MIME type of JPEG, PNG, GIF, BMP or WebP data,
// or "" for anything else.
func DetectMIMEType(data []byte) string {
	return types.DetectMIMEType(data)
}
