package mpeg

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/dhowden/tag"
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/canon"
	"github.com/simonhull/tagbridge/internal/keys"
	"github.com/simonhull/tagbridge/internal/types"
)

// v22FrameKeys maps three-letter ID3v2.2 frame IDs to property keys.
var v22FrameKeys = map[string]string{
	"TAL": keys.Album,
	"TBP": "BPM",
	"TCM": keys.Composer,
	"TCO": keys.Genre,
	"TCR": "COPYRIGHT",
	"TEN": "ENCODEDBY",
	"TP1": keys.Artist,
	"TP2": keys.AlbumArtist,
	"TP3": "CONDUCTOR",
	"TP4": "REMIXER",
	"TPA": keys.DiscNumber,
	"TPB": "LABEL",
	"TRC": "ISRC",
	"TRK": keys.TrackNumber,
	"TT1": "WORK",
	"TT2": keys.Title,
	"TT3": "SUBTITLE",
	"TXT": "LYRICIST",
	"TYE": keys.Date,
}

// Picture type names as reported by github.com/dhowden/tag.
var legacyPictureTypes = map[string]types.PictureType{
	"Other":                               types.PictureOther,
	"32x32 pixels 'file icon' (PNG only)": types.PictureFileIcon,
	"Other file icon":                     types.PictureOtherFileIcon,
	"Cover (front)":                       types.PictureFrontCover,
	"Cover (back)":                        types.PictureBackCover,
	"Leaflet page":                        types.PictureLeaflet,
	"Media (e.g. label side of CD)":       types.PictureMedia,
	"Lead artist/lead performer/soloist":  types.PictureLeadArtist,
	"Artist/performer":                    types.PictureArtist,
	"Conductor":                           types.PictureConductor,
	"Band/Orchestra":                      types.PictureBand,
	"Composer":                            types.PictureComposer,
	"Lyricist/text writer":                types.PictureLyricist,
	"Recording Location":                  types.PictureRecordingLocation,
	"During recording":                    types.PictureDuringRecording,
	"During performance":                  types.PictureDuringPerformance,
	"Movie/video screen capture":          types.PictureVideoCapture,
	"A bright coloured fish":              types.PictureBrightFish,
	"Illustration":                        types.PictureIllustration,
	"Band/artist logotype":                types.PictureBandLogotype,
	"Publisher/Studio logotype":           types.PicturePublisherLogotype,
}

// legacyFile holds an ID3v2.2 tag in memory. Edits are kept until Close
// but Save always fails.
type legacyFile struct {
	path     string
	props    *types.PropertyMap
	pictures []types.Picture
	log      *zap.Logger
	view     *canon.Tag
}

var (
	_ types.TaggedFile    = (*legacyFile)(nil)
	_ types.PictureSource = (*legacyFile)(nil)
)

func openLegacy(path string, log *zap.Logger) (types.TaggedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck // Read-only handle

	m, err := tag.ReadFrom(file)
	if err != nil {
		return nil, &types.CorruptedFileError{Path: path, Reason: "parse ID3v2.2 tag", Err: err}
	}

	f := &legacyFile{
		path:  path,
		props: legacyProperties(m.Raw()),
		log:   log,
	}
	if p := m.Picture(); p != nil {
		f.pictures = append(f.pictures, types.Picture{
			MIMEType:    p.MIMEType,
			Type:        legacyPictureTypes[p.Type],
			Description: p.Description,
			Data:        p.Data,
		})
	}
	f.view = canon.New(f)
	return f, nil
}

// legacyProperties translates the raw frame map of github.com/dhowden/tag.
// Repeated frames appear there as "ID_0", "ID_1", and so on.
func legacyProperties(raw map[string]any) *types.PropertyMap {
	props := types.NewPropertyMap()
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		id, _, _ := strings.Cut(name, "_")
		switch v := raw[name].(type) {
		case string:
			if key, ok := v22FrameKeys[id]; ok {
				props.Append(key, splitText(v)...)
			}
		case *tag.Comm:
			switch id {
			case "TXX", "TXXX":
				props.Append(keys.FromDescription(v.Description), splitText(v.Text)...)
			case "COM", "COMM":
				props.Append(describedKey(keys.Comment, v.Description), splitText(v.Text)...)
			case "ULT", "USLT":
				props.Append(describedKey(keys.Lyrics, v.Description), splitText(v.Text)...)
			}
		}
	}
	return props
}

func (f *legacyFile) FileType() types.FileType { return types.FileTypeMPEG }

func (f *legacyFile) Tag() types.Tag { return f.view }

func (f *legacyFile) Properties() *types.PropertyMap { return f.props.Clone() }

func (f *legacyFile) SetProperties(props *types.PropertyMap) []string {
	f.props = props.Clone()
	return nil
}

func (f *legacyFile) AudioProperties() (types.AudioProperties, bool) {
	return audioPropertiesAt(f.path, f.log)
}

func (f *legacyFile) FirstPicture() (types.Picture, bool) {
	if len(f.pictures) == 0 {
		return types.Picture{}, false
	}
	return f.pictures[0], true
}

func (f *legacyFile) RemoveFirstPicture() bool {
	if len(f.pictures) == 0 {
		return false
	}
	f.pictures = f.pictures[1:]
	return true
}

func (f *legacyFile) AddPicture(types.Picture) error {
	return f.readOnly()
}

func (f *legacyFile) Save() error {
	return fmt.Errorf("save %s: %w", f.path, f.readOnly())
}

func (f *legacyFile) readOnly() error {
	return &types.UnsupportedWriteError{FileType: types.FileTypeMPEG, Reason: "ID3v2.2 tags are read-only"}
}

func (f *legacyFile) Close() error { return nil }
