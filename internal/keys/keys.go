// Package keys names the canonical property keys and translates the
// free-form descriptions used by ID3v2 TXXX frames and MP4 "----" atoms.
package keys

import "strings"

// Canonical keys read and written by the canonical field accessors.
const (
	Title       = "TITLE"
	Artist      = "ARTIST"
	Album       = "ALBUM"
	AlbumArtist = "ALBUMARTIST"
	Comment     = "COMMENT"
	Genre       = "GENRE"
	Date        = "DATE"
	TrackNumber = "TRACKNUMBER"
	DiscNumber  = "DISCNUMBER"
	Composer    = "COMPOSER"
	Lyrics      = "LYRICS"
)

// freeform maps the mixed-case descriptions taggers such as Picard write
// into free-form slots onto canonical keys.
var freeform = map[string]string{
	"MusicBrainz Album Id":              "MUSICBRAINZ_ALBUMID",
	"MusicBrainz Artist Id":             "MUSICBRAINZ_ARTISTID",
	"MusicBrainz Album Artist Id":       "MUSICBRAINZ_ALBUMARTISTID",
	"MusicBrainz Release Group Id":      "MUSICBRAINZ_RELEASEGROUPID",
	"MusicBrainz Release Track Id":      "MUSICBRAINZ_RELEASETRACKID",
	"MusicBrainz Work Id":               "MUSICBRAINZ_WORKID",
	"MusicBrainz Album Release Country": "RELEASECOUNTRY",
	"MusicBrainz Album Status":          "RELEASESTATUS",
	"MusicBrainz Album Type":            "RELEASETYPE",
	"MusicBrainz Track Id":              "MUSICBRAINZ_TRACKID",
	"Acoustid Id":                       "ACOUSTID_ID",
	"Acoustid Fingerprint":              "ACOUSTID_FINGERPRINT",
	"MusicIP PUID":                      "MUSICIP_PUID",
}

var freeformByKey = func() map[string]string {
	m := make(map[string]string, len(freeform))
	for desc, key := range freeform {
		m[key] = desc
	}
	return m
}()

// freeformFolded is freeform keyed by upper-cased description, for
// taggers that upper-case free-form names.
var freeformFolded = func() map[string]string {
	m := make(map[string]string, len(freeform))
	for desc, key := range freeform {
		m[strings.ToUpper(desc)] = key
	}
	return m
}()

// FromDescription converts a free-form description to a property key.
// Known descriptions match regardless of case.
func FromDescription(desc string) string {
	upper := strings.ToUpper(desc)
	if key, ok := freeformFolded[upper]; ok {
		return key
	}
	return upper
}

// ToDescription converts a property key back to the description taggers
// expect in a free-form slot.
func ToDescription(key string) string {
	if desc, ok := freeformByKey[key]; ok {
		return desc
	}
	return key
}

// Valid reports whether key can be stored by formats with free-form
// keys: non-empty printable ASCII without '='.
func Valid(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < 0x20 || c > 0x7D || c == '=' {
			return false
		}
	}
	return true
}
