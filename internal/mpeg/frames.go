package mpeg

import (
	"strings"

	"github.com/simonhull/tagbridge/internal/keys"
)

// textFrameKeys maps ID3v2.3/2.4 text frame IDs to property keys.
var textFrameKeys = map[string]string{
	"TALB": keys.Album,
	"TBPM": "BPM",
	"TCOM": keys.Composer,
	"TCON": keys.Genre,
	"TCOP": "COPYRIGHT",
	"TDEN": "ENCODINGTIME",
	"TDOR": "ORIGINALDATE",
	"TDRC": keys.Date,
	"TDRL": "RELEASEDATE",
	"TENC": "ENCODEDBY",
	"TEXT": "LYRICIST",
	"TIT1": "WORK",
	"TIT2": keys.Title,
	"TIT3": "SUBTITLE",
	"TKEY": "INITIALKEY",
	"TLAN": "LANGUAGE",
	"TLEN": "LENGTH",
	"TMED": "MEDIA",
	"TMOO": "MOOD",
	"TOAL": "ORIGINALALBUM",
	"TOPE": "ORIGINALARTIST",
	"TPE1": keys.Artist,
	"TPE2": keys.AlbumArtist,
	"TPE3": "CONDUCTOR",
	"TPE4": "REMIXER",
	"TPOS": keys.DiscNumber,
	"TPUB": "LABEL",
	"TRCK": keys.TrackNumber,
	"TSOA": "ALBUMSORT",
	"TSOC": "COMPOSERSORT",
	"TSOP": "ARTISTSORT",
	"TSOT": "TITLESORT",
	"TSO2": "ALBUMARTISTSORT",
	"TSRC": "ISRC",
	"TSSE": "ENCODING",
	"TYER": keys.Date,
}

// v23Only and v24Only list IDs that exist in one revision only. When
// writing, a key maps to the ID valid for the tag's version.
var (
	v23Only = map[string]string{"TYER": "TDRC"}
	v24Only = map[string]bool{"TDRC": true, "TDOR": true, "TDRL": true, "TDEN": true, "TMOO": true, "TSOA": true, "TSOP": true, "TSOT": true}
)

// frameForKey returns the text frame ID that stores key in a tag of the
// given major version, or "" when key belongs in a TXXX frame.
func frameForKey(key string, version byte) string {
	if version == 3 && key == keys.Date {
		return "TYER"
	}
	for id, k := range textFrameKeys {
		if k != key {
			continue
		}
		if _, ok := v23Only[id]; ok {
			continue
		}
		if version == 3 && v24Only[id] {
			continue
		}
		return id
	}
	return ""
}

// describedKey joins base and a frame description into a property key.
func describedKey(base, desc string) string {
	if desc == "" {
		return base
	}
	return base + ":" + strings.ToUpper(desc)
}

// splitDescribed reports whether key is base or "base:DESC" and returns DESC.
func splitDescribed(key, base string) (desc string, ok bool) {
	if key == base {
		return "", true
	}
	if rest, found := strings.CutPrefix(key, base+":"); found {
		return rest, true
	}
	return "", false
}

// splitText splits a text frame body on the ID3v2.4 null separator.
func splitText(text string) []string {
	parts := strings.Split(text, "\x00")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinText(values []string) string {
	return strings.Join(values, "\x00")
}
