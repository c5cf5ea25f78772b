// Package tagbridge reads and writes audio file tags through one property
// model, whatever the underlying format.
//
// Every format's native tag (ID3v2 frames, Vorbis comments, iTunes atoms,
// ASF attributes, APE items) is translated to a PropertyMap: upper-case
// keys, each with an ordered list of non-empty values. Writing goes the
// other way, replacing the whole tag with the map and reporting keys the
// format cannot store.
//
// # Quick Start
//
//	file, err := tagbridge.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	fmt.Println(file.Tag().Artist(), "-", file.Tag().Title())
//
//	file.SetProperty("GENRE", "Rock; Alternative", true)
//	if err := file.Save(); err != nil {
//		log.Fatal(err)
//	}
//
// # Supported Formats
//
//   - MPEG: ID3v2.3 and ID3v2.4 read/write, ID3v2.2 read-only
//   - FLAC: Vorbis comments and PICTURE blocks
//   - MP4/M4A: iTunes atoms and cover art
//   - Ogg Vorbis, Ogg FLAC, Speex, Musepack, WavPack, TrueAudio, ASF:
//     property map through TagLib
//
// # Canonical Fields and Properties
//
// File.Tag exposes title, artist, album, comment, genre, year and track.
// They are views over the property map (TITLE, ARTIST, ALBUM, COMMENT,
// GENRE, DATE, TRACKNUMBER), so both interfaces always agree.
//
// # Multiple Values
//
// Where a single string is needed, values are joined with "; ".
// Property, PropertiesJSON and SetProperty with multi set use this
// separator. A value that itself contains "; " does not survive a
// join/split round trip.
//
// # Pictures
//
// MPEG, FLAC and MP4 files carry embedded pictures. Picture operations
// act on the first picture in tag order. Other formats return an
// *UnsupportedOperationError matching ErrUnsupported.
//
// # Configuration
//
// Config holds the host string encoding, string management, ID3v2 write
// encoding and JSON strictness. It can be loaded from a dotenv file with
// LoadConfig or from the environment with ConfigFromEnv. Each File keeps
// its own copy.
//
// # Host Interop
//
// The bridge subpackage exposes the same operations with byte-string
// results in a configurable encoding, for hosts that manage string memory
// explicitly.
package tagbridge
