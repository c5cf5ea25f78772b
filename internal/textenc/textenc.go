// Package textenc converts between Go strings and the byte encodings tag
// formats and host environments use: ISO-8859-1, UTF-8, UTF-16 with BOM
// and UTF-16BE.
package textenc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies a text encoding.
type Encoding int

const (
	Latin1  Encoding = iota // ISO-8859-1
	UTF8                    // UTF-8
	UTF16                   // UTF-16 with byte order mark
	UTF16BE                 // UTF-16 big endian, no byte order mark
)

// String returns the conventional name of the encoding.
func (e Encoding) String() string {
	switch e {
	case Latin1:
		return "ISO-8859-1"
	case UTF8:
		return "UTF-8"
	case UTF16:
		return "UTF-16"
	case UTF16BE:
		return "UTF-16BE"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Valid reports whether e is one of the four known encodings.
func (e Encoding) Valid() bool {
	return e >= Latin1 && e <= UTF16BE
}

// Parse maps a name such as "latin1", "ISO-8859-1", "utf8" or "UTF-16BE"
// to an Encoding. Matching ignores case, '-' and '_'.
func Parse(name string) (Encoding, error) {
	n := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch n {
	case "latin1", "iso88591":
		return Latin1, nil
	case "utf8":
		return UTF8, nil
	case "utf16":
		return UTF16, nil
	case "utf16be":
		return UTF16BE, nil
	}
	return 0, fmt.Errorf("unknown text encoding %q", name)
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case Latin1:
		return charmap.ISO8859_1
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	default:
		return unicode.UTF8
	}
}

// Encode converts s to bytes in encoding e.
//
// Characters that Latin-1 cannot represent are replaced with the
// encoding's substitute byte instead of failing the whole string.
func Encode(s string, e Encoding) ([]byte, error) {
	if e == UTF8 {
		return []byte(s), nil
	}
	enc := encoding.ReplaceUnsupported(e.codec().NewEncoder())
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e, err)
	}
	return b, nil
}

// Decode converts b from encoding e to a Go string.
//
// Invalid UTF-8 input is repaired with U+FFFD rather than rejected.
func Decode(b []byte, e Encoding) (string, error) {
	if e == UTF8 {
		if utf8.Valid(b) {
			return string(b), nil
		}
		return strings.ToValidUTF8(string(b), "�"), nil
	}
	out, err := e.codec().NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", e, err)
	}
	return string(out), nil
}

// Codec converts between Go strings and the byte strings handed to or
// received from a host environment. Only Latin1 and UTF8 are accepted.
type Codec struct {
	enc Encoding
}

// NewCodec returns a Codec for e. It fails for anything other than
// Latin1 or UTF8.
func NewCodec(e Encoding) (Codec, error) {
	if e != Latin1 && e != UTF8 {
		return Codec{}, fmt.Errorf("byte-string encoding must be %s or %s, got %s", Latin1, UTF8, e)
	}
	return Codec{enc: e}, nil
}

// Encoding returns the codec's encoding.
func (c Codec) Encoding() Encoding {
	return c.enc
}

// Bytes encodes s. The result is a fresh slice owned by the caller.
func (c Codec) Bytes(s string) []byte {
	if c.enc == UTF8 {
		return []byte(s)
	}
	b, err := Encode(s, c.enc)
	if err != nil {
		// unreachable with ReplaceUnsupported; keep the caller's data
		return []byte(s)
	}
	return b
}

// String decodes b.
func (c Codec) String(b []byte) string {
	s, err := Decode(b, c.enc)
	if err != nil {
		return string(b)
	}
	return s
}
