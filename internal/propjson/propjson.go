// Package propjson renders a PropertyMap as a compact JSON-like object:
//
//	{ "ALBUM": "Greatest Hits; Live", "ARTIST": "Queen" }
//
// Values are joined with the multi-value separator. The legacy rendering
// escapes only double quotes; backslashes and control characters pass
// through unchanged, so it is not valid JSON for every input. The strict
// rendering escapes those too.
package propjson

import (
	"fmt"
	"strings"

	"github.com/simonhull/tagbridge/internal/multivalue"
	"github.com/simonhull/tagbridge/internal/types"
)

// Mode selects the escaping rules.
type Mode int

const (
	// Legacy escapes only '"'.
	Legacy Mode = iota
	// Strict produces valid JSON: '"', '\\' and control characters are escaped.
	Strict
)

const (
	openBrace  = "{ "
	closeBrace = " }"
	entrySep   = ", "
	keyValSep  = ": "
)

// Render returns the rendering of m. An empty map renders as "{  }".
// Output depends only on m's contents and iteration order.
func Render(m *types.PropertyMap, mode Mode) string {
	var b strings.Builder
	b.Grow(RenderedLength(m, mode))

	b.WriteString(openBrace)
	i := 0
	for key, values := range m.All() {
		if i > 0 {
			b.WriteString(entrySep)
		}
		writeQuoted(&b, key, mode)
		b.WriteString(keyValSep)
		b.WriteByte('"')
		for j, v := range values {
			if j > 0 {
				b.WriteString(multivalue.Separator)
			}
			writeEscaped(&b, v, mode)
		}
		b.WriteByte('"')
		i++
	}
	b.WriteString(closeBrace)
	return b.String()
}

// RenderedLength returns len(Render(m, mode)) without building the string.
func RenderedLength(m *types.PropertyMap, mode Mode) int {
	n := len(openBrace) + len(closeBrace)
	i := 0
	for key, values := range m.All() {
		if i > 0 {
			n += len(entrySep)
		}
		n += 2 + keyLen(key, mode) + len(keyValSep) + 2
		for j, v := range values {
			if j > 0 {
				n += len(multivalue.Separator)
			}
			n += escapedLen(v, mode)
		}
		i++
	}
	return n
}

// Keys are never escaped in legacy mode; the adapters only produce
// printable ASCII keys.
func writeQuoted(b *strings.Builder, key string, mode Mode) {
	b.WriteByte('"')
	if mode == Strict {
		writeEscaped(b, key, mode)
	} else {
		b.WriteString(key)
	}
	b.WriteByte('"')
}

func keyLen(key string, mode Mode) int {
	if mode == Strict {
		return escapedLen(key, mode)
	}
	return len(key)
}

func writeEscaped(b *strings.Builder, s string, mode Mode) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case mode == Strict && c == '\\':
			b.WriteString(`\\`)
		case mode == Strict && c < 0x20:
			b.WriteString(controlEscape(c))
		default:
			b.WriteByte(c)
		}
	}
}

func escapedLen(s string, mode Mode) int {
	n := len(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			n++
		case mode == Strict && c == '\\':
			n++
		case mode == Strict && c < 0x20:
			n += len(controlEscape(c)) - 1
		}
	}
	return n
}

func controlEscape(c byte) string {
	switch c {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	default:
		return fmt.Sprintf(`\u%04x`, c)
	}
}
