// Package vorbis converts between Vorbis comments and property maps.
//
// Vorbis comments are used by both FLAC and the Ogg formats.
// The format is identical: UTF-8 strings in "KEY=VALUE" format, where a key
// may repeat to carry several values.
package vorbis

import (
	"fmt"
	"strings"

	"github.com/simonhull/tagbridge/internal/keys"
	"github.com/simonhull/tagbridge/internal/types"
)

// ParseComment splits a single "KEY=VALUE" comment. The key is returned
// upper-cased since Vorbis field names are case-insensitive.
//
// Returns an error if the comment has no '=' or an invalid field name.
func ParseComment(comment string) (key, value string, err error) {
	key, value, ok := strings.Cut(comment, "=")
	if !ok {
		return "", "", fmt.Errorf("missing '=' in comment: %s", comment)
	}
	if !keys.Valid(key) {
		return "", "", fmt.Errorf("invalid field name in comment: %q", key)
	}
	return strings.ToUpper(key), value, nil
}

// ToProperties builds a PropertyMap from comments in stream order.
// Malformed comments are skipped and returned so the caller can log them.
func ToProperties(comments []string) (props *types.PropertyMap, skipped []string) {
	props = types.NewPropertyMap()
	for _, c := range comments {
		key, value, err := ParseComment(c)
		if err != nil {
			skipped = append(skipped, c)
			continue
		}
		props.Append(key, value)
	}
	return props, skipped
}

// FromProperties renders props as comments, one per value, in map order.
// Keys that are not valid field names are returned in unsupported.
func FromProperties(props *types.PropertyMap) (comments, unsupported []string) {
	for key, values := range props.All() {
		if !keys.Valid(key) {
			unsupported = append(unsupported, key)
			continue
		}
		for _, v := range values {
			comments = append(comments, key+"="+v)
		}
	}
	return comments, unsupported
}
