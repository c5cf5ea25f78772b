// Package multivalue folds an ordered list of tag values into one string
// and back, for consumers that accept a single string per key.
//
// The separator is the literal "; ". It is not escaped: a value that
// itself contains "; " is split into several values on decode.
package multivalue

import "strings"

// Separator joins values. Consumers must split on exactly this string.
const Separator = "; "

// Join concatenates values with Separator, preserving order.
// An empty list yields the empty string.
func Join(values []string) string {
	return strings.Join(values, Separator)
}

// JoinedLength returns len(Join(values)) without building the string.
func JoinedLength(values []string) int {
	if len(values) == 0 {
		return 0
	}
	n := len(Separator) * (len(values) - 1)
	for _, v := range values {
		n += len(v)
	}
	return n
}

// Split breaks s on Separator and drops empty elements, so trailing,
// leading or doubled separators never produce empty values.
func Split(s string) []string {
	parts := strings.Split(s, Separator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Ambiguous reports whether Join(values) would not survive Split unchanged,
// either because a value contains Separator or because a value is empty.
func Ambiguous(values []string) bool {
	for _, v := range values {
		if v == "" || strings.Contains(v, Separator) {
			return true
		}
	}
	return false
}
