package types

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/simonhull/tagbridge/internal/multivalue"
)

// PropertyMap is the canonical tag model shared by every adapter.
//
// Keys are normalized to upper case. Each key maps to an ordered list of
// non-empty values. Iteration follows insertion order, which for maps
// produced by an adapter is the adapter's native order.
//
// The zero value is an empty map ready to use.
type PropertyMap struct {
	keys   []string
	values map[string][]string
}

// NewPropertyMap returns an empty PropertyMap.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

// PropertyMapFromMap builds a PropertyMap from a plain Go map.
//
// Go maps have no order, so keys are inserted in sorted order to keep
// enumeration deterministic for the same input.
func PropertyMapFromMap(m map[string][]string) *PropertyMap {
	pm := NewPropertyMap()
	for _, key := range slices.Sorted(maps.Keys(m)) {
		pm.Append(key, m[key]...)
	}
	return pm
}

// NormalizeKey returns the canonical spelling of a property key.
func NormalizeKey(key string) string {
	return strings.ToUpper(key)
}

// Len returns the number of keys.
func (m *PropertyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the values stored under key.
//
// The returned slice is a copy. ok is false when the key is absent.
func (m *PropertyMap) Get(key string) (values []string, ok bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	values, ok = m.values[NormalizeKey(key)]
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// Contains reports whether key is present.
func (m *PropertyMap) Contains(key string) bool {
	if m == nil || m.values == nil {
		return false
	}
	_, ok := m.values[NormalizeKey(key)]
	return ok
}

// Set replaces the values stored under key.
//
// Empty strings are dropped first. If nothing survives the key is removed;
// otherwise the previous values are replaced wholesale. A replaced key
// keeps its position in iteration order.
//
// Example:
//
//	m.Set("GENRE", "Rock", "", "Alternative") // stores [Rock Alternative]
//	m.Set("GENRE")                            // removes GENRE
func (m *PropertyMap) Set(key string, values ...string) {
	key = NormalizeKey(key)
	kept := nonEmpty(values)
	if len(kept) == 0 {
		m.Delete(key)
		return
	}
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = kept
}

// Append adds values to the end of the list stored under key.
// Empty strings are ignored. Adapters use it while translating native
// frames, where one key may be spread over several frames.
func (m *PropertyMap) Append(key string, values ...string) {
	key = NormalizeKey(key)
	kept := nonEmpty(values)
	if len(kept) == 0 {
		return
	}
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	existing, exists := m.values[key]
	if !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(existing, kept...)
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *PropertyMap) Delete(key string) {
	if m == nil || m.values == nil {
		return
	}
	key = NormalizeKey(key)
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// KeyAt returns the key at zero-based position index in iteration order.
func (m *PropertyMap) KeyAt(index int) (string, bool) {
	if m == nil || index < 0 || index >= len(m.keys) {
		return "", false
	}
	return m.keys[index], true
}

// Keys returns the keys in iteration order.
func (m *PropertyMap) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Attrs reports how many values are stored under key and the length in
// bytes of their "; "-joined rendering, so callers can size a buffer
// before asking for the joined string.
func (m *PropertyMap) Attrs(key string) (count, length int, ok bool) {
	values, ok := m.Get(key)
	if !ok {
		return 0, 0, false
	}
	return len(values), multivalue.JoinedLength(values), true
}

// All returns an iterator over keys and values in iteration order.
//
// The yielded slices alias internal storage and must not be modified.
func (m *PropertyMap) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		if m == nil {
			return
		}
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// Map returns a plain Go map copy, for libraries that take map[string][]string.
func (m *PropertyMap) Map() map[string][]string {
	out := make(map[string][]string, m.Len())
	for key, values := range m.All() {
		out[key] = slices.Clone(values)
	}
	return out
}

// Clone returns a deep copy.
func (m *PropertyMap) Clone() *PropertyMap {
	if m == nil {
		return nil
	}
	clone := &PropertyMap{keys: slices.Clone(m.keys)}
	if m.values != nil {
		clone.values = make(map[string][]string, len(m.values))
		for key, values := range m.values {
			clone.values[key] = slices.Clone(values)
		}
	}
	return clone
}

// Equal reports whether both maps hold the same keys with the same values.
// Iteration order is not compared.
func (m *PropertyMap) Equal(other *PropertyMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for key, values := range m.All() {
		theirs, ok := other.values[key]
		if !ok || !slices.Equal(values, theirs) {
			return false
		}
	}
	return true
}

// Filter returns an iterator over entries whose key matches predicate.
//
// Example:
//
//	for key, values := range props.Filter(func(k string) bool {
//		return strings.HasPrefix(k, "MUSICBRAINZ_")
//	}) {
//		fmt.Println(key, values)
//	}
func (m *PropertyMap) Filter(predicate func(string) bool) iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for key, values := range m.All() {
			if predicate(key) && !yield(key, values) {
				return
			}
		}
	}
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
