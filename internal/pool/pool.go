// Package pool tracks byte strings handed to a host environment so they
// can be released together.
//
// Go code never needs this: returned slices are garbage collected. The
// pool serves interop hosts that expect a "free all strings" call, where
// dropping the pool's references is the release step.
package pool

// Pool holds byte strings until Release is called. It is not safe for
// concurrent use.
type Pool struct {
	entries [][]byte
	bytes   int
	enabled bool
}

// New returns a pool. When enabled is false, Track returns its argument
// without retaining it and the caller owns the slice outright.
func New(enabled bool) *Pool {
	return &Pool{enabled: enabled}
}

// Enabled reports whether tracked strings are retained.
func (p *Pool) Enabled() bool {
	return p.enabled
}

// SetEnabled switches management on or off for subsequent Track calls.
// Strings already tracked stay tracked until Release.
func (p *Pool) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// Track records b and returns it.
func (p *Pool) Track(b []byte) []byte {
	if !p.enabled {
		return b
	}
	p.entries = append(p.entries, b)
	p.bytes += len(b)
	return b
}

// Len returns the number of tracked strings.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Size returns the total length of tracked strings in bytes.
func (p *Pool) Size() int {
	return p.bytes
}

// Release drops every tracked string and returns how many there were.
// With management disabled it does nothing; unmanaged strings belong to
// the caller.
func (p *Pool) Release() int {
	if !p.enabled {
		return 0
	}
	n := len(p.entries)
	clear(p.entries)
	p.entries = p.entries[:0]
	p.bytes = 0
	return n
}
