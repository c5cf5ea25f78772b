// Package bridge exposes tagbridge to hosts that exchange strings as raw
// bytes, such as foreign function interfaces.
//
// A Session converts strings to and from a host byte encoding (UTF-8 or
// Latin-1) and, when string management is on, keeps every returned byte
// string until FreeStrings. Returned slices are never changed afterwards:
// switching the encoding affects only later calls.
package bridge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/simonhull/tagbridge"
	"github.com/simonhull/tagbridge/internal/pool"
	"github.com/simonhull/tagbridge/internal/textenc"
)

// Session holds the host-facing settings and the returned-string pool.
// It is not safe for concurrent use.
type Session struct {
	cfg   tagbridge.Config
	codec textenc.Codec
	pool  *pool.Pool
	log   *zap.Logger
}

// NewSession returns a session using cfg. A nil logger disables logging.
func NewSession(cfg tagbridge.Config, log *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := textenc.NewCodec(cfg.StringEncoding)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		cfg:   cfg,
		codec: codec,
		pool:  pool.New(cfg.StringManagement),
		log:   log,
	}, nil
}

// Config returns the session's current settings.
func (s *Session) Config() tagbridge.Config { return s.cfg }

// SetStringEncoding switches the host byte encoding for later calls.
func (s *Session) SetStringEncoding(e tagbridge.Encoding) error {
	codec, err := textenc.NewCodec(e)
	if err != nil {
		return err
	}
	s.codec = codec
	s.cfg.StringEncoding = e
	return nil
}

// SetStringManagement turns tracking of returned strings on or off.
// Strings already tracked stay tracked until FreeStrings.
func (s *Session) SetStringManagement(enabled bool) {
	s.pool.SetEnabled(enabled)
	s.cfg.StringManagement = enabled
}

// SetID3v2TextEncoding sets the encoding for ID3v2 text frames written by
// files opened afterwards.
func (s *Session) SetID3v2TextEncoding(e tagbridge.Encoding) error {
	if !e.Valid() {
		return fmt.Errorf("invalid ID3v2 text encoding %s", e)
	}
	s.cfg.ID3v2TextEncoding = e
	return nil
}

// FreeStrings releases every tracked string and returns how many were
// released. With string management off it releases nothing.
func (s *Session) FreeStrings() int {
	n := s.pool.Release()
	s.log.Debug("strings released", zap.Int("count", n))
	return n
}

// Tracked returns the number and total size of strings awaiting FreeStrings.
func (s *Session) Tracked() (count, bytes int) {
	return s.pool.Len(), s.pool.Size()
}

// bytes encodes str for the host and tracks the result.
func (s *Session) bytes(str string) []byte {
	return s.pool.Track(s.codec.Bytes(str))
}

func (s *Session) string(b []byte) string {
	return s.codec.String(b)
}

// Open opens the file at the host-encoded path.
func (s *Session) Open(path []byte) (*Handle, error) {
	return s.open(path)
}

// OpenType opens the file at path as fileType without detection.
func (s *Session) OpenType(path []byte, fileType tagbridge.FileType) (*Handle, error) {
	return s.open(path, tagbridge.WithFileType(fileType))
}

func (s *Session) open(path []byte, extra ...tagbridge.Option) (*Handle, error) {
	opts := append([]tagbridge.Option{
		tagbridge.WithConfig(s.cfg),
		tagbridge.WithLogger(s.log),
	}, extra...)

	f, err := tagbridge.Open(s.string(path), opts...)
	if err != nil {
		return nil, err
	}
	return &Handle{s: s, f: f}, nil
}
