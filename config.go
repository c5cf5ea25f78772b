package tagbridge

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/simonhull/tagbridge/internal/textenc"
)

// Encoding identifies a text encoding.
type Encoding = textenc.Encoding

// Text encodings. Byte strings exchanged with a host use EncodingLatin1 or
// EncodingUTF8; tag writers accept all four.
const (
	EncodingLatin1  = textenc.Latin1
	EncodingUTF8    = textenc.UTF8
	EncodingUTF16   = textenc.UTF16
	EncodingUTF16BE = textenc.UTF16BE
)

// Environment keys read by LoadConfig and ConfigFromEnv.
const (
	EnvStringEncoding    = "TAGBRIDGE_STRING_ENCODING"
	EnvStringManagement  = "TAGBRIDGE_STRING_MANAGEMENT"
	EnvID3v2TextEncoding = "TAGBRIDGE_ID3V2_TEXT_ENCODING"
	EnvStrictJSON        = "TAGBRIDGE_STRICT_JSON"
)

// Config holds the settings a File or bridge.Session works with. Each
// File keeps its own copy, so changing one never affects another.
type Config struct {
	// StringEncoding is the byte encoding for strings exchanged with a
	// host through the bridge package: EncodingUTF8 or EncodingLatin1.
	StringEncoding Encoding

	// StringManagement makes the bridge package track returned byte
	// strings until FreeStrings is called.
	StringManagement bool

	// ID3v2TextEncoding is the encoding new ID3v2 text frames are written
	// in. ID3v2.3 tags cannot hold UTF-8 or UTF-16BE and get UTF-16 instead.
	ID3v2TextEncoding Encoding

	// StrictJSON makes PropertiesJSON escape backslashes and control
	// characters so the output is always valid JSON.
	StrictJSON bool
}

// DefaultConfig returns UTF-8 host strings, string management on, Latin-1
// ID3v2 text frames and the legacy JSON rendering.
func DefaultConfig() Config {
	return Config{
		StringEncoding:    EncodingUTF8,
		StringManagement:  true,
		ID3v2TextEncoding: EncodingLatin1,
	}
}

// Validate reports settings outside their allowed values.
func (c Config) Validate() error {
	if c.StringEncoding != EncodingUTF8 && c.StringEncoding != EncodingLatin1 {
		return fmt.Errorf("string encoding must be %s or %s, got %s", EncodingUTF8, EncodingLatin1, c.StringEncoding)
	}
	if !c.ID3v2TextEncoding.Valid() {
		return fmt.Errorf("invalid ID3v2 text encoding %s", c.ID3v2TextEncoding)
	}
	return nil
}

// LoadConfig reads TAGBRIDGE_* settings from dotenv files on top of
// DefaultConfig. With no arguments it reads ".env" in the working
// directory. Keys that are not set keep their defaults.
//
// Example .env:
//
//	TAGBRIDGE_STRING_ENCODING=latin1
//	TAGBRIDGE_ID3V2_TEXT_ENCODING=utf-16
//	TAGBRIDGE_STRICT_JSON=true
func LoadConfig(files ...string) (Config, error) {
	env, err := godotenv.Read(files...)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return configFrom(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}

// ConfigFromEnv reads TAGBRIDGE_* settings from the process environment
// on top of DefaultConfig.
func ConfigFromEnv() (Config, error) {
	return configFrom(os.LookupEnv)
}

func configFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup(EnvStringEncoding); ok {
		enc, err := textenc.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvStringEncoding, err)
		}
		cfg.StringEncoding = enc
	}
	if v, ok := lookup(EnvID3v2TextEncoding); ok {
		enc, err := textenc.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvID3v2TextEncoding, err)
		}
		cfg.ID3v2TextEncoding = enc
	}
	if v, ok := lookup(EnvStringManagement); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvStringManagement, err)
		}
		cfg.StringManagement = b
	}
	if v, ok := lookup(EnvStrictJSON); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvStrictJSON, err)
		}
		cfg.StrictJSON = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
