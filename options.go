package tagbridge

import (
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/types"
)

// Option configures how a file is opened.
//
// Options use the functional options pattern:
//
//	file, err := tagbridge.Open("song.mp3",
//	    tagbridge.WithConfig(cfg),
//	    tagbridge.WithLogger(logger),
//	)
type Option func(*openOptions)

type openOptions struct {
	config   Config
	logger   *zap.Logger
	fileType types.FileType // FileTypeUnknown means detect
}

func defaultOptions() *openOptions {
	return &openOptions{
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
}

// WithConfig sets the configuration the file works with. The File keeps
// its own copy.
func WithConfig(cfg Config) Option {
	return func(o *openOptions) {
		o.config = cfg
	}
}

// WithLogger sets the logger for the file and its adapter. A nil logger
// disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *openOptions) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// WithFileType skips content detection and opens the file as fileType.
//
// Example:
//
//	// An Ogg Vorbis stream saved with a .dat extension
//	file, err := tagbridge.Open("stream.dat", tagbridge.WithFileType(tagbridge.FileTypeOggVorbis))
func WithFileType(fileType FileType) Option {
	return func(o *openOptions) {
		o.fileType = fileType
	}
}
