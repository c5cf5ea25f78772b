package tagbridge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tagbridge/internal/registry"
	"github.com/simonhull/tagbridge/internal/types"
)

// ErrClosed is returned by operations on a File after Close.
var ErrClosed = errors.New("tagbridge: file is closed")

// File is an opened audio file with a parsed tag.
//
// All reads go to the file's adapter at call time and all writes go
// through immediately, so the canonical fields, the property map and the
// pictures always agree. Nothing is written to disk until Save.
//
// Always call Close when done:
//
//	file, err := tagbridge.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	path   string
	tagged types.TaggedFile
	config Config
	log    *zap.Logger
	opts   []Option
}

// Open opens the file at path and parses its tag.
//
// The file type is detected from content, falling back to the extension.
// Use WithFileType or OpenType to skip detection.
//
// Example:
//
//	file, err := tagbridge.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	fmt.Println(file.Tag().Artist(), "-", file.Tag().Title())
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if err := options.config.Validate(); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	fileType := options.fileType
	if fileType == FileTypeUnknown {
		detected, err := detect(path)
		if err != nil {
			return nil, err
		}
		fileType = detected
	}

	opener := registry.Get(fileType)
	if opener == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no adapter for %s", fileType),
		}
	}

	log := options.logger.With(zap.String("path", path))
	tagged, err := opener.Open(path, types.OpenConfig{
		TextEncoding: options.config.ID3v2TextEncoding,
		Logger:       options.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fileType, err)
	}
	log.Debug("opened", zap.Stringer("type", tagged.FileType()))

	return &File{
		path:   path,
		tagged: tagged,
		config: options.config,
		log:    log,
		opts:   opts,
	}, nil
}

// OpenType opens path as fileType without content detection.
func OpenType(path string, fileType FileType, opts ...Option) (*File, error) {
	return Open(path, append(opts, WithFileType(fileType))...)
}

func detect(path string) (FileType, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileTypeUnknown, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	stat, err := f.Stat()
	if err != nil {
		return FileTypeUnknown, fmt.Errorf("stat file: %w", err)
	}
	return types.DetectFormat(f, stat.Size(), path)
}

// OpenContext opens a file after checking ctx. Opening is a single
// synchronous read, so cancellation takes effect only before it starts.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens files concurrently with up to runtime.NumCPU() workers.
// Results are in input order.
//
// If any file fails to open, the files already opened are closed and the
// first error is returned.
//
// Example:
//
//	files, err := tagbridge.OpenMany(ctx, paths, tagbridge.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	for _, f := range files {
//		defer f.Close()
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				_ = file.Close()
			}
		}
		return nil, err
	}
	return results, nil
}

// IsValid reports whether the file was opened and not yet closed.
func (f *File) IsValid() bool {
	return f != nil && f.tagged != nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// FileType returns the file's type, or FileTypeUnknown once closed.
func (f *File) FileType() FileType {
	if f.tagged == nil {
		return FileTypeUnknown
	}
	return f.tagged.FileType()
}

// Config returns the file's configuration.
func (f *File) Config() Config { return f.config }

// Tag returns the canonical field view. Getters read the current tag and
// setters write through to it immediately. Setting a string field to ""
// or a number to 0 removes it. A closed file returns a view that reads
// empty and ignores writes.
func (f *File) Tag() Tag {
	if f.tagged == nil {
		return closedTag{}
	}
	return f.tagged.Tag()
}

// AudioProperties returns length, bitrate, sample rate and channel count.
// ok is false when the stream could not be decoded or the file is closed.
func (f *File) AudioProperties() (props AudioProperties, ok bool) {
	if f.tagged == nil {
		return AudioProperties{}, false
	}
	return f.tagged.AudioProperties()
}

type closedTag struct{}

func (closedTag) Title() string     { return "" }
func (closedTag) Artist() string    { return "" }
func (closedTag) Album() string     { return "" }
func (closedTag) Comment() string   { return "" }
func (closedTag) Genre() string     { return "" }
func (closedTag) Year() uint        { return 0 }
func (closedTag) Track() uint       { return 0 }
func (closedTag) SetTitle(string)   {}
func (closedTag) SetArtist(string)  {}
func (closedTag) SetAlbum(string)   {}
func (closedTag) SetComment(string) {}
func (closedTag) SetGenre(string)   {}
func (closedTag) SetYear(uint)      {}
func (closedTag) SetTrack(uint)     {}

// Close releases the file. Unsaved changes are discarded. The File must
// not be used afterwards; IsValid reports false.
func (f *File) Close() error {
	if f.tagged == nil {
		return nil
	}
	err := f.tagged.Close()
	f.tagged = nil
	return err
}
