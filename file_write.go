package tagbridge

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/fsutil"
)

// Save writes the tag back to the file.
//
// Options add a backup copy, keep the modification time, or re-read the
// file to check what was written:
//
//	err := file.Save(
//	    tagbridge.WithBackup(".bak"),
//	    tagbridge.WithValidation(),
//	)
//
// Read-only tags return an *UnsupportedWriteError.
func (f *File) Save(opts ...SaveOption) error {
	if f.tagged == nil {
		return ErrClosed
	}
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}
	start := time.Now()

	var modTime time.Time
	if options.preserveModTime {
		t, err := fsutil.ModTime(f.path)
		if err != nil {
			return fmt.Errorf("save: %w", err)
		}
		modTime = t
	}

	if options.backupSuffix != "" {
		if err := fsutil.CopyFile(f.path, f.path+options.backupSuffix); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := f.tagged.Save(); err != nil {
		return err
	}

	if options.preserveModTime {
		if err := fsutil.RestoreModTime(f.path, modTime); err != nil {
			f.log.Warn("modification time not restored", zap.Error(err))
		}
	}

	if options.validate {
		if err := f.validateWritten(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	f.log.Debug("saved", zap.Duration("took", time.Since(start)))
	return nil
}

// validateWritten re-opens the file and compares its property map with
// the one in memory.
func (f *File) validateWritten() error {
	written, err := Open(f.path, append(f.opts, WithFileType(f.tagged.FileType()))...)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}
	defer written.Close() //nolint:errcheck // Read-only check

	want, got := f.Properties(), written.Properties()
	if !got.Equal(want) {
		return fmt.Errorf("properties mismatch: got %s, want %s", written.PropertiesJSON(), f.PropertiesJSON())
	}
	return nil
}
