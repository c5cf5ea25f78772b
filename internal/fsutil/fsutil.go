// Package fsutil holds the file replacement helpers shared by the adapters
// and the save path.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// WriteFileAtomic replaces path with the bytes produced by write.
//
// Data goes to a temporary file in the same directory, which is synced and
// renamed over path. If any step fails the original file is unchanged and
// the temporary file is removed. The original file mode is kept.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".tagbridge-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := write(tempFile); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}

	success = true
	return nil
}

// CopyFile copies src to dst, overwriting dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	return WriteFileAtomic(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

// ModTime returns the modification time of path.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// RestoreModTime sets both access and modification time of path to t.
func RestoreModTime(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}
