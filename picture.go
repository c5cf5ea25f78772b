package tagbridge

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/fsutil"
	"github.com/simonhull/tagbridge/internal/types"
)

// Picture operations work on the first embedded picture in the tag's
// native order. Formats without picture support return an
// *UnsupportedOperationError, which matches ErrUnsupported.

func (f *File) pictures(op string) (types.PictureSource, error) {
	if f.tagged == nil {
		return nil, ErrClosed
	}
	ps, ok := f.tagged.(types.PictureSource)
	if !ok {
		return nil, &UnsupportedOperationError{Op: op, FileType: f.tagged.FileType()}
	}
	return ps, nil
}

// FirstPicture returns the first embedded picture, or ErrNoPicture.
func (f *File) FirstPicture() (Picture, error) {
	ps, err := f.pictures("first picture")
	if err != nil {
		return Picture{}, err
	}
	pic, ok := ps.FirstPicture()
	if !ok {
		return Picture{}, ErrNoPicture
	}
	return pic, nil
}

// PictureAttrs returns the MIME type, type code and size of the first
// embedded picture, or ErrNoPicture.
func (f *File) PictureAttrs() (PictureAttrs, error) {
	pic, err := f.FirstPicture()
	if err != nil {
		return PictureAttrs{}, err
	}
	return pic.Attrs(), nil
}

// ExportPicture writes the raw bytes of the first embedded picture to w.
// It returns ErrNoPicture without writing when there is none.
func (f *File) ExportPicture(w io.Writer) error {
	pic, err := f.FirstPicture()
	if err != nil {
		return err
	}
	if _, err := w.Write(pic.Data); err != nil {
		return fmt.Errorf("export picture: %w", err)
	}
	f.log.Debug("picture exported", zap.Int("bytes", len(pic.Data)))
	return nil
}

// ExportPictureFile writes the first embedded picture to path. The file
// either receives the whole picture or is left as it was.
//
// Example:
//
//	if err := file.ExportPictureFile("cover.jpg"); errors.Is(err, tagbridge.ErrNoPicture) {
//		fmt.Println("no cover art")
//	}
func (f *File) ExportPictureFile(path string) error {
	pic, err := f.FirstPicture()
	if err != nil {
		return err
	}
	err = fsutil.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(pic.Data)
		return err
	})
	if err != nil {
		return fmt.Errorf("export picture: %w", err)
	}
	f.log.Debug("picture exported", zap.String("to", path), zap.Int("bytes", len(pic.Data)))
	return nil
}

// RemovePicture removes the first embedded picture and leaves any others.
// removed is false when there was nothing to remove.
func (f *File) RemovePicture() (removed bool, err error) {
	ps, err := f.pictures("remove picture")
	if err != nil {
		return false, err
	}
	removed = ps.RemoveFirstPicture()
	f.log.Debug("picture removal", zap.Bool("removed", removed))
	return removed, nil
}

// AddPicture embeds p after any existing pictures. An empty MIME type is
// detected from the data.
func (f *File) AddPicture(p Picture) error {
	ps, err := f.pictures("add picture")
	if err != nil {
		return err
	}
	if p.MIMEType == "" {
		p.MIMEType = DetectMIMEType(p.Data)
	}
	if err := ps.AddPicture(p); err != nil {
		return err
	}
	f.log.Debug("picture added", zap.Stringer("picture", p))
	return nil
}
