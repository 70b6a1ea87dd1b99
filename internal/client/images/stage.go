// Package images prepares a local picture for upload: it checks that the
// file is an image, reads its size for the preview and shrinks it to fit a
// bounding box.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/pt428/recipes/internal/client/models"
)

var ErrNotImage = errors.New("file is not an image")

// Staged is an image held in memory until its recipe has been saved.
type Staged struct {
	Name        string
	ContentType string
	Data        []byte
	Width       int
	Height      int
	// Resized is set when the picture was shrunk to fit.
	Resized bool
}

// Stage reads path and prepares it for upload. Images larger than maxDim on
// either side are scaled down; maxDim <= 0 disables scaling. Formats the
// decoder does not know are kept as read.
func Stage(path string, maxDim int) (*Staged, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%s (%s): %w", filepath.Base(path), mt.String(), ErrNotImage)
	}

	s := &Staged{
		Name:        filepath.Base(path),
		ContentType: mt.String(),
		Data:        data,
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return s, nil
	}
	s.Width, s.Height = img.Bounds().Dx(), img.Bounds().Dy()

	if maxDim <= 0 || (s.Width <= maxDim && s.Height <= maxDim) {
		return s, nil
	}

	format, ok := formatFor(mt)
	if !ok {
		return s, nil
	}

	if err := s.fit(img, maxDim, format); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Staged) fit(img image.Image, maxDim int, format imaging.Format) error {
	fitted := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, format, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}

	s.Data = buf.Bytes()
	s.Width, s.Height = fitted.Bounds().Dx(), fitted.Bounds().Dy()
	s.Resized = true
	return nil
}

func formatFor(mt *mimetype.MIME) (imaging.Format, bool) {
	switch {
	case mt.Is("image/jpeg"):
		return imaging.JPEG, true
	case mt.Is("image/png"):
		return imaging.PNG, true
	case mt.Is("image/gif"):
		return imaging.GIF, true
	case mt.Is("image/tiff"):
		return imaging.TIFF, true
	case mt.Is("image/bmp"):
		return imaging.BMP, true
	}
	return 0, false
}

// Preview is a one-line description shown before the recipe is saved.
func (s *Staged) Preview() string {
	size := fmt.Sprintf("%.1f KB", float64(len(s.Data))/1024)
	if s.Width == 0 {
		return fmt.Sprintf("%s (%s, %s)", s.Name, s.ContentType, size)
	}
	line := fmt.Sprintf("%s (%s, %dx%d, %s)", s.Name, s.ContentType, s.Width, s.Height, size)
	if s.Resized {
		line += ", resized"
	}
	return line
}

// File is the upload form of the staged image.
func (s *Staged) File() models.ImageFile {
	return models.ImageFile{Name: s.Name, ContentType: s.ContentType, Data: s.Data}
}
