// Package image provides loading of the scanned map raster.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for files whose extension is not a known
// raster format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Scan is a loaded map raster.
type Scan struct {
	Path   string      // Original file path
	Format string      // Decoder name reported by image.Decode
	Image  *image.RGBA // Decoded pixels, origin at (0, 0)
}

// Load decodes the raster at path. The pixels are copied into an RGBA
// buffer with its origin at (0, 0) so image pixel coordinates match the
// coordinates used for digitizing.
func Load(path string) (*Scan, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &Scan{Path: path, Format: format, Image: rgba}, nil
}

// Width returns the image width in pixels.
func (s *Scan) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Scan) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
