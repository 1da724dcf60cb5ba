// Package preview decodes images and scales them into the fixed display box.
package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidBox is returned when the display box has no area.
var ErrInvalidBox = errors.New("display box must have positive width and height")

// Loader scales images into a Width x Height box.
// With KeepAspect false the image is stretched to fill the box exactly.
type Loader struct {
	Width      int
	Height     int
	KeepAspect bool
}

// NewLoader creates a loader for the given box.
func NewLoader(width, height int, keepAspect bool) (*Loader, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidBox
	}
	return &Loader{Width: width, Height: height, KeepAspect: keepAspect}, nil
}

// Load decodes the file at path and scales it into the box.
func (l *Loader) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	return l.Scale(img), nil
}

// Scale fits img into the box.
func (l *Loader) Scale(img image.Image) image.Image {
	if l.KeepAspect {
		return imaging.Fit(img, l.Width, l.Height, imaging.Lanczos)
	}
	return imaging.Resize(img, l.Width, l.Height, imaging.Lanczos)
}

// Placeholder returns a blank image the size of the box.
func (l *Loader) Placeholder() image.Image {
	return imaging.New(l.Width, l.Height, image.Transparent)
}
