package presentation

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ImageView shows the current image inside the fixed display box.
type ImageView struct {
	widget.BaseWidget
	canvas  *canvas.Image
	size    fyne.Size
	imageMu sync.RWMutex
}

// NewImageView creates an image view of the given box size.
func NewImageView(width, height int) *ImageView {
	size := fyne.NewSize(float32(width), float32(height))
	v := &ImageView{
		canvas: canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, width, height))),
		size:   size,
	}
	v.ExtendBaseWidget(v)
	v.canvas.FillMode = canvas.ImageFillContain
	v.canvas.SetMinSize(size)
	return v
}

// SetImage sets the displayed image. A nil image clears the view.
func (v *ImageView) SetImage(img image.Image) {
	if img == nil {
		img = image.NewNRGBA(image.Rect(0, 0, int(v.size.Width), int(v.size.Height)))
	}
	v.imageMu.Lock()
	v.canvas.Image = img
	v.imageMu.Unlock()
	v.canvas.Refresh()
	v.Refresh()
}

// Image returns the displayed image.
func (v *ImageView) Image() image.Image {
	v.imageMu.RLock()
	defer v.imageMu.RUnlock()
	return v.canvas.Image
}

// CreateRenderer creates the widget renderer.
func (v *ImageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.canvas)
}

// MinSize returns the display box size.
func (v *ImageView) MinSize() fyne.Size {
	return v.size
}
