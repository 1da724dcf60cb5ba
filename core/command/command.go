// Package command defines all commands that can be sent to the application.
// Commands represent operator intentions and are processed by the application layer.
package command

import "glasslabel-go/domain/label"

// Command is the base interface for all commands.
// Commands are sent from the presentation layer to the application layer.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}

// SelectImageDir chooses the directory of candidate images.
type SelectImageDir struct {
	Dir string
}

func NewSelectImageDir(dir string) *SelectImageDir {
	return &SelectImageDir{Dir: dir}
}

func (c *SelectImageDir) CommandName() string {
	return "SelectImageDir"
}

// SelectLabelDir chooses the directory that receives label files.
type SelectLabelDir struct {
	Dir string
}

func NewSelectLabelDir(dir string) *SelectLabelDir {
	return &SelectLabelDir{Dir: dir}
}

func (c *SelectLabelDir) CommandName() string {
	return "SelectLabelDir"
}

// LabelCurrent labels the image under the session cursor.
// When Image is set, the label applies only if that image is still current.
type LabelCurrent struct {
	Image string
	Value label.Value
}

// NewLabelImage labels image, provided it is still the current one.
func NewLabelImage(image string, v label.Value) *LabelCurrent {
	return &LabelCurrent{Image: image, Value: v}
}

func NewLabelPositive() *LabelCurrent {
	return &LabelCurrent{Value: label.Positive}
}

func NewLabelNegative() *LabelCurrent {
	return &LabelCurrent{Value: label.Negative}
}

func (c *LabelCurrent) CommandName() string {
	return "LabelCurrent"
}

// LabelFile labels a single image file outside the session,
// writing the label file next to the image.
type LabelFile struct {
	Path  string
	Value label.Value
}

func NewLabelFile(path string, v label.Value) *LabelFile {
	return &LabelFile{Path: path, Value: v}
}

func (c *LabelFile) CommandName() string {
	return "LabelFile"
}
