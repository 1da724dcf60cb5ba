package presentation

import (
	"io"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
	"glasslabel-go/infrastructure/preview"
)

// FileLabelDialogConfig holds configuration for the single-image labeling dialog.
type FileLabelDialogConfig struct {
	Parent  fyne.Window
	Bridge  *UIEventBridge
	Loader  *preview.Loader
	Names   LabelNames
	Logger  *slog.Logger
	OnError func(error)
}

// ShowFileLabelDialog asks for one .png file and then for its label.
// The label file is written next to the image.
func ShowFileLabelDialog(cfg *FileLabelDialogConfig) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			cfg.reportError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		closeChosen(reader, path, cfg.Logger)

		showLabelChoice(cfg, path)
	}, cfg.Parent)
	open.SetFilter(storage.NewExtensionFileFilter([]string{labeling.ImageExt}))
	open.Show()
}

// closeChosen releases the picker's handle; only the path is used afterwards.
func closeChosen(c io.Closer, path string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("Failed to close chosen file", "path", path, "error", err)
	}
}

func showLabelChoice(cfg *FileLabelDialogConfig, path string) {
	view := NewImageView(cfg.Loader.Width, cfg.Loader.Height)
	img, err := cfg.Loader.Load(path)
	if err != nil {
		cfg.Logger.Warn("Failed to load preview", "image", path, "error", err)
		img = cfg.Loader.Placeholder()
	}
	view.SetImage(img)

	var d dialog.Dialog
	choose := func(v label.Value) {
		d.Hide()
		if err := cfg.Bridge.LabelFile(path, v); err != nil {
			cfg.reportError(err)
		}
	}

	positiveBtn := widget.NewButtonWithIcon(cfg.Names.Positive, theme.ConfirmIcon(), func() { choose(label.Positive) })
	positiveBtn.Importance = widget.HighImportance
	negativeBtn := widget.NewButtonWithIcon(cfg.Names.Negative, theme.CancelIcon(), func() { choose(label.Negative) })

	content := container.NewVBox(
		container.NewCenter(view),
		widget.NewLabel(filepath.Base(path)),
		container.NewHBox(layout.NewSpacer(), positiveBtn, negativeBtn, layout.NewSpacer()),
	)

	d = dialog.NewCustom("Label image", "Cancel", content, cfg.Parent)
	d.Show()
}

func (cfg *FileLabelDialogConfig) reportError(err error) {
	cfg.Logger.Warn("Single image labeling failed", "error", err)
	if cfg.OnError != nil {
		cfg.OnError(err)
	}
}
