package presentation

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"glasslabel-go/core/event"
	"glasslabel-go/core/state"
	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
	"glasslabel-go/infrastructure/config"
	"glasslabel-go/infrastructure/preview"
)

// MainWindow is the main application window.
type MainWindow struct {
	window fyne.Window
	bridge *UIEventBridge
	loader *preview.Loader
	keys   *KeyMap
	names  LabelNames
	logger *slog.Logger

	// UI components - directory choosers
	imageDirEntry *widget.Entry
	labelDirEntry *widget.Entry

	// UI components - current image
	imageView   *ImageView
	nameLabel   *widget.Label
	positiveBtn *widget.Button
	negativeBtn *widget.Button

	// UI components - progress
	countsLabel    *widget.Label
	remainingLabel *widget.Label
	statusLabel    *widget.Label
	processedList  *ProcessedList

	// displayed is the name of the image on screen. Main thread only.
	displayed string

	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Loader *preview.Loader
	Config *config.Config
	Logger *slog.Logger
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	labels := cfg.Config.Labels
	w := &MainWindow{
		window: cfg.App.NewWindow(cfg.Config.Window.Title),
		bridge: cfg.Bridge,
		loader: cfg.Loader,
		keys:   NewKeyMap(labels.Positive.Key, labels.Negative.Key),
		names:  LabelNames{Positive: labels.Positive.Name, Negative: labels.Negative.Name},
		logger: cfg.Logger,
	}

	w.init(cfg.Config)
	w.setupEventCallbacks()
	w.setLabelingEnabled(false)

	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init(cfg *config.Config) {
	toolbar := w.createDirectoryBar()

	w.imageView = NewImageView(cfg.Display.Width, cfg.Display.Height)
	w.nameLabel = widget.NewLabel("No image")
	w.nameLabel.Alignment = fyne.TextAlignCenter

	w.positiveBtn = widget.NewButtonWithIcon(w.buttonText(w.names.Positive, cfg.Labels.Positive.Key),
		theme.ConfirmIcon(), func() { w.applyLabel(label.Positive) })
	w.positiveBtn.Importance = widget.HighImportance
	w.negativeBtn = widget.NewButtonWithIcon(w.buttonText(w.names.Negative, cfg.Labels.Negative.Key),
		theme.CancelIcon(), func() { w.applyLabel(label.Negative) })

	buttonBar := container.NewHBox(layout.NewSpacer(), w.positiveBtn, w.negativeBtn, layout.NewSpacer())

	viewer := container.NewVBox(
		container.NewCenter(w.imageView),
		w.nameLabel,
		buttonBar,
	)

	w.countsLabel = widget.NewLabel("")
	w.remainingLabel = widget.NewLabel("")
	w.statusLabel = widget.NewLabel("Choose an image directory to begin")
	w.statusLabel.Wrapping = fyne.TextWrapWord
	w.processedList = NewProcessedList(w.names)
	if w.bridge != nil {
		w.updateCounts(w.bridge.Snapshot())
	}

	progress := container.NewHBox(w.countsLabel, layout.NewSpacer(), w.remainingLabel)
	processed := container.NewBorder(
		widget.NewLabel("Processed"),
		nil, nil, nil,
		w.processedList,
	)

	split := container.NewVSplit(viewer, processed)
	split.SetOffset(0.7)

	content := container.NewBorder(
		toolbar,
		container.NewVBox(widget.NewSeparator(), progress, w.statusLabel),
		nil, nil,
		split,
	)

	w.window.SetContent(content)
	w.window.SetMainMenu(w.createMenu())
	w.window.Canvas().SetOnTypedRune(w.handleTypedRune)
	w.window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
}

func (w *MainWindow) createDirectoryBar() fyne.CanvasObject {
	w.imageDirEntry = widget.NewEntry()
	w.imageDirEntry.SetPlaceHolder("Image directory")
	w.imageDirEntry.OnSubmitted = w.selectImageDir

	w.labelDirEntry = widget.NewEntry()
	w.labelDirEntry.SetPlaceHolder("Label directory")
	w.labelDirEntry.OnSubmitted = w.selectLabelDir

	imageBrowse := widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), func() {
		w.browseFolder(w.imageDirEntry, w.selectImageDir)
	})
	labelBrowse := widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), func() {
		w.browseFolder(w.labelDirEntry, w.selectLabelDir)
	})

	form := widget.NewForm(
		widget.NewFormItem("Images", container.NewBorder(nil, nil, nil, imageBrowse, w.imageDirEntry)),
		widget.NewFormItem("Labels", container.NewBorder(nil, nil, nil, labelBrowse, w.labelDirEntry)),
	)
	return container.NewPadded(form)
}

func (w *MainWindow) createMenu() *fyne.MainMenu {
	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Label single image…", w.showFileLabelDialog),
		),
	)
}

func (w *MainWindow) buttonText(name, key string) string {
	if key == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.ToUpper(key))
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	w.bridge.SetCallbacks(&UICallbacks{
		OnImagesLoaded: func(dir string, count int) {
			// UI update must run on main thread
			fyne.Do(func() {
				w.setStatus(fmt.Sprintf("Loaded %d images from %s", count, dir))
				w.refresh()
			})
			w.syncImage()
		},
		OnLabelsReconciled: func(evt *event.LabelsReconciled) {
			msg := fmt.Sprintf("Found %d existing labels (%d %s, %d %s), %d images pending",
				evt.Positive+evt.Negative, evt.Positive, w.names.Positive, evt.Negative, w.names.Negative, evt.Pending)
			if len(evt.Unrecognized) > 0 {
				msg += fmt.Sprintf("; unrecognized label content for %s", strings.Join(evt.Unrecognized, ", "))
			}
			fyne.Do(func() {
				w.setStatus(msg)
				w.refresh()
			})
			w.syncImage()
		},
		OnSessionStateChanged: func(oldState, newState state.SessionState) {
			w.logger.Debug("Session state changed", "from", oldState, "to", newState)
			fyne.Do(func() {
				w.setLabelingEnabled(newState.CanLabel())
			})
		},
		OnCurrentImageChanged: func(*labeling.ImageRef) {
			// Events may be dropped or arrive late; always show what the session holds now.
			w.syncImage()
		},
		OnImageLabeled: func(entry label.HistoryEntry, remaining int) {
			fyne.Do(func() {
				w.setStatus(fmt.Sprintf("%s labeled %s", entry.Image, w.names.Name(entry.Value)))
				w.refresh()
			})
		},
		OnSessionExhausted: func(evt *event.SessionExhausted) {
			msg := fmt.Sprintf("All %d images labeled: %d %s, %d %s",
				evt.Total, evt.Positive, w.names.Positive, evt.Negative, w.names.Negative)
			if evt.Run != nil {
				msg += fmt.Sprintf("; this run recorded %d (%d %s, %d %s)",
					evt.Run.Labeled, evt.Run.Positive, w.names.Positive, evt.Run.Negative, w.names.Negative)
			}
			fyne.Do(func() {
				w.setStatus(msg)
				w.setLabelingEnabled(false)
			})
		},
		OnFileLabeled: func(rec label.Record) {
			fyne.Do(func() {
				w.setStatus(fmt.Sprintf("%s labeled %s in %s", rec.Image, w.names.Name(rec.Value), rec.Path))
			})
		},
		OnOperationFailed: func(operation string, err error) {
			w.logger.Debug("Operation failed", "operation", operation, "error", err)
		},
	})
}

// Command handlers

func (w *MainWindow) browseFolder(entry *widget.Entry, onChosen func(string)) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			w.report(err)
			return
		}
		if uri == nil {
			return
		}
		entry.SetText(uri.Path())
		onChosen(uri.Path())
	}, w.window)
}

func (w *MainWindow) selectImageDir(dir string) {
	w.report(w.bridge.SelectImageDir(strings.TrimSpace(dir)))
}

func (w *MainWindow) selectLabelDir(dir string) {
	w.report(w.bridge.SelectLabelDir(strings.TrimSpace(dir)))
}

// applyLabel labels the image on screen. It is rejected when the session has
// already moved past that image.
func (w *MainWindow) applyLabel(v label.Value) {
	if w.displayed == "" {
		return
	}
	err := w.bridge.LabelImage(w.displayed, v)
	if errors.Is(err, labeling.ErrImageMismatch) {
		w.setStatus(fmt.Sprintf("%s is no longer current; showing the current image", w.displayed))
	} else {
		w.report(err)
	}
	go w.syncImage()
}

func (w *MainWindow) handleTypedRune(r rune) {
	if v, ok := w.keys.Lookup(r); ok {
		w.applyLabel(v)
	}
}

func (w *MainWindow) showFileLabelDialog() {
	ShowFileLabelDialog(&FileLabelDialogConfig{
		Parent: w.window,
		Bridge: w.bridge,
		Loader: w.loader,
		Names:  w.names,
		Logger: w.logger,
		OnError: func(err error) {
			w.report(err)
		},
	})
}

// report shows a failed operation in the status line.
func (w *MainWindow) report(err error) {
	if err == nil {
		return
	}
	w.setStatus(err.Error())
}

// View updates

// syncImage shows the session's current image. The preview is decoded on the
// calling goroutine, so it is never called from the main thread.
func (w *MainWindow) syncImage() {
	img := w.bridge.Snapshot().Current
	if img == nil {
		fyne.Do(func() {
			if w.bridge.Snapshot().Current != nil {
				return
			}
			w.displayed = ""
			w.imageView.SetImage(nil)
			w.nameLabel.SetText("No pending images")
		})
		return
	}

	scaled, err := w.loader.Load(img.Path())
	if err != nil {
		w.logger.Warn("Failed to load preview", "image", img.Name, "error", err)
		scaled = w.loader.Placeholder()
	}

	fyne.Do(func() {
		// A newer sync may already have run; never step back to an older image.
		if cur := w.bridge.Snapshot().Current; cur == nil || cur.Name != img.Name {
			return
		}
		if err != nil {
			w.setStatus(err.Error())
		}
		w.displayed = img.Name
		w.imageView.SetImage(scaled)
		w.nameLabel.SetText(img.Name)
	})
}

func (w *MainWindow) refresh() {
	snap := w.bridge.Snapshot()
	w.updateCounts(snap)
	w.processedList.SetProcessed(snap.Processed)
	w.setLabelingEnabled(snap.State.CanLabel() && snap.Current != nil)
}

func (w *MainWindow) updateCounts(snap labeling.Snapshot) {
	text := fmt.Sprintf("%s: %d    %s: %d", w.names.Positive, snap.Positive, w.names.Negative, snap.Negative)
	if snap.Unrecognized > 0 {
		text += fmt.Sprintf("    Unrecognized: %d", snap.Unrecognized)
	}
	w.countsLabel.SetText(text)
	w.remainingLabel.SetText(fmt.Sprintf("Remaining: %d of %d", snap.Remaining, snap.Total))
}

func (w *MainWindow) setStatus(msg string) {
	w.statusLabel.SetText(msg)
}

func (w *MainWindow) setLabelingEnabled(enabled bool) {
	if enabled {
		w.positiveBtn.Enable()
		w.negativeBtn.Enable()
		return
	}
	w.positiveBtn.Disable()
	w.negativeBtn.Disable()
}

// Public methods

// Show displays the main window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// SetIcon sets the window icon.
func (w *MainWindow) SetIcon(icon fyne.Resource) {
	w.window.SetIcon(icon)
}

// Cleanup releases resources.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Starting cleanup...")

		if w.bridge != nil {
			w.bridge.Close()
		}

		w.logger.Info("Cleanup completed")
	})
}
