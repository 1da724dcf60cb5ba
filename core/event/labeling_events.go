package event

import (
	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
)

// ImagesLoaded is published after an image directory is scanned.
type ImagesLoaded struct {
	Dir   string
	Count int
}

func NewImagesLoaded(dir string, count int) *ImagesLoaded {
	return &ImagesLoaded{Dir: dir, Count: count}
}

func (e *ImagesLoaded) EventName() string {
	return "ImagesLoaded"
}

// LabelsReconciled is published after existing label files were read.
type LabelsReconciled struct {
	LabelDir     string
	Pending      int
	Positive     int
	Negative     int
	Unrecognized []string
}

func NewLabelsReconciled(labelDir string, res *labeling.ReconcileResult) *LabelsReconciled {
	e := &LabelsReconciled{LabelDir: labelDir}
	if res == nil {
		return e
	}
	e.Pending = len(res.Pending)
	e.Positive = len(res.Positive)
	e.Negative = len(res.Negative)
	for _, img := range res.Unrecognized {
		e.Unrecognized = append(e.Unrecognized, img.Name)
	}
	return e
}

func (e *LabelsReconciled) EventName() string {
	return "LabelsReconciled"
}

// ImageLabeled is published after a label file was written for the current image.
type ImageLabeled struct {
	Entry     label.HistoryEntry
	Remaining int
}

func NewImageLabeled(entry label.HistoryEntry, remaining int) *ImageLabeled {
	return &ImageLabeled{Entry: entry, Remaining: remaining}
}

func (e *ImageLabeled) EventName() string {
	return "ImageLabeled"
}

// CurrentImageChanged is published when the cursor points at a different image.
type CurrentImageChanged struct {
	// Image is nil once no pending image remains
	Image *labeling.ImageRef
}

func NewCurrentImageChanged(img *labeling.ImageRef) *CurrentImageChanged {
	return &CurrentImageChanged{Image: img}
}

func (e *CurrentImageChanged) EventName() string {
	return "CurrentImageChanged"
}

// SessionExhausted is published when the last pending image is labeled.
type SessionExhausted struct {
	Total    int
	Positive int
	Negative int
	// Run is read back from the history repository; nil when no history is kept.
	Run *label.RunSummary
}

func NewSessionExhausted(total, positive, negative int) *SessionExhausted {
	return &SessionExhausted{Total: total, Positive: positive, Negative: negative}
}

func (e *SessionExhausted) EventName() string {
	return "SessionExhausted"
}

// FileLabeled is published after a single image file was labeled outside the session.
type FileLabeled struct {
	Record label.Record
}

func NewFileLabeled(rec label.Record) *FileLabeled {
	return &FileLabeled{Record: rec}
}

func (e *FileLabeled) EventName() string {
	return "FileLabeled"
}
