package labeling

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"glasslabel-go/core/state"
	"glasslabel-go/domain/label"
)

// Session holds the ordered images of one image directory, their reconciliation
// against a label directory, and the cursor over pending images.
// A Session is not safe for concurrent use.
type Session struct {
	imageDir string
	labelDir string
	runID    string

	images       []ImageRef
	pending      []ImageRef
	positive     []ImageRef
	negative     []ImageRef
	unrecognized []ImageRef
	preexisting  []ProcessedItem
	history      []label.HistoryEntry
	cursor       int

	state state.SessionState

	store    *label.FileStore
	policy   UnrecognizedPolicy
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string
}

// Config holds configuration for creating a new Session.
type Config struct {
	Store    *label.FileStore
	Policy   UnrecognizedPolicy
	Logger   *slog.Logger
	Now      func() time.Time
	NewRunID func() string
}

// ReconcileResult reports how reconciliation classified the loaded images.
type ReconcileResult struct {
	Pending      []ImageRef
	Positive     []ImageRef
	Negative     []ImageRef
	Unrecognized []ImageRef
}

// New creates an uninitialized Session.
func New(cfg *Config) *Session {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Store == nil {
		cfg.Store = label.NewFileStore()
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyDrop
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewRunID == nil {
		cfg.NewRunID = uuid.NewString
	}

	return &Session{
		state:    state.StateUninitialized,
		store:    cfg.Store,
		policy:   cfg.Policy,
		logger:   cfg.Logger,
		now:      cfg.Now,
		newRunID: cfg.NewRunID,
	}
}

// LoadImages discovers the .png files of dir and makes all of them pending.
// A previously chosen label directory is remembered but not applied; call Reconcile for that.
func (s *Session) LoadImages(dir string) ([]ImageRef, error) {
	images, err := ScanImages(dir)
	if err != nil {
		return nil, err
	}

	s.imageDir = dir
	s.images = images
	s.pending = append([]ImageRef(nil), images...)
	s.positive = nil
	s.negative = nil
	s.unrecognized = nil
	s.preexisting = nil
	s.history = nil
	s.cursor = 0
	s.runID = s.newRunID()
	s.transitionTo(state.StateImagesLoaded)

	s.logger.Info("Images loaded", "dir", dir, "count", len(images), "run_id", s.runID)
	return append([]ImageRef(nil), images...), nil
}

// Reconcile classifies every loaded image against the label files in labelDir.
// Only pending images remain in the work list.
func (s *Session) Reconcile(labelDir string) (*ReconcileResult, error) {
	if !s.state.HasImages() {
		return nil, ErrNoImages
	}
	if err := checkDir(labelDir); err != nil {
		return nil, err
	}

	result := &ReconcileResult{}
	var preexisting []ProcessedItem

	for _, img := range s.images {
		v, status, content, err := s.store.Read(labelDir, img.BaseName())
		if err != nil {
			return nil, fmt.Errorf("reconcile %s: %w", labelDir, err)
		}

		switch status {
		case label.StatusMissing:
			result.Pending = append(result.Pending, img)
		case label.StatusValid:
			if v == label.Positive {
				result.Positive = append(result.Positive, img)
			} else {
				result.Negative = append(result.Negative, img)
			}
			preexisting = append(preexisting, ProcessedItem{Image: img, Value: v, Preexisting: true})
		case label.StatusUnrecognized:
			result.Unrecognized = append(result.Unrecognized, img)
			s.logger.Warn("Unrecognized label content", "image", img.Name, "content", content, "policy", s.policy)
			if s.policy == PolicyPending {
				result.Pending = append(result.Pending, img)
			}
		}
	}

	if s.policy == PolicyError && len(result.Unrecognized) > 0 {
		names := make([]string, len(result.Unrecognized))
		for i, img := range result.Unrecognized {
			names[i] = img.Name
		}
		return nil, &UnrecognizedLabelError{LabelDir: labelDir, Images: names}
	}

	s.labelDir = labelDir
	s.pending = result.Pending
	s.positive = result.Positive
	s.negative = result.Negative
	s.unrecognized = result.Unrecognized
	s.preexisting = preexisting
	s.history = nil
	s.cursor = 0
	s.runID = s.newRunID()

	if len(s.pending) == 0 {
		s.transitionTo(state.StateExhausted)
	} else {
		s.transitionTo(state.StateReconciled)
	}

	s.logger.Info("Labels reconciled",
		"label_dir", labelDir,
		"pending", len(result.Pending),
		"positive", len(result.Positive),
		"negative", len(result.Negative),
		"unrecognized", len(result.Unrecognized),
		"run_id", s.runID,
	)
	return result, nil
}

// CurrentImage returns the image under the cursor.
// The second result is false when no pending image remains.
func (s *Session) CurrentImage() (ImageRef, bool) {
	if s.cursor < len(s.pending) {
		return s.pending[s.cursor], true
	}
	return ImageRef{}, false
}

// LabelCurrent writes v for the current image, records it, and advances the cursor.
// On error the session is left unchanged.
func (s *Session) LabelCurrent(v label.Value) (*label.HistoryEntry, error) {
	if !s.state.HasImages() {
		return nil, ErrNoImages
	}
	img, ok := s.CurrentImage()
	if !ok {
		return nil, ErrNoPendingImages
	}
	if s.labelDir == "" || !s.state.IsReconciled() {
		return nil, fmt.Errorf("%w: no label directory chosen", ErrInvalidLabelDir)
	}
	if err := checkDir(s.labelDir); err != nil {
		return nil, err
	}

	rec, err := s.store.Write(s.labelDir, img.Name, v)
	if err != nil {
		return nil, err
	}

	if v == label.Positive {
		s.positive = append(s.positive, img)
	} else {
		s.negative = append(s.negative, img)
	}
	s.forgetUnrecognized(img.Name)

	entry := label.HistoryEntry{
		RunID:     s.runID,
		Image:     img.Name,
		LabelPath: rec.Path,
		Value:     v,
		LabeledAt: s.now(),
	}
	s.history = append(s.history, entry)

	s.logger.Info("Image labeled", "image", img.Name, "value", v, "path", rec.Path)

	s.Advance()
	return &entry, nil
}

// LabelImage labels the current image like LabelCurrent, but only when the
// current image is the one named name. Otherwise it returns ErrImageMismatch
// and leaves the session unchanged.
func (s *Session) LabelImage(name string, v label.Value) (*label.HistoryEntry, error) {
	if img, ok := s.CurrentImage(); ok && img.Name != name {
		return nil, fmt.Errorf("%w: showing %s, current is %s", ErrImageMismatch, name, img.Name)
	}
	return s.LabelCurrent(v)
}

// forgetUnrecognized drops name from the unrecognized set once it has a valid label.
func (s *Session) forgetUnrecognized(name string) {
	for i, img := range s.unrecognized {
		if img.Name == name {
			s.unrecognized = append(s.unrecognized[:i:i], s.unrecognized[i+1:]...)
			return
		}
	}
}

// Advance moves the cursor to the next pending image.
// It reports whether a next image exists.
func (s *Session) Advance() bool {
	if s.cursor >= len(s.pending) {
		return false
	}
	s.cursor++

	if s.cursor < len(s.pending) {
		if s.state.CanLabel() {
			s.transitionTo(state.StateLabeling)
		}
		return true
	}

	if s.state.IsReconciled() {
		s.transitionTo(state.StateExhausted)
		s.logger.Info("Session exhausted", "total", len(s.images))
	}
	return false
}

// State returns the current session state.
func (s *Session) State() state.SessionState {
	return s.state
}

// ImageDir returns the loaded image directory.
func (s *Session) ImageDir() string {
	return s.imageDir
}

// LabelDir returns the chosen label directory.
func (s *Session) LabelDir() string {
	return s.labelDir
}

// SetLabelDir remembers a label directory without reconciling.
// It is used when the label directory is chosen before any images are loaded.
func (s *Session) SetLabelDir(dir string) error {
	if err := checkDir(dir); err != nil {
		return err
	}
	s.labelDir = dir
	return nil
}

// RunID returns the identifier of the current run.
func (s *Session) RunID() string {
	return s.runID
}

// Images returns all discovered images in order.
func (s *Session) Images() []ImageRef {
	return append([]ImageRef(nil), s.images...)
}

// Pending returns the pending images not yet labeled.
func (s *Session) Pending() []ImageRef {
	if s.cursor >= len(s.pending) {
		return nil
	}
	return append([]ImageRef(nil), s.pending[s.cursor:]...)
}

// Positive returns images labeled positive, pre-existing first.
func (s *Session) Positive() []ImageRef {
	return append([]ImageRef(nil), s.positive...)
}

// Negative returns images labeled negative, pre-existing first.
func (s *Session) Negative() []ImageRef {
	return append([]ImageRef(nil), s.negative...)
}

// Unrecognized returns images whose label file content was not understood.
func (s *Session) Unrecognized() []ImageRef {
	return append([]ImageRef(nil), s.unrecognized...)
}

// History returns the labels applied during the current run.
func (s *Session) History() []label.HistoryEntry {
	return append([]label.HistoryEntry(nil), s.history...)
}

// Remaining returns the number of pending images not yet labeled.
func (s *Session) Remaining() int {
	if s.cursor >= len(s.pending) {
		return 0
	}
	return len(s.pending) - s.cursor
}

func (s *Session) transitionTo(newState state.SessionState) {
	oldState := s.state
	if !oldState.CanTransitionTo(newState) {
		s.logger.Warn("Ignoring state transition", "error", state.NewTransitionError(oldState, newState, ""))
		return
	}
	s.state = newState
	if oldState != newState {
		s.logger.Debug("State changed", "from", oldState, "to", newState)
	}
}

func checkDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidLabelDir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLabelDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidLabelDir, dir)
	}
	return nil
}
