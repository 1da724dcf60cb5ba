package labeling

import (
	"glasslabel-go/core/state"
	"glasslabel-go/domain/label"
)

// ProcessedItem is one image that already carries a label.
type ProcessedItem struct {
	Image ImageRef
	Value label.Value
	// Preexisting is true when the label was found on disk during reconciliation.
	Preexisting bool
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	State    state.SessionState
	RunID    string
	ImageDir string
	LabelDir string

	// Current is nil when no pending image remains.
	Current *ImageRef

	Total        int
	Remaining    int
	Positive     int
	Negative     int
	Unrecognized int

	// Processed lists pre-existing labels in image order, then labels of this run in the order applied.
	Processed []ProcessedItem
}

// Snapshot captures the current session view.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:        s.state,
		RunID:        s.runID,
		ImageDir:     s.imageDir,
		LabelDir:     s.labelDir,
		Total:        len(s.images),
		Remaining:    s.Remaining(),
		Positive:     len(s.positive),
		Negative:     len(s.negative),
		Unrecognized: len(s.unrecognized),
		Processed:    make([]ProcessedItem, 0, len(s.preexisting)+len(s.history)),
	}

	if img, ok := s.CurrentImage(); ok {
		snap.Current = &img
	}

	snap.Processed = append(snap.Processed, s.preexisting...)
	for _, h := range s.history {
		snap.Processed = append(snap.Processed, ProcessedItem{
			Image: ImageRef{Name: h.Image, Dir: s.imageDir},
			Value: h.Value,
		})
	}

	return snap
}
