package event

import (
	"errors"
	"testing"

	"glasslabel-go/core/state"
	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
)

func TestEvent_Names(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{NewSessionStateChanged(state.StateUninitialized, state.StateImagesLoaded), "SessionStateChanged"},
		{NewOperationFailed("LabelCurrent", errors.New("test")), "OperationFailed"},
		{NewImagesLoaded("/img", 3), "ImagesLoaded"},
		{NewLabelsReconciled("/lbl", nil), "LabelsReconciled"},
		{NewImageLabeled(label.HistoryEntry{}, 2), "ImageLabeled"},
		{NewCurrentImageChanged(nil), "CurrentImageChanged"},
		{NewSessionExhausted(3, 2, 1), "SessionExhausted"},
		{NewFileLabeled(label.Record{}), "FileLabeled"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.event.EventName(); got != tt.expected {
				t.Errorf("EventName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSessionStateChanged_States(t *testing.T) {
	e := NewSessionStateChanged(state.StateReconciled, state.StateLabeling)

	if e.OldState != state.StateReconciled {
		t.Errorf("OldState = %v, want Reconciled", e.OldState)
	}
	if e.NewState != state.StateLabeling {
		t.Errorf("NewState = %v, want Labeling", e.NewState)
	}
}

func TestOperationFailed_Error(t *testing.T) {
	testErr := errors.New("test error")
	e := NewOperationFailed("SelectImageDir", testErr)

	if e.Error != testErr {
		t.Errorf("Error = %v, want %v", e.Error, testErr)
	}
	if e.Operation != "SelectImageDir" {
		t.Errorf("Operation = %v, want SelectImageDir", e.Operation)
	}
}

func TestLabelsReconciled_Counts(t *testing.T) {
	res := &labeling.ReconcileResult{
		Pending:      []labeling.ImageRef{{Name: "a.png"}, {Name: "b.png"}},
		Positive:     []labeling.ImageRef{{Name: "c.png"}},
		Unrecognized: []labeling.ImageRef{{Name: "d.png"}},
	}
	e := NewLabelsReconciled("/lbl", res)

	if e.Pending != 2 || e.Positive != 1 || e.Negative != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/1/0", e.Pending, e.Positive, e.Negative)
	}
	if len(e.Unrecognized) != 1 || e.Unrecognized[0] != "d.png" {
		t.Errorf("Unrecognized = %v, want [d.png]", e.Unrecognized)
	}
}

func TestCurrentImageChanged_Image(t *testing.T) {
	img := &labeling.ImageRef{Name: "a.png", Dir: "/img"}
	e := NewCurrentImageChanged(img)

	if e.Image != img {
		t.Error("Image not set correctly")
	}
	if NewCurrentImageChanged(nil).Image != nil {
		t.Error("nil image should stay nil")
	}
}
