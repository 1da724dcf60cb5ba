package presentation

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"glasslabel-go/application"
	"glasslabel-go/core/event"
	"glasslabel-go/core/state"
	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
)

func newTestBridge() *UIEventBridge {
	return NewUIEventBridge(&BridgeConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestUICallbacks_Nil(t *testing.T) {
	// Events without callbacks must not panic
	b := newTestBridge()
	b.SetCallbacks(nil)
	b.handleEvent(event.NewImagesLoaded("/img", 3))

	b.SetCallbacks(&UICallbacks{})
	b.handleEvent(event.NewImagesLoaded("/img", 3))
	b.handleEvent(event.NewOperationFailed("LabelCurrent", errors.New("boom")))
}

func TestUIEventBridge_RoutesEvents(t *testing.T) {
	b := newTestBridge()

	var got []string
	b.SetCallbacks(&UICallbacks{
		OnImagesLoaded: func(dir string, count int) {
			if dir != "/img" || count != 3 {
				t.Errorf("OnImagesLoaded(%s, %d)", dir, count)
			}
			got = append(got, "loaded")
		},
		OnLabelsReconciled: func(evt *event.LabelsReconciled) {
			if evt.LabelDir != "/lbl" {
				t.Errorf("LabelDir = %s", evt.LabelDir)
			}
			got = append(got, "reconciled")
		},
		OnSessionStateChanged: func(oldState, newState state.SessionState) {
			if newState != state.StateReconciled {
				t.Errorf("newState = %v", newState)
			}
			got = append(got, "state")
		},
		OnCurrentImageChanged: func(img *labeling.ImageRef) {
			if img == nil || img.Name != "a.png" {
				t.Errorf("img = %v", img)
			}
			got = append(got, "current")
		},
		OnImageLabeled: func(entry label.HistoryEntry, remaining int) {
			if entry.Image != "a.png" || remaining != 2 {
				t.Errorf("OnImageLabeled(%s, %d)", entry.Image, remaining)
			}
			got = append(got, "labeled")
		},
		OnSessionExhausted: func(evt *event.SessionExhausted) {
			if evt.Total != 3 || evt.Run == nil || evt.Run.Labeled != 2 {
				t.Errorf("OnSessionExhausted(%+v)", evt)
			}
			got = append(got, "exhausted")
		},
		OnFileLabeled: func(rec label.Record) {
			if rec.Value != label.Negative {
				t.Errorf("rec.Value = %v", rec.Value)
			}
			got = append(got, "file")
		},
		OnOperationFailed: func(operation string, err error) {
			if operation != "SelectLabelDir" || !errors.Is(err, labeling.ErrInvalidLabelDir) {
				t.Errorf("OnOperationFailed(%s, %v)", operation, err)
			}
			got = append(got, "failed")
		},
	})

	b.handleEvent(event.NewImagesLoaded("/img", 3))
	b.handleEvent(event.NewLabelsReconciled("/lbl", nil))
	b.handleEvent(event.NewSessionStateChanged(state.StateImagesLoaded, state.StateReconciled))
	b.handleEvent(event.NewCurrentImageChanged(&labeling.ImageRef{Name: "a.png", Dir: "/img"}))
	b.handleEvent(event.NewImageLabeled(label.HistoryEntry{Image: "a.png"}, 2))
	exhausted := event.NewSessionExhausted(3, 2, 1)
	exhausted.Run = &label.RunSummary{RunID: "r1", Labeled: 2, Positive: 1, Negative: 1}
	b.handleEvent(exhausted)
	b.handleEvent(event.NewFileLabeled(label.Record{Image: "x.png", Value: label.Negative}))
	b.handleEvent(event.NewOperationFailed("SelectLabelDir", labeling.ErrInvalidLabelDir))

	want := []string{"loaded", "reconciled", "state", "current", "labeled", "exhausted", "file", "failed"}
	if len(got) != len(want) {
		t.Fatalf("callbacks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUIEventBridge_LabelImage(t *testing.T) {
	imageDir, labelDir := t.TempDir(), t.TempDir()
	for _, name := range []string{"a.png", "b.png"} {
		if err := os.WriteFile(filepath.Join(imageDir, name), []byte("png"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coord := application.NewCoordinator(&application.CoordinatorConfig{Logger: logger})
	defer coord.Stop()
	b := NewUIEventBridge(&BridgeConfig{Coordinator: coord, Logger: logger})

	if err := b.SelectImageDir(imageDir); err != nil {
		t.Fatal(err)
	}
	if err := b.SelectLabelDir(labelDir); err != nil {
		t.Fatal(err)
	}

	if err := b.LabelImage("a.png", label.Positive); err != nil {
		t.Fatalf("LabelImage(a.png) error = %v", err)
	}
	// a.png is done; a second press for the same on-screen image must not label b.png.
	if err := b.LabelImage("a.png", label.Negative); !errors.Is(err, labeling.ErrImageMismatch) {
		t.Fatalf("LabelImage(a.png) again error = %v, want ErrImageMismatch", err)
	}
	if _, err := os.Stat(filepath.Join(labelDir, "b.txt")); !os.IsNotExist(err) {
		t.Errorf("b.txt exists or stat failed: %v", err)
	}
	if cur := b.Snapshot().Current; cur == nil || cur.Name != "b.png" {
		t.Errorf("Current = %v, want b.png", cur)
	}
}

func TestBridgeConfig(t *testing.T) {
	cfg := &BridgeConfig{}

	if cfg.Coordinator != nil {
		t.Error("Coordinator should be nil by default")
	}
	if cfg.EventBus != nil {
		t.Error("EventBus should be nil by default")
	}
	if cfg.Logger != nil {
		t.Error("Logger should be nil by default")
	}
}
