package presentation

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
)

func TestMainWindowConfig(t *testing.T) {
	cfg := &MainWindowConfig{}

	if cfg.App != nil {
		t.Error("App should be nil by default")
	}
	if cfg.Bridge != nil {
		t.Error("Bridge should be nil by default")
	}
	if cfg.Config != nil {
		t.Error("Config should be nil by default")
	}
}

func TestMainWindow_ButtonText(t *testing.T) {
	w := &MainWindow{}

	tests := []struct {
		name, key, want string
	}{
		{"Is Glass", "j", "Is Glass (J)"},
		{"Is Not Glass", "l", "Is Not Glass (L)"},
		{"Skip", "", "Skip"},
	}
	for _, tt := range tests {
		if got := w.buttonText(tt.name, tt.key); got != tt.want {
			t.Errorf("buttonText(%q, %q) = %q, want %q", tt.name, tt.key, got, tt.want)
		}
	}
}

func TestLabelNames_Name(t *testing.T) {
	names := LabelNames{Positive: "Is Glass", Negative: "Is Not Glass"}

	if got := names.Name(label.Positive); got != "Is Glass" {
		t.Errorf("Name(Positive) = %q", got)
	}
	if got := names.Name(label.Negative); got != "Is Not Glass" {
		t.Errorf("Name(Negative) = %q", got)
	}
}

func TestProcessedList_SetProcessed(t *testing.T) {
	test.NewTempApp(t)
	pl := NewProcessedList(LabelNames{Positive: "yes", Negative: "no"})

	pl.SetProcessed([]labeling.ProcessedItem{
		{Image: labeling.ImageRef{Name: "a.png"}, Value: label.Positive, Preexisting: true},
		{Image: labeling.ImageRef{Name: "b.png"}, Value: label.Negative},
		{Image: labeling.ImageRef{Name: "c.png"}, Value: label.Positive},
	})

	if pl.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", pl.Count())
	}

	items := pl.Items()
	want := []string{"c.png", "b.png", "a.png"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("item %d = %s, want %s", i, items[i].Name, name)
		}
	}
	if !items[2].Preexisting {
		t.Error("a.png should be marked pre-existing")
	}

	pl.SetProcessed(nil)
	if pl.Count() != 0 {
		t.Errorf("Count() after reset = %d, want 0", pl.Count())
	}
}
