package logging

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != slog.LevelInfo {
		t.Errorf("Level = %v, want INFO", cfg.Level)
	}
	if cfg.MaxSizeMB != 50 {
		t.Errorf("MaxSizeMB = %d, want 50", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 10 {
		t.Errorf("MaxBackups = %d, want 10", cfg.MaxBackups)
	}
	if !cfg.Compress {
		t.Error("Compress should default to true")
	}
}

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir()
	if filepath.Base(dir) != "logs" || filepath.Base(filepath.Dir(dir)) != "glasslabel" {
		t.Errorf("DefaultLogDir() = %v, want .../glasslabel/logs", dir)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, false},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestContextLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(nil, nil))
	ctx := With(context.Background(), logger)

	if From(ctx) != logger {
		t.Error("From() should return the logger stored in context")
	}
	var nilCtx context.Context
	if From(nilCtx) != L() {
		t.Error("From(nil) should fall back to L()")
	}
	if From(context.Background()) != L() {
		t.Error("From() without logger should fall back to L()")
	}
}
