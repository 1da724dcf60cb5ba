package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"glasslabel-go/domain/labeling"
	"glasslabel-go/resources"
)

const testDefaults = `
window:
  title: Test
  width: 500
  height: 600
display:
  width: 400
  height: 400
labels:
  positive:
    name: Is Glass
    key: j
  negative:
    name: Is Not Glass
    key: l
reconcile:
  unrecognized: drop
history:
  backend: memory
  mongodb:
    uri: mongodb://localhost:27017
    database: glasslabel
    collection: label_history
    write_timeout: 5s
logging:
  level: info
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		DefaultPath: &fstest.MapFile{Data: []byte(testDefaults)},
	}
}

func writeOverride(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_EmbeddedDefaults(t *testing.T) {
	cfg, err := NewLoader(resources.ConfigFiles).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Display.Width != 400 || cfg.Display.Height != 400 {
		t.Errorf("Display = %dx%d, want 400x400", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Labels.Positive.Key != "j" || cfg.Labels.Negative.Key != "l" {
		t.Errorf("keys = %q/%q, want j/l", cfg.Labels.Positive.Key, cfg.Labels.Negative.Key)
	}
	if cfg.Policy() != labeling.PolicyDrop {
		t.Errorf("Policy() = %v, want drop", cfg.Policy())
	}
	if cfg.History.Backend != BackendMemory {
		t.Errorf("Backend = %v, want memory", cfg.History.Backend)
	}
	if cfg.History.MongoDB.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", cfg.History.MongoDB.ConnectTimeout)
	}
}

func TestLoader_Override(t *testing.T) {
	override := writeOverride(t, `
labels:
  positive:
    key: g
reconcile:
  unrecognized: pending
`)

	cfg, err := NewLoader(testFS()).Load(override)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Labels.Positive.Key != "g" {
		t.Errorf("positive key = %q, want g", cfg.Labels.Positive.Key)
	}
	if cfg.Labels.Positive.Name != "Is Glass" {
		t.Errorf("positive name = %q, want default kept", cfg.Labels.Positive.Name)
	}
	if cfg.Labels.Negative.Key != "l" {
		t.Errorf("negative key = %q, want l", cfg.Labels.Negative.Key)
	}
	if cfg.Policy() != labeling.PolicyPending {
		t.Errorf("Policy() = %v, want pending", cfg.Policy())
	}
	if cfg.History.MongoDB.WriteTimeout != 5*time.Second {
		t.Errorf("WriteTimeout = %v, want 5s", cfg.History.MongoDB.WriteTimeout)
	}
}

func TestLoader_MissingOverrideSkipped(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := NewLoader(testFS()).Load("", missing); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoader_Errors(t *testing.T) {
	t.Run("no defaults", func(t *testing.T) {
		if _, err := NewLoader(fstest.MapFS{}).Load(); err == nil {
			t.Error("expected error for missing defaults")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		override := writeOverride(t, "display: [1, 2")
		_, err := NewLoader(testFS()).Load(override)
		if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("error = %v, want parse error", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		override string
		wantErr  string
	}{
		{"zero display", "display: {width: 0}", "display size"},
		{"long key", "labels: {positive: {key: jj}}", "single character"},
		{"shared key", "labels: {negative: {key: j}}", "share the key"},
		{"shared key other case", "labels: {negative: {key: J}}", "share the key"},
		{"empty name", "labels: {negative: {name: ''}}", "labels.negative.name"},
		{"bad policy", "reconcile: {unrecognized: ignore}", "unrecognized-label policy"},
		{"bad backend", "history: {backend: redis}", "unknown history backend"},
		{"mongo without db", "history: {backend: mongodb, mongodb: {database: ''}}", "history.mongodb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(testFS()).Load(writeOverride(t, tt.override))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestOverridePaths(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/explicit.yaml")

	paths := OverridePaths()
	if len(paths) != 2 {
		t.Fatalf("OverridePaths() = %v, want 2 entries", paths)
	}
	if paths[1] != "/tmp/explicit.yaml" {
		t.Errorf("env path = %v, want /tmp/explicit.yaml", paths[1])
	}
	if paths[0] != "" && filepath.Base(paths[0]) != "config.yaml" {
		t.Errorf("user path = %v", paths[0])
	}
}
