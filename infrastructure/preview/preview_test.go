package preview

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		keepAspect bool
		wantW      int
		wantH      int
	}{
		{"stretch wide", 200, 100, false, 400, 400},
		{"stretch small", 10, 30, false, 400, 400},
		{"fit wide", 800, 400, true, 400, 200},
		{"fit smaller than box", 200, 100, true, 200, 100},
		{"fit tall", 100, 400, true, 100, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewLoader(400, 400, tt.keepAspect)
			if err != nil {
				t.Fatalf("NewLoader() error = %v", err)
			}

			img, err := loader.Load(writePNG(t, tt.srcW, tt.srcH))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLoader_LoadErrors(t *testing.T) {
	loader, _ := NewLoader(40, 40, false)

	if _, err := loader.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load(bad); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestNewLoader_InvalidBox(t *testing.T) {
	if _, err := NewLoader(0, 400, false); !errors.Is(err, ErrInvalidBox) {
		t.Errorf("error = %v, want ErrInvalidBox", err)
	}
}

func TestLoader_Placeholder(t *testing.T) {
	loader, _ := NewLoader(30, 20, true)
	b := loader.Placeholder().Bounds()
	if b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("placeholder = %dx%d, want 30x20", b.Dx(), b.Dy())
	}
}
