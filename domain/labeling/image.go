// Package labeling implements the labeling session: image discovery, reconciliation
// against existing label files, and the cursor over pending images.
package labeling

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageExt is the literal file name suffix of candidate images.
const ImageExt = ".png"

// ImageRef identifies one discovered image. Identity is the file name.
type ImageRef struct {
	Name string
	Dir  string
}

// Path returns the full path of the image.
func (r ImageRef) Path() string {
	return filepath.Join(r.Dir, r.Name)
}

// BaseName returns the file name without the .png suffix.
func (r ImageRef) BaseName() string {
	return strings.TrimSuffix(r.Name, ImageExt)
}

// ScanImages lists the .png files of dir sorted by byte order of their names.
func ScanImages(dir string) ([]ImageRef, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidImageDir, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ImageExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	images := make([]ImageRef, len(names))
	for i, name := range names {
		images[i] = ImageRef{Name: name, Dir: dir}
	}
	return images, nil
}
