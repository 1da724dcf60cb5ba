package label

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidImagePath is returned when a single-file label target is not an existing regular file.
var ErrInvalidImagePath = errors.New("invalid image path")

// ReadStatus classifies the label file found for an image.
type ReadStatus int

const (
	// StatusMissing means no label file exists, or it is empty.
	StatusMissing ReadStatus = iota
	// StatusValid means the file holds a known code.
	StatusValid
	// StatusUnrecognized means the file holds something other than "1" or "0".
	StatusUnrecognized
)

// String returns the string representation of the status.
func (s ReadStatus) String() string {
	switch s {
	case StatusMissing:
		return "Missing"
	case StatusValid:
		return "Valid"
	case StatusUnrecognized:
		return "Unrecognized"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// FileStore reads and writes label record files.
type FileStore struct{}

// NewFileStore creates a new label file store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// RecordPath returns the label file path for an image base name inside dir.
func RecordPath(dir, baseName string) string {
	return filepath.Join(dir, baseName+FileExt)
}

// Read reads the label file for baseName in dir.
// The returned content is the raw file text, useful for diagnostics on unrecognized records.
func (s *FileStore) Read(dir, baseName string) (Value, ReadStatus, string, error) {
	data, err := os.ReadFile(RecordPath(dir, baseName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Negative, StatusMissing, "", nil
		}
		return Negative, StatusMissing, "", fmt.Errorf("failed to read label file for %s: %w", baseName, err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return Negative, StatusMissing, content, nil
	}

	v, err := ParseCode(content)
	if err != nil {
		return Negative, StatusUnrecognized, content, nil
	}
	return v, StatusValid, content, nil
}

// Write writes the value for the image named imageName into dir, replacing any existing record.
// The record file is named after the image with its extension replaced.
func (s *FileStore) Write(dir, imageName string, v Value) (*Record, error) {
	path := RecordPath(dir, strings.TrimSuffix(imageName, filepath.Ext(imageName)))
	if err := os.WriteFile(path, []byte(v.Code()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write label file %s: %w", path, err)
	}
	return &Record{
		Image: imageName,
		Path:  path,
		Value: v,
	}, nil
}

// LabelBeside writes a label file next to the image at imagePath.
// The extension of the image is replaced by the label extension.
func (s *FileStore) LabelBeside(imagePath string, v Value) (*Record, error) {
	info, err := os.Stat(imagePath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImagePath, imagePath)
	}

	return s.Write(filepath.Dir(imagePath), filepath.Base(imagePath), v)
}
