// Package label defines binary label values and their on-disk record format.
package label

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Value is a binary classification decision for one image.
type Value int

const (
	// Negative marks an image as "not glass". Persisted as "0".
	Negative Value = iota
	// Positive marks an image as "glass". Persisted as "1".
	Positive
)

// Record file codes.
const (
	CodePositive = "1"
	CodeNegative = "0"
)

// FileExt is the extension of label record files.
const FileExt = ".txt"

// ErrUnknownCode is returned when label file content is neither "1" nor "0".
var ErrUnknownCode = errors.New("unknown label code")

// Code returns the single-character persisted form of the value.
func (v Value) Code() string {
	if v == Positive {
		return CodePositive
	}
	return CodeNegative
}

// String returns the string representation of the value.
func (v Value) String() string {
	switch v {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// IsValid returns true for Positive and Negative.
func (v Value) IsValid() bool {
	return v == Positive || v == Negative
}

// ParseCode parses trimmed label file content.
func ParseCode(content string) (Value, error) {
	switch strings.TrimSpace(content) {
	case CodePositive:
		return Positive, nil
	case CodeNegative:
		return Negative, nil
	default:
		return Negative, fmt.Errorf("%w: %q", ErrUnknownCode, content)
	}
}

// Record is a persisted label decision.
type Record struct {
	// Image is the file name of the labeled image
	Image string
	// Path is the label file location
	Path string
	Value Value
}

// HistoryEntry records one label applied during a run.
type HistoryEntry struct {
	RunID     string
	Image     string
	LabelPath string
	Value     Value
	LabeledAt time.Time
}
