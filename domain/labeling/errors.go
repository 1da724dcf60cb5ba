package labeling

import (
	"errors"
	"fmt"
	"strings"
)

// Errors reported by session operations. None of them changes session state.
var (
	ErrInvalidImageDir = errors.New("invalid image directory")
	ErrInvalidLabelDir = errors.New("invalid label directory")
	ErrNoImages        = errors.New("no image directory loaded")
	ErrNoPendingImages = errors.New("no pending images")
	ErrImageMismatch   = errors.New("image is no longer current")
)

// UnrecognizedPolicy decides what reconciliation does with label files
// whose content is neither "1" nor "0".
type UnrecognizedPolicy string

const (
	// PolicyDrop leaves such images out of every bucket.
	PolicyDrop UnrecognizedPolicy = "drop"
	// PolicyPending serves such images again for relabeling.
	PolicyPending UnrecognizedPolicy = "pending"
	// PolicyError fails reconciliation.
	PolicyError UnrecognizedPolicy = "error"
)

// ParsePolicy parses a policy name. An empty name yields PolicyDrop.
func ParsePolicy(name string) (UnrecognizedPolicy, error) {
	switch p := UnrecognizedPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return PolicyDrop, nil
	case PolicyDrop, PolicyPending, PolicyError:
		return p, nil
	default:
		return "", fmt.Errorf("unknown unrecognized-label policy %q", name)
	}
}

// UnrecognizedLabelError reports label files with unknown content under PolicyError.
type UnrecognizedLabelError struct {
	LabelDir string
	Images   []string
}

func (e *UnrecognizedLabelError) Error() string {
	return fmt.Sprintf("unrecognized label content in %s for %d image(s): %s",
		e.LabelDir, len(e.Images), strings.Join(e.Images, ", "))
}
