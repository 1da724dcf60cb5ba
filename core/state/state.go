// Package state defines the labeling session state machine.
package state

import "fmt"

// SessionState represents the state of a labeling session.
type SessionState int

const (
	// StateUninitialized is the initial state before an image directory is chosen.
	StateUninitialized SessionState = iota
	// StateImagesLoaded indicates images are discovered but not yet reconciled against labels.
	StateImagesLoaded
	// StateReconciled indicates existing label files have been read and pending images are known.
	StateReconciled
	// StateLabeling indicates at least one label was applied and pending images remain.
	StateLabeling
	// StateExhausted indicates no pending images remain.
	StateExhausted
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateImagesLoaded:
		return "ImagesLoaded"
	case StateReconciled:
		return "Reconciled"
	case StateLabeling:
		return "Labeling"
	case StateExhausted:
		return "Exhausted"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// Choosing a new image folder is the external reset and is allowed from every state.
var validTransitions = map[SessionState][]SessionState{
	StateUninitialized: {StateImagesLoaded},
	StateImagesLoaded:  {StateImagesLoaded, StateReconciled, StateExhausted},
	StateReconciled:    {StateImagesLoaded, StateReconciled, StateLabeling, StateExhausted},
	StateLabeling:      {StateImagesLoaded, StateReconciled, StateLabeling, StateExhausted},
	StateExhausted:     {StateImagesLoaded, StateReconciled, StateExhausted},
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s SessionState) CanTransitionTo(target SessionState) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the list of valid target states from the current state.
func (s SessionState) ValidTransitions() []SessionState {
	return validTransitions[s]
}

// HasImages returns true once an image directory has been loaded.
func (s SessionState) HasImages() bool {
	return s != StateUninitialized
}

// IsReconciled returns true if label files have been read for the loaded images.
func (s SessionState) IsReconciled() bool {
	return s == StateReconciled || s == StateLabeling || s == StateExhausted
}

// CanLabel returns true if a label may be applied in this state.
func (s SessionState) CanLabel() bool {
	return s == StateReconciled || s == StateLabeling
}

// IsTerminal returns true if no pending images remain.
func (s SessionState) IsTerminal() bool {
	return s == StateExhausted
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   SessionState
	To     SessionState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to SessionState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
