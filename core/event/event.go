// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

import "glasslabel-go/core/state"

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// SessionStateChanged is published when the labeling session's state changes.
type SessionStateChanged struct {
	OldState state.SessionState
	NewState state.SessionState
}

func NewSessionStateChanged(oldState, newState state.SessionState) *SessionStateChanged {
	return &SessionStateChanged{
		OldState: oldState,
		NewState: newState,
	}
}

func (e *SessionStateChanged) EventName() string {
	return "SessionStateChanged"
}

// OperationFailed is published when a command could not be applied.
// The session is unchanged when this is published.
type OperationFailed struct {
	Operation string
	Error     error
}

func NewOperationFailed(operation string, err error) *OperationFailed {
	return &OperationFailed{
		Operation: operation,
		Error:     err,
	}
}

func (e *OperationFailed) EventName() string {
	return "OperationFailed"
}
