// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"log/slog"
	"sync"

	"glasslabel-go/application"
	"glasslabel-go/core/command"
	"glasslabel-go/core/event"
	"glasslabel-go/core/eventbus"
	"glasslabel-go/core/state"
	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
)

// UIEventBridge bridges UI events to the application layer and routes events back to UI.
// It provides a clean separation between UI and business logic.
type UIEventBridge struct {
	coordinator *application.Coordinator
	eventBus    eventbus.EventBus
	logger      *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	// Subscription management
	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
// Callbacks run on the event bus goroutine; widget updates must go through fyne.Do.
type UICallbacks struct {
	// Session lifecycle
	OnImagesLoaded        func(dir string, count int)
	OnLabelsReconciled    func(evt *event.LabelsReconciled)
	OnSessionStateChanged func(oldState, newState state.SessionState)
	OnSessionExhausted    func(evt *event.SessionExhausted)

	// Labeling
	OnImageLabeled        func(entry label.HistoryEntry, remaining int)
	OnCurrentImageChanged func(img *labeling.ImageRef)
	OnFileLabeled         func(rec label.Record)

	OnOperationFailed func(operation string, err error)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Coordinator *application.Coordinator
	EventBus    eventbus.EventBus
	Logger      *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		coordinator: cfg.Coordinator,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		callbacks:   &UICallbacks{},
	}

	// Subscribe to events
	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Command dispatching methods

// SelectImageDir loads the images of dir.
func (b *UIEventBridge) SelectImageDir(dir string) error {
	return b.coordinator.Dispatch(command.NewSelectImageDir(dir))
}

// SelectLabelDir chooses the label directory and reconciles loaded images against it.
func (b *UIEventBridge) SelectLabelDir(dir string) error {
	return b.coordinator.Dispatch(command.NewSelectLabelDir(dir))
}

// LabelPositive labels the current image positive.
func (b *UIEventBridge) LabelPositive() error {
	return b.coordinator.Dispatch(command.NewLabelPositive())
}

// LabelNegative labels the current image negative.
func (b *UIEventBridge) LabelNegative() error {
	return b.coordinator.Dispatch(command.NewLabelNegative())
}

// Label labels the current image with v.
func (b *UIEventBridge) Label(v label.Value) error {
	return b.coordinator.Dispatch(&command.LabelCurrent{Value: v})
}

// LabelImage labels image with v, provided it is still the current image.
func (b *UIEventBridge) LabelImage(image string, v label.Value) error {
	return b.coordinator.Dispatch(command.NewLabelImage(image, v))
}

// LabelFile writes a label next to a single image file.
func (b *UIEventBridge) LabelFile(path string, v label.Value) error {
	return b.coordinator.Dispatch(command.NewLabelFile(path, v))
}

// Query methods

// Snapshot returns the current session view.
func (b *UIEventBridge) Snapshot() labeling.Snapshot {
	return b.coordinator.Snapshot()
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.ImagesLoaded:
		if callbacks.OnImagesLoaded != nil {
			callbacks.OnImagesLoaded(evt.Dir, evt.Count)
		}

	case *event.LabelsReconciled:
		if callbacks.OnLabelsReconciled != nil {
			callbacks.OnLabelsReconciled(evt)
		}

	case *event.SessionStateChanged:
		if callbacks.OnSessionStateChanged != nil {
			callbacks.OnSessionStateChanged(evt.OldState, evt.NewState)
		}

	case *event.SessionExhausted:
		if callbacks.OnSessionExhausted != nil {
			callbacks.OnSessionExhausted(evt)
		}

	case *event.ImageLabeled:
		if callbacks.OnImageLabeled != nil {
			callbacks.OnImageLabeled(evt.Entry, evt.Remaining)
		}

	case *event.CurrentImageChanged:
		if callbacks.OnCurrentImageChanged != nil {
			callbacks.OnCurrentImageChanged(evt.Image)
		}

	case *event.FileLabeled:
		if callbacks.OnFileLabeled != nil {
			callbacks.OnFileLabeled(evt.Record)
		}

	case *event.OperationFailed:
		if callbacks.OnOperationFailed != nil {
			callbacks.OnOperationFailed(evt.Operation, evt.Error)
		}

	default:
		b.logger.Debug("Unhandled event", "event", e.EventName())
	}
}
