// Package application provides the application layer for orchestrating the labeling session.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"glasslabel-go/core/command"
	"glasslabel-go/core/event"
	"glasslabel-go/core/eventbus"
	"glasslabel-go/core/state"
	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
	"glasslabel-go/infrastructure/logging"
)

// DefaultHistoryTimeout bounds a single history write.
const DefaultHistoryTimeout = 5 * time.Second

// Coordinator owns the labeling session and turns commands into session
// operations and events.
type Coordinator struct {
	session *labeling.Session
	mu      sync.Mutex

	// Dependencies
	store          *label.FileStore
	history        label.HistoryRepository
	historyTimeout time.Duration
	eventBus       eventbus.EventBus
	logger         *slog.Logger

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	EventBus eventbus.EventBus
	Store    *label.FileStore
	// History is optional. Entries are not persisted beyond the session when nil.
	History        label.HistoryRepository
	HistoryTimeout time.Duration
	// Session is created from Store, Policy and Logger when nil.
	Session *labeling.Session
	Policy  labeling.UnrecognizedPolicy
	Logger  *slog.Logger
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg == nil {
		cfg = &CoordinatorConfig{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Store == nil {
		cfg.Store = label.NewFileStore()
	}
	if cfg.HistoryTimeout <= 0 {
		cfg.HistoryTimeout = DefaultHistoryTimeout
	}
	if cfg.Session == nil {
		cfg.Session = labeling.New(&labeling.Config{
			Store:  cfg.Store,
			Policy: cfg.Policy,
			Logger: cfg.Logger.With("component", "session"),
		})
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Coordinator{
		session:        cfg.Session,
		store:          cfg.Store,
		history:        cfg.History,
		historyTimeout: cfg.HistoryTimeout,
		eventBus:       cfg.EventBus,
		logger:         cfg.Logger,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start begins the coordinator.
func (c *Coordinator) Start() {
	c.logger.Info("Coordinator started")
}

// Stop cancels in-flight history writes.
func (c *Coordinator) Stop() {
	c.cancel()
	c.logger.Info("Coordinator stopped")
}

// Dispatch applies a command to the session.
// A failed command leaves the session unchanged. The error is also published as OperationFailed.
func (c *Coordinator) Dispatch(cmd command.Command) error {
	c.logger.Debug("Dispatching command", "command", cmd.CommandName())

	c.mu.Lock()
	defer c.mu.Unlock()

	oldState := c.session.State()
	defer c.publishStateChange(oldState)

	var err error
	switch cmd := cmd.(type) {
	case *command.SelectImageDir:
		err = c.handleSelectImageDir(cmd)
	case *command.SelectLabelDir:
		err = c.handleSelectLabelDir(cmd)
	case *command.LabelCurrent:
		err = c.handleLabelCurrent(cmd)
	case *command.LabelFile:
		err = c.handleLabelFile(cmd)
	default:
		err = fmt.Errorf("unknown command type: %T", cmd)
	}

	if err != nil {
		return c.fail(cmd.CommandName(), err)
	}
	return nil
}

// Snapshot returns the current session view.
func (c *Coordinator) Snapshot() labeling.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// Command handlers

func (c *Coordinator) handleSelectImageDir(cmd *command.SelectImageDir) error {
	images, err := c.session.LoadImages(cmd.Dir)
	if err != nil {
		return err
	}
	c.publish(event.NewImagesLoaded(cmd.Dir, len(images)))

	if labelDir := c.session.LabelDir(); labelDir != "" {
		if err := c.reconcile(labelDir); err != nil {
			c.publishCurrentImage()
			return err
		}
		return nil
	}

	c.publishCurrentImage()
	return nil
}

func (c *Coordinator) handleSelectLabelDir(cmd *command.SelectLabelDir) error {
	if !c.session.State().HasImages() {
		if err := c.session.SetLabelDir(cmd.Dir); err != nil {
			return err
		}
		c.logger.Info("Label directory remembered", "label_dir", cmd.Dir)
		return nil
	}
	return c.reconcile(cmd.Dir)
}

func (c *Coordinator) reconcile(labelDir string) error {
	res, err := c.session.Reconcile(labelDir)
	if err != nil {
		return err
	}

	c.publish(event.NewLabelsReconciled(labelDir, res))
	c.publishCurrentImage()
	c.publishExhausted()
	return nil
}

func (c *Coordinator) handleLabelCurrent(cmd *command.LabelCurrent) error {
	var entry *label.HistoryEntry
	var err error
	if cmd.Image != "" {
		entry, err = c.session.LabelImage(cmd.Image, cmd.Value)
	} else {
		entry, err = c.session.LabelCurrent(cmd.Value)
	}
	if errors.Is(err, labeling.ErrImageMismatch) {
		// The caller is behind; tell it again which image is current.
		c.publishCurrentImage()
	}
	if err != nil {
		return err
	}

	c.appendHistory(entry)

	c.publish(event.NewImageLabeled(*entry, c.session.Remaining()))
	c.publishCurrentImage()
	c.publishExhausted()
	return nil
}

func (c *Coordinator) handleLabelFile(cmd *command.LabelFile) error {
	rec, err := c.store.LabelBeside(cmd.Path, cmd.Value)
	if err != nil {
		return err
	}

	c.logger.Info("File labeled", "image", cmd.Path, "value", cmd.Value, "path", rec.Path)
	c.publish(event.NewFileLabeled(*rec))
	return nil
}

// appendHistory records entry in the repository.
// A failure is logged only; the label file is already written.
func (c *Coordinator) appendHistory(entry *label.HistoryEntry) {
	if c.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.historyContext(entry.RunID), c.historyTimeout)
	defer cancel()
	ctx = logging.WithAttrs(ctx, "image", entry.Image)

	if err := c.history.Append(ctx, entry); err != nil {
		logging.From(ctx).Warn("Failed to record label history", "error", err)
	}
}

// summarizeRun reads the run's history back. It returns nil when no history is kept
// or the repository cannot answer.
func (c *Coordinator) summarizeRun(runID string) *label.RunSummary {
	if c.history == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.historyContext(runID), c.historyTimeout)
	defer cancel()

	summary, err := label.SummarizeRun(ctx, c.history, runID)
	if err != nil {
		logging.From(ctx).Warn("Failed to summarize label history", "error", err)
		return nil
	}
	logging.From(ctx).Info("Run summary", "labeled", summary.Labeled, "positive", summary.Positive, "negative", summary.Negative)
	return summary
}

// historyContext derives a context whose logger is tagged with runID.
func (c *Coordinator) historyContext(runID string) context.Context {
	return logging.WithAttrs(logging.With(c.ctx, c.logger), "run_id", runID)
}

func (c *Coordinator) fail(operation string, err error) error {
	c.logger.Warn("Operation failed", "operation", operation, "error", err)
	c.publish(event.NewOperationFailed(operation, err))
	return err
}

func (c *Coordinator) publishCurrentImage() {
	if img, ok := c.session.CurrentImage(); ok {
		c.publish(event.NewCurrentImageChanged(&img))
		return
	}
	c.publish(event.NewCurrentImageChanged(nil))
}

func (c *Coordinator) publishExhausted() {
	if c.session.State() != state.StateExhausted {
		return
	}
	snap := c.session.Snapshot()
	evt := event.NewSessionExhausted(snap.Total, snap.Positive, snap.Negative)
	evt.Run = c.summarizeRun(snap.RunID)
	c.publish(evt)
}

func (c *Coordinator) publishStateChange(oldState state.SessionState) {
	if newState := c.session.State(); newState != oldState {
		c.publish(event.NewSessionStateChanged(oldState, newState))
	}
}

func (c *Coordinator) publish(e event.Event) {
	if c.eventBus != nil {
		c.eventBus.Publish(e)
	}
}
