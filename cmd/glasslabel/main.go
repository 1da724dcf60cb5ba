// Package main is the entry point for glasslabel.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"glasslabel-go/application"
	"glasslabel-go/core/eventbus"
	"glasslabel-go/domain/label"
	"glasslabel-go/infrastructure/config"
	"glasslabel-go/infrastructure/logging"
	"glasslabel-go/infrastructure/preview"
	"glasslabel-go/infrastructure/repository"
	"glasslabel-go/presentation"
	"glasslabel-go/resources"

	"fyne.io/fyne/v2/app"
)

func main() {
	// Load settings: embedded defaults, then user and explicit overrides
	cfg, err := config.NewLoader(resources.ConfigFiles).Load(config.OverridePaths()...)
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logging (dev: console only, prod: rotating file)
	logCfg := logging.DefaultConfig()
	if level, ok := logging.ParseLevel(cfg.Logging.Level); ok {
		logCfg.Level = level
	}
	logCfg.AddSource = cfg.Logging.AddSource

	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		// Fallback to stderr if logging setup fails
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting glasslabel", "policy", cfg.Policy(), "history", cfg.History.Backend)

	ctx := logging.With(context.Background(), logger)

	// Initialize history repository
	history, historyTimeout, closeHistory, err := openHistory(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize history", "error", err)
		os.Exit(1)
	}
	defer closeHistory()

	// Initialize preview loader
	loader, err := preview.NewLoader(cfg.Display.Width, cfg.Display.Height, cfg.Display.KeepAspect)
	if err != nil {
		logger.Error("Invalid display box", "error", err)
		os.Exit(1)
	}

	// Initialize event bus
	eventBus := eventbus.NewWithLogger(100, logger.With("component", "eventbus"))
	defer eventBus.Close()

	// Initialize coordinator
	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		EventBus:       eventBus,
		Store:          label.NewFileStore(),
		History:        history,
		HistoryTimeout: historyTimeout,
		Policy:         cfg.Policy(),
		Logger:         logger,
	})
	coordinator.Start()
	defer coordinator.Stop()

	// Initialize UI event bridge
	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Coordinator: coordinator,
		EventBus:    eventBus,
		Logger:      logger,
	})
	defer bridge.Close()

	// Initialize Fyne app
	fyneApp := app.New()
	fyneApp.SetIcon(resources.GetAppIcon())

	// Initialize main window
	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:    fyneApp,
		Bridge: bridge,
		Loader: loader,
		Config: cfg,
		Logger: logger,
	})
	mainWindow.SetIcon(resources.GetAppIcon())
	defer mainWindow.Cleanup()

	// Show and run
	mainWindow.Show()
	fyneApp.Run()

	// Start shutdown timeout - force exit after 10 seconds if cleanup hangs
	go func() {
		time.Sleep(10 * time.Second)
		logger.Warn("Shutdown timeout, forcing exit")
		os.Exit(0)
	}()

	logger.Info("Application shutdown complete")
}

// openHistory builds the configured history repository.
// The returned close function is always safe to call.
func openHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (label.HistoryRepository, time.Duration, func(), error) {
	switch cfg.History.Backend {
	case "", config.BackendMemory:
		return repository.NewMemoryHistoryRepository(), application.DefaultHistoryTimeout, func() {}, nil

	case config.BackendMongoDB:
		mc := cfg.History.MongoDB
		mongoCfg := repository.DefaultMongoDBConfig()
		mongoCfg.URI = mc.URI
		mongoCfg.Database = mc.Database
		if mc.ConnectTimeout > 0 {
			mongoCfg.ConnectTimeout = mc.ConnectTimeout
		}
		if mc.PingTimeout > 0 {
			mongoCfg.PingTimeout = mc.PingTimeout
		}
		if mc.WriteTimeout > 0 {
			mongoCfg.WriteTimeout = mc.WriteTimeout
		}

		mongoDB, err := repository.NewMongoDB(ctx, mongoCfg, logger)
		if err != nil {
			return nil, 0, func() {}, err
		}

		repo := repository.NewMongoHistoryRepository(mongoDB, mc.Collection)
		indexCtx, cancel := context.WithTimeout(ctx, mongoCfg.WriteTimeout)
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			logger.Warn("Failed to ensure history indexes", "error", err)
		}
		cancel()

		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), mongoCfg.WriteTimeout)
			defer cancel()
			if err := mongoDB.Close(closeCtx); err != nil {
				logger.Warn("Failed to close MongoDB", "error", err)
			}
		}
		return repo, mongoCfg.WriteTimeout, closeFn, nil

	default:
		return nil, 0, func() {}, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}
