// Package app contains the application setup for the cart.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abgdnv/cartkeeper/internal/catalog"
	"github.com/abgdnv/cartkeeper/internal/config"
	"github.com/abgdnv/cartkeeper/internal/notify"
	"github.com/abgdnv/cartkeeper/internal/service"
	"github.com/abgdnv/cartkeeper/internal/store"
	"github.com/abgdnv/cartkeeper/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/cartkeeper/pkg/config"
)

// Dependencies holds everything a front-end needs for one program run.
type Dependencies struct {
	Config      *config.Config
	CartService service.CartService
	Catalog     *catalog.Catalog
	Notifier    *notify.Notifier
	Store       store.KVStore
	Logger      *slog.Logger

	closers []func() error
}

// Options select the configuration of one program run.
type Options struct {
	// ConfigFile is the YAML config to read, empty for config.yaml in the working directory.
	ConfigFile string
	// Ephemeral keeps the cart in memory only, whatever the configured driver.
	Ephemeral bool
}

// Open loads the configuration, sets up logging, opens the store and wires the dependencies.
// The cart is not restored yet. Close must be called to release the store and the log file.
func Open(ctx context.Context, opts Options) (*Dependencies, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.Ephemeral {
		cfg.Storage.Driver = pkgconfig.StorageDriverMemory
	}

	logOutput, closeLog, err := bootstrap.OpenLogOutput(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	logger := bootstrap.NewLogger(cfg.Log.Level, logOutput)
	logger.DebugContext(ctx, "Configuration loaded", "config", cfg.String())

	kv, err := NewStore(ctx, cfg.Storage)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}
	logger.DebugContext(ctx, "Store opened", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)

	deps := SetupDependencies(kv, cfg, logger)
	deps.closers = append(deps.closers, closeLog)
	return deps, nil
}

// NewStore opens the key-value store selected by the storage configuration.
func NewStore(ctx context.Context, cfg pkgconfig.StorageConfig) (store.KVStore, error) {
	switch cfg.Driver {
	case pkgconfig.StorageDriverFile:
		return store.NewFileStore(cfg.Path)
	case pkgconfig.StorageDriverSQLite:
		return store.NewSQLiteStore(ctx, cfg.Path, cfg.Timeout)
	case pkgconfig.StorageDriverMemory:
		return store.NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// SetupDependencies wires the cart manager and its collaborators around kv.
// The cart starts empty; call Restore on CartService to load the saved one.
func SetupDependencies(kv store.KVStore, cfg *config.Config, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		Config:      cfg,
		CartService: service.NewService(kv, cfg.Storage.Key, logger),
		Catalog:     catalog.New(cfg.Catalog.Products),
		Notifier:    notify.NewNotifier(cfg.Currency.Symbol),
		Store:       kv,
		Logger:      logger,
	}
}

// Watcher returns the store as a Watcher if it can report external changes.
func (d *Dependencies) Watcher() (store.Watcher, bool) {
	w, ok := d.Store.(store.Watcher)
	return w, ok
}

// Close releases the store, then the log output.
func (d *Dependencies) Close() error {
	var errs []error
	if err := d.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close store: %w", err))
	}
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
