package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/uesim/tracegraph/internal/catalog"
	"github.com/uesim/tracegraph/internal/config"
	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Results go to outW; logs go to the app's own logger.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	registry *registry.Registry
	catalog  *catalog.Catalog
	locators *locator.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry, or
// an error when the configured catalogs cannot be loaded or fail
// cross-validation.
func NewApp(logW, outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Merge all configuration paths into a single collection for the loader.
	var configPaths []string
	if cfg.ConfigPath != "" {
		configPaths = append(configPaths, cfg.ConfigPath)
	}
	if cfg.ModulesPath != "" {
		configPaths = append(configPaths, cfg.ModulesPath)
	}

	model, err := loader.Load(ctx, configPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	reg.PopulateScriptsFromModel(model)
	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	locs, err := locator.NewRegistry(model)
	if err != nil {
		return nil, fmt.Errorf("failed to build locator registry: %w", err)
	}
	logger.Debug("Locator registry built.", "accessors", locs.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		catalog:  cat,
		locators: locs,
	}, nil
}

// loadCatalog applies the catalog path policy: an explicitly requested
// catalog must exist, while a missing default degrades to an empty catalog
// with a warning so validation still runs, just without suppression lists.
func loadCatalog(ctx context.Context, cfg *Config) (*catalog.Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	if cfg.CatalogPath == "" {
		return catalog.Empty(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		if !cfg.CatalogSet && errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Catalog file missing, validating without suppression lists.", "path", cfg.CatalogPath)
			return catalog.Empty(), nil
		}
		return nil, err
	}
	logger.Debug("Catalog loaded.", "external", cat.NumExternal(), "published", cat.NumPublished())
	return cat, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
