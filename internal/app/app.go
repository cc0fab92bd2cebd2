package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/ctxlog"
	"github.com/kajjjak/ATM/internal/hcl"
	"github.com/kajjjak/ATM/internal/jsonmethod"
	"github.com/kajjjak/ATM/internal/registry"
	"github.com/kajjjak/ATM/internal/yamlmethod"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
}

// defaultLoaders are the method formats compiled into the binary.
func defaultLoaders() []config.Loader {
	return []config.Loader{
		hcl.NewLoader(),
		jsonmethod.NewLoader(),
		yamlmethod.NewLoader(),
	}
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. When no loaders are given the HCL, JSON and YAML loaders
// are registered. A method path that cannot be loaded is a fatal startup
// error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = defaultLoaders()
	}
	reg := registry.New(loaders...)
	logger.Debug("Method loaders registered.", "extensions", reg.Extensions())

	if cfg.MethodsPath != "" {
		if err := reg.Load(ctx, cfg.MethodsPath); err != nil {
			panic(fmt.Errorf("failed to load methods: %w", err))
		}
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
