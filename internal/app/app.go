package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/vk/minipack/internal/analyzer"
	"github.com/vk/minipack/internal/config"
	"github.com/vk/minipack/internal/ctxlog"
	"github.com/vk/minipack/internal/emitter"
	"github.com/vk/minipack/internal/graph"
	"github.com/vk/minipack/internal/jsrun"
	"github.com/vk/minipack/internal/transform"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW        io.Writer
	errW        io.Writer
	logger      *slog.Logger
	fs          afero.Fs
	config      *config.Config
	transformer transform.Transformer
}

// Option configures an App.
type Option func(*App)

// WithFs replaces the OS file system.
func WithFs(fsys afero.Fs) Option {
	return func(a *App) { a.fs = fsys }
}

// WithTransformer replaces the esbuild transformer.
func WithTransformer(t transform.Transformer) Option {
	return func(a *App) { a.transformer = t }
}

// NewApp returns an App. Program output goes to outW; logs and program
// errors go to errW.
func NewApp(outW, errW io.Writer, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: configuration is required")
	}
	a := &App{
		outW:        outW,
		errW:        errW,
		logger:      newLogger(cfg.LogLevel, cfg.LogFormat, errW),
		fs:          afero.NewOsFs(),
		config:      cfg,
		transformer: transform.NewEsbuild(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("App: Configured.", "entry", cfg.Entry, "target", cfg.Target, "module_cache", cfg.ModuleCache)
	return a, nil
}

// Config returns the application's configuration.
func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Graph builds the dependency graph of the configured entry.
func (a *App) Graph(ctx context.Context) (*graph.Graph, error) {
	ctx = a.context(ctx)
	target, err := transform.ParseTarget(a.config.Target)
	if err != nil {
		return nil, err
	}

	an := analyzer.New(a.fs, a.transformer, target)
	g, err := graph.NewBuilder(an).Build(ctx, a.config.Entry)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	return g, nil
}

// Bundle builds the graph and emits the program text.
func (a *App) Bundle(ctx context.Context) (string, error) {
	g, err := a.Graph(ctx)
	if err != nil {
		return "", err
	}

	program, err := emitter.Emit(g, a.config.Entry, emitter.Options{
		ModuleCache: a.config.ModuleCache,
		Banner:      a.config.Banner,
	})
	if err != nil {
		return "", fmt.Errorf("failed to emit bundle: %w", err)
	}
	a.logger.Info("Bundle emitted.", "modules", g.Len(), "analyses", g.Analyses, "bytes", len(program))
	return program, nil
}

// Write bundles and writes the program to the configured output file, or
// to the output writer when no file is configured. Nothing is written when
// bundling fails.
func (a *App) Write(ctx context.Context) error {
	program, err := a.Bundle(ctx)
	if err != nil {
		return err
	}

	if a.config.Output == "" {
		_, err := io.WriteString(a.outW, program)
		return err
	}

	if dir := filepath.Dir(a.config.Output); dir != "." {
		if err := a.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(a.fs, a.config.Output, []byte(program), 0o644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	a.logger.Info("Bundle written.", "path", a.config.Output)
	return nil
}

// Execute bundles and runs the program in the embedded engine.
func (a *App) Execute(ctx context.Context) error {
	program, err := a.Bundle(ctx)
	if err != nil {
		return err
	}

	runner := jsrun.New(
		jsrun.WithModules(coreModules(a.outW, a.errW)...),
		jsrun.WithMaxCallStackSize(a.config.MaxCallStackSize),
	)
	return runner.Run(a.context(ctx), "bundle.js", program)
}
