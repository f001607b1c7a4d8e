package app

import (
	"context"
	"errors"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/vk/minipack/internal/config"
	"github.com/vk/minipack/internal/ctxlog"
)

// ConfigSource describes where configuration comes from.
type ConfigSource struct {
	// File is the configuration file to read. Empty means config.DefaultFile,
	// which is skipped when it does not exist.
	File string
	// Flags holds settings given explicitly on the command line.
	Flags config.Overrides
}

// ResolveConfig layers defaults, the configuration file and flags, then
// normalizes and validates the result.
func ResolveConfig(ctx context.Context, fsys afero.Fs, loader config.Loader, src ConfigSource) (*config.Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := config.Default()

	file, explicit := src.File, src.File != ""
	if !explicit {
		file = config.DefaultFile
	}

	fileLayer, err := loader.Load(ctx, fsys, file)
	switch {
	case err == nil:
		cfg.Apply(fileLayer)
		logger.Debug("Config: File applied.", "path", file)
	case !explicit && errors.Is(err, fs.ErrNotExist):
		logger.Debug("Config: No config file found, using defaults.", "path", file)
	default:
		return nil, err
	}

	cfg.Apply(src.Flags)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
