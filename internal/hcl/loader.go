package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/vk/minipack/internal/config"
	"github.com/vk/minipack/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	lookupEnv func(string) (string, bool)
}

var _ config.Loader = (*Loader)(nil)

// Option configures a Loader.
type Option func(*Loader)

// WithEnv replaces the environment lookup used by the env() function.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(l *Loader) {
		if lookup != nil {
			l.lookupEnv = lookup
		}
	}
}

// NewLoader creates a Loader backed by the process environment.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses the file at path and returns the settings it declares. A
// missing file is returned as an error wrapping fs.ErrNotExist.
func (l *Loader) Load(ctx context.Context, fsys afero.Fs, path string) (config.Overrides, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Config: Loading HCL file.", "path", path)

	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return config.Overrides{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return config.Overrides{}, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, l.evalContext(), &root); diags.HasErrors() {
		return config.Overrides{}, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	logger.Debug("Config: HCL file loaded.", "path", path)
	return root.overrides(), nil
}
