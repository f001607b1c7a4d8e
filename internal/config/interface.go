package config

import (
	"context"

	"github.com/spf13/afero"
)

// Loader reads one configuration file into an Overrides layer.
type Loader interface {
	Load(ctx context.Context, fs afero.Fs, path string) (Overrides, error)
}
