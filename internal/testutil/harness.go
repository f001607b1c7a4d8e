package testutil

import (
	"context"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/vk/minipack/internal/app"
	"github.com/vk/minipack/internal/config"
)

// Files maps slash-separated file names to their contents.
type Files map[string]string

// Operation is one App operation, such as (*app.App).Write.
type Operation func(a *app.App, ctx context.Context) error

var (
	// Write bundles to the configured output.
	Write Operation = (*app.App).Write
	// Execute bundles and runs the program.
	Execute Operation = (*app.App).Execute
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Stdout    string
	LogOutput string
	Err       error
	App       *app.App
	Fs        afero.Fs
}

// NewFs writes files into a fresh in-memory file system. Contents are
// dedented so fixtures can be indented inside Go raw strings.
func NewFs(t *testing.T, files Files) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(dedent.Dedent(content)), 0o644))
	}
	return fsys
}

// Config returns the default configuration with entry set. The harness
// logs in JSON so assertions can inspect individual records.
func Config(entry string) *config.Config {
	cfg := config.Default()
	cfg.Entry = entry
	cfg.LogFormat = "json"
	return cfg
}

// Run writes files, builds an App over them and performs op with a
// background context.
func Run(t *testing.T, files Files, cfg *config.Config, op Operation) *HarnessResult {
	t.Helper()
	return RunWithContext(context.Background(), t, files, cfg, op)
}

// RunWithContext is Run with a caller-provided context.
func RunWithContext(ctx context.Context, t *testing.T, files Files, cfg *config.Config, op Operation) *HarnessResult {
	t.Helper()

	fsys := NewFs(t, files)
	testApp, out, logs := app.SetupAppTest(t, fsys, cfg)
	err := op(testApp, ctx)

	return &HarnessResult{
		Stdout:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		App:       testApp,
		Fs:        fsys,
	}
}
