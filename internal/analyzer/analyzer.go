// Package analyzer turns one module file into a graph.ModuleRecord: it reads
// the file, resolves every static import against the file's directory, and
// asks the Source Transformer for runtime-executable code.
//
// The analyzer keeps no state between calls. Reading the same path twice
// reads and transforms it twice.
package analyzer

import (
	"context"

	"github.com/spf13/afero"
	"github.com/vk/minipack/internal/bundleerr"
	"github.com/vk/minipack/internal/ctxlog"
	"github.com/vk/minipack/internal/graph"
	"github.com/vk/minipack/internal/modpath"
	"github.com/vk/minipack/internal/transform"
)

// Analyzer implements graph.Analyzer on top of a file system and a
// transform.Transformer.
type Analyzer struct {
	fs          afero.Fs
	transformer transform.Transformer
	target      transform.Target
}

// New returns an Analyzer reading from fs and emitting code for target.
func New(fs afero.Fs, transformer transform.Transformer, target transform.Target) *Analyzer {
	return &Analyzer{
		fs:          fs,
		transformer: transformer,
		target:      target,
	}
}

// Analyze reads, parses and transforms the module at path.
func (a *Analyzer) Analyze(ctx context.Context, path modpath.Path) (*graph.ModuleRecord, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("Analyze: Reading module.")

	source, err := afero.ReadFile(a.fs, path.FilePath())
	if err != nil {
		return nil, bundleerr.New(bundleerr.ErrRead, string(path), err)
	}

	tree, err := a.transformer.Parse(string(path), source)
	if err != nil {
		return nil, err
	}

	rec := graph.NewModuleRecord(path)
	tree.VisitImports(func(specifier string) {
		if !modpath.IsRelative(specifier) {
			logger.Warn("Analyze: Bare specifier resolved relative to importer.", "specifier", specifier)
		}
		rec.AddDependency(specifier, modpath.Resolve(path, specifier))
	})
	logger.Debug("Analyze: Imports resolved.", "count", len(rec.Dependencies))

	code, err := a.transformer.Transform(tree, a.target)
	if err != nil {
		return nil, err
	}
	rec.Code = code

	logger.Debug("Analyze: Module transformed.", "bytes", len(code))
	return rec, nil
}
