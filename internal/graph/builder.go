package graph

import (
	"context"
	"fmt"

	"github.com/vk/minipack/internal/ctxlog"
	"github.com/vk/minipack/internal/modpath"
)

// Analyzer produces the record for one module path.
type Analyzer interface {
	Analyze(ctx context.Context, path modpath.Path) (*ModuleRecord, error)
}

// Builder discovers a module graph by repeatedly running an Analyzer.
type Builder struct {
	analyzer Analyzer
}

// NewBuilder returns a Builder backed by analyzer.
func NewBuilder(analyzer Analyzer) *Builder {
	return &Builder{analyzer: analyzer}
}

// edge is one import: the importing module and the specifier it wrote.
type edge struct {
	importer  modpath.Path
	specifier string
}

// Build analyzes entry and everything it transitively imports.
func (b *Builder) Build(ctx context.Context, entry string) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	entryPath := modpath.Normalize(entry)
	logger.Debug("Build: Starting graph construction.", "entry", entryPath)

	g := New(entryPath)
	followed := make(map[edge]struct{})
	worklist := []modpath.Path{entryPath}

	for i := 0; i < len(worklist); i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("graph build interrupted: %w", err)
		}

		current := worklist[i]
		rec, err := b.analyzer.Analyze(ctx, current)
		if err != nil {
			return nil, err
		}
		if _, seen := g.records[current]; seen {
			logger.Debug("Build: Module analyzed again.", "path", current)
		}
		g.Put(rec)
		g.Analyses++

		for _, spec := range rec.Specifiers {
			e := edge{importer: current, specifier: spec}
			if _, done := followed[e]; done {
				continue
			}
			followed[e] = struct{}{}
			worklist = append(worklist, rec.Dependencies[spec])
		}
	}

	logger.Debug("Build: Graph construction successful.", "modules", g.Len(), "analyses", g.Analyses)
	return g, nil
}
