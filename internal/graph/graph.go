package graph

import (
	"fmt"

	"github.com/vk/minipack/internal/bundleerr"
	"github.com/vk/minipack/internal/modpath"
)

// New returns an empty graph rooted at entry.
func New(entry modpath.Path) *Graph {
	return &Graph{
		Entry:   entry,
		records: make(map[modpath.Path]*ModuleRecord),
	}
}

// Put stores rec under its path. A later record for the same path replaces
// the earlier one but keeps its position in Paths.
func (g *Graph) Put(rec *ModuleRecord) {
	if _, exists := g.records[rec.Path]; !exists {
		g.order = append(g.order, rec.Path)
	}
	g.records[rec.Path] = rec
}

// Record returns the record stored for path.
func (g *Graph) Record(path modpath.Path) (*ModuleRecord, bool) {
	rec, ok := g.records[path]
	return rec, ok
}

// Paths returns every module path in first-insertion order.
func (g *Graph) Paths() []modpath.Path {
	paths := make([]modpath.Path, len(g.order))
	copy(paths, g.order)
	return paths
}

// Len returns the number of distinct modules.
func (g *Graph) Len() int {
	return len(g.records)
}

// CheckClosure verifies that every dependency path, and the entry, has a
// record in the graph.
func (g *Graph) CheckClosure() error {
	if _, ok := g.records[g.Entry]; !ok {
		return bundleerr.New(bundleerr.ErrResolutionGap, string(g.Entry), fmt.Errorf("entry module has no record"))
	}
	for _, p := range g.order {
		rec := g.records[p]
		for _, spec := range rec.Specifiers {
			dep := rec.Dependencies[spec]
			if _, ok := g.records[dep]; !ok {
				return bundleerr.Newf(bundleerr.ErrResolutionGap, string(p), "import %q resolves to %s, which is not in the graph", spec, dep)
			}
		}
	}
	return nil
}
