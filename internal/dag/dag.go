package dag

import (
	"fmt"
	"slices"

	"github.com/vk/minipack/internal/graph"
	"github.com/vk/minipack/internal/modpath"
)

// New creates an empty Index.
func New() *Index {
	return &Index{nodes: make(map[modpath.Path]*node)}
}

// FromGraph indexes every import edge of g. Edges whose target is missing
// from g are reported, since the graph is then not closed.
func FromGraph(g *graph.Graph) (*Index, error) {
	idx := New()
	for _, p := range g.Paths() {
		idx.AddNode(p)
	}
	for _, p := range g.Paths() {
		rec, _ := g.Record(p)
		for _, spec := range rec.Specifiers {
			if err := idx.AddEdge(p, rec.Dependencies[spec]); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

// AddNode adds a module. Adding a known module is a no-op.
func (x *Index) AddNode(p modpath.Path) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if _, ok := x.nodes[p]; ok {
		return
	}
	x.nodes[p] = &node{
		path:      p,
		imports:   make(map[modpath.Path]*node),
		importers: make(map[modpath.Path]*node),
	}
}

// AddEdge records that importer imports target. Both must already exist.
// Repeated edges collapse into one; self-edges are allowed.
func (x *Index) AddEdge(importer, target modpath.Path) error {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	from, ok := x.nodes[importer]
	if !ok {
		return fmt.Errorf("importer not found: %s", importer)
	}
	to, ok := x.nodes[target]
	if !ok {
		return fmt.Errorf("imported module not found: %s (imported by %s)", target, importer)
	}

	from.imports[target] = to
	to.importers[importer] = from
	return nil
}

// Imports returns the modules p imports, sorted.
func (x *Index) Imports(p modpath.Path) ([]modpath.Path, error) {
	x.mutex.RLock()
	defer x.mutex.RUnlock()

	n, ok := x.nodes[p]
	if !ok {
		return nil, fmt.Errorf("module not found: %s", p)
	}
	return sortedKeys(n.imports), nil
}

// Importers returns the modules that import p, sorted.
func (x *Index) Importers(p modpath.Path) ([]modpath.Path, error) {
	x.mutex.RLock()
	defer x.mutex.RUnlock()

	n, ok := x.nodes[p]
	if !ok {
		return nil, fmt.Errorf("module not found: %s", p)
	}
	return sortedKeys(n.importers), nil
}

// Len returns the number of modules.
func (x *Index) Len() int {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return len(x.nodes)
}

func sortedKeys(m map[modpath.Path]*node) []modpath.Path {
	out := make([]modpath.Path, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
