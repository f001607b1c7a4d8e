package graph

import (
	"github.com/vk/minipack/internal/modpath"
)

// ModuleRecord is the analyzed form of one module: where its imports point
// and the code that replaces its source.
type ModuleRecord struct {
	Path modpath.Path
	// Dependencies maps each import specifier to its resolved path.
	Dependencies map[string]modpath.Path
	// Specifiers lists the keys of Dependencies in first-occurrence order.
	Specifiers []string
	Code       string
}

// NewModuleRecord returns an empty record for path.
func NewModuleRecord(path modpath.Path) *ModuleRecord {
	return &ModuleRecord{
		Path:         path,
		Dependencies: make(map[string]modpath.Path),
	}
}

// AddDependency records specifier→path. A repeated specifier overwrites the
// earlier path but keeps its original position.
func (r *ModuleRecord) AddDependency(specifier string, path modpath.Path) {
	if _, exists := r.Dependencies[specifier]; !exists {
		r.Specifiers = append(r.Specifiers, specifier)
	}
	r.Dependencies[specifier] = path
}

// Graph maps module paths to their records.
type Graph struct {
	// Entry is the module the emitted program starts from.
	Entry modpath.Path
	// Analyses counts how many module analyses went into the graph,
	// including repeated analyses of the same path.
	Analyses int

	records map[modpath.Path]*ModuleRecord
	order   []modpath.Path
}
