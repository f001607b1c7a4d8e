package dag

import (
	"sync"

	"github.com/vk/minipack/internal/modpath"
)

// Index holds the import edges of a module graph in both directions.
type Index struct {
	mutex sync.RWMutex
	nodes map[modpath.Path]*node
}

// node is one module. It is unexported so callers go through Index.
type node struct {
	path modpath.Path
	// imports holds the modules this module imports.
	imports map[modpath.Path]*node
	// importers holds the modules that import this module.
	importers map[modpath.Path]*node
}
