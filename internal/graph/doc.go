// Package graph holds the module dependency graph and the builder that
// discovers it.
//
// # Traversal
//
// Build walks the import relation breadth-first from the entry module with a
// FIFO worklist. Every import edge (importer, specifier) is followed at most
// once per build and nothing else is deduplicated: a module with three
// incoming edges is analyzed three times, and the last analysis wins its
// graph slot. Analysis is deterministic for a given path, so the overwrite is
// harmless; it only costs repeated reads and transforms.
//
// Following each edge once is also what bounds cyclic graphs. For A importing
// B importing A, the worklist is [A, B, A]: the second visit to A rediscovers
// the A→B edge, which has already been followed, and the walk ends with a
// two-module graph. The generated runtime is what recurses on such a cycle,
// not the builder.
//
// # Closure
//
// Every path that appears as a dependency of some record must itself be a key
// of the graph, or the emitted program fails at run time with a "module not
// found" error. The builder guarantees this by construction; CheckClosure
// verifies it for graphs assembled any other way.
package graph
