// Package dag indexes a built module graph by edge direction.
//
// graph.Graph answers "what does this module import?" through each record's
// dependency map. The Index built here answers the reverse question as well,
// "who imports this module?", which the `graph --importers` command prints.
//
// Despite the package name the index does not require acyclicity. Import
// cycles and self-imports are legal module graphs and are stored as-is.
// All methods are safe for concurrent use.
package dag
