// Package app contains the core application logic. It wires the file
// system, analyzer, graph builder, emitter and program runner together
// behind a few operations (Graph, Bundle, Write and Execute), decoupled
// from any specific entrypoint like a CLI.
package app
