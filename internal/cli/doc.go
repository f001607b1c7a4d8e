// Package cli builds the minipack command tree, translates flags into the
// application's configuration, and maps failures onto process exit codes.
//
// Exit codes: 0 on success, 2 for usage and configuration errors (see
// ExitError), 1 for every other failure.
package cli
