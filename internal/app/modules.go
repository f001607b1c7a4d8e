package app

import (
	"io"

	"github.com/vk/minipack/internal/jsrun"
	"github.com/vk/minipack/modules/console"
)

// coreModules is the list of host modules installed into every program
// `minipack run` executes.
func coreModules(stdout, stderr io.Writer) []jsrun.Module {
	return []jsrun.Module{
		&console.Module{Stdout: stdout, Stderr: stderr},
	}
}
