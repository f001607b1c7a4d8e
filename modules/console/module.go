// Package console provides the `console` global for programs executed by
// jsrun.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"
)

// Module implements the jsrun.Module interface for this package.
type Module struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Register installs console.log, console.info, console.warn and console.error.
func (m *Module) Register(vm *goja.Runtime) error {
	console := vm.NewObject()
	out := m.Stdout
	if out == nil {
		out = io.Discard
	}
	errOut := m.Stderr
	if errOut == nil {
		errOut = out
	}

	methods := map[string]io.Writer{
		"log":   out,
		"info":  out,
		"warn":  errOut,
		"error": errOut,
	}
	for name, w := range methods {
		if err := console.Set(name, printer(w)); err != nil {
			return fmt.Errorf("console.%s: %w", name, err)
		}
	}
	return vm.Set("console", console)
}

// printer writes its arguments space-separated, one call per line.
func printer(w io.Writer) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		return goja.Undefined()
	}
}
