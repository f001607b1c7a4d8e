// Package jsrun executes emitted bundles in an embedded JavaScript engine
// (goja), so the loader contract can be exercised without an external
// runtime.
//
// Host functionality such as console output is installed by Modules before
// the program runs. The engine's call stack is bounded, which turns the
// unbounded recursion of an uncached import cycle into ErrStackExhausted
// instead of exhausting the Go stack.
//
// Only exceptions named bundleerr.ModuleNotFoundName, which the bundle loader
// throws for unknown module paths, become ErrResolutionGap. Anything else a
// program throws is ErrUncaught.
package jsrun
