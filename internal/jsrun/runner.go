package jsrun

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"github.com/vk/minipack/internal/bundleerr"
	"github.com/vk/minipack/internal/ctxlog"
)

var (
	// ErrStackExhausted means the program recursed past the call stack limit.
	ErrStackExhausted = errors.New("call stack exhausted")
	// ErrUncaught means the program threw an exception nothing caught.
	ErrUncaught = errors.New("uncaught exception")
	// ErrInterrupted means the run was stopped by its context.
	ErrInterrupted = errors.New("execution interrupted")
)

// DefaultMaxCallStackSize bounds JavaScript call depth when no limit is set.
const DefaultMaxCallStackSize = 10000

// Module installs host functionality into a runtime before a program runs.
type Module interface {
	Register(vm *goja.Runtime) error
}

// Runner executes programs. Every Run gets a fresh runtime.
type Runner struct {
	modules          []Module
	maxCallStackSize int
}

// Option configures a Runner.
type Option func(*Runner)

// WithModules installs host modules into every run.
func WithModules(modules ...Module) Option {
	return func(r *Runner) {
		r.modules = append(r.modules, modules...)
	}
}

// WithMaxCallStackSize bounds JavaScript call depth. Non-positive values keep
// the default.
func WithMaxCallStackSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxCallStackSize = n
		}
	}
}

// New returns a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{maxCallStackSize: DefaultMaxCallStackSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes program, named name in stack traces, to completion.
func (r *Runner) Run(ctx context.Context, name, program string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Run: Preparing runtime.", "modules", len(r.modules), "max_call_stack", r.maxCallStackSize)

	vm := goja.New()
	vm.SetMaxCallStackSize(r.maxCallStackSize)
	for _, m := range r.modules {
		if err := m.Register(vm); err != nil {
			return fmt.Errorf("registering host module %T: %w", m, err)
		}
	}

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	_, err := vm.RunScript(name, program)
	if err != nil {
		err = classify(err)
		logger.Debug("Run: Program failed.", "error", err)
		return err
	}
	logger.Debug("Run: Program finished.")
	return nil
}

// classify maps engine errors onto the package's error kinds.
func classify(err error) error {
	var overflow *goja.StackOverflowError
	if errors.As(err, &overflow) {
		return fmt.Errorf("%w: %v", ErrStackExhausted, err)
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return fmt.Errorf("%w: %w", ErrInterrupted, cause)
		}
		return fmt.Errorf("%w: %v", ErrInterrupted, interrupted.Value())
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		if missing, ok := missingModule(exception.Value()); ok {
			return bundleerr.New(bundleerr.ErrResolutionGap, missing, exception)
		}
		return fmt.Errorf("%w: %v", ErrUncaught, exception)
	}

	return err
}

// missingModule reports the module path of an error thrown by the bundle
// loader for an unknown module. Errors thrown by module code do not match,
// whatever their message.
func missingModule(v goja.Value) (string, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return "", false
	}
	name := obj.Get("name")
	if name == nil || name.String() != bundleerr.ModuleNotFoundName {
		return "", false
	}
	p := obj.Get("modulePath")
	if p == nil || goja.IsUndefined(p) || goja.IsNull(p) {
		return "", false
	}
	return p.String(), true
}
