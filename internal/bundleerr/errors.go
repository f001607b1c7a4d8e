// Package bundleerr defines the error kinds a bundle build can fail with.
//
// Every failure is one-shot: nothing in the bundler retries or recovers, so
// callers only need to classify an error, never to resume from it. Use
// errors.Is against the Err* sentinels to classify.
package bundleerr

import (
	"errors"
	"fmt"
)

var (
	// ErrRead means an entry or dependency file is missing or unreadable.
	ErrRead = errors.New("read error")
	// ErrParse means a module's source is malformed.
	ErrParse = errors.New("parse error")
	// ErrTransform means a module uses a construct the target baseline cannot express.
	ErrTransform = errors.New("transform error")
	// ErrResolutionGap means a dependency path has no module record in the graph.
	ErrResolutionGap = errors.New("resolution gap")
)

// ModuleNotFoundName is the Error name the emitted runtime gives to a
// require of a module path the bundle does not contain. The failing path is
// stored in the error's modulePath property.
const ModuleNotFoundName = "MinipackModuleNotFoundError"

// Error ties an error kind to the module path that produced it.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an *Error of the given kind.
func New(kind error, path string, err error) error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Newf returns an *Error of the given kind with a formatted cause.
func Newf(kind error, path string, format string, args ...any) error {
	return &Error{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

// PathOf returns the module path recorded on err, if any.
func PathOf(err error) (string, bool) {
	var be *Error
	if errors.As(err, &be) && be.Path != "" {
		return be.Path, true
	}
	return "", false
}
