// Package modpath turns import specifiers into module paths.
//
// A module path is both the graph key of a module and the key the emitted
// runtime looks modules up by, so resolution must be purely textual and
// deterministic: the same importer and specifier always yield the same bytes.
// There is no existence check, no extension inference and no package lookup.
package modpath

import (
	"path"
	"path/filepath"
	"strings"
)

// Path is a normalized, slash-separated module identifier.
type Path string

// Normalize cleans a user-supplied path into its module path form. Relative
// paths gain a "./" prefix unless they climb out with "../".
func Normalize(p string) Path {
	cleaned := path.Clean(filepath.ToSlash(p))
	switch {
	case path.IsAbs(cleaned):
		return Path(cleaned)
	case cleaned == "..", strings.HasPrefix(cleaned, "../"):
		return Path(cleaned)
	default:
		return Path("./" + cleaned)
	}
}

// Resolve joins the importer's directory with specifier.
func Resolve(importer Path, specifier string) Path {
	return Normalize(path.Join(path.Dir(string(importer)), specifier))
}

// IsRelative reports whether specifier is written relative to its importer or
// as an absolute path. Anything else is a bare (package style) specifier,
// which Resolve still joins against the importer's directory.
func IsRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") ||
		strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/")
}

// Dir returns the directory part of p.
func (p Path) Dir() string {
	return path.Dir(string(p))
}

// Ext returns the file extension of p, including the dot.
func (p Path) Ext() string {
	return path.Ext(string(p))
}

// FilePath converts p to an OS file path.
func (p Path) FilePath() string {
	return filepath.FromSlash(string(p))
}

func (p Path) String() string {
	return string(p)
}
