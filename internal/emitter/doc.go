// Package emitter serializes a module graph into one self-executing program.
//
// # Bundle encoding, version 1
//
// The graph is embedded as an object literal passed to the bootstrap IIFE:
//
//	{
//	  version: 1,
//	  entry: "<module path>",
//	  modules: {
//	    "<module path>": {
//	      dependencies: { "<specifier>": "<module path>", ... },
//	      factory: function (require, module, exports) { <transformed code> }
//	    },
//	    ...
//	  }
//	}
//
// Keys and string values are JSON-quoted. Modules appear in graph insertion
// order and dependencies in first-occurrence order, so the same graph always
// produces the same bytes. Module code is embedded verbatim as the body of
// its factory function; it is never re-indented or re-parsed at run time.
//
// The bootstrap refuses any other version number, so a change to this layout
// must bump EncodingVersion together with the bootstrap.
//
// # Loader semantics
//
// require(path) looks the module up, throwing an Error named
// bundleerr.ModuleNotFoundName with a modulePath property when the bundle
// has no such module. It then creates a fresh {exports: {}} module
// object, runs the factory with a localRequire bound to that module's
// dependency map, and returns module.exports. Without the module cache every
// require re-runs the factory, so a module reached over two import edges runs
// twice and a synchronous import cycle recurses until the engine's stack is
// exhausted. With Options.ModuleCache the module object is memoized by path
// before its factory runs, which gives conventional run-once semantics and
// partially initialized exports inside cycles.
package emitter
