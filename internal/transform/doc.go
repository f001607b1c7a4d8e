// Package transform is the bundler's Source Transformer: it parses a module,
// reports its static imports, and rewrites it into code a plain script
// runtime can execute.
//
// # Contract
//
// The rest of the bundler only relies on three operations:
//
//   - Parse turns source text into a SyntaxTree, failing with a
//     bundleerr.ErrParse error on malformed input.
//   - SyntaxTree.VisitImports yields the literal specifier of every static
//     import, in source order.
//   - Transform produces CommonJS-shaped code at a target baseline, failing
//     with a bundleerr.ErrTransform error when the module uses something the
//     baseline cannot express.
//
// Transformed code never contains native module syntax. It reaches its
// dependencies by calling require(specifier) and publishes its exports on
// module.exports, which is what the emitted bootstrap provides.
//
// # esbuild
//
// Esbuild is the production implementation. esbuild does not expose its
// syntax tree, so Parse runs a single-file, in-memory build with every import
// marked external and reads the import records back from the build metafile.
// The SyntaxTree keeps the source, and Transform hands it to esbuild's
// transform API.
package transform
