package transform

// Transformer is the contract the module analyzer needs from a parser and
// code generator.
type Transformer interface {
	// Parse builds the syntax representation of one module.
	Parse(path string, source []byte) (*SyntaxTree, error)
	// Transform generates runtime-executable code for a parsed module.
	Transform(tree *SyntaxTree, target Target) (string, error)
}

// ImportKind classifies how a module refers to another.
type ImportKind string

const (
	// ImportStatement covers `import ... from` and `export ... from`.
	ImportStatement ImportKind = "import-statement"
	RequireCall     ImportKind = "require-call"
	DynamicImport   ImportKind = "dynamic-import"
)

// Import is one module reference found while parsing.
type Import struct {
	Specifier string
	Kind      ImportKind
}

// SyntaxTree is the parsed form of one module.
type SyntaxTree struct {
	Path    string
	Source  string
	Imports []Import
}

// VisitImports calls fn with the specifier of every static import, in
// source order. Repeated specifiers are visited once per declaration.
func (t *SyntaxTree) VisitImports(fn func(specifier string)) {
	for _, imp := range t.Imports {
		if imp.Kind == ImportStatement {
			fn(imp.Specifier)
		}
	}
}
