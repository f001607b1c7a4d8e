package transform

// metafile is the subset of esbuild's metafile JSON the parser reads.
type metafile struct {
	Inputs map[string]metafileInput `json:"inputs"`
}

type metafileInput struct {
	Bytes   int              `json:"bytes"`
	Imports []metafileImport `json:"imports"`
	Format  string           `json:"format,omitempty"`
}

type metafileImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
	Original string `json:"original,omitempty"`
}

// specifier returns the import as written in the source.
func (i metafileImport) specifier() string {
	if i.Original != "" {
		return i.Original
	}
	return i.Path
}
