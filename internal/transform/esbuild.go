package transform

import (
	"encoding/json"
	"errors"
	"path"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/vk/minipack/internal/bundleerr"
)

// Esbuild implements Transformer with esbuild's Go API.
type Esbuild struct{}

// NewEsbuild returns the esbuild-backed transformer.
func NewEsbuild() *Esbuild {
	return &Esbuild{}
}

// externalizeAll keeps every import out of the parse build so that only the
// entry file is read, and nothing is resolved against the file system.
var externalizeAll = api.Plugin{
	Name: "minipack-externalize",
	Setup: func(build api.PluginBuild) {
		build.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
			if args.Kind == api.ResolveEntryPoint {
				return api.OnResolveResult{}, nil
			}
			return api.OnResolveResult{Path: args.Path, External: true}, nil
		})
	},
}

// Parse checks the syntax of source and collects its import records.
func (e *Esbuild) Parse(modulePath string, source []byte) (*SyntaxTree, error) {
	result := api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   string(source),
			Sourcefile: modulePath,
			ResolveDir: path.Dir(modulePath),
			Loader:     loaderFor(modulePath),
		},
		Bundle:   true,
		Write:    false,
		Metafile: true,
		Format:   api.FormatESModule,
		Target:   api.ESNext,
		LogLevel: api.LogLevelSilent,
		Plugins:  []api.Plugin{externalizeAll},
	})
	if len(result.Errors) > 0 {
		return nil, bundleerr.New(bundleerr.ErrParse, modulePath, messagesError(result.Errors))
	}

	var meta metafile
	if err := json.Unmarshal([]byte(result.Metafile), &meta); err != nil {
		return nil, bundleerr.Newf(bundleerr.ErrParse, modulePath, "decoding esbuild metafile: %v", err)
	}

	tree := &SyntaxTree{Path: modulePath, Source: string(source)}
	inputs := make([]string, 0, len(meta.Inputs))
	for name := range meta.Inputs {
		inputs = append(inputs, name)
	}
	sort.Strings(inputs)
	for _, name := range inputs {
		for _, imp := range meta.Inputs[name].Imports {
			tree.Imports = append(tree.Imports, Import{
				Specifier: imp.specifier(),
				Kind:      ImportKind(imp.Kind),
			})
		}
	}
	return tree, nil
}

// Transform rewrites the module as CommonJS at the requested baseline.
// Target must be a value returned by ParseTarget.
func (e *Esbuild) Transform(tree *SyntaxTree, target Target) (string, error) {
	et, err := target.esbuild()
	if err != nil {
		return "", bundleerr.New(bundleerr.ErrTransform, tree.Path, err)
	}
	result := api.Transform(tree.Source, api.TransformOptions{
		Sourcefile: tree.Path,
		Loader:     loaderFor(tree.Path),
		Format:     api.FormatCommonJS,
		Target:     et,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return "", bundleerr.New(bundleerr.ErrTransform, tree.Path, messagesError(result.Errors))
	}
	return stripHashbang(string(result.Code)), nil
}

// stripHashbang drops a leading "#!" line. esbuild keeps it, but it is only
// legal as the first line of a script, not inside a factory body.
func stripHashbang(code string) string {
	if !strings.HasPrefix(code, "#!") {
		return code
	}
	_, rest, _ := strings.Cut(code, "\n")
	return rest
}

func loaderFor(modulePath string) api.Loader {
	switch strings.ToLower(path.Ext(modulePath)) {
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".jsx":
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}

// messagesError flattens esbuild diagnostics into one error.
func messagesError(msgs []api.Message) error {
	formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: api.ErrorMessage})
	return errors.New(strings.TrimSpace(strings.Join(formatted, "\n")))
}
