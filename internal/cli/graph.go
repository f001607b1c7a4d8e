package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/spf13/cobra"
	"github.com/vk/minipack/internal/config"
	"github.com/vk/minipack/internal/dag"
	"github.com/vk/minipack/internal/graph"
	"github.com/vk/minipack/internal/modpath"
	"gopkg.in/yaml.v3"
)

type graphOptions struct {
	format    string
	importers bool
}

func (c *commander) newGraphCommand() *cobra.Command {
	opts := &graphOptions{}
	cmd := &cobra.Command{
		Use:   "graph [entry]",
		Short: "Print the dependency graph of the entry without emitting a bundle",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "tree", "json", "yaml":
			default:
				return &ExitError{Code: 2, Message: fmt.Sprintf("invalid format %q: must be tree, json or yaml", opts.format)}
			}

			a, err := c.newApp(cmd, args, config.Overrides{})
			if err != nil {
				return err
			}
			g, err := a.Graph(cmd.Context())
			if err != nil {
				return err
			}

			var idx *dag.Index
			if opts.importers {
				if idx, err = dag.FromGraph(g); err != nil {
					return err
				}
			}
			return writeGraph(cmd.OutOrStdout(), g, idx, opts.format)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "tree", "output format: tree, json or yaml")
	cmd.Flags().BoolVar(&opts.importers, "importers", false, "list the importers of every module")
	return cmd
}

// graphDump is the serialized form of a graph. Module code is left out.
type graphDump struct {
	Entry    string       `json:"entry" yaml:"entry"`
	Analyses int          `json:"analyses" yaml:"analyses"`
	Modules  []moduleDump `json:"modules" yaml:"modules"`
}

type moduleDump struct {
	Path         string            `json:"path" yaml:"path"`
	Dependencies map[string]string `json:"dependencies" yaml:"dependencies"`
	Importers    []string          `json:"importers,omitempty" yaml:"importers,omitempty"`
}

func dumpGraph(g *graph.Graph, idx *dag.Index) (*graphDump, error) {
	d := &graphDump{Entry: string(g.Entry), Analyses: g.Analyses}
	for _, p := range g.Paths() {
		rec, _ := g.Record(p)
		m := moduleDump{Path: string(p), Dependencies: make(map[string]string, len(rec.Dependencies))}
		for spec, dep := range rec.Dependencies {
			m.Dependencies[spec] = string(dep)
		}
		if idx != nil {
			importers, err := idx.Importers(p)
			if err != nil {
				return nil, err
			}
			m.Importers = pathStrings(importers)
		}
		d.Modules = append(d.Modules, m)
	}
	return d, nil
}

func writeGraph(w io.Writer, g *graph.Graph, idx *dag.Index, format string) error {
	if format == "tree" {
		return writeTree(w, g, idx)
	}

	d, err := dumpGraph(g, idx)
	if err != nil {
		return err
	}
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func writeTree(w io.Writer, g *graph.Graph, idx *dag.Index) error {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s: %d modules, %d analyses", g.Entry, g.Len(), g.Analyses)))

	root := gtree.NewRoot(string(g.Entry))
	expanded := map[modpath.Path]bool{g.Entry: true}
	addChildren(root, g, g.Entry, map[modpath.Path]bool{g.Entry: true}, expanded)
	if err := gtree.OutputFromRoot(w, root); err != nil {
		return fmt.Errorf("failed to render tree: %w", err)
	}

	if idx == nil {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("importers"))
	for _, p := range g.Paths() {
		importers, err := idx.Importers(p)
		if err != nil {
			return err
		}
		if len(importers) == 0 {
			fmt.Fprintf(w, "%s %s\n", p, mutedStyle.Render("(none)"))
			continue
		}
		fmt.Fprintf(w, "%s <- %s\n", p, joinPaths(importers))
	}
	return nil
}

// addChildren adds the imports of p below node. A module already on the
// current branch is marked as a cycle; a module whose imports were already
// listed elsewhere is not expanded again.
func addChildren(node *gtree.Node, g *graph.Graph, p modpath.Path, branch, expanded map[modpath.Path]bool) {
	rec, ok := g.Record(p)
	if !ok {
		return
	}
	for _, spec := range rec.Specifiers {
		dep := rec.Dependencies[spec]
		depRec, known := g.Record(dep)
		switch {
		case !known:
			node.Add(string(dep) + " (missing)")
		case branch[dep]:
			node.Add(string(dep) + " (cycle)")
		case expanded[dep] && len(depRec.Specifiers) > 0:
			node.Add(string(dep) + " (see above)")
		default:
			expanded[dep] = true
			branch[dep] = true
			addChildren(node.Add(string(dep)), g, dep, branch, expanded)
			delete(branch, dep)
		}
	}
}

func pathStrings(paths []modpath.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = string(p)
	}
	return out
}

func joinPaths(paths []modpath.Path) string {
	return strings.Join(pathStrings(paths), ", ")
}
