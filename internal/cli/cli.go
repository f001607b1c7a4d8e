package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vk/minipack/internal/app"
	"github.com/vk/minipack/internal/config"
	"github.com/vk/minipack/internal/hcl"
)

// Option configures the command tree.
type Option func(*commander)

// WithFs replaces the OS file system for reading sources and config and
// for writing output.
func WithFs(fsys afero.Fs) Option {
	return func(c *commander) { c.fs = fsys }
}

// WithLoader replaces the HCL config loader.
func WithLoader(loader config.Loader) Option {
	return func(c *commander) { c.loader = loader }
}

// commander holds the state shared by every command of one tree.
type commander struct {
	fs     afero.Fs
	loader config.Loader

	configFile  string
	target      string
	moduleCache bool
	banner      string
	logLevel    string
	logFormat   string
	output      string
}

// NewRootCommand returns the minipack command tree. The root command
// bundles; `graph` and `run` are subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	c := &commander{
		fs:     afero.NewOsFs(),
		loader: hcl.NewLoader(),
	}
	for _, opt := range opts {
		opt(c)
	}

	root := &cobra.Command{
		Use:   "minipack [entry]",
		Short: "Bundle a JavaScript entry module and its imports into one program",
		Long: headerStyle.Render("minipack") + ` follows the static imports of an entry module, rewrites every
module to CommonJS and emits a single self-contained program.

The entry defaults to ` + config.DefaultEntry + `. Settings are read from ` + config.DefaultFile + `
when present; flags that are set explicitly take precedence over the file.`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runBundle,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default "+config.DefaultFile+" if present)")
	pf.StringVar(&c.target, "target", "", "language baseline for emitted code (default es2015)")
	pf.BoolVar(&c.moduleCache, "module-cache", false, "execute each module once and share its exports")
	pf.StringVar(&c.banner, "banner", "", "comment placed at the top of the bundle")
	pf.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error (default info)")
	pf.StringVar(&c.logFormat, "log-format", "", "log format: text or json (default text)")

	root.Flags().StringVarP(&c.output, "output", "o", "", "write the bundle to this file instead of stdout")

	root.AddCommand(c.newGraphCommand())
	root.AddCommand(c.newRunCommand())
	return root
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func (c *commander) runBundle(cmd *cobra.Command, args []string) error {
	a, err := c.newApp(cmd, args, config.Overrides{})
	if err != nil {
		return err
	}
	return a.Write(cmd.Context())
}

// newApp resolves configuration for cmd and builds the App. extra holds
// command-specific settings already taken from flags.
func (c *commander) newApp(cmd *cobra.Command, args []string, extra config.Overrides) (*app.App, error) {
	flags := c.overrides(cmd, args)
	flags.MaxCallStackSize = extra.MaxCallStackSize

	cfg, err := app.ResolveConfig(cmd.Context(), c.fs, c.loader, app.ConfigSource{
		File:  c.configFile,
		Flags: flags,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, app.WithFs(c.fs))
}

// overrides collects the flags the user set explicitly.
func (c *commander) overrides(cmd *cobra.Command, args []string) config.Overrides {
	var o config.Overrides
	if len(args) > 0 {
		o.Entry = &args[0]
	}
	changed := cmd.Flags().Changed
	if changed("target") {
		o.Target = &c.target
	}
	if changed("module-cache") {
		o.ModuleCache = &c.moduleCache
	}
	if changed("banner") {
		o.Banner = &c.banner
	}
	if changed("log-level") {
		o.LogLevel = &c.logLevel
	}
	if changed("log-format") {
		o.LogFormat = &c.logFormat
	}
	if changed("output") {
		o.Output = &c.output
	}
	return o
}
