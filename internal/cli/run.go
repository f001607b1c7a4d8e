package cli

import (
	"github.com/spf13/cobra"
	"github.com/vk/minipack/internal/config"
)

func (c *commander) newRunCommand() *cobra.Command {
	var maxStack int
	cmd := &cobra.Command{
		Use:   "run [entry]",
		Short: "Bundle the entry and execute the program in an embedded JavaScript engine",
		Long: `Bundle the entry and execute the program in an embedded JavaScript engine.

console.log and console.info write to stdout, console.warn and console.error
to stderr. A synchronous import cycle without --module-cache recurses until
the call stack limit is reached and fails the run.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra config.Overrides
			if cmd.Flags().Changed("max-stack") {
				extra.MaxCallStackSize = &maxStack
			}
			a, err := c.newApp(cmd, args, extra)
			if err != nil {
				return err
			}
			return a.Execute(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&maxStack, "max-stack", 0, "maximum JavaScript call stack depth (default 10000)")
	return cmd
}
