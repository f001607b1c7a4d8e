package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/vk/minipack/internal/cli"
)

// version is set via -ldflags at release time.
var version = "dev"

// executor runs a configured root command.
type executor func(ctx context.Context, root *cobra.Command) error

// main is the entrypoint for the minipack application.
func main() {
	execute := func(ctx context.Context, root *cobra.Command) error {
		return fang.Execute(ctx, root,
			fang.WithVersion(version),
			fang.WithNotifySignal(os.Interrupt),
		)
	}
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:], execute); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

// run builds the command tree around the given streams and arguments and
// hands it to execute, which keeps the wiring testable without fang.
func run(ctx context.Context, outW, errW io.Writer, args []string, execute executor, opts ...cli.Option) error {
	root := cli.NewRootCommand(opts...)
	root.SetArgs(args)
	root.SetOut(outW)
	root.SetErr(errW)
	return execute(ctx, root)
}
