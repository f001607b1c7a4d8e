package integration_tests

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/vk/minipack/internal/cli"
	"github.com/vk/minipack/internal/testutil"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
	fs     afero.Fs
}

// runCLI executes the command tree over an in-memory file system.
func runCLI(t *testing.T, files testutil.Files, args ...string) cliResult {
	t.Helper()

	fsys := testutil.NewFs(t, files)
	root := cli.NewRootCommand(cli.WithFs(fsys))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err, fs: fsys}
}

func greetFiles() testutil.Files {
	return testutil.Files{
		"src/index.js":     `import { greet } from './lib/greet.js'; greet();`,
		"src/lib/greet.js": `export function greet() { console.log('hi'); }`,
	}
}
