package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/minipack/internal/jsrun"
	"github.com/vk/minipack/internal/modpath"
	"github.com/vk/minipack/internal/testutil"
)

func cycleFiles() testutil.Files {
	return testutil.Files{
		"src/a.js": `import './b.js'; console.log('A');`,
		"src/b.js": `import './a.js'; console.log('B');`,
	}
}

// Test for: Building a cyclic graph terminates with one record per module.
func TestBundle_Cycle_BuildTerminates(t *testing.T) {
	result := testutil.Run(t, cycleFiles(), testutil.Config("src/a.js"), testutil.Write)
	require.NoError(t, result.Err)

	g, err := result.App.Graph(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []modpath.Path{"./src/a.js", "./src/b.js"}, g.Paths())
	assert.Equal(t, 3, g.Analyses)
}

// Test for: A synchronous cycle without a cache fails at run time by
// exhausting the call stack.
func TestBundle_Cycle_RuntimeStackExhaustion(t *testing.T) {
	cfg := testutil.Config("./src/a.js")
	cfg.MaxCallStackSize = 1000

	result := testutil.Run(t, cycleFiles(), cfg, testutil.Execute)

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, jsrun.ErrStackExhausted)
	assert.Empty(t, result.Stdout)
}

// Test for: With the module cache a cycle sees a partially initialized
// module and completes.
func TestBundle_Cycle_ModuleCacheCompletes(t *testing.T) {
	cfg := testutil.Config("./src/a.js")
	cfg.ModuleCache = true

	result := testutil.Run(t, cycleFiles(), cfg, testutil.Execute)

	require.NoError(t, result.Err)
	assert.Equal(t, "B\nA\n", result.Stdout)
}
