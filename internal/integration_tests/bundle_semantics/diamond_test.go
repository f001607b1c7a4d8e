package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/minipack/internal/testutil"
)

func diamondFiles() testutil.Files {
	return testutil.Files{
		"a.js": `import './b.js'; import './c.js'; console.log('A');`,
		"b.js": `import './d.js'; console.log('B');`,
		"c.js": `import './d.js'; console.log('C');`,
		"d.js": `console.log('D');`,
	}
}

// Test for: A module reached along two paths runs once per require.
func TestBundle_Diamond_ExecutesSharedModuleTwice(t *testing.T) {
	result := testutil.Run(t, diamondFiles(), testutil.Config("./a.js"), testutil.Execute)

	require.NoError(t, result.Err)
	assert.Equal(t, "D\nB\nD\nC\nA\n", result.Stdout)
	testutil.AssertAnalyzedTimes(t, result, "./d.js", 2)
	testutil.AssertAnalyzedTimes(t, result, "./a.js", 1)
}

// Test for: The module cache restores single execution.
func TestBundle_Diamond_ModuleCacheExecutesOnce(t *testing.T) {
	cfg := testutil.Config("./a.js")
	cfg.ModuleCache = true

	result := testutil.Run(t, diamondFiles(), cfg, testutil.Execute)

	require.NoError(t, result.Err)
	assert.Equal(t, "D\nB\nC\nA\n", result.Stdout)
}

// Test for: The graph keeps one record per module however often it is analyzed.
func TestBundle_Diamond_GraphShape(t *testing.T) {
	result := testutil.Run(t, diamondFiles(), testutil.Config("./a.js"), testutil.Write)
	require.NoError(t, result.Err)

	g, err := result.App.Graph(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 5, g.Analyses)
	require.NoError(t, g.CheckClosure())
}
