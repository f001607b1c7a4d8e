package emitter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/minipack/internal/bundleerr"
	"github.com/vk/minipack/internal/graph"
	"github.com/vk/minipack/internal/jsrun"
	"github.com/vk/minipack/internal/modpath"
	"github.com/vk/minipack/modules/console"
)

// module describes a hand-written CommonJS module for graph fixtures.
type module struct {
	path modpath.Path
	deps []string
	code string
}

func buildGraph(entry modpath.Path, modules ...module) *graph.Graph {
	g := graph.New(entry)
	for _, m := range modules {
		rec := graph.NewModuleRecord(m.path)
		for _, spec := range m.deps {
			rec.AddDependency(spec, modpath.Resolve(m.path, spec))
		}
		rec.Code = m.code
		g.Put(rec)
	}
	return g
}

func execute(t *testing.T, program string, opts ...jsrun.Option) (string, error) {
	t.Helper()
	var out bytes.Buffer
	opts = append(opts, jsrun.WithModules(&console.Module{Stdout: &out}))
	err := jsrun.New(opts...).Run(context.Background(), "bundle.js", program)
	return out.String(), err
}

func diamond() *graph.Graph {
	return buildGraph("./a.js",
		module{path: "./a.js", deps: []string{"./b.js", "./c.js"}, code: `require("./b.js"); require("./c.js"); console.log("A");`},
		module{path: "./b.js", deps: []string{"./d.js"}, code: `require("./d.js"); console.log("B");`},
		module{path: "./c.js", deps: []string{"./d.js"}, code: `require("./d.js"); console.log("C");`},
		module{path: "./d.js", code: `console.log("D");`},
	)
}

func TestEmit_DiamondExecutesSharedModulePerEdge(t *testing.T) {
	program, err := Emit(diamond(), "./a.js", Options{})
	require.NoError(t, err)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "D\nB\nD\nC\nA\n", out)
}

func TestEmit_ModuleCacheExecutesOnce(t *testing.T) {
	program, err := Emit(diamond(), "./a.js", Options{ModuleCache: true})
	require.NoError(t, err)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "D\nB\nC\nA\n", out)
}

func TestEmit_ExportsFlowThroughRequire(t *testing.T) {
	g := buildGraph("./src/index.js",
		module{path: "./src/index.js", deps: []string{"./lib/greet.js"}, code: `var g = require("./lib/greet.js"); g.greet("world");`},
		module{path: "./src/lib/greet.js", code: `exports.greet = function (name) { console.log("hello " + name); };`},
	)
	program, err := Emit(g, "./src/index.js", Options{})
	require.NoError(t, err)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestEmit_ModuleExportsReplacement(t *testing.T) {
	g := buildGraph("./main.js",
		module{path: "./main.js", deps: []string{"./fn.js"}, code: `console.log(require("./fn.js")());`},
		module{path: "./fn.js", code: `module.exports = function () { return "replaced"; };`},
	)
	program, err := Emit(g, "./main.js", Options{})
	require.NoError(t, err)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "replaced\n", out)
}

func TestEmit_FreshExportsPerRequire(t *testing.T) {
	g := buildGraph("./main.js",
		module{path: "./main.js", deps: []string{"./state.js"}, code: `
var first = require("./state.js");
first.count++;
var second = require("./state.js");
console.log(first === second, second.count);
`},
		module{path: "./state.js", code: `exports.count = 0;`},
	)

	program, err := Emit(g, "./main.js", Options{})
	require.NoError(t, err)
	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "false 0\n", out)

	cached, err := Emit(g, "./main.js", Options{ModuleCache: true})
	require.NoError(t, err)
	out, err = execute(t, cached)
	require.NoError(t, err)
	assert.Equal(t, "true 1\n", out)
}

func TestEmit_CycleExhaustsStackWithoutCache(t *testing.T) {
	g := buildGraph("./A.js",
		module{path: "./A.js", deps: []string{"./B.js"}, code: `require("./B.js");`},
		module{path: "./B.js", deps: []string{"./A.js"}, code: `require("./A.js");`},
	)
	program, err := Emit(g, "./A.js", Options{})
	require.NoError(t, err)

	_, err = execute(t, program, jsrun.WithMaxCallStackSize(500))
	require.Error(t, err)
	assert.ErrorIs(t, err, jsrun.ErrStackExhausted)
}

func TestEmit_CycleCompletesWithCache(t *testing.T) {
	g := buildGraph("./A.js",
		module{path: "./A.js", deps: []string{"./B.js"}, code: `exports.name = "A"; var b = require("./B.js"); console.log("A sees " + b.name);`},
		module{path: "./B.js", deps: []string{"./A.js"}, code: `var a = require("./A.js"); exports.name = "B"; console.log("B sees " + a.name);`},
	)
	program, err := Emit(g, "./A.js", Options{ModuleCache: true})
	require.NoError(t, err)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "B sees A\nA sees B\n", out)
}

func TestEmit_MissingModuleFailsAtRunTime(t *testing.T) {
	g := buildGraph("./main.js",
		module{path: "./main.js", deps: []string{"./gone.js"}, code: `require("./gone.js");`},
	)
	program, err := Emit(g, "./main.js", Options{})
	require.NoError(t, err, "emission does not check closure")

	_, err = execute(t, program)
	require.Error(t, err)
	assert.ErrorIs(t, err, bundleerr.ErrResolutionGap)
	path, ok := bundleerr.PathOf(err)
	require.True(t, ok)
	assert.Equal(t, "./gone.js", path)
}

func TestEmit_ModuleThrowingLookalikeErrorIsUncaught(t *testing.T) {
	g := buildGraph("./main.js",
		module{path: "./main.js", code: `throw new Error("module not found: ./config.json");`},
	)
	program, err := Emit(g, "./main.js", Options{})
	require.NoError(t, err)

	_, err = execute(t, program)
	require.Error(t, err)
	assert.ErrorIs(t, err, jsrun.ErrUncaught)
	assert.NotErrorIs(t, err, bundleerr.ErrResolutionGap)
}

func TestEmit_UnknownSpecifier(t *testing.T) {
	g := buildGraph("./main.js",
		module{path: "./main.js", code: `require("./undeclared.js");`},
	)
	program, err := Emit(g, "./main.js", Options{})
	require.NoError(t, err)

	_, err = execute(t, program)
	require.Error(t, err)
	assert.ErrorIs(t, err, jsrun.ErrUncaught)
	assert.Contains(t, err.Error(), `cannot resolve "./undeclared.js" from ./main.js`)
}

func TestEmit_EntryIsNormalized(t *testing.T) {
	g := buildGraph("./main.js", module{path: "./main.js", code: `console.log("ran");`})

	program, err := Emit(g, "main.js", Options{})
	require.NoError(t, err)
	assert.Contains(t, program, `entry: "./main.js"`)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "ran\n", out)
}

func TestEmit_EncodingLayout(t *testing.T) {
	program, err := Emit(diamond(), "./a.js", Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(program, "(function (bundle) {\n"))
	assert.True(t, strings.HasSuffix(program, "});\n"))
	assert.Contains(t, program, "version: 1,")
	assert.Contains(t, program, `dependencies: { "./b.js": "./b.js", "./c.js": "./c.js" }`)
	assert.Contains(t, program, "factory: function (require, module, exports) {\n")
	assert.NotContains(t, program, "eval(")
	assert.NotContains(t, program, "var cache")

	// Modules keep graph insertion order.
	idx := func(s string) int { return strings.Index(program, s) }
	assert.Less(t, idx(`"./a.js": {`), idx(`"./b.js": {`))
	assert.Less(t, idx(`"./c.js": {`), idx(`"./d.js": {`))
}

func TestEmit_Deterministic(t *testing.T) {
	first, err := Emit(diamond(), "./a.js", Options{})
	require.NoError(t, err)
	second, err := Emit(diamond(), "./a.js", Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmit_QuotesPaths(t *testing.T) {
	g := buildGraph(`./we"ird.js`, module{path: `./we"ird.js`, code: `console.log("quoted");`})
	program, err := Emit(g, `./we"ird.js`, Options{})
	require.NoError(t, err)
	assert.Contains(t, program, `"./we\"ird.js"`)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "quoted\n", out)
}

func TestEmit_TrailingLineCommentDoesNotSwallowFactory(t *testing.T) {
	g := buildGraph("./main.js", module{path: "./main.js", code: `console.log("ok"); // no newline`})
	program, err := Emit(g, "./main.js", Options{})
	require.NoError(t, err)

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

func TestEmit_Banner(t *testing.T) {
	g := buildGraph("./main.js", module{path: "./main.js", code: `console.log("ok");`})
	program, err := Emit(g, "./main.js", Options{Banner: "built by minipack\nv1\n"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(program, "// built by minipack\n// v1\n(function (bundle) {"))

	out, err := execute(t, program)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

func TestEmit_RejectsBadInput(t *testing.T) {
	_, err := Emit(nil, "./a.js", Options{})
	assert.ErrorContains(t, err, "nil graph")

	_, err = Emit(graph.New("./a.js"), "", Options{})
	assert.ErrorContains(t, err, "empty entry")
}

func TestEmit_VersionGuard(t *testing.T) {
	program, err := Emit(diamond(), "./a.js", Options{})
	require.NoError(t, err)

	tampered := strings.Replace(program, "version: 1,", "version: 2,", 1)
	_, err = execute(t, tampered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported bundle encoding version: 2")
}
