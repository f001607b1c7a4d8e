package jsrun

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/minipack/internal/bundleerr"
	"github.com/vk/minipack/modules/console"
)

func newRunner(out *bytes.Buffer, opts ...Option) *Runner {
	opts = append(opts, WithModules(&console.Module{Stdout: out}))
	return New(opts...)
}

func TestRun_Success(t *testing.T) {
	var out bytes.Buffer
	err := newRunner(&out).Run(context.Background(), "ok.js", `console.log("hi")`)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestRun_UncaughtException(t *testing.T) {
	var out bytes.Buffer
	err := newRunner(&out).Run(context.Background(), "throw.js", `throw new Error("kaboom")`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUncaught)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRun_ModuleNotFoundIsResolutionGap(t *testing.T) {
	program := fmt.Sprintf(`
		var err = new Error("module not found: ./gone.js");
		err.name = %q;
		err.modulePath = "./gone.js";
		throw err;
	`, bundleerr.ModuleNotFoundName)

	var out bytes.Buffer
	err := newRunner(&out).Run(context.Background(), "gap.js", program)
	require.Error(t, err)
	assert.ErrorIs(t, err, bundleerr.ErrResolutionGap)

	path, ok := bundleerr.PathOf(err)
	require.True(t, ok)
	assert.Equal(t, "./gone.js", path)
}

func TestRun_ModuleCodeErrorsAreNotResolutionGaps(t *testing.T) {
	testCases := []struct {
		name    string
		program string
	}{
		{name: "matching message", program: `throw new Error("module not found: ./gone.js")`},
		{name: "thrown string", program: `throw "module not found: ./gone.js"`},
		{name: "name without path", program: fmt.Sprintf(`var e = new Error("x"); e.name = %q; throw e;`, bundleerr.ModuleNotFoundName)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := newRunner(&out).Run(context.Background(), "user.js", tc.program)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUncaught)
			assert.NotErrorIs(t, err, bundleerr.ErrResolutionGap)
		})
	}
}

func TestRun_StackExhausted(t *testing.T) {
	var out bytes.Buffer
	err := newRunner(&out, WithMaxCallStackSize(200)).Run(context.Background(), "rec.js", `function f() { return f(); } f();`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStackExhausted)
}

func TestRun_Interrupted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	err := newRunner(&out).Run(ctx, "loop.js", `for (;;) {}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_FreshRuntimePerRun(t *testing.T) {
	var out bytes.Buffer
	r := newRunner(&out)

	require.NoError(t, r.Run(context.Background(), "a.js", `var leaked = 1;`))
	require.NoError(t, r.Run(context.Background(), "b.js", `console.log(typeof leaked)`))
	assert.Equal(t, "undefined\n", out.String())
}

func TestWithMaxCallStackSize_IgnoresNonPositive(t *testing.T) {
	r := New(WithMaxCallStackSize(0))
	assert.Equal(t, DefaultMaxCallStackSize, r.maxCallStackSize)
}
