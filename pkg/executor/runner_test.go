package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/testutil"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShellRunner(t *testing.T) {
	tests := []struct {
		name  string
		shell string
		want  []string
	}{
		{"default", "", []string{"/bin/sh", "-c", "echo hi"}},
		{"bash with flags", "bash -eu -c", []string{"bash", "-eu", "-c", "echo hi"}},
		{"quoted words", `env "A=b c" sh -c`, []string{"env", "A=b c", "sh", "-c", "echo hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewShellRunner(tt.shell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Argv(types.CompiledAction{Run: "echo hi"}))
		})
	}
}

func TestNewShellRunnerInvalid(t *testing.T) {
	_, err := NewShellRunner(`sh -c "unterminated`)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestShellExecution(t *testing.T) {
	testutil.RequireShell(t)

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	e, err := New(Options{})
	require.NoError(t, err)

	actions := []types.CompiledAction{
		{Name: "out", Run: "echo hello", Cwd: dir, Type: "shell"},
		{Name: "err", Run: "echo oops >&2; exit 3", Cwd: dir, Type: "shell"},
		{Name: "pwd", Run: "pwd", Cwd: sub, Type: "shell"},
		{Name: "gone", Run: "true", Cwd: filepath.Join(dir, "missing"), Type: "shell"},
	}

	ok, results := e.Execute(context.Background(), actions)
	assert.False(t, ok)
	require.Len(t, results, 4)

	assert.True(t, results[0].Success)
	assert.Equal(t, "hello\n", results[0].Stdout)
	assert.Equal(t, 0, results[0].ReturnCode)
	assert.Positive(t, results[0].PID)

	assert.False(t, results[1].Success)
	assert.Equal(t, 3, results[1].ReturnCode)
	assert.Equal(t, "oops\n", results[1].Stderr)
	assert.Empty(t, results[1].Stdout)

	resolved, err := filepath.EvalSymlinks(sub)
	require.NoError(t, err)
	assert.Equal(t, resolved, filepath.Clean(strings.TrimSpace(results[2].Stdout)))

	assert.Equal(t, LaunchFailureCode, results[3].ReturnCode)
	assert.NotEmpty(t, results[3].Stderr)
}

func TestShellExecutionAllSucceed(t *testing.T) {
	testutil.RequireShell(t)

	e, err := New(Options{MaxProcs: 1})
	require.NoError(t, err)

	dir := t.TempDir()
	ok, results := e.Execute(context.Background(), []types.CompiledAction{
		{Name: "one", Run: "touch one", Cwd: dir, Type: "shell"},
		{Name: "two", Run: "test -f one && touch two", Cwd: dir, Type: "shell"},
	})

	assert.True(t, ok)
	assert.Len(t, results, 2)
	assert.FileExists(t, filepath.Join(dir, "two"))
}

func TestShellExecutionCustomShell(t *testing.T) {
	testutil.RequireShell(t)

	r, err := NewShellRunner("/bin/sh -e -c")
	require.NoError(t, err)
	e, err := New(Options{Runner: r})
	require.NoError(t, err)

	ok, results := e.Execute(context.Background(), []types.CompiledAction{
		{Name: "strict", Run: "false; echo unreachable", Cwd: t.TempDir(), Type: "shell"},
	})

	assert.False(t, ok)
	assert.Empty(t, results[0].Stdout)
	assert.Equal(t, 1, results[0].ReturnCode)
}
