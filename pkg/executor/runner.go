package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/mattn/go-shellwords"
)

// DefaultShell is the command line actions are appended to
const DefaultShell = "/bin/sh -c"

// Output is what a finished process left behind
type Output struct {
	Stdout     string
	Stderr     string
	ReturnCode int
}

// Process is a started action
type Process interface {
	PID() int
	// Wait blocks until the process exits. A non-zero exit is reported
	// through Output.ReturnCode, not as an error.
	Wait() (Output, error)
}

// Runner starts actions
type Runner interface {
	Start(ctx context.Context, action types.CompiledAction) (Process, error)
}

// ShellRunner starts each action as `<shell...> <run>` in the action's cwd
type ShellRunner struct {
	argv []string
}

// NewShellRunner parses shell with shell-words rules. An empty string
// selects DefaultShell.
func NewShellRunner(shell string) (*ShellRunner, error) {
	if strings.TrimSpace(shell) == "" {
		shell = DefaultShell
	}

	argv, err := shellwords.Parse(shell)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot parse shell %q", shell)
	}
	if len(argv) == 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "shell %q is empty", shell)
	}

	return &ShellRunner{argv: argv}, nil
}

// Argv returns the full argument vector used for action
func (r *ShellRunner) Argv(action types.CompiledAction) []string {
	argv := make([]string, 0, len(r.argv)+1)
	argv = append(argv, r.argv...)
	return append(argv, action.Run)
}

// Start launches the action without waiting for it
func (r *ShellRunner) Start(ctx context.Context, action types.CompiledAction) (Process, error) {
	argv := r.Argv(action)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = action.Cwd

	p := &shellProcess{cmd: cmd}
	cmd.Stdout = &p.stdout
	cmd.Stderr = &p.stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

type shellProcess struct {
	cmd    *exec.Cmd
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (p *shellProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p *shellProcess) Wait() (Output, error) {
	err := p.cmd.Wait()

	out := Output{
		Stdout: p.stdout.String(),
		Stderr: p.stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.ReturnCode = 0
	case stderrors.As(err, &exitErr):
		out.ReturnCode = exitErr.ExitCode()
	default:
		out.ReturnCode = -1
		return out, err
	}
	return out, nil
}
