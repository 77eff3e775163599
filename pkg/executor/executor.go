package executor

import (
	"context"
	"time"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// LaunchFailureCode is the return code recorded for actions whose
// process could not be started
const LaunchFailureCode = -1

// Options contains configuration for the executor
type Options struct {
	// Runner starts processes; a ShellRunner on DefaultShell when nil
	Runner Runner

	// MaxProcs bounds how many processes run at once, 0 means unbounded
	MaxProcs int64

	// Logger overrides the component logger
	Logger *zerolog.Logger
}

// Executor launches compiled actions and collects their results
type Executor struct {
	runner   Runner
	maxProcs int64
	logger   zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) (*Executor, error) {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	runner := opts.Runner
	if runner == nil {
		shell, err := NewShellRunner("")
		if err != nil {
			return nil, err
		}
		runner = shell
	}

	if opts.MaxProcs < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "max procs must not be negative, got %d", opts.MaxProcs)
	}

	return &Executor{
		runner:   runner,
		maxProcs: opts.MaxProcs,
		logger:   logger,
	}, nil
}

// Execute runs actions and reports whether all of them exited with 0.
// The returned slice has one entry per action, in input order.
func (e *Executor) Execute(ctx context.Context, actions []types.CompiledAction) (bool, []types.ExecutedAction) {
	results := make([]types.ExecutedAction, len(actions))
	if len(actions) == 0 {
		return true, results
	}

	var sem *semaphore.Weighted
	if e.maxProcs > 0 {
		sem = semaphore.NewWeighted(e.maxProcs)
	}
	release := func() {
		if sem != nil {
			sem.Release(1)
		}
	}

	// each goroutine owns exactly one slot of results
	var g errgroup.Group
	record := func(i int, r types.ExecutedAction) {
		results[i] = r
	}

	for i, action := range actions {
		if action.Type != types.DefaultActionType {
			e.logger.Warn().
				Str("name", action.Name).
				Str("type", action.Type).
				Msg("Unsupported action type, running through the shell")
		}

		if sem != nil {
			if err := sem.Acquire(ctx, 1); err != nil {
				record(i, launchFailure(action, err, 0))
				continue
			}
		}

		start := time.Now()
		proc, err := e.runner.Start(ctx, action)
		if err != nil {
			release()
			e.logger.Error().
				Err(err).
				Str("name", action.Name).
				Str("cwd", action.Cwd).
				Msg("Cannot start action")
			record(i, launchFailure(action, err, time.Since(start)))
			continue
		}

		e.logger.Debug().
			Str("name", action.Name).
			Str("run", action.Run).
			Str("cwd", action.Cwd).
			Int("pid", proc.PID()).
			Msg("Action started")

		g.Go(func() error {
			defer release()
			record(i, e.wait(action, proc, start))
			return nil
		})
	}

	_ = g.Wait()

	allSucceeded := true
	for _, r := range results {
		if !r.Success {
			allSucceeded = false
		}
	}
	return allSucceeded, results
}

func (e *Executor) wait(action types.CompiledAction, proc Process, start time.Time) types.ExecutedAction {
	out, err := proc.Wait()

	result := types.ExecutedAction{
		CompiledAction: action,
		Stdout:         out.Stdout,
		Stderr:         out.Stderr,
		ReturnCode:     out.ReturnCode,
		PID:            proc.PID(),
		Duration:       time.Since(start),
	}

	if err != nil {
		result.ReturnCode = LaunchFailureCode
		result.Err = errors.Wrapf(err, errors.ErrActionExecute, "action %q did not complete", action.Name)
		if result.Stderr == "" {
			result.Stderr = err.Error()
		}
	}
	result.Success = result.Err == nil && result.ReturnCode == 0

	e.logger.Debug().
		Str("name", action.Name).
		Int("pid", result.PID).
		Int("rc", result.ReturnCode).
		Dur("duration", result.Duration).
		Msg("Action finished")

	return result
}

func launchFailure(action types.CompiledAction, err error, d time.Duration) types.ExecutedAction {
	return types.ExecutedAction{
		CompiledAction: action,
		Stderr:         err.Error(),
		ReturnCode:     LaunchFailureCode,
		Duration:       d,
		Err:            errors.Wrapf(err, errors.ErrActionExecute, "cannot start action %q", action.Name),
	}
}
