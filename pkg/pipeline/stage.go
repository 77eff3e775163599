// Package pipeline runs the configured stages against a set of changed
// files. It encapsulates the flow: match rules → compile actions →
// dedupe → execute, one stage at a time.
package pipeline

import (
	"context"

	"github.com/arthur-debert/moopad/pkg/actions"
	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/matchers"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/rs/zerolog"
)

// ActionExecutor runs the compiled actions of a stage.
// *executor.Executor satisfies it.
type ActionExecutor interface {
	Execute(ctx context.Context, actions []types.CompiledAction) (bool, []types.ExecutedAction)
}

// StageRunner runs a single stage
type StageRunner struct {
	compiler *actions.Compiler
	executor ActionExecutor
	dryRun   bool
	logger   zerolog.Logger
}

// NewStageRunner creates a stage runner. With dryRun set the executor
// is never called and may be nil.
func NewStageRunner(compiler *actions.Compiler, executor ActionExecutor, dryRun bool) *StageRunner {
	return &StageRunner{
		compiler: compiler,
		executor: executor,
		dryRun:   dryRun,
		logger:   logging.GetLogger("pipeline.stage"),
	}
}

// Plan compiles every action triggered by changedFiles in stage and
// removes duplicates. The order is file, then rule, then action, as
// declared. It returns the kept actions and how many were dropped.
func (r *StageRunner) Plan(stage types.Stage, changedFiles []string) ([]types.CompiledAction, int, error) {
	var compiled []types.CompiledAction

	for _, file := range changedFiles {
		for ruleIdx, rule := range stage.Rules {
			if !matchers.Match(file, rule.Path) {
				continue
			}

			r.logger.Debug().
				Str("stage", stage.Name).
				Str("file", file).
				Str("pattern", rule.Path).
				Msg("File matched path rule")

			for actionIdx, decl := range rule.Actions {
				action, err := r.compiler.Compile(file, decl)
				if err != nil {
					return nil, 0, errors.Wrapf(err, errors.GetErrorCode(err),
						"stage %q: cannot compile action %d of rule %d for %s",
						stage.Name, actionIdx, ruleIdx, file).
						WithDetail("stage", stage.Name).
						WithDetail("file", file).
						WithDetail("pattern", rule.Path)
				}
				action.Pattern = rule.Path
				compiled = append(compiled, action)
			}
		}
	}

	kept, removed := actions.Dedupe(compiled)
	if removed > 0 {
		r.logger.Info().
			Str("stage", stage.Name).
			Int("removed", removed).
			Int("kept", len(kept)).
			Msg("Removed duplicate actions")
	}

	return kept, removed, nil
}

// RunStage plans the stage and executes it. An empty stage succeeds.
func (r *StageRunner) RunStage(ctx context.Context, stage types.Stage, changedFiles []string) (types.StageResult, error) {
	kept, removed, err := r.Plan(stage, changedFiles)
	if err != nil {
		return types.StageResult{Name: stage.Name}, err
	}

	result := types.StageResult{
		Name:       stage.Name,
		Duplicates: removed,
	}

	if r.dryRun {
		result.DryRun = true
		result.Success = true
		result.Actions = make([]types.ExecutedAction, 0, len(kept))
		for _, a := range kept {
			result.Actions = append(result.Actions, types.ExecutedAction{CompiledAction: a})
		}
		return result, nil
	}

	result.Success, result.Actions = r.executor.Execute(ctx, kept)

	r.logger.Info().
		Str("stage", stage.Name).
		Int("actions", len(result.Actions)).
		Int("failed", len(result.Failed())).
		Bool("success", result.Success).
		Msg("Stage completed")

	return result, nil
}
