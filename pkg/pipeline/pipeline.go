package pipeline

import (
	"context"

	"github.com/arthur-debert/moopad/pkg/actions"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/types"
)

// Observer is notified after every stage, before the next one starts
type Observer func(types.StageResult)

// Options contains configuration for a pipeline run
type Options struct {
	// RootDir is the absolute working directory of the run
	RootDir string

	// Executor runs the actions of each stage
	Executor ActionExecutor

	// StrictTemplates makes references to unknown templates fatal
	StrictTemplates bool

	// DryRun compiles and dedupes every stage without executing anything
	DryRun bool

	// Observer, if set, receives each stage result as soon as it is known
	Observer Observer
}

// Pipeline runs stages in order, halting at the first failing one
type Pipeline struct {
	opts Options
}

// New creates a pipeline
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run executes cfg's stages against changedFiles. Stages are barriers:
// a stage starts only after every action of the previous one finished.
// When a stage fails, the remaining stages are neither compiled nor
// executed and are listed in Result.Skipped. A compile error aborts the
// run and is returned together with the stages completed so far.
func (p *Pipeline) Run(ctx context.Context, cfg *types.Config, changedFiles []string) (types.Result, error) {
	logger := logging.GetLogger("pipeline")
	done := logging.LogOperationStart(logger, "pipeline run")
	defer done()

	compiler := actions.NewCompiler(actions.Options{
		RootDir:         p.opts.RootDir,
		Templates:       cfg.Templates,
		StrictTemplates: p.opts.StrictTemplates,
	})
	runner := NewStageRunner(compiler, p.opts.Executor, p.opts.DryRun)

	result := types.Result{Success: true}

	for i, stage := range cfg.Stages {
		logger.Debug().
			Str("stage", stage.Name).
			Int("files", len(changedFiles)).
			Bool("dry_run", p.opts.DryRun).
			Msg("Starting stage")

		stageResult, err := runner.RunStage(ctx, stage, changedFiles)
		if err != nil {
			result.Success = false
			return result, err
		}

		result.Stages = append(result.Stages, stageResult)
		if p.opts.Observer != nil {
			p.opts.Observer(stageResult)
		}

		if !stageResult.Success {
			result.Success = false
			for _, rest := range cfg.Stages[i+1:] {
				result.Skipped = append(result.Skipped, rest.Name)
			}
			logger.Warn().
				Str("stage", stage.Name).
				Strs("skipped", result.Skipped).
				Msg("Stage failed, halting")
			break
		}
	}

	return result, nil
}
