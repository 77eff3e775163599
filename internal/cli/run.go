package cli

import (
	"path/filepath"

	"github.com/arthur-debert/moopad/pkg/changes"
	"github.com/arthur-debert/moopad/pkg/config"
	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/executor"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/paths"
	"github.com/arthur-debert/moopad/pkg/pipeline"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/arthur-debert/moopad/pkg/ui"
	"github.com/arthur-debert/moopad/pkg/ui/junit"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrPipelineFailed is returned when a stage fails. The report already
// says which one, so callers only need to set the exit code.
var ErrPipelineFailed = errors.New(errors.ErrActionExecute, MsgPipelineFailed)

// runPipeline loads everything the run needs, then executes the stages,
// reporting each one as soon as it is done
func runPipeline(cmd *cobra.Command, opts *rootOptions) error {
	logger := logging.GetLogger("cli")
	fs := afero.NewOsFs()

	rootDir, err := paths.ResolveWorkdir(opts.workdir)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve working directory")
	}

	settings, err := config.LoadSettings(config.SettingsOptions{
		DotEnv:    filepath.Join(rootDir, ".env"),
		Overrides: opts.settingsOverrides(cmd),
	})
	if err != nil {
		return err
	}

	format, err := ui.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader(fs, settings.StrictTemplates).Load(opts.configFile)
	if err != nil {
		return err
	}

	source := changes.Source{File: opts.changesFile}
	if cmd.Flags().Changed("changes-as-string") {
		source.Inline = &opts.changesString
	}
	files, err := source.Load(fs)
	if err != nil {
		return err
	}

	runner, err := executor.NewShellRunner(settings.Shell)
	if err != nil {
		return err
	}
	exec, err := executor.New(executor.Options{
		Runner:   runner,
		MaxProcs: settings.MaxProcs,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("root_dir", rootDir).
		Str("config", opts.configFile).
		Int("changed_files", len(files)).
		Int64("max_procs", settings.MaxProcs).
		Bool("dry_run", settings.DryRun).
		Msg("Starting run")

	p := pipeline.New(pipeline.Options{
		RootDir:         rootDir,
		Executor:        exec,
		StrictTemplates: settings.StrictTemplates,
		DryRun:          settings.DryRun,
		Observer: func(stage types.StageResult) {
			if err := renderer.RenderStage(stage); err != nil {
				logger.Error().Err(err).Str("stage", stage.Name).Msg("Failed to render stage")
			}
		},
	})

	result, err := p.Run(cmd.Context(), cfg, files)
	if err != nil {
		return err
	}

	if err := renderer.RenderSummary(result); err != nil {
		return err
	}

	if settings.JUnit != "" {
		if err := junit.WriteFile(fs, settings.JUnit, result); err != nil {
			return err
		}
		logger.Info().Str("path", settings.JUnit).Msg("JUnit report written")
	}

	if !result.Success {
		return ErrPipelineFailed
	}
	return nil
}
