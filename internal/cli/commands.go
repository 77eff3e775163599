package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/moopad/internal/version"
	"github.com/arthur-debert/moopad/pkg/cobrax/topics"
	"github.com/arthur-debert/moopad/pkg/config"
	"github.com/arthur-debert/moopad/pkg/executor"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help
var helpFiles embed.FS

// rootOptions holds the values bound to the root command flags
type rootOptions struct {
	verbosity       int
	configFile      string
	workdir         string
	changesFile     string
	changesString   string
	maxProcs        int64
	shell           string
	strictTemplates bool
	dryRun          bool
	format          string
	junit           string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "moopad",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config-file", "c", paths.DefaultConfigFile, MsgFlagConfigFile)

	// Run flags
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.workdir, "workdir", "d", "", MsgFlagWorkdir)
	flags.StringVarP(&opts.changesFile, "changes-as-file", "f", "", MsgFlagChangesFile)
	flags.StringVarP(&opts.changesString, "changes-as-string", "s", "", MsgFlagChangesString)
	flags.Int64VarP(&opts.maxProcs, "max-procs", "j", 0, MsgFlagMaxProcs)
	flags.StringVar(&opts.shell, "shell", executor.DefaultShell, MsgFlagShell)
	flags.BoolVar(&opts.strictTemplates, "strict-templates", false, MsgFlagStrictTemplates)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVarP(&opts.format, "format", "o", "auto", MsgFlagFormat)
	flags.StringVar(&opts.junit, "junit", "", MsgFlagJUnit)
	rootCmd.MarkFlagsMutuallyExclusive("changes-as-file", "changes-as-string")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStagesCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))

	// Topic help is optional, the regular help still works without it
	if source, err := fs.Sub(helpFiles, "help"); err == nil {
		_ = topics.InitializeWithOptions(rootCmd, source, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

// settingsOverrides turns the run flags set on the command line into
// settings overrides. Flags left at their default do not override the
// settings file or the environment.
func (o *rootOptions) settingsOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	set := func(flag, key string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			overrides[key] = value
		}
	}

	set("max-procs", config.KeyMaxProcs, o.maxProcs)
	set("shell", config.KeyShell, o.shell)
	set("format", config.KeyFormat, o.format)
	set("strict-templates", config.KeyStrictTemplates, o.strictTemplates)
	set("dry-run", config.KeyDryRun, o.dryRun)
	set("junit", config.KeyJUnit, o.junit)

	return overrides
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newStagesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: MsgStagesShort,
		Long:  MsgStagesLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(config.SettingsOptions{})
			if err != nil {
				return err
			}

			cfg, err := config.Load(opts.configFile, settings.StrictTemplates)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cfg.Stages) == 0 {
				_, err := fmt.Fprintln(out, MsgNoStages)
				return err
			}
			for i, stage := range cfg.Stages {
				if _, err := fmt.Fprintf(out, MsgStageItemFormat, i+1, stage.Name, len(stage.Rules)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
