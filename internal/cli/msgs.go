package cli

// Command descriptions
const (
	MsgRootShort = "Run the actions triggered by a set of changed files"
	MsgRootLong  = `moopad matches a list of changed files against the path rules of a
pipeline configuration, compiles the triggered actions, removes duplicates
and runs them stage by stage. Within a stage actions run concurrently; a
failing stage stops the pipeline.

Changed files come from --changes-as-file or --changes-as-string. When
neither is given a small built-in sample is used.`
	MsgRootExample = `  # Run against the files changed in the last commit
  git diff --name-only HEAD~1 | moopad -s "$(cat)"

  # Read the changed files from a file, four actions at a time
  moopad -f changed.txt -j 4

  # Show what would run without running it
  moopad -f changed.txt --dry-run`

	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"

	MsgStagesShort = "List the stages in execution order"
	MsgStagesLong  = `Stages lists the stages of the pipeline configuration in the order they
run, together with the number of path rules each one holds.`

	MsgGenConfigShort = "Print a starter pipeline configuration"
	MsgGenConfigLong  = `Gen-config prints a commented starter configuration with a couple of
action templates and two stages. Use --type toml for the TOML flavour and
--write to save it to the --config-file path instead of printing it.`
	MsgGenConfigExample = `  # Print the YAML starter
  moopad gen-config

  # Write a TOML starter to moopad.toml
  moopad gen-config -t toml -w -c moopad.toml`
)

// Flag descriptions
const (
	MsgFlagConfigFile      = "Pipeline configuration file (YAML or TOML)"
	MsgFlagWorkdir         = "Root directory the actions run from (default: current directory)"
	MsgFlagChangesFile     = "File holding the changed files, one per line"
	MsgFlagChangesString   = "Changed files, one per line"
	MsgFlagMaxProcs        = "Maximum number of concurrent actions per stage (0: unbounded)"
	MsgFlagShell           = "Shell command line used to run actions"
	MsgFlagStrictTemplates = "Fail on references to unknown action templates"
	MsgFlagDryRun          = "Compile and dedupe the actions without running them"
	MsgFlagFormat          = "Output format: auto, term, text or json"
	MsgFlagJUnit           = "Write a JUnit XML report to this path"
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagGenType         = "Configuration flavour: yaml or toml"
	MsgFlagGenWrite        = "Write the configuration to --config-file instead of stdout"
	MsgFlagGenForce        = "Overwrite an existing configuration file"
)

// Output messages
const (
	MsgVersionFormat   = "moopad version %s\n"
	MsgCommitFormat    = "Commit: %s\n"
	MsgBuiltFormat     = "Built:  %s\n"
	MsgNoStages        = "No stages configured."
	MsgStageItemFormat = "%2d. %s (%d rule(s))\n"
	MsgConfigWritten   = "Wrote %s\n"
	MsgConfigExists    = "%s already exists, use --force to overwrite it"
	MsgUnknownGenType  = "unknown configuration type %q, expected yaml or toml"
	MsgPipelineFailed  = "pipeline failed"
	MsgTomlHeader      = "# moopad pipeline configuration\n\n"
)
