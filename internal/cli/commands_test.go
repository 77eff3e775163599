package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/moopad/pkg/config"
	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/testutil"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// project writes a pipeline configuration into a fresh workdir and
// returns the workdir and the configuration path
func project(t *testing.T, cfg string) (string, string) {
	t.Helper()
	testutil.Isolate(t)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir, testutil.WriteFile(t, dir, "moopad.yaml", cfg)
}

const buildConfig = `
build:
  - path: "*.txt"
    actions:
      - run: echo built ${file_name}
        name: echo ${file_name}
`

func TestRunPipeline(t *testing.T) {
	testutil.RequireShell(t)
	dir, cfg := project(t, buildConfig)

	out, err := execute(t, "-c", cfg, "-d", dir, "-o", "text", "-s", "a.txt\nREADME.md\na.txt")
	require.NoError(t, err)

	assert.Contains(t, out, ">> build :: echo a.txt")
	assert.Contains(t, out, "stdout      : built a.txt")
	assert.Contains(t, out, "cwd         : "+dir)
	assert.Contains(t, out, "== build: passed (1 action(s), 1 duplicate(s) removed)")
	assert.Contains(t, out, "OK: 1 stage(s)")
	assert.NotContains(t, out, "README.md")
}

func TestRunPipelineChangesFromFile(t *testing.T) {
	testutil.RequireShell(t)
	dir, cfg := project(t, buildConfig)
	list := testutil.WriteFile(t, dir, "changed.txt", "one.txt\n\n  two.txt  \n")

	out, err := execute(t, "-c", cfg, "-d", dir, "-o", "text", "-f", list)
	require.NoError(t, err)

	assert.Contains(t, out, "built one.txt")
	assert.Contains(t, out, "built two.txt")
}

func TestRunPipelineStopsAtFailingStage(t *testing.T) {
	testutil.RequireShell(t)
	dir, cfg := project(t, `
a-check:
  - path: "*"
    actions:
      - run: exit 3
      - run: echo sibling
b-deploy:
  - path: "*"
    actions:
      - run: touch ${root_dir}/deployed
`)

	out, err := execute(t, "-c", cfg, "-d", dir, "-o", "text", "-s", "x")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrPipelineFailed)
	assert.Contains(t, out, "return code : 3")
	assert.Contains(t, out, "stdout      : sibling")
	assert.Contains(t, out, "FAILED at stage a-check, skipped: b-deploy")
	assert.NoFileExists(t, filepath.Join(dir, "deployed"))
}

func TestRunPipelineDryRun(t *testing.T) {
	dir, cfg := project(t, `
deploy:
  - path: "*"
    actions:
      - run: touch ${root_dir}/deployed
`)

	out, err := execute(t, "-c", cfg, "-d", dir, "-o", "text", "-s", "x", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "return code : (not run)")
	assert.Contains(t, out, "== deploy: planned")
	assert.NoFileExists(t, filepath.Join(dir, "deployed"))
}

func TestRunPipelineJSON(t *testing.T) {
	testutil.RequireShell(t)
	dir, cfg := project(t, buildConfig)

	out, err := execute(t, "-c", cfg, "-d", dir, "-o", "json", "-s", "a.txt")
	require.NoError(t, err)

	assert.Contains(t, out, `"stage": "build"`)
	assert.Contains(t, out, `"stdout": "built a.txt\n"`)
}

func TestRunPipelineJUnit(t *testing.T) {
	testutil.RequireShell(t)
	dir, cfg := project(t, buildConfig)
	report := filepath.Join(dir, "reports", "junit.xml")

	_, err := execute(t, "-c", cfg, "-d", dir, "-o", "text", "-s", "a.txt", "--junit", report)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(report))
	suite := doc.FindElement("//testsuite[@name='build']")
	require.NotNil(t, suite)
	assert.NotNil(t, suite.FindElement("testcase[@name='echo a.txt']"))
}

func TestRunPipelineMaxProcsFromEnvironment(t *testing.T) {
	testutil.RequireShell(t)
	dir, cfg := project(t, buildConfig)
	t.Setenv("MOOPAD_MAX_PROCS", "-1")

	_, err := execute(t, "-c", cfg, "-d", dir, "-s", "a.txt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsLoad))

	// the flag wins over the environment
	_, err = execute(t, "-c", cfg, "-d", dir, "-o", "text", "-s", "a.txt", "-j", "1")
	assert.NoError(t, err)
}

func TestRunPipelineConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		code   errors.ErrorCode
	}{
		{
			name:   "unknown macro in a later stage",
			config: "a:\n  - path: '*'\n    actions:\n      - run: touch ${root_dir}/ran\nz:\n  - path: '*'\n    actions:\n      - run: echo $nope\n",
			code:   errors.ErrTemplate,
		},
		{
			name:   "empty run in a later stage",
			config: "a:\n  - path: '*'\n    actions:\n      - run: touch ${root_dir}/ran\nb:\n  - path: '*'\n    actions:\n      - run: ''\n",
			code:   errors.ErrConfigValid,
		},
		{
			name:   "stage is not a list",
			config: "a: 3\n",
			code:   errors.ErrConfigValid,
		},
		{
			name:   "unknown template under strict mode",
			config: "a:\n  - path: '*'\n    actions:\n      - template: ghost\n        run: echo\n",
			args:   []string{"--strict-templates"},
			code:   errors.ErrConfigValid,
		},
		{
			name:   "broken yaml",
			config: "a: [\n",
			code:   errors.ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, cfg := project(t, tt.config)
			marker := filepath.Join(dir, "ran")

			args := append([]string{"-c", cfg, "-d", dir, "-o", "text", "-s", "x"}, tt.args...)
			_, err := execute(t, args...)

			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.NoFileExists(t, marker)
		})
	}
}

func TestRunPipelineMissingConfig(t *testing.T) {
	testutil.Isolate(t)

	_, err := execute(t, "-c", filepath.Join(t.TempDir(), "absent.yaml"), "-o", "text")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestRunPipelineRejectsBothChangeSources(t *testing.T) {
	dir, cfg := project(t, buildConfig)

	_, err := execute(t, "-c", cfg, "-d", dir, "-f", "list.txt", "-s", "a.txt")
	assert.Error(t, err)
}

func TestStagesCommand(t *testing.T) {
	_, cfg := project(t, `
action_templates: []
20-test: []
10-lint:
  - path: "*.go"
    actions:
      - run: go vet
  - path: "*.py"
    actions:
      - run: ruff check
`)

	out, err := execute(t, "stages", "-c", cfg)
	require.NoError(t, err)

	assert.Equal(t, " 1. 10-lint (2 rule(s))\n 2. 20-test (0 rule(s))\n", out)
}

func TestStagesCommandEmpty(t *testing.T) {
	_, cfg := project(t, "action_templates: []\n")

	out, err := execute(t, "stages", "-c", cfg)
	require.NoError(t, err)
	assert.Equal(t, MsgNoStages+"\n", out)
}

func TestGenConfigYAML(t *testing.T) {
	testutil.Isolate(t)

	out, err := execute(t, "gen-config")
	require.NoError(t, err)
	assert.Equal(t, string(config.SampleConfig()), out)
}

func TestGenConfigTOMLLoads(t *testing.T) {
	data, err := generateConfig("toml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), MsgTomlHeader))

	raw, err := config.Parse(data, config.FormatTOML)
	require.NoError(t, err)
	cfg, err := config.Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"10-lint", "20-test"}, cfg.StageNames())
	require.Len(t, cfg.Templates, 2)
	assert.Equal(t, "go-test", cfg.Templates[0].ID)
	assert.NoError(t, config.Validate(cfg, true))
}

func TestGenConfigUnknownType(t *testing.T) {
	_, err := generateConfig("ini")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGenConfigWrite(t *testing.T) {
	testutil.Isolate(t)
	path := filepath.Join(t.TempDir(), "moopad.toml")

	out, err := execute(t, "gen-config", "-t", "toml", "-w", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"10-lint", "20-test"}, cfg.StageNames())

	// refuses to overwrite without --force
	_, err = execute(t, "gen-config", "-t", "toml", "-w", "-c", path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = execute(t, "gen-config", "-t", "toml", "-w", "--force", "-c", path)
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	testutil.Isolate(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "moopad version dev")
}

func TestHelpTopics(t *testing.T) {
	testutil.Isolate(t)

	out, err := execute(t, "help", "topics")
	require.NoError(t, err)
	for _, topic := range []string{"configuration", "macros", "templates", "settings", "--dry-run", "--max-procs", "--shell"} {
		assert.Contains(t, out, topic)
	}

	out, err = execute(t, "help", "macros")
	require.NoError(t, err)
	assert.Contains(t, out, "placeholder")
}

func TestSettingsOverridesOnlyChangedFlags(t *testing.T) {
	cmd := NewRootCmd()
	opts := &rootOptions{}
	require.NoError(t, cmd.ParseFlags([]string{"-j", "4", "--dry-run"}))

	// the values come from opts, only the set flags are considered
	opts.maxProcs = 4
	opts.dryRun = true
	opts.shell = "ignored"

	assert.Equal(t, map[string]interface{}{
		config.KeyMaxProcs: int64(4),
		config.KeyDryRun:   true,
	}, opts.settingsOverrides(cmd))
}

func TestRunPipelineReadsWorkdirDotEnv(t *testing.T) {
	testutil.RequireShell(t)
	dir, cfg := project(t, buildConfig)
	testutil.WriteFile(t, dir, ".env", "MOOPAD_FORMAT=json\n")

	out, err := execute(t, "-c", cfg, "-d", dir, "-s", "a.txt")
	require.NoError(t, err)
	assert.Contains(t, out, `"stage": "build"`)

	// flags still win
	out, err = execute(t, "-c", cfg, "-d", dir, "-s", "a.txt", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, ">> build :: echo a.txt")
}
