package actions

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Compiler
type Options struct {
	// RootDir is the absolute directory relative changed files live in
	RootDir string

	// Templates available to declarations
	Templates []types.ActionTemplate

	// StrictTemplates turns a reference to an unknown template into a
	// configuration error instead of a warning
	StrictTemplates bool

	// Logger overrides the component logger
	Logger *zerolog.Logger
}

// Compiler compiles action declarations for changed files
type Compiler struct {
	rootDir   string
	templates []types.ActionTemplate
	strict    bool
	logger    zerolog.Logger
}

// NewCompiler creates a compiler
func NewCompiler(opts Options) *Compiler {
	logger := logging.GetLogger("actions.compiler")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Compiler{
		rootDir:   opts.RootDir,
		templates: opts.Templates,
		strict:    opts.StrictTemplates,
		logger:    logger,
	}
}

// Compile is a shorthand for a lenient Compiler's Compile
func Compile(changedFile string, decl types.ActionSpec, templates []types.ActionTemplate, rootDir string) (types.CompiledAction, error) {
	return NewCompiler(Options{RootDir: rootDir, Templates: templates}).Compile(changedFile, decl)
}

// Compile produces the fully resolved action triggered by changedFile
func (c *Compiler) Compile(changedFile string, decl types.ActionSpec) (types.CompiledAction, error) {
	spec, found := Resolve(decl, c.templates)
	if decl.HasTemplate() && !found {
		if c.strict {
			return types.CompiledAction{}, errors.Newf(errors.ErrConfigValid,
				"action references unknown template %q", *decl.Template).
				WithDetail("template", *decl.Template)
		}
		c.logger.Warn().
			Str("template", *decl.Template).
			Str("file", changedFile).
			Msg("Action references an unknown template, using the declaration as is")
	}

	if spec.Run == nil {
		return types.CompiledAction{}, errors.New(errors.ErrConfigValid, "action has no run command")
	}

	macros := NewMacros(changedFile, c.rootDir)

	run, err := macros.Expand(*spec.Run)
	if err != nil {
		return types.CompiledAction{}, errors.Wrap(err, errors.ErrTemplate, "cannot expand run")
	}
	if strings.TrimSpace(run) == "" {
		return types.CompiledAction{}, errors.Newf(errors.ErrConfigValid,
			"run command %q is empty once expanded", *spec.Run)
	}

	cwd, err := resolveCwd(spec.Cwd, macros)
	if err != nil {
		return types.CompiledAction{}, err
	}

	name, err := resolveName(spec.Name, run, macros)
	if err != nil {
		return types.CompiledAction{}, err
	}

	action := types.CompiledAction{
		Run:  run,
		Cwd:  cwd,
		Type: *spec.Type,
		Name: name,
		File: changedFile,
	}

	c.logger.Trace().
		Str("file", changedFile).
		Str("name", action.Name).
		Str("run", action.Run).
		Str("cwd", action.Cwd).
		Msg("Compiled action")

	return action, nil
}

// resolveCwd handles the three cwd forms. Relative results are anchored
// at the root dir so every action runs in an absolute directory.
func resolveCwd(cwd interface{}, macros Macros) (string, error) {
	switch v := cwd.(type) {
	case nil:
		return macros.RootDir, nil
	case bool:
		if v {
			return macros.DirPath, nil
		}
		return macros.RootDir, nil
	case string:
		expanded, err := macros.Expand(v)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTemplate, "cannot expand cwd")
		}
		if expanded == "" {
			return macros.RootDir, nil
		}
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(macros.RootDir, expanded)
		}
		return expanded, nil
	default:
		return "", errors.Newf(errors.ErrConfigValid, "cwd must be a string or a bool, got %T", cwd)
	}
}

// resolveName uses the declared name, or the first word of the command
func resolveName(name interface{}, run string, macros Macros) (string, error) {
	if name == nil {
		return strings.Fields(run)[0], nil
	}

	raw, ok := name.(string)
	if !ok {
		raw = scalarString(name)
	}

	expanded, err := macros.Expand(raw)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTemplate, "cannot expand name")
	}
	return expanded, nil
}

// scalarString renders a non-string name the way the configuration wrote
// it: booleans capitalised and floats always carrying a fraction or an
// exponent.
func scalarString(v interface{}) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float32:
		return floatString(float64(x))
	case float64:
		return floatString(x)
	default:
		return fmt.Sprint(v)
	}
}

func floatString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); f != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
