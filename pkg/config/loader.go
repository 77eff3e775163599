package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/arthur-debert/moopad/pkg/actions"
	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// Format is a pipeline configuration file format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from the file extension. Anything that
// is not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

func parserFor(format Format) koanf.Parser {
	if format == FormatTOML {
		return toml.Parser()
	}
	return yaml.Parser()
}

// Loader reads pipeline configuration files
type Loader struct {
	fs     afero.Fs
	strict bool
}

// NewLoader creates a loader reading from fs, the OS filesystem when nil.
// With strict set, actions referencing unknown templates are rejected.
func NewLoader(fs afero.Fs, strict bool) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs, strict: strict}
}

// Load reads, parses, decodes and validates the configuration at path
func (l *Loader) Load(path string) (*types.Config, error) {
	logger := logging.GetLogger("config.loader")

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read configuration %s", path).
			WithDetail("path", path)
	}

	format := FormatForPath(path)
	raw, err := parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", path).
			WithDetail("path", path)
	}

	cfg, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg, l.strict); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("format", string(format)).
		Strs("stages", cfg.StageNames()).
		Int("templates", len(cfg.Templates)).
		Msg("Loaded configuration")

	return cfg, nil
}

// Load reads the configuration at path from the OS filesystem
func Load(path string, strict bool) (*types.Config, error) {
	return NewLoader(nil, strict).Load(path)
}

// Parse turns configuration source into a generic map
func Parse(data []byte, format Format) (map[string]interface{}, error) {
	raw, err := parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s configuration", format)
	}
	return raw, nil
}

func parse(data []byte, format Format) (map[string]interface{}, error) {
	raw, err := parserFor(format).Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

// Decode converts a parsed configuration into a Config. Stage order is
// case-insensitive lexicographic, ties broken by the exact name.
func Decode(raw map[string]interface{}) (*types.Config, error) {
	logger := logging.GetLogger("config.decode")
	cfg := &types.Config{}

	if rawTemplates, ok := raw[types.TemplatesKey]; ok && rawTemplates != nil {
		templates, err := decodeTemplates(rawTemplates)
		if err != nil {
			return nil, err
		}
		cfg.Templates = templates
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		if name == types.TemplatesKey {
			continue
		}
		names = append(names, name)
	}
	sortStageNames(names)

	for _, name := range names {
		rules, err := decodeRules(name, raw[name])
		if err != nil {
			return nil, err
		}
		cfg.Stages = append(cfg.Stages, types.Stage{Name: name, Rules: rules})
	}

	if len(cfg.Stages) == 0 {
		logger.Warn().Msg("Configuration declares no stages")
	}

	return cfg, nil
}

func sortStageNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}

func decodeTemplates(raw interface{}) ([]types.ActionTemplate, error) {
	if !isList(raw) {
		return nil, errors.Newf(errors.ErrConfigValid, "%s must be a list, got %T", types.TemplatesKey, raw)
	}

	var templates []types.ActionTemplate
	if err := decode(raw, &templates); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid %s", types.TemplatesKey)
	}

	logger := logging.GetLogger("config.decode")
	seen := make(map[string]bool, len(templates))
	for i, t := range templates {
		if t.ID == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "action template %d has no id", i).
				WithDetail("index", i)
		}
		if t.Template != nil {
			logger.Warn().Str("template", t.ID).Msg("Templates cannot reference other templates, ignoring")
			templates[i].Template = nil
		}
		if seen[t.ID] {
			logger.Warn().Str("template", t.ID).Msg("Duplicate template id, the first one is used")
		}
		seen[t.ID] = true
	}
	return templates, nil
}

func decodeRules(stage string, raw interface{}) ([]types.PathRule, error) {
	if raw == nil {
		return nil, nil
	}
	if !isList(raw) {
		return nil, errors.Newf(errors.ErrConfigValid, "stage %q must be a list of path rules, got %T", stage, raw).
			WithDetail("stage", stage)
	}

	var rules []types.PathRule
	if err := decode(raw, &rules); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "stage %q has invalid path rules", stage).
			WithDetail("stage", stage)
	}

	for i, r := range rules {
		if r.Path == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "stage %q rule %d has no path", stage, i).
				WithDetail("stage", stage).
				WithDetail("rule", i)
		}
	}
	return rules, nil
}

func decode(input, output interface{}) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   output,
		Metadata: &md,
		TagName:  "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return err
	}

	if len(md.Unused) > 0 {
		logger := logging.GetLogger("config.decode")
		logger.Warn().
			Strs("keys", md.Unused).
			Msg("Ignoring unknown configuration keys")
	}
	return nil
}

func isList(v interface{}) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// Validate checks every declaration, merged with its template, before
// anything runs: run must be present, cwd must be a bool or a string and
// every macro reference must be well formed and known.
func Validate(cfg *types.Config, strict bool) error {
	for _, t := range cfg.Templates {
		where := fmt.Sprintf("action template %q", t.ID)
		if err := validateSpec(t.ActionSpec, false, where); err != nil {
			return err.WithDetail("template", t.ID)
		}
	}

	for _, stage := range cfg.Stages {
		for ruleIdx, rule := range stage.Rules {
			for actionIdx, decl := range rule.Actions {
				where := fmt.Sprintf("stage %q rule %q action %d", stage.Name, rule.Path, actionIdx)

				spec, found := actions.Resolve(decl, cfg.Templates)
				if decl.HasTemplate() && !found && strict {
					return errors.Newf(errors.ErrConfigValid, "%s references unknown template %q", where, *decl.Template).
						WithDetail("stage", stage.Name).
						WithDetail("rule", ruleIdx).
						WithDetail("template", *decl.Template)
				}

				if err := validateSpec(spec, true, where); err != nil {
					return err.
						WithDetail("stage", stage.Name).
						WithDetail("rule", ruleIdx).
						WithDetail("action", actionIdx)
				}
			}
		}
	}
	return nil
}

// validateSpec checks a merged declaration. Templates are partial so they
// may omit run.
func validateSpec(spec types.ActionSpec, requireRun bool, where string) *errors.MoopadError {
	if spec.Run == nil {
		if requireRun {
			return errors.Newf(errors.ErrConfigValid, "%s has no run command", where)
		}
	} else {
		if requireRun && strings.TrimSpace(*spec.Run) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s has an empty run command", where)
		}
		if err := actions.ValidateMacros(*spec.Run); err != nil {
			return errors.Wrapf(err, errors.ErrTemplate, "%s: invalid run", where)
		}
	}

	switch cwd := spec.Cwd.(type) {
	case nil, bool:
	case string:
		if err := actions.ValidateMacros(cwd); err != nil {
			return errors.Wrapf(err, errors.ErrTemplate, "%s: invalid cwd", where)
		}
	default:
		return errors.Newf(errors.ErrConfigValid, "%s: cwd must be a string or a bool, got %T", where, spec.Cwd)
	}

	if spec.Name != nil {
		if err := actions.ValidateMacros(fmt.Sprint(spec.Name)); err != nil {
			return errors.Wrapf(err, errors.ErrTemplate, "%s: invalid name", where)
		}
	}

	return nil
}
