package types

// TemplatesKey is the reserved top-level configuration key holding the
// action templates. It is never scheduled as a stage.
const TemplatesKey = "action_templates"

// PathRule pairs a glob pattern with the actions to trigger when a
// changed file matches it
type PathRule struct {
	Path    string       `mapstructure:"path" json:"path" yaml:"path" toml:"path"`
	Actions []ActionSpec `mapstructure:"actions" json:"actions" yaml:"actions" toml:"actions"`
}

// Stage is a named, ordered set of path rules
type Stage struct {
	Name  string
	Rules []PathRule
}

// Config is the decoded pipeline configuration
type Config struct {
	// Templates in declaration order
	Templates []ActionTemplate

	// Stages in execution order
	Stages []Stage
}

// FindTemplate returns the first template with the given id
func (c *Config) FindTemplate(id string) (ActionTemplate, bool) {
	return FindTemplate(c.Templates, id)
}

// StageNames returns the stage names in execution order
func (c *Config) StageNames() []string {
	names := make([]string, 0, len(c.Stages))
	for _, s := range c.Stages {
		names = append(names, s.Name)
	}
	return names
}

// FindTemplate returns the first template in templates with the given id
func FindTemplate(templates []ActionTemplate, id string) (ActionTemplate, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return ActionTemplate{}, false
}
