package types

// DefaultActionType is the type given to actions that do not declare one
const DefaultActionType = "shell"

// ActionSpec is a partial action declaration. It is used both for the
// actions listed under a path rule and for the reusable action templates.
// Every field is optional; nil means the field was not declared.
type ActionSpec struct {
	// Run is the command line handed to the shell
	Run *string `mapstructure:"run" json:"run,omitempty" yaml:"run,omitempty" toml:"run,omitempty"`

	// Cwd is either a bool (false: root dir, true: the changed file's dir)
	// or a string that may contain macros
	Cwd interface{} `mapstructure:"cwd" json:"cwd,omitempty" yaml:"cwd,omitempty" toml:"cwd,omitempty"`

	// Type of the action, "shell" when omitted
	Type *string `mapstructure:"type" json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`

	// Name is the display label; non-string values are coerced to strings
	Name interface{} `mapstructure:"name" json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Template references an ActionTemplate by id
	Template *string `mapstructure:"template" json:"template,omitempty" yaml:"template,omitempty" toml:"template,omitempty"`
}

// HasTemplate reports whether the spec references a template
func (s ActionSpec) HasTemplate() bool {
	return s.Template != nil && *s.Template != ""
}

// ActionTemplate is a named, reusable partial action
type ActionTemplate struct {
	ID         string `mapstructure:"id" json:"id" yaml:"id" toml:"id"`
	ActionSpec `mapstructure:",squash" yaml:",inline"`
}

// StringPtr returns a pointer to s. Handy when building specs in code.
func StringPtr(s string) *string {
	return &s
}
