package testutil

import (
	"github.com/arthur-debert/moopad/pkg/types"
)

// Run returns an action declaration running cmd
func Run(cmd string) types.ActionSpec {
	return types.ActionSpec{Run: types.StringPtr(cmd)}
}

// UseTemplate returns an action declaration referencing the template id
func UseTemplate(id string) types.ActionSpec {
	return types.ActionSpec{Template: types.StringPtr(id)}
}

// Rule returns a path rule triggering specs for files matching path
func Rule(path string, specs ...types.ActionSpec) types.PathRule {
	return types.PathRule{Path: path, Actions: specs}
}

// Stage returns a stage made of rules
func Stage(name string, rules ...types.PathRule) types.Stage {
	return types.Stage{Name: name, Rules: rules}
}

// Template returns an action template
func Template(id string, spec types.ActionSpec) types.ActionTemplate {
	return types.ActionTemplate{ID: id, ActionSpec: spec}
}

// Runs lists the commands of actions, in order
func Runs(actions []types.ExecutedAction) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Run)
	}
	return out
}
