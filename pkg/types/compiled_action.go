package types

import "time"

// CompiledAction is a fully resolved action: template merged, every
// macro substituted, ready to run
type CompiledAction struct {
	// Run is the shell command line
	Run string `json:"run"`

	// Cwd is the absolute working directory
	Cwd string `json:"cwd"`

	// Type of the action
	Type string `json:"type"`

	// Name is the display label
	Name string `json:"name"`

	// File is the changed file that triggered the action
	File string `json:"file,omitempty"`

	// Pattern is the path rule pattern the file matched
	Pattern string `json:"pattern,omitempty"`
}

// Signature identifies duplicate actions. Name and provenance are ignored.
type Signature struct {
	Run  string
	Cwd  string
	Type string
}

// Signature returns the dedup key of the action
func (a CompiledAction) Signature() Signature {
	return Signature{Run: a.Run, Cwd: a.Cwd, Type: a.Type}
}

// ExecutedAction is a compiled action with its execution results attached
type ExecutedAction struct {
	CompiledAction

	// Stdout and Stderr are the captured output streams
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`

	// ReturnCode is the process exit code, -1 when the process never ran
	// or was killed by a signal
	ReturnCode int `json:"return_code"`

	// PID of the process, 0 when it never started
	PID int `json:"pid"`

	// Success is true iff ReturnCode is zero
	Success bool `json:"success"`

	// Duration is the wall time between launch and exit
	Duration time.Duration `json:"duration"`

	// Err holds a launch or wait failure
	Err error `json:"-"`
}
