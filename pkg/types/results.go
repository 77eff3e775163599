package types

// StageStatus describes what happened to a stage
type StageStatus string

const (
	StageStatusPassed  StageStatus = "passed"
	StageStatusFailed  StageStatus = "failed"
	StageStatusPlanned StageStatus = "planned"
)

// StageResult is the outcome of running one stage
type StageResult struct {
	// Name of the stage
	Name string `json:"stage"`

	// Actions in post-dedup order, with results when executed
	Actions []ExecutedAction `json:"actions"`

	// Duplicates is the number of actions removed by deduplication
	Duplicates int `json:"duplicates_removed"`

	// Success is the AND of every action's success
	Success bool `json:"success"`

	// DryRun is set when the actions were compiled but not executed
	DryRun bool `json:"dry_run,omitempty"`
}

// Status returns the stage status
func (r StageResult) Status() StageStatus {
	switch {
	case r.DryRun:
		return StageStatusPlanned
	case r.Success:
		return StageStatusPassed
	default:
		return StageStatusFailed
	}
}

// Failed returns the actions that did not succeed
func (r StageResult) Failed() []ExecutedAction {
	var failed []ExecutedAction
	for _, a := range r.Actions {
		if !a.Success {
			failed = append(failed, a)
		}
	}
	return failed
}

// Result is the outcome of a pipeline run
type Result struct {
	// Stages that were processed, in order. Stages after a failing one
	// are absent.
	Stages []StageResult `json:"stages"`

	// Skipped lists the stages that never ran because an earlier one failed
	Skipped []string `json:"skipped,omitempty"`

	// Success is true when every processed stage succeeded
	Success bool `json:"success"`
}

// FailedStage returns the name of the stage that halted the pipeline
func (r Result) FailedStage() (string, bool) {
	for _, s := range r.Stages {
		if !s.DryRun && !s.Success {
			return s.Name, true
		}
	}
	return "", false
}
