// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/moopad/pkg/types"
)

// Renderer provides JSON output for machine consumption. Each call
// writes one JSON document, so a run produces a stream of objects.
type Renderer struct {
	encoder *json.Encoder
}

type actionReport struct {
	Name       string `json:"name"`
	Command    string `json:"command"`
	Cwd        string `json:"cwd"`
	Type       string `json:"type"`
	File       string `json:"file,omitempty"`
	Pattern    string `json:"pattern,omitempty"`
	ReturnCode *int   `json:"return_code,omitempty"`
	PID        int    `json:"pid,omitempty"`
	Success    *bool  `json:"success,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}

type stageReport struct {
	Stage      string         `json:"stage"`
	Status     string         `json:"status"`
	Duplicates int            `json:"duplicates_removed"`
	Actions    []actionReport `json:"actions"`
}

type summaryReport struct {
	Success     bool     `json:"success"`
	Stages      []string `json:"stages"`
	FailedStage string   `json:"failed_stage,omitempty"`
	Skipped     []string `json:"skipped,omitempty"`
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderStage encodes one stage object
func (r *Renderer) RenderStage(stage types.StageResult) error {
	report := stageReport{
		Stage:      stage.Name,
		Status:     string(stage.Status()),
		Duplicates: stage.Duplicates,
		Actions:    make([]actionReport, 0, len(stage.Actions)),
	}

	for _, a := range stage.Actions {
		ar := actionReport{
			Name:    a.Name,
			Command: a.Run,
			Cwd:     a.Cwd,
			Type:    a.Type,
			File:    a.File,
			Pattern: a.Pattern,
			Stdout:  a.Stdout,
			Stderr:  a.Stderr,
		}
		if !stage.DryRun {
			rc, ok := a.ReturnCode, a.Success
			ar.ReturnCode = &rc
			ar.Success = &ok
			ar.PID = a.PID
			ar.DurationMS = a.Duration.Milliseconds()
		}
		report.Actions = append(report.Actions, ar)
	}

	return r.encoder.Encode(report)
}

// RenderSummary encodes the pipeline verdict
func (r *Renderer) RenderSummary(result types.Result) error {
	report := summaryReport{
		Success: result.Success,
		Stages:  make([]string, 0, len(result.Stages)),
		Skipped: result.Skipped,
	}
	for _, s := range result.Stages {
		report.Stages = append(report.Stages, s.Name)
	}
	if name, failed := result.FailedStage(); failed {
		report.FailedStage = name
	}
	return r.encoder.Encode(report)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
