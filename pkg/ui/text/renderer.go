// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/moopad/pkg/types"
)

// Renderer writes the classic ">> stage :: name" report
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderStage prints every action of the stage
func (r *Renderer) RenderStage(stage types.StageResult) error {
	var b strings.Builder

	for _, a := range stage.Actions {
		fmt.Fprintf(&b, ">> %s :: %s\n", stage.Name, a.Name)
		fmt.Fprintf(&b, "command     : %s\n", a.Run)
		fmt.Fprintf(&b, "cwd         : %s\n", a.Cwd)
		if stage.DryRun {
			b.WriteString("return code : (not run)\n")
			continue
		}
		fmt.Fprintf(&b, "return code : %d\n", a.ReturnCode)
		fmt.Fprintf(&b, "stdout      : %s\n", strings.TrimRight(a.Stdout, "\n"))
		fmt.Fprintf(&b, "stderr      : %s\n", strings.TrimRight(a.Stderr, "\n"))
	}

	fmt.Fprintf(&b, "== %s: %s (%d action(s)", stage.Name, stage.Status(), len(stage.Actions))
	if stage.Duplicates > 0 {
		fmt.Fprintf(&b, ", %d duplicate(s) removed", stage.Duplicates)
	}
	b.WriteString(")\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderSummary prints the overall verdict
func (r *Renderer) RenderSummary(result types.Result) error {
	var line string
	if name, failed := result.FailedStage(); failed {
		line = fmt.Sprintf("FAILED at stage %s", name)
		if len(result.Skipped) > 0 {
			line += fmt.Sprintf(", skipped: %s", strings.Join(result.Skipped, ", "))
		}
	} else {
		line = fmt.Sprintf("OK: %d stage(s)", len(result.Stages))
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
