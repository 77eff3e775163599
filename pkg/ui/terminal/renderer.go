// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/moopad/pkg/style"
	"github.com/arthur-debert/moopad/pkg/types"
)

// Renderer provides rich terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderStage prints a stage header followed by one block per action.
// Output is only shown for failed actions, or for all of them when the
// stage failed.
func (r *Renderer) RenderStage(stage types.StageResult) error {
	var b strings.Builder

	header := fmt.Sprintf("%s %s", style.StatusBadge(stage.Status()), style.StageStyle.Render(stage.Name))
	if stage.Duplicates > 0 {
		header += " " + style.MutedStyle.Render(fmt.Sprintf("(%d duplicate(s) removed)", stage.Duplicates))
	}
	b.WriteString(header + "\n")

	if len(stage.Actions) == 0 {
		b.WriteString(style.Indent(style.MutedStyle.Render("no matching actions"), 1) + "\n")
	}

	for _, a := range stage.Actions {
		b.WriteString(style.Indent(r.renderAction(a, stage), 1) + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderAction(a types.ExecutedAction, stage types.StageResult) string {
	var lines []string

	title := fmt.Sprintf("%s %s", style.ActionIndicator(a, stage.DryRun), style.ActionNameStyle.Render(a.Name))
	if !stage.DryRun {
		title += " " + style.MutedStyle.Render(fmt.Sprintf("rc=%d %s", a.ReturnCode, a.Duration.Round(time.Millisecond)))
	}
	lines = append(lines, title)
	lines = append(lines, field("command", style.CommandStyle.Render(a.Run)))
	lines = append(lines, field("cwd", style.PathStyle.Render(a.Cwd)))

	if !stage.DryRun && (!a.Success || !stage.Success) {
		if out := strings.TrimRight(a.Stdout, "\n"); out != "" {
			lines = append(lines, field("stdout", ""), style.OutputStyle.Render(out))
		}
		if out := strings.TrimRight(a.Stderr, "\n"); out != "" {
			lines = append(lines, field("stderr", ""), style.OutputStyle.Render(style.ErrorStyle.Render(out)))
		}
	}

	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	return "  " + style.LabelStyle.Render(label) + value
}

// RenderSummary prints the final verdict line
func (r *Renderer) RenderSummary(result types.Result) error {
	var line string
	if name, failed := result.FailedStage(); failed {
		line = style.ErrorStyle.Render(fmt.Sprintf("✗ stage %s failed", name))
		if len(result.Skipped) > 0 {
			line += " " + style.MutedStyle.Render("skipped: "+strings.Join(result.Skipped, ", "))
		}
	} else {
		line = style.SuccessStyle.Render(fmt.Sprintf("✓ %d stage(s) passed", len(result.Stages)))
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, style.RenderError(err))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.NormalStyle.Render(msg))
	return err
}
