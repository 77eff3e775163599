// Package ui renders run reports in different formats.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/arthur-debert/moopad/pkg/ui/json"
	"github.com/arthur-debert/moopad/pkg/ui/terminal"
	"github.com/arthur-debert/moopad/pkg/ui/text"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format names a report renderer, as accepted by -o and the format setting
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

var formatNames = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// ParseFormat accepts a format name in any case
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput,
		"unknown report format %q (expected auto, term, text or json)", s).
		WithDetail("format", s)
}

// DetectFormat resolves auto for out. Runs under CI, with NO_COLOR or on
// a dumb terminal report as plain text, as does anything that is not an
// interactive colour terminal.
func DetectFormat(out *os.File) Format {
	return detectFormat(out, os.Getenv)
}

func detectFormat(out *os.File, getenv func(string) string) Format {
	if getenv("CI") != "" || getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return FormatText
	}

	fd := out.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(out).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Renderer is the common interface for all report renderers
type Renderer interface {
	// RenderStage reports one stage as soon as it is done
	RenderStage(stage types.StageResult) error

	// RenderSummary reports the pipeline verdict once the run is over
	RenderSummary(result types.Result) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. Auto only picks the terminal
// renderer when writing straight to a colour terminal.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return text.New(output), nil
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown report format %q", string(format))
	}
}
