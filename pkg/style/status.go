package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/pterm/pterm"
)

// StatusStyle returns the badge style for a stage status
func StatusStyle(status types.StageStatus) *pterm.Style {
	switch status {
	case types.StageStatusPassed:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.StageStatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case types.StageStatusPlanned:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusBadge renders the status as a padded, colored label
func StatusBadge(status types.StageStatus) string {
	return StatusStyle(status).Sprint(" " + strings.ToUpper(string(status)) + " ")
}

// ActionIndicator picks the mark shown in front of an action
func ActionIndicator(a types.ExecutedAction, dryRun bool) string {
	switch {
	case dryRun:
		return PendingIndicator
	case a.Success:
		return SuccessIndicator
	default:
		return ErrorIndicator
	}
}

// RenderError formats err for the terminal, showing its code when it has one
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}
