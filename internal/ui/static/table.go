// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/hookwire/internal/hooks"
	"github.com/raphi011/hookwire/internal/ui/styles"
)

// RenderTable creates a borderless table with aligned columns.
// Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// StatusHeaders are the columns of RenderStatus.
var StatusHeaders = []string{"EVENT", "STATE", "CONFIGURED", "SCRIPT"}

// StatusRow formats one event for the status table.
func StatusRow(s hooks.EventStatus) []string {
	configured := "no"
	if s.Configured {
		configured = "yes"
	}
	script := styles.MutedStyle.Render(styles.SymbolMissing)
	if s.Stored {
		script = s.LocalPath
	}
	return []string{s.Event, FormatSlot(s.Slot), configured, script}
}

// RenderStatus renders the status table for statuses.
func RenderStatus(statuses []hooks.EventStatus) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, StatusRow(s))
	}
	return RenderTable(StatusHeaders, rows)
}

// FormatSlot renders a slot state with its symbol and color.
func FormatSlot(state hooks.SlotState) string {
	switch state {
	case hooks.SlotOurs:
		return styles.SuccessStyle.Render(styles.SymbolOK + " " + string(state))
	case hooks.SlotManaged:
		return styles.WarningStyle.Render(styles.SymbolWarn + " " + string(state))
	case hooks.SlotForeign:
		return styles.WarningStyle.Render(styles.SymbolSkipped + " " + string(state))
	default:
		return styles.MutedStyle.Render(styles.SymbolMissing + " " + string(state))
	}
}

// FormatAction renders what happened to one event during install or
// uninstall, e.g. "pre-commit  linked".
func FormatAction(o hooks.Outcome) string {
	var action string
	switch o.Action {
	case hooks.ActionLinked, hooks.ActionCopied, hooks.ActionRemoved, hooks.ActionPruned:
		action = styles.SuccessStyle.Render(styles.SymbolOK + " " + string(o.Action))
	case hooks.ActionSkipped:
		action = styles.WarningStyle.Render(styles.SymbolSkipped + " skipped (user-owned hook at " + o.SlotPath + ")")
	default:
		action = styles.MutedStyle.Render(styles.SymbolMissing + " " + string(o.Action))
	}
	return o.Event + "  " + action
}
