// Package styles provides shared lipgloss styles for UI components.
//
// Colors are plain ANSI 256 values; downsampling for pipes and NO_COLOR
// happens in the writer, not here.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Success is used for installed hooks (green)
	Success color.Color = lipgloss.Color("82")

	// Warning is used for hooks git will not run as configured (orange)
	Warning color.Color = lipgloss.Color("214")

	// Error is used for error messages (red)
	Error color.Color = lipgloss.Color("196")

	// Muted is used for inactive text (gray)
	Muted color.Color = lipgloss.Color("240")
)

var (
	Bold         = lipgloss.NewStyle().Bold(true)
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// Status symbols
const (
	SymbolOK      = "✓"
	SymbolWarn    = "!"
	SymbolMissing = "-"
	SymbolSkipped = "○"
)
