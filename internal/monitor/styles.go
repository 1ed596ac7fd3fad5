package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard colors
const (
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")
	ColorMuted    = lipgloss.Color("#6B6B8D")
	ColorAccent   = lipgloss.Color("#FF2E97")
)

// Base styles. The bars use reverse video so they work on any palette.
var (
	BarStyle = lipgloss.NewStyle().
			Reverse(true)

	HeaderStyle = BarStyle.
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Bold(true)

	ColumnHeaderStyle = BarStyle.
				Bold(true)

	ProxyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Reverse(true)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Bold(true).
				Reverse(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// StatusColor returns the foreground color for a service status, or the
// empty color for statuses that need no emphasis.
func StatusColor(status string) lipgloss.TerminalColor {
	switch {
	case status == "UP", status == "OPEN":
		return ColorHealthy
	case strings.HasPrefix(status, "DOWN"), status == "FULL":
		return ColorCritical
	case strings.HasPrefix(status, "MAINT"), strings.HasPrefix(status, "UP "),
		status == "NOLB", status == "DRAIN":
		return ColorWarning
	default:
		return lipgloss.NoColor{}
	}
}

// RowStyle returns the style of a record row with the given status.
func RowStyle(status string) lipgloss.Style {
	if strings.HasPrefix(status, "DOWN") || strings.HasPrefix(status, "MAINT") || status == "NOLB" {
		return lipgloss.NewStyle().Foreground(StatusColor(status))
	}
	return lipgloss.NewStyle()
}
