package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/hatop/internal/errors"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// PrintError writes err to w. Structured errors keep their layout with the
// headline highlighted; anything else gets a ✗ prefix.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var hErr *errors.Error
	if !stderrors.As(err, &hErr) {
		fmt.Fprintln(w, errorStyle.Render(SymbolFail+" "+err.Error()))
		return
	}

	text := strings.TrimRight(hErr.Error(), "\n")
	headline, rest, _ := strings.Cut(text, "\n")
	fmt.Fprintln(w, errorStyle.Render(headline))
	if rest != "" {
		fmt.Fprintln(w, mutedStyle.Render(rest))
	}
}

// PrintSuccess writes a ✓ line.
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, successStyle.Render(SymbolSuccess)+" "+fmt.Sprintf(format, args...))
}

// PrintWarning writes a ! line.
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, warningStyle.Render(SymbolWarning)+" "+fmt.Sprintf(format, args...))
}

// PrintInfo writes a • line.
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, infoStyle.Render(SymbolInfo)+" "+fmt.Sprintf(format, args...))
}

// Muted renders secondary text such as hints and paths.
func Muted(s string) string {
	return mutedStyle.Render(s)
}
