// Package ui styles the plain command output of hatop: error reports and
// the one-line status messages printed by init and emulate.
//
// The dashboard itself renders through internal/monitor. This package only
// covers what is printed before the alternate screen opens or after it
// closes.
//
// Colors are ANSI codes so the terminal's palette applies. Lip Gloss drops
// them automatically when the output isn't a terminal, and --no-color
// forces that with lipgloss.SetColorProfile(termenv.Ascii).
package ui
