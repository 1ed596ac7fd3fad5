package monitor

import (
	"fmt"
	"strings"
)

// DefaultStatusBarWidth is the width of the header gauges, brackets included.
const DefaultStatusBarWidth = 60

// StatusBar is a bracketed text gauge with a "cur/max" label at its right end.
type StatusBar struct {
	Width int
	Min   int64
	Max   int64
	Cur   int64
}

// NewStatusBar returns an empty gauge ranging 0-100.
func NewStatusBar(width int) StatusBar {
	return StatusBar{Width: width, Max: 100}
}

// Update sets the maximum (never below Min) and then the current value,
// clamped to [Min, Max].
func (b StatusBar) Update(cur, maxVal int64) StatusBar {
	b.Max = max(maxVal, b.Min)
	b.Cur = min(max(cur, b.Min), b.Max)
	return b
}

// Fraction returns the filled share of the bar, in [0, 1].
func (b StatusBar) Fraction() float64 {
	span := b.Max - b.Min
	if span == 0 {
		return 0
	}
	return min(float64(b.Cur)/float64(span), 1)
}

// String renders the gauge, e.g. "[|||||      12/40]".
func (b StatusBar) String() string {
	label := fmt.Sprintf("%d/%d", b.Cur, b.Max)
	space := b.Width - 2
	used := b.Fraction()

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat("|", int(float64(space)*used)))
	sb.WriteString(strings.Repeat(" ", int(float64(space)*(1-used))))

	// The label is cut down when it doesn't fit between the brackets.
	if room := max(b.Width-2, 0); len(label) > room {
		label = label[:room]
	}
	bar := sb.String()
	if keep := b.Width - len(label) - 1; keep < len(bar) {
		bar = bar[:keep]
	}
	return bar + label + "]"
}
