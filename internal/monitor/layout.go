package monitor

import (
	"strings"

	"github.com/rileyhilliard/hatop/internal/stats"
)

// Screen bounds. Terminals smaller than the minimum cannot hold the header
// plus a useful table; width beyond the maximum is ignored for layout.
const (
	ScreenMinWidth  = 78
	ScreenMinHeight = 20
	ScreenMaxWidth  = 200
	ScreenMaxHeight = 200
)

// columnSep joins adjacent cells.
const columnSep = " "

// DistributeWidth computes effective column widths for a terminal that is
// actual columns wide, given specs whose minimum widths were laid out for
// base columns. Excess width is handed out left to right: with no more
// excess than columns, the leftmost columns gain one each; otherwise every
// column gains excess/len(specs) and the leftmost excess%len(specs) columns
// one more. A column that would grow past its MaxWidth is held there and
// the surplus is spread over the unbounded columns the same way, so the
// widths always account for every column of the terminal.
func DistributeWidth(specs []ColumnSpec, base, actual int) []int {
	n := len(specs)
	widths := make([]int, n)
	if actual > ScreenMaxWidth {
		actual = ScreenMaxWidth
	}
	excess := actual - base

	var unbounded []int
	surplus := 0
	for i, spec := range specs {
		w := spec.MinWidth + share(excess, n, i)
		if spec.MaxWidth > 0 && w > spec.MaxWidth {
			surplus += w - spec.MaxWidth
			w = spec.MaxWidth
		}
		if spec.MaxWidth == 0 {
			unbounded = append(unbounded, i)
		}
		widths[i] = max(w, spec.MinWidth)
	}

	if surplus > 0 {
		if len(unbounded) == 0 {
			// Nowhere to put it; the last column absorbs the overflow.
			widths[n-1] += surplus
			return widths
		}
		for j, i := range unbounded {
			widths[i] += share(surplus, len(unbounded), j)
		}
	}
	return widths
}

// share is column i's portion of extra width spread over n columns.
func share(extra, n, i int) int {
	if extra <= 0 || n == 0 {
		return 0
	}
	if extra <= n {
		if i < extra {
			return 1
		}
		return 0
	}
	s := extra / n
	if i < extra%n {
		s++
	}
	return s
}

// Layout is a mode's columns resolved against a terminal width.
type Layout struct {
	Mode    Mode
	Columns []ColumnSpec
	Widths  []int
}

// NewLayout resolves the mode's columns for the given terminal width.
func NewLayout(mode Mode, termWidth int) Layout {
	specs := Columns(mode)
	return Layout{
		Mode:    mode,
		Columns: specs,
		Widths:  DistributeWidth(specs, ScreenMinWidth, termWidth),
	}
}

// Header renders the column titles.
func (l Layout) Header() string {
	cells := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		cells[i] = Pad(Trim(c.Header, l.Widths[i]), l.Widths[i], c.Align)
	}
	return strings.Join(cells, columnSep)
}

// Row renders one service record.
func (l Layout) Row(rec *stats.ServiceRecord) string {
	cells := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		v, _ := rec.Field(c.Field)
		cells[i] = Pad(FormatCell(v, l.Widths[i]), l.Widths[i], c.Align)
	}
	return strings.Join(cells, columnSep)
}
