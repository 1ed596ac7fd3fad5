package monitor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rileyhilliard/hatop/internal/stats"
)

type prefix struct {
	min    uint64
	symbol string
}

// Prefix tables, largest first.
var (
	binaryPrefixes = []prefix{
		{1 << 20, "M"},
		{1 << 10, "K"},
	}
	metricPrefixes = []prefix{
		{1000 * 1000 * 1000, "G"},
		{1000 * 1000, "M"},
		{1000, "k"},
	}
	timePrefixes = []prefix{
		{60 * 60 * 24, "d"},
		{60 * 60, "h"},
		{60, "m"},
	}
)

// HumanBinary renders a byte count with base-1024 prefixes: 1536 is "1.50K",
// 500 is "500B".
func HumanBinary(n uint64) string {
	for _, p := range binaryPrefixes {
		if n/p.min > 0 {
			return fmt.Sprintf("%.2f%s", float64(n)/float64(p.min), p.symbol)
		}
	}
	return fmt.Sprintf("%dB", n)
}

// HumanMetric renders a counter with base-1000 prefixes: 2500000 is "2.5M".
func HumanMetric(n uint64) string {
	for _, p := range metricPrefixes {
		if n/p.min > 0 {
			return fmt.Sprintf("%.1f%s", float64(n)/float64(p.min), p.symbol)
		}
	}
	return fmt.Sprintf("%d", n)
}

// HumanTime renders seconds in the largest unit with a non-zero quotient:
// 7200 is "2h", 59 is "59s".
func HumanTime(seconds uint64) string {
	for _, p := range timePrefixes {
		if q := seconds / p.min; q > 0 {
			return fmt.Sprintf("%d%s", q, p.symbol)
		}
	}
	return fmt.Sprintf("%ds", seconds)
}

// Trim shortens s to at most width cells. Strings that fit are returned
// unchanged; otherwise width 1 keeps the first character, widths above 5
// keep the tail behind "..", and anything else becomes "...".
func Trim(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return runewidth.Truncate(s, 1, "")
	}
	if width > 5 {
		return ".." + tail(s, width-2)
	}
	return "..."[:min(3, width)]
}

// tail returns the longest suffix of s that fits in width cells.
func tail(s string, width int) string {
	runes := []rune(s)
	used := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if used+w > width {
			break
		}
		used += w
		i--
	}
	return string(runes[i:])
}

// FormatCell renders a field value for a column of the given width.
// Bytes and seconds are always humanized; plain counters only when the
// digits would not fit. Blank fields render empty.
func FormatCell(v stats.Value, width int) string {
	text := v.Text()
	if text == "" {
		return ""
	}
	if v.Type == stats.TypeInt {
		switch v.Unit {
		case stats.UnitBytes:
			text = HumanBinary(v.Num)
		case stats.UnitSeconds:
			text = HumanTime(v.Num)
		case stats.UnitCount:
			if runewidth.StringWidth(text) > width {
				text = HumanMetric(v.Num)
			}
		}
	}
	return Trim(text, width)
}

// Pad aligns s within width cells.
func Pad(s string, width int, align Align) string {
	switch align {
	case AlignRight:
		return runewidth.FillLeft(s, width)
	case AlignCenter:
		gap := width - runewidth.StringWidth(s)
		if gap <= 0 {
			return s
		}
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return runewidth.FillRight(s, width)
	}
}
