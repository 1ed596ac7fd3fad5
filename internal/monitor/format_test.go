package monitor

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/hatop/internal/stats"
)

func TestHumanBinary(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0B"},
		{500, "500B"},
		{1023, "1023B"},
		{1024, "1.00K"},
		{1536, "1.50K"},
		{1 << 20, "1.00M"},
		{5 << 30, "5120.00M"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanBinary(tt.in))
		})
	}
}

func TestHumanMetric(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{999, "999"},
		{1000, "1.0k"},
		{1260, "1.3k"},
		{2500000, "2.5M"},
		{3000000000, "3.0G"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanMetric(tt.in))
		})
	}
}

func TestHumanTime(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0s"},
		{59, "59s"},
		{60, "1m"},
		{3599, "59m"},
		{7200, "2h"},
		{86400, "1d"},
		{90000, "1d"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTime(tt.in))
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"width one keeps first char", "hello", 1, "h"},
		{"wide keeps tail", "abcdefghij", 6, "..ghij"},
		{"narrow becomes ellipsis", "abcdefgh", 4, "..."},
		{"ellipsis never exceeds width", "abc", 2, ".."},
		{"zero width", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trim(tt.in, tt.width))
		})
	}
}

func TestTrim_NeverExceedsWidth(t *testing.T) {
	inputs := []string{"", "a", "web", "FRONTEND", "very-long-backend-server-name-01", "1.50K"}
	for _, s := range inputs {
		for w := 1; w <= 40; w++ {
			got := Trim(s, w)
			assert.LessOrEqual(t, runewidth.StringWidth(got), w, "Trim(%q, %d)", s, w)
			if w >= len(s) {
				assert.Equal(t, s, got)
			}
		}
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name  string
		value stats.Value
		width int
		want  string
	}{
		{
			name:  "bytes always humanized",
			value: stats.Value{Type: stats.TypeInt, Unit: stats.UnitBytes, Num: 1536},
			width: 12,
			want:  "1.50K",
		},
		{
			name:  "seconds always humanized",
			value: stats.Value{Type: stats.TypeInt, Unit: stats.UnitSeconds, Num: 7200},
			width: 5,
			want:  "2h",
		},
		{
			name:  "counter that fits is untouched",
			value: stats.Value{Type: stats.TypeInt, Unit: stats.UnitCount, Num: 123456},
			width: 6,
			want:  "123456",
		},
		{
			name:  "counter too wide gets metric prefix",
			value: stats.Value{Type: stats.TypeInt, Unit: stats.UnitCount, Num: 1234567},
			width: 6,
			want:  "1.2M",
		},
		{
			name:  "blank renders empty",
			value: stats.Value{Type: stats.TypeInt, Unit: stats.UnitBytes, Blank: true},
			width: 12,
			want:  "",
		},
		{
			name:  "long string trimmed from the front",
			value: stats.Value{Type: stats.TypeString, Str: "backend-server-42"},
			width: 10,
			want:  "..erver-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.value, tt.width))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5, AlignLeft))
	assert.Equal(t, "   ab", Pad("ab", 5, AlignRight))
	assert.Equal(t, " ab  ", Pad("ab", 5, AlignCenter))
	assert.Equal(t, "abcdef", Pad("abcdef", 3, AlignCenter))
	assert.Equal(t, strings.Repeat(" ", 4), Pad("", 4, AlignRight))
}
