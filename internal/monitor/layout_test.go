package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumWidths(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total
}

func minWidths(specs []ColumnSpec) []int {
	out := make([]int, len(specs))
	for i, s := range specs {
		out[i] = s.MinWidth
	}
	return out
}

func TestColumns_FillMinimumWidth(t *testing.T) {
	for _, mode := range []Mode{ModeStatus, ModeTraffic, ModeHTTP, ModeErrors} {
		t.Run(mode.String(), func(t *testing.T) {
			specs := Columns(mode)
			require.NotEmpty(t, specs)
			assert.Equal(t, ScreenMinWidth, sumWidths(minWidths(specs))+len(specs)-1)
		})
	}
	assert.Nil(t, Columns(ModeHelp))
	assert.Nil(t, Columns(ModeCLI))
}

func TestColumns_ReturnsCopy(t *testing.T) {
	specs := Columns(ModeStatus)
	specs[0].MinWidth = 99
	assert.Equal(t, 10, Columns(ModeStatus)[0].MinWidth)
}

func TestDistributeWidth_FiveExtraColumnsOverNine(t *testing.T) {
	specs := Columns(ModeTraffic)
	require.Len(t, specs, 9)

	widths := DistributeWidth(specs, ScreenMinWidth, ScreenMinWidth+5)
	for i, spec := range specs {
		want := spec.MinWidth
		if i < 5 {
			want++
		}
		assert.Equal(t, want, widths[i], "column %s", spec.Header)
	}
	assert.Equal(t, 5, sumWidths(widths)-sumWidths(minWidths(specs)))
}

func TestDistributeWidth_NoExcess(t *testing.T) {
	specs := Columns(ModeStatus)
	assert.Equal(t, minWidths(specs), DistributeWidth(specs, ScreenMinWidth, ScreenMinWidth))
	assert.Equal(t, minWidths(specs), DistributeWidth(specs, ScreenMinWidth, ScreenMinWidth-10))
}

func TestDistributeWidth_RemainderGoesLeft(t *testing.T) {
	specs := []ColumnSpec{
		{MinWidth: 5}, {MinWidth: 5}, {MinWidth: 5},
	}
	// 7 extra: 2 each, plus 1 for the first column.
	assert.Equal(t, []int{8, 7, 7}, DistributeWidth(specs, 15, 22))
}

func TestDistributeWidth_ClampsToMax(t *testing.T) {
	specs := Columns(ModeStatus)
	widths := DistributeWidth(specs, ScreenMinWidth, ScreenMaxWidth)
	for i, spec := range specs {
		assert.GreaterOrEqual(t, widths[i], spec.MinWidth)
		if spec.MaxWidth > 0 {
			assert.LessOrEqual(t, widths[i], spec.MaxWidth, "column %s", spec.Header)
		}
	}
}

func TestDistributeWidth_IgnoresWidthBeyondMax(t *testing.T) {
	specs := Columns(ModeHTTP)
	assert.Equal(t,
		DistributeWidth(specs, ScreenMinWidth, ScreenMaxWidth),
		DistributeWidth(specs, ScreenMinWidth, ScreenMaxWidth+120))
}

func TestDistributeWidth_ConservesWidthAndIsMonotonic(t *testing.T) {
	// Unbounded columns whose minimums fill the base width exactly.
	specs := make([]ColumnSpec, 7)
	for i := range specs {
		specs[i] = ColumnSpec{MinWidth: 10}
	}
	base := 70

	prev := DistributeWidth(specs, base, base)
	for actual := base; actual <= ScreenMaxWidth; actual++ {
		widths := DistributeWidth(specs, base, actual)
		assert.Equal(t, actual, sumWidths(widths), "actual=%d", actual)
		for i := range widths {
			assert.GreaterOrEqual(t, widths[i], prev[i], "actual=%d column=%d", actual, i)
		}
		prev = widths
	}
}

func TestDistributeWidth_ModeLayoutsFillTerminal(t *testing.T) {
	for _, mode := range []Mode{ModeStatus, ModeTraffic, ModeHTTP, ModeErrors} {
		t.Run(mode.String(), func(t *testing.T) {
			specs := Columns(mode)
			prev := DistributeWidth(specs, ScreenMinWidth, ScreenMinWidth)
			for actual := ScreenMinWidth; actual <= ScreenMaxWidth; actual++ {
				widths := DistributeWidth(specs, ScreenMinWidth, actual)
				require.Equal(t, actual, sumWidths(widths)+len(specs)-1, "actual=%d", actual)
				for i, spec := range specs {
					require.GreaterOrEqual(t, widths[i], prev[i], "actual=%d column=%s", actual, spec.Header)
					if spec.MaxWidth > 0 {
						require.LessOrEqual(t, widths[i], spec.MaxWidth, "actual=%d column=%s", actual, spec.Header)
					}
				}
				prev = widths
			}
			assert.Len(t, NewLayout(mode, ScreenMaxWidth).Header(), ScreenMaxWidth)
		})
	}
}

func TestDistributeWidth_SurplusGoesToUnboundedColumns(t *testing.T) {
	specs := []ColumnSpec{
		{MinWidth: 5, MaxWidth: 6}, {MinWidth: 5}, {MinWidth: 5},
	}
	// 9 extra: 3 each, the capped column keeps 1 and gives 2 away.
	assert.Equal(t, []int{6, 9, 9}, DistributeWidth(specs, 15, 24))
}

func TestLayout_Header(t *testing.T) {
	l := NewLayout(ModeStatus, ScreenMinWidth)
	header := l.Header()

	assert.Len(t, header, ScreenMinWidth)
	assert.True(t, strings.HasPrefix(header, "NAME       "))
	assert.True(t, strings.HasSuffix(header, "  STOT"))
}

func TestLayout_Row(t *testing.T) {
	snap := parseSnapshot(t, serverRow("app", 2, 1, "web1"))
	rec := snap.Lookup(2, "1")
	require.NotNil(t, rec)

	l := NewLayout(ModeStatus, ScreenMinWidth)
	r := l.Row(rec)

	assert.Len(t, r, ScreenMinWidth)
	assert.True(t, strings.HasPrefix(r, "web1       "))
	assert.Contains(t, r, "UP")
	assert.Contains(t, r, "L7OK")
}

func TestLayout_WiderTerminal(t *testing.T) {
	l := NewLayout(ModeTraffic, ScreenMinWidth+5)
	assert.Len(t, l.Header(), ScreenMinWidth+5)
}
