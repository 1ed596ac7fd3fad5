package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBar_HalfFull(t *testing.T) {
	b := NewStatusBar(20).Update(5, 10)
	assert.Equal(t, "[|||||||||     5/10]", b.String())
	assert.InDelta(t, 0.5, b.Fraction(), 1e-9)
}

func TestStatusBar_ZeroSpan(t *testing.T) {
	b := NewStatusBar(20).Update(0, 0)
	assert.Equal(t, "["+strings.Repeat(" ", 15)+"0/0]", b.String())
	assert.Zero(t, b.Fraction())
}

func TestStatusBar_Full(t *testing.T) {
	b := NewStatusBar(20).Update(10, 10)
	assert.Equal(t, "["+strings.Repeat("|", 13)+"10/10]", b.String())
}

func TestStatusBar_Clamps(t *testing.T) {
	b := NewStatusBar(20).Update(50, 10)
	assert.EqualValues(t, 10, b.Cur)

	b = NewStatusBar(20).Update(-3, 10)
	assert.EqualValues(t, 0, b.Cur)

	b = StatusBar{Width: 20, Min: 5}.Update(1, 2)
	assert.EqualValues(t, 5, b.Max)
	assert.EqualValues(t, 5, b.Cur)
}

func TestStatusBar_KeepsWidth(t *testing.T) {
	for _, cur := range []int64{0, 1, 7, 250, 1999, 2000} {
		b := NewStatusBar(DefaultStatusBarWidth).Update(cur, 2000)
		assert.Len(t, b.String(), DefaultStatusBarWidth, "cur=%d", cur)
	}
}

func TestStatusBar_NarrowTruncatesLabel(t *testing.T) {
	b := NewStatusBar(6).Update(1999, 2000)
	assert.Equal(t, "[1999]", b.String())

	for width := 2; width <= 12; width++ {
		b := NewStatusBar(width).Update(1999, 2000)
		assert.Len(t, b.String(), width, "width=%d", width)
	}
}
