package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode   Mode
		expect string
	}{
		{ModeHelp, "HELP"},
		{ModeStatus, "STATUS"},
		{ModeTraffic, "TRAFFIC"},
		{ModeHTTP, "HTTP"},
		{ModeErrors, "ERRORS"},
		{ModeCLI, "CLI"},
		{Mode(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.mode.String())
		})
	}
}

func TestModeFromNumber(t *testing.T) {
	for n, want := range map[int]Mode{1: ModeStatus, 2: ModeTraffic, 3: ModeHTTP, 4: ModeErrors, 5: ModeCLI} {
		got, ok := ModeFromNumber(n)
		assert.True(t, ok, "n=%d", n)
		assert.Equal(t, want, got)
	}

	for _, n := range []int{-1, 0, 6, 42} {
		got, ok := ModeFromNumber(n)
		assert.False(t, ok, "n=%d", n)
		assert.Equal(t, ModeStatus, got)
	}
}

func TestMode_ShowsRecords(t *testing.T) {
	assert.False(t, ModeHelp.ShowsRecords())
	assert.True(t, ModeStatus.ShowsRecords())
	assert.True(t, ModeTraffic.ShowsRecords())
	assert.True(t, ModeHTTP.ShowsRecords())
	assert.True(t, ModeErrors.ShowsRecords())
	assert.False(t, ModeCLI.ShowsRecords())
}

func TestColumns_FieldsExist(t *testing.T) {
	for _, mode := range []Mode{ModeStatus, ModeTraffic, ModeHTTP, ModeErrors} {
		for _, c := range Columns(mode) {
			_, ok := columnHelp[c.Field]
			assert.True(t, ok, "%s column %s has no help entry", mode, c.Field)
			assert.LessOrEqual(t, len(c.Header), c.MinWidth, "%s column %s header", mode, c.Field)
			if c.MaxWidth > 0 {
				assert.GreaterOrEqual(t, c.MaxWidth, c.MinWidth)
			}
		}
	}
}

func TestColumns_NameFirst(t *testing.T) {
	for _, mode := range []Mode{ModeStatus, ModeTraffic, ModeHTTP, ModeErrors} {
		specs := Columns(mode)
		assert.Equal(t, "svname", specs[0].Field)
		assert.Equal(t, AlignLeft, specs[0].Align)
	}
}
