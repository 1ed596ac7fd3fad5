package ui

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/hatop/internal/errors"
)

func TestColorsExist(t *testing.T) {
	for _, c := range []lipgloss.Color{ColorSuccess, ColorError, ColorWarning, ColorInfo, ColorMuted} {
		assert.NotEmpty(t, string(c))
	}
}

func TestPrintError_Structured(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WrapWithCode(fmt.Errorf("connection refused"), errors.ErrSocket,
		"Couldn't connect to /run/haproxy.sock",
		"Check that haproxy is running")

	PrintError(&buf, err)

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "✗ Couldn't connect to /run/haproxy.sock\n")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Check that haproxy is running")
}

func TestPrintError_Plain(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("boom"))
	assert.Equal(t, "✗ boom\n", ansi.Strip(buf.String()))
}

func TestPrintError_Nil(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "wrote %s", ".hatop.yaml")
	PrintWarning(&buf, "socket %s missing", "/x")
	PrintInfo(&buf, "listening")

	assert.Equal(t, "✓ wrote .hatop.yaml\n! socket /x missing\n• listening\n", ansi.Strip(buf.String()))
}

func TestMuted(t *testing.T) {
	assert.Equal(t, "hint", ansi.Strip(Muted("hint")))
}
