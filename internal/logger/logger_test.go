package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		debug     bool
		expectLog bool
	}{
		{name: "logs when HATOP_DEBUG is set", envValue: "1", expectLog: true},
		{name: "logs when debug flag is set", debug: true, expectLog: true},
		{name: "silent by default", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.envValue)

			var buf bytes.Buffer
			l := New(&buf, "test", tt.debug)
			l.Debug("test message %s", "arg")

			if tt.expectLog {
				lines := decodeLines(t, &buf)
				require.Len(t, lines, 1)
				assert.Equal(t, "debug", lines[0]["level"])
				assert.Equal(t, "test message arg", lines[0]["message"])
				assert.Equal(t, "test", lines[0]["component"])
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	t.Setenv(DebugEnv, "")

	var buf bytes.Buffer
	l := New(&buf, "socket", false)
	l.Info("info %d", 42)
	l.Warn("warning")
	l.Error("failure: %s", "boom")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "info 42", lines[0]["message"])
	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "error", lines[2]["level"])
	assert.Equal(t, "failure: boom", lines[2]["message"])
	assert.Contains(t, lines[0], "time")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "cli", false)
	l := With(base, "stats")
	l.Info("parsed")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "stats", lines[0]["component"])

	// Non-zerolog loggers pass through.
	bl := NewBufferLogger()
	assert.Same(t, bl, With(bl, "x"))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hatop.log")

	l, closer, err := NewFile(path, "cli", false)
	require.NoError(t, err)
	l.Info("hello %s", "file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "info", Message: "info msg"}, l.Messages[1])
	assert.Equal(t, LogMessage{Level: "warn", Message: "warn msg"}, l.Messages[2])
	assert.Equal(t, LogMessage{Level: "error", Message: "error msg"}, l.Messages[3])
}

func TestBufferLogger_HasLevel(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("warn"))
	l.Warn("test")
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
}

func TestBufferLogger_Clear(t *testing.T) {
	l := NewBufferLogger()
	l.Debug("test1")
	l.Info("test2")
	require.Len(t, l.Messages, 2)

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Equal(t, buf, Default())
}
