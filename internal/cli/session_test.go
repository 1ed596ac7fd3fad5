package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hatop/internal/config"
	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/haproxy"
	hatesting "github.com/rileyhilliard/hatop/internal/haproxy/testing"
	"github.com/rileyhilliard/hatop/internal/logger"
	"github.com/rileyhilliard/hatop/internal/monitor"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func startFakeSocket(t *testing.T) *hatesting.FakeSocket {
	t.Helper()
	fake, err := hatesting.Listen(filepath.Join(t.TempDir(), "haproxy.sock"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = fake.Close() })
	fake.SetInfo(demoInfo).SetStat(newDemoTopology(rand.New(rand.NewSource(1))).Stat())
	return fake
}

func sessionConfig(socket string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Socket = socket
	cfg.Timeouts.Read = 2 * time.Second
	return cfg
}

// newTestSession returns a session that believes it runs on a terminal
// and logs to buf.
func newTestSession(cfg *config.Config, buf *logger.BufferLogger, run runFunc) *Session {
	s := NewSession(cfg)
	s.isTerminal = func() bool { return true }
	s.openLog = func(*config.Config) (logger.Logger, io.Closer, error) {
		return buf, nopCloser{}, nil
	}
	s.run = run
	s.retryDelay = time.Millisecond
	return s
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSession_QuitsCleanly(t *testing.T) {
	fake := startFakeSocket(t)
	cfg := sessionConfig(fake.Path())
	cfg.Mode = 2

	var got monitor.Model
	s := newTestSession(cfg, logger.NewBufferLogger(), func(_ context.Context, m tea.Model) (tea.Model, error) {
		next, _ := m.Update(tea.WindowSizeMsg{Width: 78, Height: 20})
		next, _ = next.Update(keyMsg("q"))
		got = next.(monitor.Model)
		return next, nil
	})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, monitor.ModeTraffic, got.Mode())
	assert.True(t, got.Quitting())
	assert.Contains(t, fake.Commands(), haproxy.CmdPrompt)
	assert.Eventually(t, func() bool { return fake.Count(haproxy.CmdQuit) == 1 },
		time.Second, 10*time.Millisecond, "the connection is closed with quit")
}

func TestSession_ReturnsDashboardError(t *testing.T) {
	fake := startFakeSocket(t)

	s := newTestSession(sessionConfig(fake.Path()), logger.NewBufferLogger(), func(_ context.Context, m tea.Model) (tea.Model, error) {
		next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
		return next, nil
	})

	err := s.Run(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
	assert.Equal(t, errors.ExitConfig, errors.ExitCode(err))
}

func TestSession_RetriesTerminalFailures(t *testing.T) {
	fake := startFakeSocket(t)
	buf := logger.NewBufferLogger()

	calls := 0
	s := newTestSession(sessionConfig(fake.Path()), buf, func(_ context.Context, m tea.Model) (tea.Model, error) {
		calls++
		if calls < 3 {
			return m, fmt.Errorf("tty glitch")
		}
		return m, nil
	})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 3, calls)
	assert.True(t, buf.HasLevel("warn"))
	assert.Equal(t, 1, fake.Count(haproxy.CmdPrompt), "the socket connection survives retries")
}

func TestSession_RetryResumesMode(t *testing.T) {
	fake := startFakeSocket(t)

	var modes []monitor.Mode
	s := newTestSession(sessionConfig(fake.Path()), logger.NewBufferLogger(), func(_ context.Context, m tea.Model) (tea.Model, error) {
		modes = append(modes, m.(monitor.Model).Mode())
		if len(modes) == 1 {
			next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
			next, _ = next.Update(keyMsg("3"))
			return next, fmt.Errorf("tty glitch")
		}
		return m, nil
	})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []monitor.Mode{monitor.ModeStatus, monitor.ModeHTTP}, modes)
}

func TestSession_GivesUpAfterRetries(t *testing.T) {
	fake := startFakeSocket(t)

	calls := 0
	s := newTestSession(sessionConfig(fake.Path()), logger.NewBufferLogger(), func(_ context.Context, m tea.Model) (tea.Model, error) {
		calls++
		return m, fmt.Errorf("tty glitch")
	})

	err := s.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, maxTransientRetries+1, calls)
	assert.True(t, errors.IsCode(err, errors.ErrTransient))
	assert.Equal(t, errors.ExitInternal, errors.ExitCode(err))
}

func TestSession_InterruptIsCleanExit(t *testing.T) {
	fake := startFakeSocket(t)

	calls := 0
	s := newTestSession(sessionConfig(fake.Path()), logger.NewBufferLogger(), func(_ context.Context, m tea.Model) (tea.Model, error) {
		calls++
		return m, tea.ErrInterrupted
	})

	assert.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestSession_SignalIsCleanExit(t *testing.T) {
	fake := startFakeSocket(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newTestSession(sessionConfig(fake.Path()), logger.NewBufferLogger(), func(_ context.Context, m tea.Model) (tea.Model, error) {
		cancel()
		return m, fmt.Errorf("%w: context canceled", tea.ErrProgramKilled)
	})

	assert.NoError(t, s.Run(ctx))
}

func TestSession_RequiresTerminal(t *testing.T) {
	s := newTestSession(sessionConfig("/var/run/haproxy.sock"), logger.NewBufferLogger(), nil)
	s.isTerminal = func() bool { return false }

	err := s.Run(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestSession_MissingSocket(t *testing.T) {
	cfg := sessionConfig(filepath.Join(t.TempDir(), "gone.sock"))
	s := newTestSession(cfg, logger.NewBufferLogger(), func(context.Context, tea.Model) (tea.Model, error) {
		t.Fatal("the dashboard must not start")
		return nil, nil
	})

	err := s.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.ExitConfig, errors.ExitCode(err))
}

func TestSession_LogFileFailure(t *testing.T) {
	fake := startFakeSocket(t)
	s := newTestSession(sessionConfig(fake.Path()), logger.NewBufferLogger(), nil)
	s.openLog = func(*config.Config) (logger.Logger, io.Closer, error) {
		return nil, nil, fmt.Errorf("permission denied")
	}

	err := s.Run(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "log file")
}
