package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/hatop/internal/config"
	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/haproxy"
	"github.com/rileyhilliard/hatop/internal/logger"
	"github.com/rileyhilliard/hatop/internal/monitor"
)

// Presentation failures are retried this many times before giving up.
const (
	maxTransientRetries = 3
	transientRetryDelay = time.Second
)

// runFunc runs a Bubble Tea model to completion and returns the final model.
type runFunc func(ctx context.Context, m tea.Model) (tea.Model, error)

// Session is one run of the dashboard: it owns the log file, the socket
// connection, and the terminal program.
type Session struct {
	cfg *config.Config

	// Overridable for tests.
	isTerminal func() bool
	openLog    func(cfg *config.Config) (logger.Logger, io.Closer, error)
	run        runFunc
	retryDelay time.Duration
}

// NewSession prepares a dashboard session for cfg.
func NewSession(cfg *config.Config) *Session {
	return &Session{
		cfg:        cfg,
		isTerminal: stdoutIsTerminal,
		openLog:    openLogFile,
		run:        runProgram,
		retryDelay: transientRetryDelay,
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

func openLogFile(cfg *config.Config) (logger.Logger, io.Closer, error) {
	return logger.NewFile(cfg.LogFile, "hatop", cfg.Debug)
}

func runProgram(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	return p.Run()
}

// Run connects to the stats socket and drives the dashboard until the
// user quits, a signal arrives, or a fatal error occurs.
func (s *Session) Run(ctx context.Context) error {
	cfg := s.cfg

	if !s.isTerminal() {
		return errors.New(errors.ErrTerminal,
			"hatop needs an interactive terminal",
			"Run it from a terminal, not a pipe or a cron job")
	}
	if err := config.CheckSocket(cfg.Socket); err != nil {
		return err
	}

	log, closer, err := s.openLog(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open the log file "+cfg.LogFile,
			"Set log_file in the config or pass --log-file")
	}
	defer closer.Close()
	logger.SetDefault(log)

	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	client, err := haproxy.Open(ctx, cfg.Socket, haproxy.Options{
		DialTimeout: cfg.Timeouts.Dial,
		ReadTimeout: cfg.Timeouts.Read,
		CLITimeout:  cfg.Timeouts.CLI,
		MaxLines:    cfg.Limits.ProtocolMaxLines,
		Logger:      logger.With(log, "socket"),
	})
	if err != nil {
		log.Error("open %s: %v", cfg.Socket, err)
		return err
	}
	collector := monitor.NewCollector(client, cfg.Limits.MaxServices, logger.With(log, "collector"))
	defer collector.Close()

	mode, ok := monitor.ModeFromNumber(cfg.Mode)
	if !ok {
		mode = monitor.ModeStatus
	}
	opts := monitor.Options{
		Interval: cfg.Interval,
		Mode:     mode,
		ReadOnly: cfg.ReadOnly,
		MaxLines: cfg.Limits.MaxLines,
		Version:  version,
		Logger:   logger.With(log, "ui"),
	}

	model := monitor.NewModel(ctx, collector, opts)
	for attempt := 0; ; attempt++ {
		final, err := s.run(ctx, model)
		if err == nil {
			if m, ok := final.(monitor.Model); ok {
				err := m.Err()
				if err != nil && ctx.Err() != nil && stderrors.Is(err, context.Canceled) {
					log.Info("stopped by signal")
					return nil
				}
				if err != nil {
					log.Error("dashboard stopped: %v", err)
				}
				return err
			}
			return nil
		}

		switch {
		case stderrors.Is(err, tea.ErrInterrupted):
			return nil
		case stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
			log.Info("stopped by signal")
			return nil
		}

		if attempt >= maxTransientRetries {
			return errors.WrapWithCode(err, errors.ErrTransient,
				"The terminal kept failing",
				"Check the terminal type (TERM) and try again")
		}
		log.Warn("terminal error, retrying (%d/%d): %v", attempt+1, maxTransientRetries, err)
		if m, ok := final.(monitor.Model); ok {
			model = m.Resume()
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.retryDelay):
		}
	}
}
