package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/logger"
	"github.com/rileyhilliard/hatop/internal/stats"
)

// TicksPerInterval is how many fine ticks make up one refresh interval.
// Input is handled between ticks, so latency stays at interval/100.
const TicksPerInterval = 100

// DefaultInterval is the refresh interval when none is configured.
const DefaultInterval = time.Second

// Screen rows around the scrollable table body.
const (
	headerRows = 13
	footerRows = 2
)

// tickMsg is one fine tick.
type tickMsg time.Time

// pollMsg carries the result of one collection.
type pollMsg struct {
	sample *Sample
	err    error
}

// Options configures a Model.
type Options struct {
	Interval time.Duration
	Mode     Mode
	ReadOnly bool
	MaxLines int // render line cap, 0 uses DefaultMaxLines
	Version  string
	Logger   logger.Logger
	Now      func() time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ctx       context.Context
	collector *Collector
	interval  time.Duration
	readOnly  bool
	maxLines  int
	version   string
	now       func() time.Time
	log       logger.Logger

	mode   Mode
	width  int
	height int
	layout Layout
	scroll map[Mode]ScrollState

	// Help document viewport, scrolled in document lines
	help      viewport.Model
	helpReady bool

	info     stats.Info
	snap     *stats.Snapshot
	lines    []RenderLine
	pipes    StatusBar
	conns    StatusBar
	lastPoll time.Time
	notice   string

	// Fine ticks left until the next poll
	ticks   int
	polling bool

	err      error
	quitting bool
}

// NewModel creates the dashboard model. The first poll is issued by Init.
func NewModel(ctx context.Context, collector *Collector, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Mode == ModeCLI && opts.ReadOnly {
		opts.Mode = ModeStatus
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		ctx:       ctx,
		collector: collector,
		interval:  opts.Interval,
		readOnly:  opts.ReadOnly,
		maxLines:  opts.MaxLines,
		version:   opts.Version,
		now:       opts.Now,
		log:       opts.Logger,
		mode:      opts.Mode,
		scroll:    make(map[Mode]ScrollState),
		pipes:     NewStatusBar(DefaultStatusBarWidth),
		conns:     NewStatusBar(DefaultStatusBarWidth),
		ticks:     TicksPerInterval,
		polling:   true,
	}
}

// Resume returns a model that picks up where m left off in a new program:
// same mode, scroll positions, help offset and last sample. The countdown
// restarts and Init polls again.
func (m Model) Resume() Model {
	scroll := make(map[Mode]ScrollState, len(m.scroll))
	for mode, s := range m.scroll {
		scroll[mode] = s
	}
	m.scroll = scroll
	m.err = nil
	m.quitting = false
	m.polling = true
	m.ticks = TicksPerInterval
	return m
}

// Init starts the fine tick timer and triggers the first poll.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.pollCmd(),
		m.tickCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.log.Error("terminal resized to %dx%d, below the minimum", msg.Width, msg.Height)
			return m.fail(err)
		}

	case tickMsg:
		m.ticks--
		cmds := []tea.Cmd{m.tickCmd()}
		if m.ticks <= 0 && !m.polling {
			cmds = append(cmds, m.startPoll())
		}
		return m, tea.Batch(cmds...)

	case pollMsg:
		m.polling = false
		if msg.err != nil {
			m.log.Error("poll failed: %v", msg.err)
			return m.fail(msg.err)
		}
		m.apply(msg.sample)
	}

	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// tickCmd schedules the next fine tick.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval/TicksPerInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// pollCmd collects one sample off the event loop.
func (m Model) pollCmd() tea.Cmd {
	ctx, collector := m.ctx, m.collector
	return func() tea.Msg {
		sample, err := collector.Collect(ctx)
		return pollMsg{sample: sample, err: err}
	}
}

// startPoll issues a poll and restarts the interval countdown.
func (m *Model) startPoll() tea.Cmd {
	m.polling = true
	m.ticks = TicksPerInterval
	return m.pollCmd()
}

// requestPoll polls now, or right after the poll already in flight.
func (m *Model) requestPoll() tea.Cmd {
	if m.polling {
		m.ticks = 0
		return nil
	}
	return m.startPoll()
}

// switchMode activates mode, recomputes its columns and polls.
func (m *Model) switchMode(mode Mode) tea.Cmd {
	m.mode = mode
	m.layout = NewLayout(mode, m.width)
	if mode.ShowsRecords() {
		m.scroll[mode] = m.scroll[mode].Clamp(len(m.lines), m.bodyHeight())
	}
	return m.requestPoll()
}

// resize records new terminal dimensions. Terminals below the minimum size
// are a fatal error.
func (m *Model) resize(width, height int) error {
	if width < ScreenMinWidth || height < ScreenMinHeight {
		return errors.New(errors.ErrTerminal,
			fmt.Sprintf("Terminal too small, need at least %dx%d (have %dx%d)",
				ScreenMinWidth, ScreenMinHeight, width, height),
			"Enlarge the terminal window and start hatop again")
	}
	if width == m.width && height == m.height {
		return nil
	}

	m.width, m.height = width, height
	m.layout = NewLayout(m.mode, width)

	body := m.bodyHeight()
	if !m.helpReady {
		m.help = viewport.New(width, body)
		m.help.YPosition = headerRows
		m.help.SetContent(HelpText(m.version, m.readOnly))
		m.helpReady = true
	} else {
		m.help.Width = width
		m.help.Height = body
		m.help.SetYOffset(m.help.YOffset)
	}

	m.clampScroll()
	return nil
}

// apply installs a new sample and rebuilds the table lines.
func (m *Model) apply(s *Sample) {
	m.lastPoll = s.At
	m.info = s.Info
	m.pipes = m.pipes.Update(s.Info.IntOr(stats.InfoCurPipes, 0), s.Info.IntOr(stats.InfoMaxPipes, 0))
	m.conns = m.conns.Update(s.Info.IntOr(stats.InfoCurConn, 0), s.Info.IntOr(stats.InfoMaxConn, 0))

	m.notice = ""
	if s.Stale {
		m.notice = "stat parse error, showing the previous sample"
	}

	m.snap = s.Stat
	m.lines = BuildLines(m.snap, m.maxLines)
	m.clampScroll()
}

func (m *Model) clampScroll() {
	body := m.bodyHeight()
	for _, mode := range []Mode{ModeStatus, ModeTraffic, ModeHTTP, ModeErrors} {
		m.scroll[mode] = m.scroll[mode].Clamp(len(m.lines), body)
	}
}

// bodyHeight is the number of table rows that fit on screen.
func (m Model) bodyHeight() int {
	return max(1, m.height-headerRows-footerRows)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.navigate(func(s ScrollState, total, h int) ScrollState { return s.Up(total, h) }, -1)
	case tea.MouseButtonWheelDown:
		m.navigate(func(s ScrollState, total, h int) ScrollState { return s.Down(total, h) }, 1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || msg.Y != m.height-1 {
			return nil
		}
		if mode, ok := m.tabAt(msg.X); ok {
			return m.switchMode(mode)
		}
	}
	return nil
}

// Mode returns the active mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Err returns the error that ended the dashboard, if any.
func (m Model) Err() error {
	return m.err
}

// Quitting reports whether the dashboard is shutting down.
func (m Model) Quitting() bool {
	return m.quitting
}

// Lines returns the current table lines.
func (m Model) Lines() []RenderLine {
	return m.lines
}

// Layout returns the active mode's resolved columns.
func (m Model) Layout() Layout {
	return m.layout
}

// Scroll returns a record mode's scroll position.
func (m Model) Scroll(mode Mode) ScrollState {
	return m.scroll[mode]
}

// HelpOffset returns the help document's scroll offset in lines.
func (m Model) HelpOffset() int {
	return m.help.YOffset
}

// Polling reports whether a poll is in flight.
func (m Model) Polling() bool {
	return m.polling
}

// Ticks returns the fine ticks left until the next scheduled poll.
func (m Model) Ticks() int {
	return m.ticks
}

// Selected returns the record under the cursor, or nil.
func (m Model) Selected() *stats.ServiceRecord {
	if !m.mode.ShowsRecords() {
		return nil
	}
	i := m.scroll[m.mode].Selected()
	if i < 0 || i >= len(m.lines) {
		return nil
	}
	return m.lines[i].Record
}
