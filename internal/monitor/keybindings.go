package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Status   key.Binding
	Traffic  key.Binding
	HTTP     key.Binding
	Errors   key.Binding
	CLI      key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c"),
		key.WithHelp("Q", "QUIT"),
	),
	Refresh: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("SPACE", "REFRESH"),
	),
	Help: key.NewBinding(
		key.WithKeys("h", "H", "?"),
		key.WithHelp("H", "HELP"),
	),
	Status:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "STATUS")),
	Traffic: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "TRAFFIC")),
	HTTP:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "HTTP")),
	Errors:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "ERRORS")),
	CLI:     key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "CLI")),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("UP/DOWN", "SCROLL"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("UP/DOWN", "SCROLL"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PGUP/PGDN", "PAGE"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PGUP/PGDN", "PAGE"),
	),
	Top:    key.NewBinding(key.WithKeys("home"), key.WithHelp("HOME", "TOP")),
	Bottom: key.NewBinding(key.WithKeys("end"), key.WithHelp("END", "BOTTOM")),
}

// modeBindings lists the mode tabs in footer order.
var modeBindings = []struct {
	mode    Mode
	binding *key.Binding
}{
	{ModeStatus, &keys.Status},
	{ModeTraffic, &keys.Traffic},
	{ModeHTTP, &keys.HTTP},
	{ModeErrors, &keys.Errors},
	{ModeCLI, &keys.CLI},
}

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Refresh):
		return true, m.requestPoll()

	case key.Matches(msg, keys.Help):
		return true, m.switchMode(ModeHelp)
	}

	for _, mb := range modeBindings {
		if key.Matches(msg, *mb.binding) {
			if mb.mode == ModeCLI && m.readOnly {
				return false, nil
			}
			return true, m.switchMode(mb.mode)
		}
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.navigate(func(s ScrollState, total, h int) ScrollState { return s.Up(total, h) }, -1)
	case key.Matches(msg, keys.Down):
		m.navigate(func(s ScrollState, total, h int) ScrollState { return s.Down(total, h) }, 1)
	case key.Matches(msg, keys.PageUp):
		m.navigate(func(s ScrollState, total, h int) ScrollState { return s.PageUp(total, h) }, -PageStep)
	case key.Matches(msg, keys.PageDown):
		m.navigate(func(s ScrollState, total, h int) ScrollState { return s.PageDown(total, h) }, PageStep)
	case key.Matches(msg, keys.Top):
		m.navigate(func(s ScrollState, _, _ int) ScrollState { return s.Top() }, -maxHelpJump)
	case key.Matches(msg, keys.Bottom):
		m.navigate(func(s ScrollState, total, h int) ScrollState { return s.Bottom(total, h) }, maxHelpJump)
	default:
		return false, nil
	}
	return true, nil
}

// maxHelpJump scrolls the help document to either end.
const maxHelpJump = 1 << 20

// navigate moves the active mode's scroll position. Record modes use move;
// the help document scrolls by helpDelta lines. Navigation redraws from
// existing data and defers the next poll by a full interval.
func (m *Model) navigate(move func(s ScrollState, total, height int) ScrollState, helpDelta int) {
	m.ticks = TicksPerInterval

	switch {
	case m.mode == ModeHelp:
		if m.helpReady {
			m.help.SetYOffset(m.help.YOffset + helpDelta)
		}
	case m.mode.ShowsRecords():
		m.scroll[m.mode] = move(m.scroll[m.mode], len(m.lines), m.bodyHeight())
	}
}
