package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/rileyhilliard/hatop/internal/stats"
)

// Fixed header columns.
const (
	infoIndent = 2
	pidColumn  = 56
	hintColumn = 49
)

const cliTitle = " haproxy command line"

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}
	return m.renderDashboard()
}

// renderDashboard renders the header block, the column header, the body
// and the footer, one string per terminal row.
func (m Model) renderDashboard() string {
	rows := make([]string, 0, m.height)
	rows = append(rows,
		m.renderTitle(),
		"",
		m.renderSoftware(),
		"",
		m.indent(fmt.Sprintf("       Node: %s (uptime %s)", m.nodeName(), m.info.Get(stats.InfoUptime))),
		"",
		m.indent("      Pipes: "+m.pipes.String()),
		m.indent("Connections: "+m.conns.String()),
		"",
		m.indent(m.renderCounts()),
		m.renderNotice(),
		m.renderColumnHeader(),
		"",
	)
	rows = append(rows, m.renderBody()...)
	rows = append(rows, "", m.renderFooter())
	return strings.Join(rows, "\n")
}

// fit cuts s to the terminal width.
func (m Model) fit(s string) string {
	return runewidth.Truncate(s, m.width, "")
}

func (m Model) indent(s string) string {
	return m.fit(strings.Repeat(" ", infoIndent) + s)
}

// renderTitle renders the top bar: program version left, clock right.
func (m Model) renderTitle() string {
	title := " hatop version " + m.version
	clock := m.now().Format(time.ANSIC)
	gap := max(1, ScreenMinWidth-runewidth.StringWidth(title)-len(clock))
	return HeaderStyle.Width(m.width).Render(m.fit(title + strings.Repeat(" ", gap) + clock))
}

func (m Model) renderSoftware() string {
	sw := fmt.Sprintf("%s Version: %s  (released: %s)",
		m.info.Get(stats.InfoSoftwareName),
		m.info.Get(stats.InfoSoftwareVersion),
		m.info.Get(stats.InfoSoftwareRelease))
	pid := fmt.Sprintf("PID: %d (proc %d)",
		m.info.IntOr(stats.InfoPID, 0),
		m.info.IntOr(stats.InfoProcessNum, 0))

	left := strings.Repeat(" ", infoIndent) + sw
	if runewidth.StringWidth(left) < pidColumn {
		left = runewidth.FillRight(left, pidColumn)
	} else {
		left += " "
	}
	return InfoStyle.Render(m.fit(left + pid))
}

func (m Model) nodeName() string {
	if n := m.info.Get(stats.InfoNode); n != "" {
		return n
	}
	return "unknown"
}

func (m Model) renderCounts() string {
	var proxies, services int
	if m.snap != nil {
		proxies, services = m.snap.TotalProxies, m.snap.TotalServices
	}
	return fmt.Sprintf("Procs: %3d   Tasks: %5d    Queue: %5d    Proxies: %3s   Services: %4s",
		m.info.IntOr(stats.InfoNbProc, 0),
		m.info.IntOr(stats.InfoTasks, 0),
		m.info.IntOr(stats.InfoRunQueue, 0),
		humanize.Comma(int64(proxies)),
		humanize.Comma(int64(services)),
	)
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return NoticeStyle.Render(m.indent(m.notice))
}

func (m Model) renderColumnHeader() string {
	var title string
	switch {
	case m.mode == ModeHelp:
		title = helpTitle
	case m.mode == ModeCLI:
		title = cliTitle
	default:
		title = m.layout.Header()
	}
	return ColumnHeaderStyle.Width(m.width).Render(m.fit(title))
}

// renderBody renders exactly bodyHeight rows for the active mode.
func (m Model) renderBody() []string {
	height := m.bodyHeight()
	rows := make([]string, 0, height)

	switch {
	case m.mode == ModeHelp:
		rows = append(rows, strings.Split(m.help.View(), "\n")...)
	case m.mode == ModeCLI:
		rows = append(rows, m.indent("The haproxy command line is not available in this version."))
	case m.snap == nil:
		rows = append(rows, LabelStyle.Render(m.indent("Waiting for the first sample...")))
	default:
		s := m.scroll[m.mode]
		for i := 0; i < height; i++ {
			idx := s.Offset + i
			if idx >= len(m.lines) {
				break
			}
			rows = append(rows, m.renderLine(m.lines[idx], i == s.Cursor))
		}
	}

	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

func (m Model) renderLine(l RenderLine, cursor bool) string {
	text := l.Text
	if l.IsRecord() {
		text = m.layout.Row(l.Record)
	}
	text = m.fit(text)

	switch {
	case cursor:
		return CursorStyle.Render(runewidth.FillRight(text, m.width))
	case l.IsRecord():
		return RowStyle(l.Record.Status).Render(text)
	case text != "":
		return ProxyStyle.Render(text)
	default:
		return ""
	}
}

type footerTab struct {
	mode  Mode
	label string
}

// footerTabs returns the clickable mode tabs. CLI is hidden when read-only.
func (m Model) footerTabs() []footerTab {
	tabs := make([]footerTab, 0, len(modeBindings))
	for _, mb := range modeBindings {
		if mb.mode == ModeCLI && m.readOnly {
			continue
		}
		tabs = append(tabs, footerTab{mode: mb.mode, label: fmt.Sprintf(" %s-%s ", mb.binding.Help().Key, mb.mode)})
	}
	return tabs
}

// tabAt returns the mode whose footer tab covers column x.
func (m Model) tabAt(x int) (Mode, bool) {
	pos := 0
	for _, t := range m.footerTabs() {
		w := runewidth.StringWidth(t.label)
		if x >= pos && x < pos+w {
			return t.mode, true
		}
		pos += w
	}
	return ModeStatus, false
}

// footerHint is the key legend, or the identity of the record under the
// cursor in record modes.
func (m Model) footerHint() string {
	if rec := m.Selected(); rec != nil {
		return fmt.Sprintf("IID=%d SID=%d %s/%s", rec.IID, rec.SID, rec.PxName, rec.SvName)
	}
	return fmt.Sprintf("%s=%s %s=%s %s=%s",
		keys.Up.Help().Key, keys.Up.Help().Desc,
		keys.Help.Help().Key, keys.Help.Help().Desc,
		keys.Quit.Help().Key, keys.Quit.Help().Desc)
}

// renderFooter renders the mode tabs and the hint on a reverse-video bar.
func (m Model) renderFooter() string {
	var b strings.Builder
	used := 0
	for _, t := range m.footerTabs() {
		style := TabInactiveStyle
		if t.mode == m.mode {
			style = TabActiveStyle
		}
		b.WriteString(style.Render(t.label))
		used += runewidth.StringWidth(t.label)
	}

	gap := max(1, hintColumn-used)
	hint := strings.Repeat(" ", gap) + m.footerHint()
	hint = runewidth.Truncate(hint, max(0, m.width-used), "")
	b.WriteString(TabInactiveStyle.Render(runewidth.FillRight(hint, m.width-used)))
	return b.String()
}
