// Package monitor implements the hatop dashboard: a live, scrollable view of
// the haproxy stats socket.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds application state (mode, snapshot, table lines, scroll positions)
//   - Update: Processes messages (keystrokes, fine ticks, resizes, poll results)
//   - View: Renders the current state to a string for display
//
// # Key Components
//
//	Model       - The Bubble Tea model containing all dashboard state
//	Collector   - Polls "show info" and "show stat" over one socket connection
//	Layout      - A mode's columns with widths resolved for the terminal
//	ScrollState - Per-mode viewport offset and cursor
//	StatusBar   - Bracketed gauge used for pipes and connections
//
// # Message Flow
//
// Each refresh interval is split into TicksPerInterval fine ticks:
//
//  1. tickMsg fires every interval/100 and counts down
//  2. When the countdown reaches zero, pollCmd collects a Sample off the event loop
//  3. pollMsg arrives; the table lines are rebuilt from the new snapshot
//  4. View() re-renders the dashboard
//
// Navigation keys redraw from the existing lines and restart the countdown.
// Mode keys and the space bar poll immediately.
//
// # Column Layout
//
// Every record mode's minimum column widths fill a 78 column terminal.
// DistributeWidth hands wider terminals' extra columns out left to right,
// up to 200 columns.
//
// # Keyboard Shortcuts
//
//	1-4         - STATUS, TRAFFIC, HTTP, ERRORS
//	5           - CLI (not in read-only mode)
//	h, H, ?     - Help
//	space       - Refresh now
//	↑/↓, j/k    - Move the cursor
//	PgUp/PgDn   - Move ten lines
//	q, Q        - Quit
package monitor
