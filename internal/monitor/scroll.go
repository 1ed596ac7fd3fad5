package monitor

// PageStep is how many lines PgUp/PgDn move.
const PageStep = 10

// ScrollState is a mode's position in the record table: the first visible
// line and the cursor row within the visible window.
type ScrollState struct {
	Offset int
	Cursor int
}

// Selected returns the index of the line under the cursor.
func (s ScrollState) Selected() int {
	return s.Offset + s.Cursor
}

// Clamp fits the state to total lines shown height rows at a time.
func (s ScrollState) Clamp(total, height int) ScrollState {
	if height < 1 {
		height = 1
	}
	maxOffset := max(0, total-height)
	s.Offset = min(max(s.Offset, 0), maxOffset)

	maxCursor := min(height, total-s.Offset) - 1
	if maxCursor < 0 {
		maxCursor = 0
	}
	s.Cursor = min(max(s.Cursor, 0), maxCursor)
	return s
}

// Down moves the cursor one line down, scrolling the window once the
// cursor sits on its bottom row.
func (s ScrollState) Down(total, height int) ScrollState {
	s = s.Clamp(total, height)
	if s.Selected() >= total-1 {
		return s
	}
	if s.Cursor < height-1 {
		s.Cursor++
	} else {
		s.Offset++
	}
	return s.Clamp(total, height)
}

// Up moves the cursor one line up, scrolling the window once the cursor
// sits on its top row.
func (s ScrollState) Up(total, height int) ScrollState {
	s = s.Clamp(total, height)
	if s.Cursor > 0 {
		s.Cursor--
	} else if s.Offset > 0 {
		s.Offset--
	}
	return s
}

// PageDown moves PageStep lines down.
func (s ScrollState) PageDown(total, height int) ScrollState {
	for i := 0; i < PageStep; i++ {
		s = s.Down(total, height)
	}
	return s
}

// PageUp moves PageStep lines up.
func (s ScrollState) PageUp(total, height int) ScrollState {
	for i := 0; i < PageStep; i++ {
		s = s.Up(total, height)
	}
	return s
}

// Top jumps to the first line.
func (s ScrollState) Top() ScrollState {
	return ScrollState{}
}

// Bottom jumps to the last line.
func (s ScrollState) Bottom(total, height int) ScrollState {
	return ScrollState{Offset: total, Cursor: height}.Clamp(total, height)
}
