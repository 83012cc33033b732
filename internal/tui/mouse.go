package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// resizeHandleWidth is how many trailing cells of a block act as the
// resize handle on press.
const resizeHandleWidth = 1

// handleMouseMsg maps pointer events onto the grid. Press starts a drag
// (or a resize when the press lands on a block's trailing edge), motion
// updates the preview, release commits. A release outside the gesture's
// day is an invalid target and cancels.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeModal {
		return m, nil
	}
	day, px, ok := m.hitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return m, nil
		}
		return m.mousePress(day, px)

	case tea.MouseActionMotion:
		return m.mouseMotion(px, ok)

	case tea.MouseActionRelease:
		return m.mouseRelease(day, ok)
	}
	return m, nil
}

// mousePress handles a left press inside the grid.
func (m Model) mousePress(day, px int) (tea.Model, tea.Cmd) {
	minutes := m.timeline.TimeAt(px)
	idx := m.slotAt(day, minutes)

	switch m.mode {
	case ModeSelect:
		if idx >= 0 {
			m.selection.Toggle(coverage.SlotRef{Day: day, Slot: idx})
		}
		m.cursorDay, m.cursorCol = day, px
		return m, nil

	case ModeEdit:
		m.cursorDay, m.cursorCol = day, px
		if idx < 0 {
			return m, nil
		}
		slot, err := m.store.Slot(day, idx)
		if err != nil {
			return m, m.reportError(err)
		}
		endPx := m.timeline.PositionForMinutes(slot.EndMinutes())
		var g *Gesture
		if px >= endPx-resizeHandleWidth {
			g, err = StartResize(m.store, day, idx)
			m.mode = ModeResizing
		} else {
			g, err = StartDrag(m.store, day, idx)
			m.mode = ModeDragging
		}
		if err != nil {
			m.mode = ModeEdit
			return m, m.reportError(err)
		}
		m.gesture = g
		return m, nil

	default:
		m.cursorDay, m.cursorCol = day, px
		return m, nil
	}
}

// mouseMotion feeds pointer movement into the active gesture preview.
// Motion outside any gesture only moves the cursor.
func (m Model) mouseMotion(px int, ok bool) (tea.Model, tea.Cmd) {
	g := m.gesture
	if g == nil || !ok {
		return m, nil
	}
	minutes := m.timeline.TimeAt(px)
	switch m.mode {
	case ModeDragging:
		// The grab point is the block start; keep the preview under it.
		g.DragTo(minutes, m.storeCfg)
	case ModeResizing:
		g.ResizeTo(minutes, m.storeCfg)
	}
	m.cursorCol = px
	return m, nil
}

// mouseRelease finishes the active gesture.
func (m Model) mouseRelease(day int, ok bool) (tea.Model, tea.Cmd) {
	g := m.gesture
	if g == nil {
		return m, nil
	}
	m.gesture = nil
	m.mode = ModeEdit

	// Dropping on another day or off the grid cancels the gesture.
	if !ok || day != g.Day {
		return m, nil
	}

	var err error
	if g.Kind == GestureResize {
		err = g.Commit(m.store)
	} else {
		err = g.Drop(m.store)
	}
	if err != nil {
		return m, m.reportError(err)
	}
	return m, m.afterMutation()
}

// hitTest translates terminal coordinates into a day row and a track
// cell. ok is false outside the seven day rows or left of the track.
func (m Model) hitTest(x, y int) (day, px int, ok bool) {
	day = y - gridTop
	px = x - trackLeft
	if day < 0 || day >= coverage.DaysPerWeek || px < 0 || px >= m.timeline.WidthPx {
		return 0, 0, false
	}
	if !m.dayOpen(day) {
		return 0, 0, false
	}
	return day, px, true
}
