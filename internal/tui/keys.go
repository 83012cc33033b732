package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
	"github.com/jango-blockchained/schichtplan-sub003/internal/tui/commands"
)

// defaultSlotDuration is the candidate duration for newly added slots.
const defaultSlotDuration = 60

// keyChoice is the manual-keyholder checkbox state. The bulk form
// cycles through all three so an untouched checkbox leaves every
// selected slot's flag alone; the single-slot form only toggles
// between set and clear.
type keyChoice int

const (
	keyUnchanged keyChoice = iota
	keySet
	keyClear
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeDragging:
		return m.handleDragKeys(msg)
	case ModeResizing:
		return m.handleResizeKeys(msg)
	case ModeSelect:
		return m.handleSelectKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	case ModeEdit:
		return m.handleEditKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < m.timeline.WidthPx-1 {
			m.cursorCol++
		}
	case "k", "up":
		m.cursorDay = prevOpenDay(m.storeCfg, m.cursorDay)
	case "j", "down":
		m.cursorDay = nextOpenDay(m.storeCfg, m.cursorDay)

	case "e":
		m.mode = ModeEdit
		return m, commands.Status("Edit mode")

	case "v":
		m.mode = ModeSelect
		return m, commands.Status("Selection mode")

	case "y":
		text := m.daySummary(m.cursorDay)
		if err := clipboard.WriteAll(text); err != nil {
			return m, m.reportError(err)
		}
		return m, commands.Status("Day copied to clipboard")
	}
	return m, nil
}

// handleEditKeys handles keys in edit mode.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil

	case "h", "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < m.timeline.WidthPx-1 {
			m.cursorCol++
		}
	case "k", "up":
		m.cursorDay = prevOpenDay(m.storeCfg, m.cursorDay)
	case "j", "down":
		m.cursorDay = nextOpenDay(m.storeCfg, m.cursorDay)

	case "a":
		start := coverage.MinutesToTime(m.cursorMinutes())
		err := m.store.AddSlot(m.cursorDay, start, defaultSlotDuration)
		if err != nil {
			return m, m.reportError(err)
		}
		return m, m.afterMutation()

	case "d":
		idx := m.slotUnderCursor()
		if idx < 0 {
			return m, nil
		}
		if err := m.store.DeleteSlot(m.cursorDay, idx); err != nil {
			return m, m.reportError(err)
		}
		return m, m.afterMutation()

	case "g", " ":
		idx := m.slotUnderCursor()
		if idx < 0 {
			return m, nil
		}
		g, err := StartDrag(m.store, m.cursorDay, idx)
		if err != nil {
			return m, m.reportError(err)
		}
		m.gesture = g
		m.mode = ModeDragging
		return m, nil

	case "r":
		idx := m.slotUnderCursor()
		if idx < 0 {
			return m, nil
		}
		g, err := StartResize(m.store, m.cursorDay, idx)
		if err != nil {
			return m, m.reportError(err)
		}
		m.gesture = g
		m.mode = ModeResizing
		return m, nil

	case "enter":
		idx := m.slotUnderCursor()
		if idx < 0 {
			return m, nil
		}
		return m.openSlotForm(coverage.SlotRef{Day: m.cursorDay, Slot: idx})
	}
	return m, nil
}

// handleDragKeys drives a keyboard drag: the preview follows h/l in
// quarter-hour steps, enter drops, escape cancels. Cancel and rejected
// drops both leave the slot at its original position.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.gesture
	if g == nil {
		m.mode = ModeEdit
		return m, nil
	}

	switch msg.String() {
	case "h", "left":
		g.DragTo(g.PreviewStart-coverage.QuarterHour, m.storeCfg)
	case "l", "right":
		g.DragTo(g.PreviewStart+coverage.QuarterHour, m.storeCfg)

	case "enter", " ":
		err := g.Drop(m.store)
		m.gesture = nil
		m.mode = ModeEdit
		if err != nil {
			return m, m.reportError(err)
		}
		return m, m.afterMutation()

	case "esc":
		m.gesture = nil
		m.mode = ModeEdit
	}
	return m, nil
}

// handleResizeKeys drives a keyboard resize of the trailing edge.
func (m Model) handleResizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.gesture
	if g == nil {
		m.mode = ModeEdit
		return m, nil
	}

	switch msg.String() {
	case "h", "left":
		g.ResizeTo(g.PreviewEnd-coverage.QuarterHour, m.storeCfg)
	case "l", "right":
		g.ResizeTo(g.PreviewEnd+coverage.QuarterHour, m.storeCfg)

	case "enter":
		err := g.Commit(m.store)
		m.gesture = nil
		m.mode = ModeEdit
		if err != nil {
			return m, m.reportError(err)
		}
		return m, m.afterMutation()

	case "esc":
		m.gesture = nil
		m.mode = ModeEdit
	}
	return m, nil
}

// handleSelectKeys handles keys while selection mode is active.
func (m Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.selection.Clear()
		m.mode = ModeNormal
		return m, nil

	case "h", "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < m.timeline.WidthPx-1 {
			m.cursorCol++
		}
	case "k", "up":
		m.cursorDay = prevOpenDay(m.storeCfg, m.cursorDay)
	case "j", "down":
		m.cursorDay = nextOpenDay(m.storeCfg, m.cursorDay)

	case " ", "x":
		idx := m.slotUnderCursor()
		if idx < 0 {
			return m, nil
		}
		m.selection.Toggle(coverage.SlotRef{Day: m.cursorDay, Slot: idx})

	case "a":
		m.selection.SelectAll(m.store, m.storeCfg.OpeningDays)
		return m, commands.Status(fmt.Sprintf("%d slots selected", m.selection.Len()))

	case "c":
		m.selection.Clear()

	case "b", "enter":
		if m.selection.Len() == 0 {
			return m, commands.Status("Nothing selected")
		}
		return m.openBulkForm()
	}
	return m, nil
}

// handleModalKeys handles the slot and bulk edit forms.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil

	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % 4
		m.applyFormFocus()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.formFocus = (m.formFocus + 3) % 4
		m.applyFormFocus()
		return m, textinput.Blink

	case " ":
		if m.formFocus == 3 {
			if m.modalType == ModalBulkForm {
				m.formKey = (m.formKey + 1) % 3
			} else if m.formKey == keySet {
				m.formKey = keyClear
			} else {
				m.formKey = keySet
			}
			return m, nil
		}

	case "enter":
		if m.modalType == ModalBulkForm {
			return m.applyBulkForm()
		}
		return m.applySlotForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		m.formMin, cmd = m.formMin.Update(msg)
	case 1:
		m.formMax, cmd = m.formMax.Update(msg)
	case 2:
		m.formTypes, cmd = m.formTypes.Update(msg)
	}
	return m, cmd
}

// openSlotForm opens the staffing form pre-filled from one slot.
func (m Model) openSlotForm(ref coverage.SlotRef) (tea.Model, tea.Cmd) {
	slot, err := m.store.Slot(ref.Day, ref.Slot)
	if err != nil {
		return m, m.reportError(err)
	}
	m.modalType = ModalSlotForm
	m.formTarget = ref
	m.formMin.SetValue(strconv.Itoa(slot.MinEmployees))
	m.formMax.SetValue(strconv.Itoa(slot.MaxEmployees))
	m.formTypes.SetValue(strings.Join(slot.EmployeeTypes, ","))
	if slot.ManualKeyholder {
		m.formKey = keySet
	} else {
		m.formKey = keyClear
	}
	m.formFocus = 0
	m.applyFormFocus()
	m.mode = ModeModal
	return m, textinput.Blink
}

// openBulkForm opens the staffing form for the whole selection.
func (m Model) openBulkForm() (tea.Model, tea.Cmd) {
	m.modalType = ModalBulkForm
	m.formMin.SetValue("")
	m.formMax.SetValue("")
	m.formTypes.SetValue("")
	m.formKey = keyUnchanged
	m.formFocus = 0
	m.applyFormFocus()
	m.mode = ModeModal
	return m, textinput.Blink
}

// applyFormFocus focuses the input matching formFocus.
func (m *Model) applyFormFocus() {
	m.formMin.Blur()
	m.formMax.Blur()
	m.formTypes.Blur()
	switch m.formFocus {
	case 0:
		m.formMin.Focus()
	case 1:
		m.formMax.Focus()
	case 2:
		m.formTypes.Focus()
	}
}

// closeModal returns to the mode the form was opened from.
func (m *Model) closeModal() {
	if m.modalType == ModalBulkForm {
		m.mode = ModeSelect
	} else {
		m.mode = ModeEdit
	}
	m.modalType = ModalNone
}

// applySlotForm validates and commits the single-slot form. Field-level
// problems block the commit before any mutation call is made.
func (m Model) applySlotForm() (tea.Model, tea.Cmd) {
	upd, err := m.formUpdate()
	if err != nil {
		return m, m.reportError(err)
	}
	ref := m.formTarget
	m.closeModal()
	if err := m.store.UpdateSlot(ref.Day, ref.Slot, coverage.SlotUpdate{
		MinEmployees:      upd.MinEmployees,
		MaxEmployees:      upd.MaxEmployees,
		EmployeeTypes:     upd.EmployeeTypes,
		RequiresKeyholder: upd.RequiresKeyholder,
	}); err != nil {
		return m, m.reportError(err)
	}
	return m, m.afterMutation()
}

// applyBulkForm commits the form to every selected slot. Atomicity is
// per slot; the selection clears and selection mode exits regardless of
// per-slot failures.
func (m Model) applyBulkForm() (tea.Model, tea.Cmd) {
	fields, err := m.formUpdate()
	if err != nil {
		return m, m.reportError(err)
	}
	refs := m.selection.Refs()
	m.modalType = ModalNone
	m.mode = ModeNormal
	m.selection.Clear()

	results := m.store.BulkUpdate(refs, fields)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	cmds := []tea.Cmd{m.afterMutation()}
	if failed > 0 {
		cmds = append(cmds, commands.Status(fmt.Sprintf("Updated %d slots, %d rejected", len(results)-failed, failed)))
	} else {
		cmds = append(cmds, commands.Status(fmt.Sprintf("Updated %d slots", len(results))))
	}
	return m, tea.Batch(cmds...)
}

// formUpdate translates the form fields into a bulk field set. Empty
// inputs mean "leave unchanged" on the bulk form and are rejected as
// unchanged fields on the single-slot form by simply omitting them.
func (m Model) formUpdate() (coverage.BulkFields, error) {
	var fields coverage.BulkFields

	if v := strings.TrimSpace(m.formMin.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fields, fmt.Errorf("min employees: %w", err)
		}
		fields.MinEmployees = &n
	}
	if v := strings.TrimSpace(m.formMax.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fields, fmt.Errorf("max employees: %w", err)
		}
		fields.MaxEmployees = &n
	}
	if v := strings.TrimSpace(m.formTypes.Value()); v != "" {
		types := strings.Split(v, ",")
		for i := range types {
			types[i] = strings.TrimSpace(types[i])
		}
		fields.EmployeeTypes = &types
	}
	switch m.formKey {
	case keySet:
		v := true
		fields.RequiresKeyholder = &v
	case keyClear:
		v := false
		fields.RequiresKeyholder = &v
	}
	return fields, nil
}

// daySummary renders one day's coverage as plain text for the clipboard.
func (m Model) daySummary(day int) string {
	d, err := m.store.Day(day)
	if err != nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", dayNames[day])
	for _, s := range d.SortedSlots() {
		fmt.Fprintf(&b, "  %s-%s (%s) %d-%d %s",
			s.Start, s.End, coverage.FormatDuration(s.Start, s.End),
			s.MinEmployees, s.MaxEmployees, strings.Join(s.EmployeeTypes, ","))
		if s.RequiresKeyholder {
			b.WriteString(" [key]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// prevOpenDay returns the nearest open day before day, wrapping.
func prevOpenDay(cfg coverage.StoreConfig, day int) int {
	for i := 1; i <= coverage.DaysPerWeek; i++ {
		d := (day - i + coverage.DaysPerWeek) % coverage.DaysPerWeek
		if cfg.OpeningDays[d] {
			return d
		}
	}
	return day
}

// nextOpenDay returns the nearest open day after day, wrapping.
func nextOpenDay(cfg coverage.StoreConfig, day int) int {
	for i := 1; i <= coverage.DaysPerWeek; i++ {
		d := (day + i) % coverage.DaysPerWeek
		if cfg.OpeningDays[d] {
			return d
		}
	}
	return day
}
