package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// Grid geometry. gridTop is the first day row: one title row and one
// ruler row sit above it. trackLeft is where the day track begins after
// the padded day label. hitTest in mouse.go relies on both.
const (
	gridTop   = 2
	trackLeft = dayLabelWidth + 1
)

var dayNames = [coverage.DaysPerWeek]string{
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}

// Cell paint classes, later in the list wins.
const (
	cellTrack = iota
	cellOverhang
	cellBlock
	cellBlockKey
	cellSelected
	cellPreview
)

// View renders the seven-day coverage grid.
func (m Model) View() string {
	if m.loading {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render("Coverage " + m.storeCfg.Opening + "-" + m.storeCfg.Closing))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", trackLeft))
	b.WriteString(m.styles.RulerStyle.Render(m.renderRuler()))
	b.WriteString("\n")

	for day := 0; day < coverage.DaysPerWeek; day++ {
		b.WriteString(m.renderDayRow(day))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	base := b.String()
	if m.mode == ModeModal && m.modalType != ModalNone {
		return m.renderModal(base)
	}
	return base
}

// renderRuler draws hour labels along the track.
func (m Model) renderRuler() string {
	cells := make([]rune, m.timeline.WidthPx)
	for i := range cells {
		cells[i] = ' '
	}
	first := (m.timeline.StartMinutes + 59) / 60 * 60
	for h := first; h < m.timeline.StartMinutes+m.timeline.TotalMinutes; h += 60 {
		px := m.timeline.PositionForMinutes(h)
		label := fmt.Sprintf("%02d", h/60)
		for i, r := range label {
			if px+i >= 0 && px+i < len(cells) {
				cells[px+i] = r
			}
		}
	}
	return string(cells)
}

// renderDayRow draws one day label plus its track.
func (m Model) renderDayRow(day int) string {
	label := runewidth.FillRight(dayNames[day], dayLabelWidth)
	labelStyle := m.styles.DayLabelStyle
	if day == m.cursorDay {
		labelStyle = m.styles.CursorStyle
	}

	if !m.dayOpen(day) {
		return labelStyle.Render(label) + " " +
			m.styles.ClosedDayStyle.Render(runewidth.FillRight("closed", m.timeline.WidthPx))
	}

	classes := m.paintDay(day)
	return labelStyle.Render(label) + " " + m.renderCells(day, classes)
}

// paintDay computes the paint class for every track cell of a day.
func (m Model) paintDay(day int) []int {
	classes := make([]int, m.timeline.WidthPx)

	d, err := m.store.Day(day)
	if err != nil {
		return classes
	}
	layouts, err := m.timeline.DayLayout(d)
	if err != nil {
		return classes
	}

	g := m.gesture
	for i, l := range layouts {
		if g != nil && g.Day == day && g.Slot == i {
			continue // drawn as preview below
		}
		paint(classes, l.LeadLeft, l.LeadWidth, cellOverhang)
		paint(classes, l.TrailLeft, l.TrailWidth, cellOverhang)
		class := cellBlock
		if d.Slots[i].RequiresKeyholder {
			class = cellBlockKey
		}
		if m.selection.Contains(coverage.SlotRef{Day: day, Slot: i}) {
			class = cellSelected
		}
		paint(classes, l.Left, l.Width, class)
	}

	if g != nil && g.Day == day {
		left := m.timeline.PositionForMinutes(g.PreviewStart)
		right := m.timeline.PositionForMinutes(g.PreviewEnd)
		paint(classes, left, right-left, cellPreview)
	}
	return classes
}

// paint fills classes[left:left+width] with class, clamped to bounds.
func paint(classes []int, left, width, class int) {
	for i := left; i < left+width; i++ {
		if i >= 0 && i < len(classes) {
			classes[i] = class
		}
	}
}

// renderCells turns paint classes into styled runs, overlaying the
// cursor on the active day.
func (m Model) renderCells(day int, classes []int) string {
	var b strings.Builder
	showCursor := day == m.cursorDay && m.mode != ModeModal
	for px, class := range classes {
		ch, style := m.cellFace(class)
		if showCursor && px == m.cursorCol {
			ch = "┃"
			style = m.styles.CursorStyle
		}
		b.WriteString(style.Render(ch))
	}
	return b.String()
}

func (m Model) cellFace(class int) (string, lipgloss.Style) {
	switch class {
	case cellOverhang:
		return "▒", m.styles.OverhangStyle
	case cellBlock:
		return "█", m.styles.BlockStyle
	case cellBlockKey:
		return "█", m.styles.BlockKeyholderStyle
	case cellSelected:
		return "█", m.styles.BlockSelectedStyle
	case cellPreview:
		return "█", m.styles.BlockPreviewStyle
	default:
		return "·", m.styles.TrackStyle
	}
}

// renderFooter shows the slot under the cursor, the status line and a
// mode-specific key hint.
func (m Model) renderFooter() string {
	var b strings.Builder

	if idx := m.slotUnderCursor(); idx >= 0 {
		if slot, err := m.store.Slot(m.cursorDay, idx); err == nil {
			line := fmt.Sprintf("%s-%s (%s)  staff %d-%d  %s",
				slot.Start, slot.End, coverage.FormatDuration(slot.Start, slot.End),
				slot.MinEmployees, slot.MaxEmployees,
				strings.Join(slot.EmployeeTypes, ","))
			if slot.RequiresKeyholder {
				line += fmt.Sprintf("  key %d/%d min", slot.KeyholderBefore, slot.KeyholderAfter)
			}
			rendered := m.styles.StatusStyle.Render(line)
			if m.width > 0 {
				rendered = ansi.Truncate(rendered, m.width, "…")
			}
			b.WriteString(rendered)
		}
	}
	b.WriteString("\n")

	if m.statusMsg != "" {
		b.WriteString(m.styles.ErrorStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	switch m.mode {
	case ModeEdit:
		return "EDIT  hjkl move · a add · d delete · g drag · r resize · enter staffing · esc back"
	case ModeDragging:
		return "DRAG  h/l move · enter drop · esc cancel"
	case ModeResizing:
		return "RESIZE  h/l edge · enter apply · esc cancel"
	case ModeSelect:
		return fmt.Sprintf("SELECT (%d)  space toggle · a all · c clear · b bulk edit · esc back", m.selection.Len())
	default:
		return "hjkl move · e edit · v select · y copy day · q quit"
	}
}

// renderModal overlays the staffing form on the grid.
func (m Model) renderModal(base string) string {
	title := "Edit slot"
	if m.modalType == ModalBulkForm {
		title = fmt.Sprintf("Bulk edit (%d slots)", m.selection.Len())
	}

	key := "[-]"
	switch m.formKey {
	case keySet:
		key = "[x]"
	case keyClear:
		key = "[ ]"
	}
	keyLabel := m.styles.ModalLabelStyle.Render("Keyholder")
	if m.formFocus == 3 {
		keyLabel = m.styles.ModalTitleStyle.Render("Keyholder")
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.ModalTitleStyle.Render(title),
		"",
		m.styles.ModalLabelStyle.Render("Min employees ")+m.formMin.View(),
		m.styles.ModalLabelStyle.Render("Max employees ")+m.formMax.View(),
		m.styles.ModalLabelStyle.Render("Types         ")+m.formTypes.View(),
		keyLabel+" "+key,
		"",
		m.styles.HelpStyle.Render("tab next · space toggle · enter apply · esc cancel"),
	)
	box := m.styles.ModalStyle.Render(form)

	w, h := m.width, m.height
	if w <= 0 {
		w = lipgloss.Width(base)
	}
	if h <= 0 {
		h = lipgloss.Height(base)
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
