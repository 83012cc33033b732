package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
	"github.com/jango-blockchained/schichtplan-sub003/internal/grid"
	"github.com/jango-blockchained/schichtplan-sub003/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timeline = grid.NewTimeline(m.storeCfg, m.trackWidth())
		if m.cursorCol >= m.timeline.WidthPx {
			m.cursorCol = m.timeline.WidthPx - 1
		}
		return m, nil

	case commands.CoverageLoadedMsg:
		// Rebuild the store from persisted state, rewiring the change
		// log so later mutations keep flowing into it. The loaded state
		// is the diff base for per-day saves.
		m.store = coverage.NewStore(m.storeCfg, msg.Days, m.storeChangeFunc())
		m.lastSaved = m.store.Days()
		m.loading = false
		return m, nil

	case commands.CoverageSavedMsg:
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// storeChangeFunc returns the change callback wired into the store.
func (m *Model) storeChangeFunc() coverage.ChangeFunc {
	changes := m.changes
	return func(days []coverage.DailyCoverage) {
		changes.days = days
		changes.seq++
	}
}

// afterMutation drains the change log and persists what changed.
// Called once after every store call that may have succeeded; when the
// mutation was rejected the log is untouched and no save is issued.
// With a diff base available only the touched days are replaced; the
// first persist (no base yet) writes the full week.
func (m *Model) afterMutation() tea.Cmd {
	if m.changes.seq == m.savedSeq {
		return nil
	}
	m.savedSeq = m.changes.seq
	days := m.changes.days
	prev := m.lastSaved
	m.lastSaved = days
	if m.repo == nil {
		return nil
	}
	if prev == nil {
		return commands.SaveCoverage(m.repo, days)
	}

	var cmds []tea.Cmd
	for i := range days {
		if i >= len(prev) || !days[i].Equal(prev[i]) {
			cmds = append(cmds, commands.SaveDay(m.repo, days[i]))
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// reportError surfaces a rejected mutation in the status line.
func (m *Model) reportError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return commands.Status(fmt.Sprintf("Rejected: %v", err))
}
