package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jango-blockchained/schichtplan-sub003/internal/config"
	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
	"github.com/jango-blockchained/schichtplan-sub003/internal/grid"
	"github.com/jango-blockchained/schichtplan-sub003/internal/tui/commands"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal   Mode = iota
	ModeEdit          // editor accepts mutations
	ModeDragging      // a slot follows the pointer/cursor as a preview
	ModeResizing      // a slot's trailing edge follows the pointer/cursor
	ModeSelect        // slot clicks toggle selection membership
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone     ModalType = iota
	ModalSlotForm           // edit one slot's staffing fields
	ModalBulkForm           // edit the selected slots' shared fields
)

// defaultTrackWidth is used until the first window size message.
const defaultTrackWidth = 96

// changeLog collects store change notifications. The store invokes the
// callback synchronously during Update; the pointer survives bubbletea's
// model copies so the update loop can drain it afterwards.
type changeLog struct {
	days []coverage.DailyCoverage
	seq  uint64
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo  coverage.Repository
	cfg   *config.Config
	store *coverage.Store

	storeCfg coverage.StoreConfig
	styles   *Styles
	timeline grid.Timeline

	// State
	mode      Mode
	cursorDay int // 0=Monday .. 6=Sunday
	cursorCol int // cell offset within the day track
	loading   bool

	// Gesture session; nil outside ModeDragging/ModeResizing. Every
	// exit path clears it.
	gesture *Gesture

	// Selection state
	selection Selection

	// Modal state
	modalType  ModalType
	formTarget coverage.SlotRef // slot the single-slot form edits
	formMin    textinput.Model
	formMax    textinput.Model
	formTypes  textinput.Model
	formKey    keyChoice // manual-keyholder checkbox state
	formFocus  int

	// Change notifications drained after each mutation
	changes  *changeLog
	savedSeq uint64
	// Last snapshot handed to the repository; the diff base for
	// per-day saves. Nil until the first full persist.
	lastSaved []coverage.DailyCoverage

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// New creates a new TUI model. The store is seeded from initial and
// wired so every successful mutation lands in the change log for
// persistence.
func New(repo coverage.Repository, cfg *config.Config, initial []coverage.DailyCoverage) *Model {
	storeCfg := cfg.StoreConfig()
	changes := &changeLog{}
	store := coverage.NewStore(storeCfg, initial, func(days []coverage.DailyCoverage) {
		changes.days = days
		changes.seq++
	})

	formMin := textinput.New()
	formMin.Placeholder = "min"
	formMin.CharLimit = 2
	formMin.Width = 4

	formMax := textinput.New()
	formMax.Placeholder = "max"
	formMax.CharLimit = 2
	formMax.Width = 4

	formTypes := textinput.New()
	formTypes.Placeholder = "vz,tz,gfb"
	formTypes.CharLimit = 64
	formTypes.Width = 24

	m := &Model{
		repo:      repo,
		cfg:       cfg,
		store:     store,
		storeCfg:  storeCfg,
		styles:    NewStyles(cfg.UI.Theme),
		timeline:  grid.NewTimeline(storeCfg, defaultTrackWidth),
		mode:      ModeNormal,
		cursorDay: firstOpenDay(storeCfg),
		selection: NewSelection(),
		formMin:   formMin,
		formMax:   formMax,
		formTypes: formTypes,
		changes:   changes,
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadCoverage(m.repo)
}

// Run starts the TUI with mouse tracking so drags report cell motion.
func Run(repo coverage.Repository, cfg *config.Config) error {
	var initial []coverage.DailyCoverage
	model := New(repo, cfg, initial)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// firstOpenDay returns the first open weekday, or Monday when every day
// is closed.
func firstOpenDay(cfg coverage.StoreConfig) int {
	for i, open := range cfg.OpeningDays {
		if open {
			return i
		}
	}
	return 0
}

// trackWidth returns the pixel width of one day track for the current
// terminal size.
func (m Model) trackWidth() int {
	w := m.width - dayLabelWidth - 2
	if w < 24 {
		return defaultTrackWidth
	}
	return w
}

// cursorMinutes returns the time under the cursor, snapped to the grid.
func (m Model) cursorMinutes() int {
	return m.timeline.TimeAt(m.cursorCol)
}

// slotUnderCursor returns the slot index covering the cursor position,
// or -1 when the cursor is over empty track.
func (m Model) slotUnderCursor() int {
	return m.slotAt(m.cursorDay, m.cursorMinutes())
}

// slotAt returns the index of the slot covering the given minutes on a
// day, or -1.
func (m Model) slotAt(day, minutes int) int {
	d, err := m.store.Day(day)
	if err != nil {
		return -1
	}
	for i := range d.Slots {
		if minutes >= d.Slots[i].StartMinutes() && minutes < d.Slots[i].EndMinutes() {
			return i
		}
	}
	return -1
}

// dayOpen reports whether a day is an opening day.
func (m Model) dayOpen(day int) bool {
	return day >= 0 && day < coverage.DaysPerWeek && m.storeCfg.OpeningDays[day]
}
