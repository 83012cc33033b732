package tui

import (
	"slices"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// Selection is the multi-slot selection set used while selection mode
// is active. Slot clicks toggle membership instead of starting a drag.
type Selection struct {
	refs map[coverage.SlotRef]bool
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{refs: make(map[coverage.SlotRef]bool)}
}

// Toggle flips membership of one slot.
func (s Selection) Toggle(ref coverage.SlotRef) {
	if s.refs[ref] {
		delete(s.refs, ref)
	} else {
		s.refs[ref] = true
	}
}

// Contains reports whether a slot is selected.
func (s Selection) Contains(ref coverage.SlotRef) bool {
	return s.refs[ref]
}

// Len returns the number of selected slots.
func (s Selection) Len() int {
	return len(s.refs)
}

// Clear empties the selection.
func (s Selection) Clear() {
	for ref := range s.refs {
		delete(s.refs, ref)
	}
}

// SelectAll adds every slot of every open day. Closed days are not
// visible and never join the selection.
func (s Selection) SelectAll(store *coverage.Store, openDays [7]bool) {
	for day := 0; day < coverage.DaysPerWeek; day++ {
		if !openDays[day] {
			continue
		}
		for idx := 0; idx < store.SlotCount(day); idx++ {
			s.refs[coverage.SlotRef{Day: day, Slot: idx}] = true
		}
	}
}

// Refs returns the selected slots ordered by day then slot index, the
// order bulk updates apply in.
func (s Selection) Refs() []coverage.SlotRef {
	out := make([]coverage.SlotRef, 0, len(s.refs))
	for ref := range s.refs {
		out = append(out, ref)
	}
	slices.SortFunc(out, func(a, b coverage.SlotRef) int {
		if a.Day != b.Day {
			return a.Day - b.Day
		}
		return a.Slot - b.Slot
	})
	return out
}
