package coverage

import "slices"

// DaysPerWeek is the number of day collections a week always carries.
const DaysPerWeek = 7

// DailyCoverage holds the staffing slots of one weekday. Slots keep
// insertion order and are pairwise non-overlapping; they are not
// required to be time-sorted.
type DailyCoverage struct {
	Day   int // 0=Monday .. 6=Sunday
	Slots []TimeSlot
}

// Clone returns a deep copy of the day.
func (d DailyCoverage) Clone() DailyCoverage {
	out := DailyCoverage{Day: d.Day, Slots: make([]TimeSlot, len(d.Slots))}
	for i, s := range d.Slots {
		out.Slots[i] = s.Clone()
	}
	return out
}

// Equal reports whether two days carry identical slots in the same
// order. Persistence uses it to skip days a mutation did not touch.
func (d DailyCoverage) Equal(other DailyCoverage) bool {
	if d.Day != other.Day || len(d.Slots) != len(other.Slots) {
		return false
	}
	for i := range d.Slots {
		if !d.Slots[i].equal(&other.Slots[i]) {
			return false
		}
	}
	return true
}

// SortedSlots returns the day's slots ordered by start time without
// disturbing insertion order.
func (d DailyCoverage) SortedSlots() []TimeSlot {
	out := d.Clone().Slots
	slices.SortFunc(out, func(a, b TimeSlot) int {
		return a.StartMinutes() - b.StartMinutes()
	})
	return out
}

// conflictIndex returns the index of the first slot overlapping s,
// skipping excludeIdx (pass -1 to check all). Returns -1 on no conflict.
func (d DailyCoverage) conflictIndex(s *TimeSlot, excludeIdx int) int {
	for i := range d.Slots {
		if i == excludeIdx {
			continue
		}
		if s.OverlapsWith(&d.Slots[i]) {
			return i
		}
	}
	return -1
}

// week is the seven-day collection owned by the Store. Always exactly
// one DailyCoverage per day index.
type week struct {
	days [DaysPerWeek]DailyCoverage
}

// newWeek builds an empty week, then overwrites matching days wholesale
// from the caller-supplied initial coverage. Days with out-of-range
// indices are ignored.
func newWeek(initial []DailyCoverage) *week {
	w := &week{}
	for i := range w.days {
		w.days[i] = DailyCoverage{Day: i}
	}
	for _, d := range initial {
		if d.Day < 0 || d.Day >= DaysPerWeek {
			continue
		}
		clone := d.Clone()
		clone.Day = d.Day
		w.days[d.Day] = clone
	}
	return w
}

// snapshot returns a deep copy of all seven days as a slice, the shape
// change notifications and callers see.
func (w *week) snapshot() []DailyCoverage {
	out := make([]DailyCoverage, DaysPerWeek)
	for i := range w.days {
		out[i] = w.days[i].Clone()
	}
	return out
}
