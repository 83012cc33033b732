package coverage

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownEmployeeType reports a type id outside the store config.
var ErrUnknownEmployeeType = errors.New("unknown employee type")

// ChangeFunc receives the complete seven-day coverage after every
// successful mutation. The payload is a deep copy; the receiver may keep
// or mutate it freely.
type ChangeFunc func(days []DailyCoverage)

// Store owns the week of coverage for the editor's lifetime. All
// mutations go through its API; rejections never partially mutate state.
// The store performs no I/O; persistence hangs off the change callback.
type Store struct {
	cfg      StoreConfig
	week     *week
	onChange ChangeFunc
}

// NewStore builds a store seeded from the optional initial coverage.
// Days absent from initial start empty.
func NewStore(cfg StoreConfig, initial []DailyCoverage, onChange ChangeFunc) *Store {
	return &Store{
		cfg:      cfg,
		week:     newWeek(initial),
		onChange: onChange,
	}
}

// Config returns the store-hours configuration.
func (s *Store) Config() StoreConfig {
	return s.cfg
}

// Days returns a deep copy of all seven day collections.
func (s *Store) Days() []DailyCoverage {
	return s.week.snapshot()
}

// Day returns a deep copy of one day's coverage.
func (s *Store) Day(day int) (DailyCoverage, error) {
	if day < 0 || day >= DaysPerWeek {
		return DailyCoverage{}, ErrBadDayIndex
	}
	return s.week.days[day].Clone(), nil
}

// Slot returns a deep copy of one slot.
func (s *Store) Slot(day, idx int) (TimeSlot, error) {
	if day < 0 || day >= DaysPerWeek {
		return TimeSlot{}, ErrBadDayIndex
	}
	if idx < 0 || idx >= len(s.week.days[day].Slots) {
		return TimeSlot{}, ErrSlotNotFound
	}
	return s.week.days[day].Slots[idx].Clone(), nil
}

// SlotCount returns the number of slots on a day.
func (s *Store) SlotCount(day int) int {
	if day < 0 || day >= DaysPerWeek {
		return 0
	}
	return len(s.week.days[day].Slots)
}

// AddSlot appends a new slot starting at start with the candidate
// duration, clamping the end to store closing. New slots take the
// configured employee defaults and derived keyholder fields.
func (s *Store) AddSlot(day int, start string, durationMin int) error {
	if day < 0 || day >= DaysPerWeek {
		return ErrBadDayIndex
	}
	startMin, err := TimeToMinutes(start)
	if err != nil {
		return err
	}
	if startMin < s.cfg.OpeningMinutes() || startMin >= s.cfg.ClosingMinutes() {
		return fmt.Errorf("%w: start %s outside %s-%s", ErrOutOfHours, start, s.cfg.Opening, s.cfg.Closing)
	}

	endMin := min(startMin+durationMin, s.cfg.ClosingMinutes())
	slot := TimeSlot{
		Start:         MinutesToTime(startMin),
		End:           MinutesToTime(endMin),
		MinEmployees:  s.cfg.MinEmployees,
		MaxEmployees:  s.cfg.MaxEmployees,
		EmployeeTypes: s.cfg.EmployeeTypeIDs(),
	}
	ApplyKeyholder(&slot, s.cfg)

	if err := slot.Validate(); err != nil {
		return err
	}
	if i := s.week.days[day].conflictIndex(&slot, -1); i >= 0 {
		other := s.week.days[day].Slots[i]
		return fmt.Errorf("%w: %s-%s", ErrSlotConflict, other.Start, other.End)
	}

	s.week.days[day].Slots = append(s.week.days[day].Slots, slot)
	s.notify()
	return nil
}

// SlotUpdate carries the fields of a partial slot update. Nil fields
// keep their current value.
type SlotUpdate struct {
	Start             *string
	End               *string
	MinEmployees      *int
	MaxEmployees      *int
	EmployeeTypes     *[]string
	RequiresKeyholder *bool
}

// changesTimes reports whether the update touches either boundary.
func (u SlotUpdate) changesTimes() bool {
	return u.Start != nil || u.End != nil
}

// UpdateSlot merges the update into the slot, re-validates every
// invariant against the other slots of the day and commits
// all-or-nothing. Boundary changes re-run the keyholder derivation.
func (s *Store) UpdateSlot(day, idx int, upd SlotUpdate) error {
	if day < 0 || day >= DaysPerWeek {
		return ErrBadDayIndex
	}
	if idx < 0 || idx >= len(s.week.days[day].Slots) {
		return ErrSlotNotFound
	}

	candidate := s.week.days[day].Slots[idx].Clone()
	if upd.Start != nil {
		m, err := TimeToMinutes(*upd.Start)
		if err != nil {
			return err
		}
		candidate.Start = MinutesToTime(m)
	}
	if upd.End != nil {
		m, err := TimeToMinutes(*upd.End)
		if err != nil {
			return err
		}
		candidate.End = MinutesToTime(m)
	}
	if upd.MinEmployees != nil {
		candidate.MinEmployees = *upd.MinEmployees
	}
	if upd.MaxEmployees != nil {
		candidate.MaxEmployees = *upd.MaxEmployees
	}
	if upd.EmployeeTypes != nil {
		candidate.EmployeeTypes = slices.Clone(*upd.EmployeeTypes)
	}

	if err := candidate.Validate(); err != nil {
		return err
	}
	for _, id := range candidate.EmployeeTypes {
		if !s.cfg.HasEmployeeType(id) {
			return fmt.Errorf("%w: %q", ErrUnknownEmployeeType, id)
		}
	}
	if candidate.StartMinutes() < s.cfg.OpeningMinutes() || candidate.EndMinutes() > s.cfg.ClosingMinutes() {
		return fmt.Errorf("%w: %s-%s outside %s-%s", ErrOutOfHours,
			candidate.Start, candidate.End, s.cfg.Opening, s.cfg.Closing)
	}
	if i := s.week.days[day].conflictIndex(&candidate, idx); i >= 0 {
		other := s.week.days[day].Slots[i]
		return fmt.Errorf("%w: %s-%s", ErrSlotConflict, other.Start, other.End)
	}

	if upd.changesTimes() {
		ApplyKeyholder(&candidate, s.cfg)
	}
	if upd.RequiresKeyholder != nil {
		SetManualKeyholder(&candidate, s.cfg, *upd.RequiresKeyholder)
	}

	s.week.days[day].Slots[idx] = candidate
	s.notify()
	return nil
}

// DeleteSlot removes a slot unconditionally.
func (s *Store) DeleteSlot(day, idx int) error {
	if day < 0 || day >= DaysPerWeek {
		return ErrBadDayIndex
	}
	if idx < 0 || idx >= len(s.week.days[day].Slots) {
		return ErrSlotNotFound
	}
	s.week.days[day].Slots = slices.Delete(s.week.days[day].Slots, idx, idx+1)
	s.notify()
	return nil
}

// MoveSlot relocates a slot to a new start, preserving its duration
// exactly; the same conflict and out-of-hours checks as UpdateSlot
// apply, and keyholder fields are re-derived for the new position.
func (s *Store) MoveSlot(day, idx int, newStart string) error {
	if day < 0 || day >= DaysPerWeek {
		return ErrBadDayIndex
	}
	if idx < 0 || idx >= len(s.week.days[day].Slots) {
		return ErrSlotNotFound
	}

	startMin, err := TimeToMinutes(newStart)
	if err != nil {
		return err
	}
	duration := s.week.days[day].Slots[idx].Duration()
	newEnd := MinutesToTime(startMin + duration)
	start := MinutesToTime(startMin)
	return s.UpdateSlot(day, idx, SlotUpdate{Start: &start, End: &newEnd})
}

// SlotRef addresses one slot for bulk operations.
type SlotRef struct {
	Day  int
	Slot int
}

// BulkFields is the subset of slot fields a bulk edit may change.
type BulkFields struct {
	MinEmployees      *int
	MaxEmployees      *int
	EmployeeTypes     *[]string
	RequiresKeyholder *bool
}

// BulkResult reports the outcome of one slot within a bulk update.
type BulkResult struct {
	Ref SlotRef
	Err error
}

// BulkUpdate applies the same field subset to every referenced slot
// through the regular update validation. Atomicity is per slot: a
// failure on one slot does not roll back others, because selections can
// span days with different conflict contexts. One change notification
// fires at the end if anything succeeded.
func (s *Store) BulkUpdate(refs []SlotRef, fields BulkFields) []BulkResult {
	results := make([]BulkResult, 0, len(refs))
	changed := false

	saved := s.onChange
	s.onChange = nil
	for _, ref := range refs {
		err := s.UpdateSlot(ref.Day, ref.Slot, SlotUpdate{
			MinEmployees:      fields.MinEmployees,
			MaxEmployees:      fields.MaxEmployees,
			EmployeeTypes:     fields.EmployeeTypes,
			RequiresKeyholder: fields.RequiresKeyholder,
		})
		if err == nil {
			changed = true
		}
		results = append(results, BulkResult{Ref: ref, Err: err})
	}
	s.onChange = saved

	if changed {
		s.notify()
	}
	return results
}

// notify delivers the post-mutation snapshot synchronously.
func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.week.snapshot())
	}
}
