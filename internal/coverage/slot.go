// Package coverage defines the staffing requirement model for the
// schichtplan editor: per-day time slots, the mutation API that keeps
// them conflict-free, and the keyholder derivation tied to store hours.
package coverage

import (
	"errors"
	"fmt"
	"slices"
)

// Validation errors.
var (
	ErrBadTimeFormat     = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrNotQuarterAligned = errors.New("times must align to 15-minute marks")
	ErrMinEmployees      = errors.New("at least one employee is required")
	ErrMinAboveMax       = errors.New("minimum employees exceeds maximum")
	ErrNoEmployeeTypes   = errors.New("at least one employee type is required")
)

// Domain errors.
var (
	ErrSlotConflict = errors.New("slot overlaps with an existing slot")
	ErrOutOfHours   = errors.New("slot extends outside store hours")
	ErrSlotNotFound = errors.New("slot not found")
	ErrBadDayIndex  = errors.New("day index must be between 0 and 6")
)

// EmployeeType identifies a staff category a slot may require.
type EmployeeType struct {
	ID   string
	Name string
}

// StoreConfig is the normalized store-hours input the editor consumes.
// Callers (the config package) validate and fill defaults before
// constructing one; the editor treats it as read-only.
type StoreConfig struct {
	Opening         string  // "HH:MM", quarter-hour aligned
	Closing         string  // "HH:MM", strictly after Opening
	OpeningDays     [7]bool // Monday = index 0
	MinEmployees    int
	MaxEmployees    int
	EmployeeTypes   []EmployeeType
	KeyholderBefore int // minutes before opening a keyholder must be present
	KeyholderAfter  int // minutes after closing a keyholder must stay
}

// OpeningMinutes returns the opening time in minutes since midnight.
func (c StoreConfig) OpeningMinutes() int {
	m, _ := TimeToMinutes(c.Opening)
	return m
}

// ClosingMinutes returns the closing time in minutes since midnight.
func (c StoreConfig) ClosingMinutes() int {
	m, _ := TimeToMinutes(c.Closing)
	return m
}

// EmployeeTypeIDs returns the configured type ids in order.
func (c StoreConfig) EmployeeTypeIDs() []string {
	ids := make([]string, len(c.EmployeeTypes))
	for i, et := range c.EmployeeTypes {
		ids[i] = et.ID
	}
	return ids
}

// HasEmployeeType reports whether id names a configured employee type.
func (c StoreConfig) HasEmployeeType(id string) bool {
	return slices.Contains(c.EmployeeTypeIDs(), id)
}

// TimeSlot is one contiguous staffing requirement within a day.
type TimeSlot struct {
	Start             string // "HH:MM", quarter-hour aligned
	End               string // "HH:MM", quarter-hour aligned, after Start
	MinEmployees      int
	MaxEmployees      int
	EmployeeTypes     []string // non-empty, drawn from StoreConfig.EmployeeTypes
	RequiresKeyholder bool
	ManualKeyholder   bool // caller-set requirement independent of edge position
	KeyholderBefore   int  // minutes, nonzero only for opening slots
	KeyholderAfter    int  // minutes, nonzero only for closing slots
}

// Validate checks the slot-local invariants: well-formed quarter-aligned
// times, start before end, sane employee counts, non-empty types.
func (s *TimeSlot) Validate() error {
	start, err := TimeToMinutes(s.Start)
	if err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	end, err := TimeToMinutes(s.End)
	if err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return ErrEndBeforeStart
	}
	if start%QuarterHour != 0 || end%QuarterHour != 0 {
		return ErrNotQuarterAligned
	}
	if s.MinEmployees < 1 {
		return ErrMinEmployees
	}
	if s.MinEmployees > s.MaxEmployees {
		return ErrMinAboveMax
	}
	if len(s.EmployeeTypes) == 0 {
		return ErrNoEmployeeTypes
	}
	return nil
}

// StartMinutes returns the start time in minutes since midnight.
func (s *TimeSlot) StartMinutes() int {
	m, _ := TimeToMinutes(s.Start)
	return m
}

// EndMinutes returns the end time in minutes since midnight.
func (s *TimeSlot) EndMinutes() int {
	m, _ := TimeToMinutes(s.End)
	return m
}

// Duration returns the staffed span in minutes.
func (s *TimeSlot) Duration() int {
	return s.EndMinutes() - s.StartMinutes()
}

// OverlapsWith reports whether two slots intersect in half-open terms,
// so a slot ending exactly when another begins is not a conflict.
func (s *TimeSlot) OverlapsWith(other *TimeSlot) bool {
	if other == nil {
		return false
	}
	return TimesOverlap(s.StartMinutes(), s.EndMinutes(), other.StartMinutes(), other.EndMinutes())
}

// equal reports field-for-field equality.
func (s *TimeSlot) equal(other *TimeSlot) bool {
	return s.Start == other.Start &&
		s.End == other.End &&
		s.MinEmployees == other.MinEmployees &&
		s.MaxEmployees == other.MaxEmployees &&
		s.RequiresKeyholder == other.RequiresKeyholder &&
		s.ManualKeyholder == other.ManualKeyholder &&
		s.KeyholderBefore == other.KeyholderBefore &&
		s.KeyholderAfter == other.KeyholderAfter &&
		slices.Equal(s.EmployeeTypes, other.EmployeeTypes)
}

// Clone returns a deep copy of the slot.
func (s TimeSlot) Clone() TimeSlot {
	s.EmployeeTypes = slices.Clone(s.EmployeeTypes)
	return s
}
