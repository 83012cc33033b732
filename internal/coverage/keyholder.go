package coverage

// ApplyKeyholder re-derives the keyholder fields of a slot from its
// position relative to store hours. An opening slot requires a keyholder
// and carries the configured lead minutes, a closing slot the trail
// minutes; a manual flag keeps the requirement alive off the edges but
// never grants minutes. The derivation is idempotent and must run after
// every boundary change: a slot moved off the opening edge loses both
// its derived requirement and its lead minutes here, keeping only what
// the manual flag preserves.
func ApplyKeyholder(s *TimeSlot, cfg StoreConfig) {
	early := IsEarlyShift(s, cfg)
	late := IsLateShift(s, cfg)

	s.RequiresKeyholder = early || late || s.ManualKeyholder
	if early {
		s.KeyholderBefore = cfg.KeyholderBefore
	} else {
		s.KeyholderBefore = 0
	}
	if late {
		s.KeyholderAfter = cfg.KeyholderAfter
	} else {
		s.KeyholderAfter = 0
	}
}

// SetManualKeyholder records the caller-chosen flag and re-derives. Edge
// slots require a keyholder regardless, so clearing the flag there only
// takes visible effect once the slot moves off the edge.
func SetManualKeyholder(s *TimeSlot, cfg StoreConfig, required bool) {
	s.ManualKeyholder = required
	ApplyKeyholder(s, cfg)
}

// IsEarlyShift reports whether the slot starts at store opening.
func IsEarlyShift(s *TimeSlot, cfg StoreConfig) bool {
	return s.StartMinutes() == cfg.OpeningMinutes()
}

// IsLateShift reports whether the slot ends at store closing.
func IsLateShift(s *TimeSlot, cfg StoreConfig) bool {
	return s.EndMinutes() == cfg.ClosingMinutes()
}
