package coverage

import "fmt"

const (
	// QuarterHour is the snapping granularity in minutes.
	QuarterHour = 15
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// lastQuarter is the latest representable quarter-hour mark (23:45).
	lastQuarter = MinutesPerDay - QuarterHour
)

// TimeToMinutes parses "HH:MM" into minutes since midnight.
// Accepts single-digit hours ("9:00"). Returns ErrBadTimeFormat for
// anything else.
func TimeToMinutes(t string) (int, error) {
	var hh, mm string
	switch len(t) {
	case 4: // H:MM
		if t[1] != ':' {
			return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
		}
		hh, mm = t[:1], t[2:]
	case 5: // HH:MM
		if t[2] != ':' {
			return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
		}
		hh, mm = t[:2], t[3:]
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
	}

	hours, ok := parseDigits(hh)
	if !ok || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
	}
	mins, ok := parseDigits(mm)
	if !ok || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
	}
	return hours*60 + mins, nil
}

func parseDigits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// MinutesToTime converts minutes since midnight to zero-padded "HH:MM".
// Out-of-range values are clamped to the day.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SnapToQuarterHour rounds a time to the nearest quarter hour and
// normalizes it to zero-padded form. Results past 23:45 clamp to 23:45.
// Idempotent: snapping a snapped time is a no-op.
func SnapToQuarterHour(t string) (string, error) {
	m, err := TimeToMinutes(t)
	if err != nil {
		return "", err
	}
	snapped := (m + QuarterHour/2) / QuarterHour * QuarterHour
	if snapped > lastQuarter {
		snapped = lastQuarter
	}
	return MinutesToTime(snapped), nil
}

// IsQuarterAligned reports whether a time sits on a quarter-hour mark.
func IsQuarterAligned(t string) bool {
	m, err := TimeToMinutes(t)
	return err == nil && m%QuarterHour == 0
}

// FormatDuration renders the span between two times as "2h 30m",
// omitting the minutes term for exact hours ("3h") and the hours term
// below one hour ("45m"). The caller guarantees start < end.
func FormatDuration(start, end string) string {
	s, err1 := TimeToMinutes(start)
	e, err2 := TimeToMinutes(end)
	if err1 != nil || err2 != nil || e <= s {
		return "0m"
	}
	mins := e - s
	hours := mins / 60
	rest := mins % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, rest)
	}
}

// GridPosition maps a time to a proportional pixel offset within a
// timeline starting at gridStart and spanning totalMinutes over
// widthPx pixels. Times outside the timeline produce offsets outside
// [0, widthPx]; keyholder overhangs rely on that, so the result is not
// clamped here.
func GridPosition(t, gridStart string, totalMinutes, widthPx int) (int, error) {
	tm, err := TimeToMinutes(t)
	if err != nil {
		return 0, err
	}
	gm, err := TimeToMinutes(gridStart)
	if err != nil {
		return 0, err
	}
	if totalMinutes <= 0 {
		return 0, nil
	}
	return roundDiv((tm-gm)*widthPx, totalMinutes), nil
}

// roundDiv divides rounding half away from zero, so negative offsets
// (lead overhang) mirror positive ones.
func roundDiv(num, den int) int {
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}

// TimesOverlap reports whether two half-open ranges [start1, end1) and
// [start2, end2) intersect. All times are minutes since midnight.
func TimesOverlap(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}
