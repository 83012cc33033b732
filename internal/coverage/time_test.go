package coverage

import (
	"errors"
	"testing"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "morning", in: "09:00", want: 540},
		{name: "single digit hour", in: "9:00", want: 540},
		{name: "evening", in: "20:00", want: 1200},
		{name: "last minute", in: "23:59", want: 1439},
		{name: "not a time", in: "banana", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "missing minutes", in: "09:", wantErr: true},
		{name: "hour out of range", in: "24:00", wantErr: true},
		{name: "minute out of range", in: "09:60", wantErr: true},
		{name: "negative", in: "-1:00", wantErr: true},
		{name: "trailing garbage", in: "09:00x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToMinutes(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("TimeToMinutes(%q) = %d, want error", tt.in, got)
				}
				if !errors.Is(err, ErrBadTimeFormat) {
					t.Fatalf("TimeToMinutes(%q) error = %v, want ErrBadTimeFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TimeToMinutes(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want string
	}{
		{name: "midnight", in: 0, want: "00:00"},
		{name: "morning", in: 540, want: "09:00"},
		{name: "zero padded", in: 545, want: "09:05"},
		{name: "evening", in: 1200, want: "20:00"},
		{name: "clamped below", in: -10, want: "00:00"},
		{name: "clamped above", in: 2000, want: "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesToTime(tt.in); got != tt.want {
				t.Errorf("MinutesToTime(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		s := MinutesToTime(m)
		got, err := TimeToMinutes(s)
		if err != nil {
			t.Fatalf("TimeToMinutes(%q) error = %v", s, err)
		}
		if got != m {
			t.Fatalf("round trip %d -> %q -> %d", m, s, got)
		}
	}
}

func TestSnapToQuarterHour(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "already aligned", in: "09:00", want: "09:00"},
		{name: "rounds down", in: "09:07", want: "09:00"},
		{name: "rounds up", in: "09:08", want: "09:15"},
		{name: "just below boundary", in: "09:22", want: "09:15"},
		{name: "just above boundary", in: "09:23", want: "09:30"},
		{name: "end of day clamps", in: "23:55", want: "23:45"},
		{name: "bad input", in: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SnapToQuarterHour(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SnapToQuarterHour(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SnapToQuarterHour(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("SnapToQuarterHour(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnapIsIdempotent(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 11 {
		once, err := SnapToQuarterHour(MinutesToTime(m))
		if err != nil {
			t.Fatal(err)
		}
		twice, err := SnapToQuarterHour(once)
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Fatalf("snap not idempotent: %s -> %s -> %s", MinutesToTime(m), once, twice)
		}
		if !IsQuarterAligned(once) {
			t.Fatalf("snap produced unaligned time %s", once)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{name: "minutes only", start: "09:00", end: "09:45", want: "45m"},
		{name: "whole hours", start: "09:00", end: "12:00", want: "3h"},
		{name: "hours and minutes", start: "09:00", end: "11:30", want: "2h 30m"},
		{name: "single quarter", start: "14:00", end: "14:15", want: "15m"},
		{name: "bad input", start: "zzz", end: "09:00", want: "0m"},
		{name: "end before start", start: "10:00", end: "09:00", want: "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.start, tt.end); got != tt.want {
				t.Errorf("FormatDuration(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestGridPosition(t *testing.T) {
	// 12-hour window rendered at one cell per quarter hour.
	tests := []struct {
		name  string
		time  string
		want  int
	}{
		{name: "window start", time: "08:00", want: 0},
		{name: "one hour in", time: "09:00", want: 4},
		{name: "quarter in", time: "08:15", want: 1},
		{name: "window end", time: "20:00", want: 48},
		{name: "before window overhangs", time: "07:30", want: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GridPosition(tt.time, "08:00", 720, 48)
			if err != nil {
				t.Fatalf("GridPosition(%q) error = %v", tt.time, err)
			}
			if got != tt.want {
				t.Errorf("GridPosition(%q) = %d, want %d", tt.time, got, tt.want)
			}
		})
	}

	if _, err := GridPosition("junk", "08:00", 720, 48); err == nil {
		t.Error("GridPosition with bad time should error")
	}
}

func TestTimesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{name: "disjoint", a: [2]string{"09:00", "10:00"}, b: [2]string{"11:00", "12:00"}, want: false},
		{name: "adjacent do not overlap", a: [2]string{"09:00", "10:00"}, b: [2]string{"10:00", "11:00"}, want: false},
		{name: "partial overlap", a: [2]string{"09:00", "10:30"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "containment", a: [2]string{"09:00", "12:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "identical", a: [2]string{"09:00", "10:00"}, b: [2]string{"09:00", "10:00"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s1, _ := TimeToMinutes(tt.a[0])
			e1, _ := TimeToMinutes(tt.a[1])
			s2, _ := TimeToMinutes(tt.b[0])
			e2, _ := TimeToMinutes(tt.b[1])
			if got := TimesOverlap(s1, e1, s2, e2); got != tt.want {
				t.Errorf("TimesOverlap(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := TimesOverlap(s2, e2, s1, e1); got != tt.want {
				t.Errorf("TimesOverlap(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
