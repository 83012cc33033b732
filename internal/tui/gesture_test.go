package tui

import (
	"errors"
	"testing"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

func gestureConfig() coverage.StoreConfig {
	return coverage.StoreConfig{
		Opening:      "09:00",
		Closing:      "20:00",
		OpeningDays:  [7]bool{true, true, true, true, true, true, false},
		MinEmployees: 1,
		MaxEmployees: 3,
		EmployeeTypes: []coverage.EmployeeType{
			{ID: "vz", Name: "Vollzeit"},
		},
		KeyholderBefore: 30,
		KeyholderAfter:  15,
	}
}

func gestureStore(t *testing.T) *coverage.Store {
	t.Helper()
	s := coverage.NewStore(gestureConfig(), nil, nil)
	if err := s.AddSlot(0, "09:00", 300); err != nil { // 09:00-14:00
		t.Fatal(err)
	}
	if err := s.AddSlot(0, "15:00", 240); err != nil { // 15:00-19:00
		t.Fatal(err)
	}
	return s
}

func TestStartDrag(t *testing.T) {
	s := gestureStore(t)

	g, err := StartDrag(s, 0, 0)
	if err != nil {
		t.Fatalf("StartDrag error = %v", err)
	}
	if g.Kind != GestureDrag {
		t.Errorf("Kind = %v, want GestureDrag", g.Kind)
	}
	if g.PreviewStart != 540 || g.PreviewEnd != 840 {
		t.Errorf("preview = %d-%d, want 540-840", g.PreviewStart, g.PreviewEnd)
	}

	if _, err := StartDrag(s, 0, 9); !errors.Is(err, coverage.ErrSlotNotFound) {
		t.Errorf("missing slot error = %v, want ErrSlotNotFound", err)
	}
}

func TestDragToSnapsAndClamps(t *testing.T) {
	cfg := gestureConfig()

	tests := []struct {
		name      string
		target    int
		wantStart int
	}{
		{name: "snaps to nearest quarter", target: 10*60 + 7, wantStart: 600},
		{name: "snaps up", target: 10*60 + 8, wantStart: 615},
		{name: "clamps at opening", target: 7 * 60, wantStart: 540},
		{name: "clamps so end fits closing", target: 19 * 60, wantStart: 900}, // 15:00, slot is 5h
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gestureStore(t)
			g, err := StartDrag(s, 0, 0)
			if err != nil {
				t.Fatal(err)
			}
			g.DragTo(tt.target, cfg)
			if g.PreviewStart != tt.wantStart {
				t.Errorf("PreviewStart = %d, want %d", g.PreviewStart, tt.wantStart)
			}
			if g.PreviewEnd-g.PreviewStart != 300 {
				t.Errorf("preview duration = %d, want 300", g.PreviewEnd-g.PreviewStart)
			}
			// Preview only; the slot must be untouched.
			slot, _ := s.Slot(0, 0)
			if slot.Start != "09:00" {
				t.Error("drag preview mutated the store")
			}
		})
	}
}

func TestDropCommitsMove(t *testing.T) {
	s := gestureStore(t)
	g, err := StartDrag(s, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	g.DragTo(10*60, gestureConfig())
	if err := g.Drop(s); err != nil {
		t.Fatalf("Drop error = %v", err)
	}

	slot, _ := s.Slot(0, 0)
	if slot.Start != "10:00" || slot.End != "15:00" {
		t.Errorf("slot = %s-%s, want 10:00-15:00", slot.Start, slot.End)
	}
	if slot.RequiresKeyholder {
		t.Error("moved slot kept keyholder requirement")
	}
}

func TestDropOnConflictKeepsOriginal(t *testing.T) {
	s := gestureStore(t)
	g, err := StartDrag(s, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Overlaps the 15:00-19:00 neighbor. snapMinutes keeps 13:00 and
	// the clamp does not apply, so the store rejects the move.
	g.PreviewStart, g.PreviewEnd = 13*60, 18*60
	if err := g.Drop(s); err != nil {
		t.Fatalf("conflicting drop should be silent, got %v", err)
	}

	slot, _ := s.Slot(0, 0)
	if slot.Start != "09:00" || slot.End != "14:00" {
		t.Errorf("slot = %s-%s, want original 09:00-14:00", slot.Start, slot.End)
	}
}

func TestResizeToClamps(t *testing.T) {
	cfg := gestureConfig()

	tests := []struct {
		name    string
		target  int
		wantEnd int
	}{
		{name: "snaps to quarter", target: 16*60 + 10, wantEnd: 975},
		{name: "minimum one quarter", target: 9 * 60, wantEnd: 555},
		{name: "clamps to closing", target: 23 * 60, wantEnd: 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gestureStore(t)
			g, err := StartResize(s, 0, 0)
			if err != nil {
				t.Fatal(err)
			}
			g.ResizeTo(tt.target, cfg)
			if g.PreviewEnd != tt.wantEnd {
				t.Errorf("PreviewEnd = %d, want %d", g.PreviewEnd, tt.wantEnd)
			}
			if g.PreviewStart != 540 {
				t.Error("resize moved the leading edge")
			}
		})
	}
}

func TestResizeCommit(t *testing.T) {
	s := gestureStore(t)
	g, err := StartResize(s, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	g.ResizeTo(12*60+30, gestureConfig())
	if err := g.Commit(s); err != nil {
		t.Fatalf("Commit error = %v", err)
	}

	slot, _ := s.Slot(0, 0)
	if slot.End != "12:30" {
		t.Errorf("end = %s, want 12:30", slot.End)
	}
	if slot.Start != "09:00" {
		t.Error("resize changed the start")
	}
}

func TestResizeCommitConflictSurfacesError(t *testing.T) {
	s := gestureStore(t)
	g, err := StartResize(s, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Stretch into the 15:00-19:00 neighbor.
	g.PreviewEnd = 16 * 60
	err = g.Commit(s)
	if !errors.Is(err, coverage.ErrSlotConflict) {
		t.Fatalf("Commit error = %v, want ErrSlotConflict", err)
	}

	slot, _ := s.Slot(0, 0)
	if slot.End != "14:00" {
		t.Errorf("rejected resize changed the slot: end = %s", slot.End)
	}
}

func TestGestureKindGuards(t *testing.T) {
	s := gestureStore(t)

	drag, _ := StartDrag(s, 0, 0)
	if err := drag.Commit(s); !errors.Is(err, ErrNoGesture) {
		t.Errorf("Commit on drag error = %v, want ErrNoGesture", err)
	}

	resize, _ := StartResize(s, 0, 0)
	if err := resize.Drop(s); !errors.Is(err, ErrNoGesture) {
		t.Errorf("Drop on resize error = %v, want ErrNoGesture", err)
	}

	// Mismatched preview calls are no-ops.
	before := resize.PreviewStart
	resize.DragTo(10*60, gestureConfig())
	if resize.PreviewStart != before {
		t.Error("DragTo moved a resize gesture")
	}
}
