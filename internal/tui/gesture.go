package tui

import (
	"errors"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// ErrNoGesture reports a commit on a gesture of the wrong kind.
var ErrNoGesture = errors.New("no gesture in progress")

// GestureKind identifies the active gesture. A slot is either being
// dragged or resized, never both; starting one suppresses the other.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureDrag
	GestureResize
)

// Gesture is one in-flight drag or resize session. It owns only preview
// state: the store is untouched until Drop or Commit, and every exit
// path (drop, commit, cancel, rejection) ends the session, so nothing
// outlives the gesture.
type Gesture struct {
	Kind GestureKind
	Day  int
	Slot int

	// Pre-gesture boundaries, in minutes. The view falls back to these
	// whenever a commit is rejected.
	OriginStart int
	OriginEnd   int

	// Preview boundaries, in minutes, quarter-aligned and clamped to
	// store hours. Rendering draws these; the store never sees them.
	PreviewStart int
	PreviewEnd   int
}

// Duration returns the gesture's fixed slot duration in minutes.
func (g *Gesture) Duration() int {
	return g.OriginEnd - g.OriginStart
}

// StartDrag begins a drag session for the slot at (day, idx).
func StartDrag(store *coverage.Store, day, idx int) (*Gesture, error) {
	slot, err := store.Slot(day, idx)
	if err != nil {
		return nil, err
	}
	return &Gesture{
		Kind:         GestureDrag,
		Day:          day,
		Slot:         idx,
		OriginStart:  slot.StartMinutes(),
		OriginEnd:    slot.EndMinutes(),
		PreviewStart: slot.StartMinutes(),
		PreviewEnd:   slot.EndMinutes(),
	}, nil
}

// DragTo moves the floating preview so its start sits at the quarter
// mark nearest to startMin, clamped so the whole slot stays inside
// store hours. Preview only; no mutation happens until Drop.
func (g *Gesture) DragTo(startMin int, cfg coverage.StoreConfig) {
	if g.Kind != GestureDrag {
		return
	}
	duration := g.Duration()
	snapped := snapMinutes(startMin)
	if snapped < cfg.OpeningMinutes() {
		snapped = cfg.OpeningMinutes()
	}
	if snapped+duration > cfg.ClosingMinutes() {
		snapped = cfg.ClosingMinutes() - duration
	}
	g.PreviewStart = snapped
	g.PreviewEnd = snapped + duration
}

// Drop commits the drag through the store's move operation. A rejected
// move (conflict, out of hours) is silently ignored: the slot keeps its
// original position and the preview is discarded either way.
func (g *Gesture) Drop(store *coverage.Store) error {
	if g.Kind != GestureDrag {
		return ErrNoGesture
	}
	err := store.MoveSlot(g.Day, g.Slot, coverage.MinutesToTime(g.PreviewStart))
	if errors.Is(err, coverage.ErrSlotConflict) || errors.Is(err, coverage.ErrOutOfHours) {
		return nil
	}
	return err
}

// StartResize begins a trailing-edge resize session for the slot at
// (day, idx).
func StartResize(store *coverage.Store, day, idx int) (*Gesture, error) {
	slot, err := store.Slot(day, idx)
	if err != nil {
		return nil, err
	}
	return &Gesture{
		Kind:         GestureResize,
		Day:          day,
		Slot:         idx,
		OriginStart:  slot.StartMinutes(),
		OriginEnd:    slot.EndMinutes(),
		PreviewStart: slot.StartMinutes(),
		PreviewEnd:   slot.EndMinutes(),
	}, nil
}

// ResizeTo moves the preview end to the quarter mark nearest endMin,
// clamped to at least one quarter hour of duration and at most the
// store closing time.
func (g *Gesture) ResizeTo(endMin int, cfg coverage.StoreConfig) {
	if g.Kind != GestureResize {
		return
	}
	snapped := snapMinutes(endMin)
	if snapped < g.PreviewStart+coverage.QuarterHour {
		snapped = g.PreviewStart + coverage.QuarterHour
	}
	if snapped > cfg.ClosingMinutes() {
		snapped = cfg.ClosingMinutes()
	}
	g.PreviewEnd = snapped
}

// Commit applies the resize through the store's update operation.
// Rejections leave the slot unchanged and surface the error so the
// caller can report it; the gesture ends regardless.
func (g *Gesture) Commit(store *coverage.Store) error {
	if g.Kind != GestureResize {
		return ErrNoGesture
	}
	end := coverage.MinutesToTime(g.PreviewEnd)
	return store.UpdateSlot(g.Day, g.Slot, coverage.SlotUpdate{End: &end})
}

// snapMinutes rounds minutes to the nearest quarter-hour mark.
func snapMinutes(m int) int {
	return (m + coverage.QuarterHour/2) / coverage.QuarterHour * coverage.QuarterHour
}
