// Package grid maps coverage slots onto a bounded pixel timeline. It is
// a pure function of (slot, store config, width): no state, re-derived
// on every render, and testable without any interaction machinery.
package grid

import (
	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// Timeline is the bounded horizontal axis of one day row: store opening
// to closing, extended by the configured keyholder lead and trail so
// overhangs stay visible.
type Timeline struct {
	StartMinutes int // opening minus keyholder lead
	TotalMinutes int
	WidthPx      int
}

// NewTimeline builds the timeline for a store config and render width.
func NewTimeline(cfg coverage.StoreConfig, widthPx int) Timeline {
	start := cfg.OpeningMinutes() - cfg.KeyholderBefore
	end := cfg.ClosingMinutes() + cfg.KeyholderAfter
	return Timeline{
		StartMinutes: start,
		TotalMinutes: end - start,
		WidthPx:      widthPx,
	}
}

// PositionFor maps a time to its pixel offset on the timeline. Times
// outside the timeline yield offsets outside [0, WidthPx]; callers clamp
// for rendering, never for the underlying data.
func (t Timeline) PositionFor(timeStr string) (int, error) {
	return coverage.GridPosition(timeStr, coverage.MinutesToTime(t.StartMinutes), t.TotalMinutes, t.WidthPx)
}

// PositionForMinutes maps minutes since midnight to a pixel offset.
func (t Timeline) PositionForMinutes(m int) int {
	if t.TotalMinutes <= 0 {
		return 0
	}
	p, _ := coverage.GridPosition(coverage.MinutesToTime(m), coverage.MinutesToTime(t.StartMinutes), t.TotalMinutes, t.WidthPx)
	return p
}

// TimeAt inverts PositionFor: the minutes since midnight under a pixel
// offset, snapped to the nearest quarter hour. Used to translate drop
// targets back into slot times.
func (t Timeline) TimeAt(px int) int {
	if t.WidthPx <= 0 {
		return t.StartMinutes
	}
	m := t.StartMinutes + px*t.TotalMinutes/t.WidthPx
	snapped := (m + coverage.QuarterHour/2) / coverage.QuarterHour * coverage.QuarterHour
	return snapped
}

// BlockLayout is the rendered geometry of one slot: the staffed block
// plus optional keyholder overhangs outside it.
type BlockLayout struct {
	Left  int // pixel offset of the staffed block
	Width int // pixel width of the staffed block

	LeadLeft   int // keyholder lead overhang, zero-width when absent
	LeadWidth  int
	TrailLeft  int // keyholder trail overhang, zero-width when absent
	TrailWidth int
}

// Layout computes the geometry for one slot. The lead overhang appears
// only when the slot starts at store opening, the trail only when it
// ends at closing, each proportional to the slot's keyholder minutes.
func (t Timeline) Layout(slot coverage.TimeSlot) (BlockLayout, error) {
	left, err := t.PositionFor(slot.Start)
	if err != nil {
		return BlockLayout{}, err
	}
	right, err := t.PositionFor(slot.End)
	if err != nil {
		return BlockLayout{}, err
	}

	bl := BlockLayout{Left: left, Width: right - left}

	if slot.KeyholderBefore > 0 {
		leadLeft := t.PositionForMinutes(slot.StartMinutes() - slot.KeyholderBefore)
		bl.LeadLeft = leadLeft
		bl.LeadWidth = left - leadLeft
	}
	if slot.KeyholderAfter > 0 {
		trailRight := t.PositionForMinutes(slot.EndMinutes() + slot.KeyholderAfter)
		bl.TrailLeft = right
		bl.TrailWidth = trailRight - right
	}
	return bl, nil
}

// DayLayout computes geometry for every slot of a day in slot order.
func (t Timeline) DayLayout(day coverage.DailyCoverage) ([]BlockLayout, error) {
	out := make([]BlockLayout, len(day.Slots))
	for i, s := range day.Slots {
		bl, err := t.Layout(s)
		if err != nil {
			return nil, err
		}
		out[i] = bl
	}
	return out, nil
}
