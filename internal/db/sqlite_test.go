package db

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testDay(day int) coverage.DailyCoverage {
	return coverage.DailyCoverage{Day: day, Slots: []coverage.TimeSlot{
		{
			Start: "09:00", End: "14:00",
			MinEmployees: 1, MaxEmployees: 3,
			EmployeeTypes:     []string{"vz", "tz"},
			RequiresKeyholder: true,
			KeyholderBefore:   30,
		},
		{
			Start: "14:00", End: "20:00",
			MinEmployees: 2, MaxEmployees: 4,
			EmployeeTypes:     []string{"vz"},
			RequiresKeyholder: true,
			ManualKeyholder:   true,
			KeyholderAfter:    15,
		},
	}}
}

func TestLoadWeekEmpty(t *testing.T) {
	repo := newTestRepo(t)

	days, err := repo.LoadWeek(context.Background())
	if err != nil {
		t.Fatalf("LoadWeek failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("fresh database returned %d days", len(days))
	}
}

func TestReplaceDayRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := testDay(1)
	if err := repo.ReplaceDay(ctx, want); err != nil {
		t.Fatalf("ReplaceDay failed: %v", err)
	}

	days, err := repo.LoadWeek(ctx)
	if err != nil {
		t.Fatalf("LoadWeek failed: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("loaded %d days, want 1", len(days))
	}
	if !reflect.DeepEqual(days[0], want) {
		t.Errorf("loaded day = %+v, want %+v", days[0], want)
	}
}

func TestReplaceDayOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceDay(ctx, testDay(0)); err != nil {
		t.Fatal(err)
	}

	// Replace with a single different slot; the old rows must go.
	next := coverage.DailyCoverage{Day: 0, Slots: []coverage.TimeSlot{
		{Start: "11:00", End: "13:00", MinEmployees: 1, MaxEmployees: 1, EmployeeTypes: []string{"gfb"}},
	}}
	if err := repo.ReplaceDay(ctx, next); err != nil {
		t.Fatal(err)
	}

	days, err := repo.LoadWeek(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || len(days[0].Slots) != 1 {
		t.Fatalf("days = %+v, want one day with one slot", days)
	}
	if days[0].Slots[0].Start != "11:00" {
		t.Errorf("slot start = %s, want 11:00", days[0].Slots[0].Start)
	}
}

func TestReplaceDayEmptyClears(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceDay(ctx, testDay(4)); err != nil {
		t.Fatal(err)
	}
	if err := repo.ReplaceDay(ctx, coverage.DailyCoverage{Day: 4}); err != nil {
		t.Fatal(err)
	}

	days, err := repo.LoadWeek(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 0 {
		t.Errorf("cleared day still present: %+v", days)
	}
}

func TestReplaceDayBadIndex(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.ReplaceDay(context.Background(), coverage.DailyCoverage{Day: 7})
	if !errors.Is(err, coverage.ErrBadDayIndex) {
		t.Errorf("error = %v, want ErrBadDayIndex", err)
	}
}

func TestReplaceWeek(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	week := []coverage.DailyCoverage{testDay(0), testDay(3), testDay(5)}
	if err := repo.ReplaceWeek(ctx, week); err != nil {
		t.Fatalf("ReplaceWeek failed: %v", err)
	}

	days, err := repo.LoadWeek(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 3 {
		t.Fatalf("loaded %d days, want 3", len(days))
	}
	// LoadWeek orders by day index.
	for i, want := range []int{0, 3, 5} {
		if days[i].Day != want {
			t.Errorf("days[%d].Day = %d, want %d", i, days[i].Day, want)
		}
	}
}

func TestSlotOrderSurvivesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Insertion order is not time order; the position column keeps it.
	day := coverage.DailyCoverage{Day: 2, Slots: []coverage.TimeSlot{
		{Start: "16:00", End: "18:00", MinEmployees: 1, MaxEmployees: 1, EmployeeTypes: []string{"vz"}},
		{Start: "09:00", End: "11:00", MinEmployees: 1, MaxEmployees: 1, EmployeeTypes: []string{"vz"}},
	}}
	if err := repo.ReplaceDay(ctx, day); err != nil {
		t.Fatal(err)
	}

	days, err := repo.LoadWeek(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if days[0].Slots[0].Start != "16:00" || days[0].Slots[1].Start != "09:00" {
		t.Errorf("insertion order lost: %+v", days[0].Slots)
	}
}
