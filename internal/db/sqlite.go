// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// SQLite implements coverage.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadWeek returns the persisted coverage grouped by day. Days without
// slots are absent from the result.
func (s *SQLite) LoadWeek(ctx context.Context) ([]coverage.DailyCoverage, error) {
	query := `
		SELECT day_index, start_time, end_time, min_employees, max_employees,
		       employee_types, requires_keyholder, manual_keyholder,
		       keyholder_before, keyholder_after
		FROM coverage_slots
		ORDER BY day_index, position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying coverage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byDay := make(map[int]*coverage.DailyCoverage)
	var order []int
	for rows.Next() {
		var (
			day   int
			slot  coverage.TimeSlot
			types string
		)
		err := rows.Scan(
			&day,
			&slot.Start,
			&slot.End,
			&slot.MinEmployees,
			&slot.MaxEmployees,
			&types,
			&slot.RequiresKeyholder,
			&slot.ManualKeyholder,
			&slot.KeyholderBefore,
			&slot.KeyholderAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		slot.EmployeeTypes = splitTypes(types)

		d, ok := byDay[day]
		if !ok {
			d = &coverage.DailyCoverage{Day: day}
			byDay[day] = d
			order = append(order, day)
		}
		d.Slots = append(d.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	days := make([]coverage.DailyCoverage, 0, len(order))
	for _, day := range order {
		days = append(days, *byDay[day])
	}
	return days, nil
}

// ReplaceDay atomically replaces all slots of one day.
func (s *SQLite) ReplaceDay(ctx context.Context, day coverage.DailyCoverage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceDayTx(ctx, tx, day); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ReplaceWeek atomically replaces the whole seven-day set.
func (s *SQLite) ReplaceWeek(ctx context.Context, days []coverage.DailyCoverage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, day := range days {
		if err := replaceDayTx(ctx, tx, day); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// replaceDayTx deletes and re-inserts one day's slots inside tx,
// preserving insertion order through the position column.
func replaceDayTx(ctx context.Context, tx *sql.Tx, day coverage.DailyCoverage) error {
	if day.Day < 0 || day.Day >= coverage.DaysPerWeek {
		return coverage.ErrBadDayIndex
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM coverage_slots WHERE day_index = ?`, day.Day); err != nil {
		return fmt.Errorf("clearing day %d: %w", day.Day, err)
	}

	query := `
		INSERT INTO coverage_slots (
			day_index, position, start_time, end_time, min_employees, max_employees,
			employee_types, requires_keyholder, manual_keyholder,
			keyholder_before, keyholder_after
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for pos, slot := range day.Slots {
		_, err := stmt.ExecContext(ctx,
			day.Day,
			pos,
			slot.Start,
			slot.End,
			slot.MinEmployees,
			slot.MaxEmployees,
			joinTypes(slot.EmployeeTypes),
			slot.RequiresKeyholder,
			slot.ManualKeyholder,
			slot.KeyholderBefore,
			slot.KeyholderAfter,
		)
		if err != nil {
			return fmt.Errorf("inserting slot %s-%s: %w", slot.Start, slot.End, err)
		}
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func joinTypes(types []string) string {
	return strings.Join(types, ",")
}

func splitTypes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
