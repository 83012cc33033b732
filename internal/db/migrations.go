package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS coverage_slots (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			day_index          INTEGER NOT NULL CHECK(day_index BETWEEN 0 AND 6),
			position           INTEGER NOT NULL,
			start_time         TIME NOT NULL,
			end_time           TIME NOT NULL,
			min_employees      INTEGER NOT NULL CHECK(min_employees >= 1),
			max_employees      INTEGER NOT NULL,
			employee_types     TEXT NOT NULL,
			requires_keyholder INTEGER NOT NULL DEFAULT 0,
			manual_keyholder   INTEGER NOT NULL DEFAULT 0,
			keyholder_before   INTEGER NOT NULL DEFAULT 0,
			keyholder_after    INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_coverage_slots_day ON coverage_slots(day_index, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating coverage_slots table: %w", err)
	}

	return nil
}
