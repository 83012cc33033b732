package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Store.Opening != "09:00" || cfg.Store.Closing != "20:00" {
		t.Errorf("default hours = %s-%s", cfg.Store.Opening, cfg.Store.Closing)
	}
	if len(cfg.Store.EmployeeTypes) != 3 {
		t.Errorf("default employee types = %d, want 3", len(cfg.Store.EmployeeTypes))
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.Store.Opening != "09:00" {
		t.Errorf("opening = %s, want default", cfg.Store.Opening)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
opening = "08:00"
closing = "18:00"
opening_days = ["monday", "friday"]
min_employees = 2
max_employees = 5
keyholder_before_minutes = 45
keyholder_after_minutes = 30

[[store.employee_types]]
id = "vz"
name = "Vollzeit"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.Store.Opening != "08:00" || cfg.Store.Closing != "18:00" {
		t.Errorf("hours = %s-%s, want 08:00-18:00", cfg.Store.Opening, cfg.Store.Closing)
	}
	if cfg.Store.KeyholderBefore != 45 || cfg.Store.KeyholderAfter != 30 {
		t.Errorf("keyholder = %d/%d, want 45/30", cfg.Store.KeyholderBefore, cfg.Store.KeyholderAfter)
	}
	// Unset sections keep defaults.
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %s, want default dark", cfg.UI.Theme)
	}
}

func TestLoadFromNormalizesHours(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
opening = "9:05"
closing = "19:50"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.Store.Opening != "09:00" {
		t.Errorf("opening = %s, want snapped 09:00", cfg.Store.Opening)
	}
	if cfg.Store.Closing != "19:45" {
		t.Errorf("closing = %s, want snapped 19:45", cfg.Store.Closing)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCHICHTPLAN_OPENING", "10:00")
	t.Setenv("SCHICHTPLAN_OPENING_DAYS", "monday,sunday")
	t.Setenv("SCHICHTPLAN_KEYHOLDER_BEFORE", "60")
	t.Setenv("SCHICHTPLAN_DB_PATH", "/tmp/env.db")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.Store.Opening != "10:00" {
		t.Errorf("opening = %s, want env 10:00", cfg.Store.Opening)
	}
	if len(cfg.Store.OpeningDays) != 2 {
		t.Errorf("opening days = %v", cfg.Store.OpeningDays)
	}
	if cfg.Store.KeyholderBefore != 60 {
		t.Errorf("keyholder before = %d, want 60", cfg.Store.KeyholderBefore)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("db path = %s", cfg.Storage.DBPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad opening time",
			mutate:  func(c *Config) { c.Store.Opening = "late" },
			wantErr: "opening must be in HH:MM format",
		},
		{
			name:    "opening after closing",
			mutate:  func(c *Config) { c.Store.Opening, c.Store.Closing = "20:00", "09:00" },
			wantErr: "opening must be before closing",
		},
		{
			name:    "no opening days",
			mutate:  func(c *Config) { c.Store.OpeningDays = nil },
			wantErr: "at least one opening day",
		},
		{
			name:    "unknown weekday",
			mutate:  func(c *Config) { c.Store.OpeningDays = []string{"funday"} },
			wantErr: "invalid opening day",
		},
		{
			name:    "zero min employees",
			mutate:  func(c *Config) { c.Store.MinEmployees = 0 },
			wantErr: "min_employees must be at least 1",
		},
		{
			name:    "min above max",
			mutate:  func(c *Config) { c.Store.MinEmployees, c.Store.MaxEmployees = 5, 2 },
			wantErr: "must not exceed max_employees",
		},
		{
			name:    "negative keyholder minutes",
			mutate:  func(c *Config) { c.Store.KeyholderBefore = -1 },
			wantErr: "keyholder minutes",
		},
		{
			name:    "no employee types",
			mutate:  func(c *Config) { c.Store.EmployeeTypes = nil },
			wantErr: "at least one employee type",
		},
		{
			name: "duplicate employee type",
			mutate: func(c *Config) {
				c.Store.EmployeeTypes = append(c.Store.EmployeeTypes, c.Store.EmployeeTypes[0])
			},
			wantErr: "duplicate employee type",
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.Storage.DBPath = "" },
			wantErr: "db_path must be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestStoreConfig(t *testing.T) {
	cfg := Default()
	cfg.Store.OpeningDays = []string{"Monday", "saturday"}

	sc := cfg.StoreConfig()
	want := [7]bool{true, false, false, false, false, true, false}
	if sc.OpeningDays != want {
		t.Errorf("OpeningDays = %v, want %v", sc.OpeningDays, want)
	}
	if len(sc.EmployeeTypes) != 3 {
		t.Errorf("employee types = %d, want 3", len(sc.EmployeeTypes))
	}
	if sc.Opening != "09:00" || sc.Closing != "20:00" {
		t.Errorf("hours = %s-%s", sc.Opening, sc.Closing)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Store.Opening = "08:00"
	cfg.Store.KeyholderAfter = 45
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if loaded.Store.Opening != "08:00" {
		t.Errorf("opening = %s, want 08:00", loaded.Store.Opening)
	}
	if loaded.Store.KeyholderAfter != 45 {
		t.Errorf("keyholder after = %d, want 45", loaded.Store.KeyholderAfter)
	}
}
