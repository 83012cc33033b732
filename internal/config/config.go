// Package config handles configuration loading from files, defaults and
// environment variables, and validates the store-hours schema once at
// the edge so the editor core never sees a partial config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// Config holds the application configuration.
type Config struct {
	Store   StoreSection   `toml:"store"`
	Storage StorageSection `toml:"storage"`
	UI      UISection      `toml:"ui"`
}

// StoreSection holds store hours and staffing defaults.
type StoreSection struct {
	Opening         string         `toml:"opening"`      // e.g. "09:00"
	Closing         string         `toml:"closing"`      // e.g. "20:00"
	OpeningDays     []string       `toml:"opening_days"` // e.g. ["monday", ...]
	MinEmployees    int            `toml:"min_employees"`
	MaxEmployees    int            `toml:"max_employees"`
	KeyholderBefore int            `toml:"keyholder_before_minutes"`
	KeyholderAfter  int            `toml:"keyholder_after_minutes"`
	EmployeeTypes   []EmployeeType `toml:"employee_types"`
}

// EmployeeType is one configurable staff category.
type EmployeeType struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// StorageSection holds database settings.
type StorageSection struct {
	DBPath string `toml:"db_path"`
}

// UISection holds TUI settings.
type UISection struct {
	Theme string `toml:"theme"` // "dark" or "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreSection{
			Opening:         "09:00",
			Closing:         "20:00",
			OpeningDays:     []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
			MinEmployees:    1,
			MaxEmployees:    3,
			KeyholderBefore: 30,
			KeyholderAfter:  15,
			EmployeeTypes: []EmployeeType{
				{ID: "vz", Name: "Vollzeit"},
				{ID: "tz", Name: "Teilzeit"},
				{ID: "gfb", Name: "Geringfügig Beschäftigt"},
			},
		},
		Storage: StorageSection{
			DBPath: defaultDBPath(),
		},
		UI: UISection{
			Theme: "dark",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "schichtplan.db"
	}
	return filepath.Join(home, ".local", "share", "schichtplan", "schichtplan.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "schichtplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults
// and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path. It starts with
// defaults, overlays file config if it exists, then applies env
// overrides, normalizes and validates.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCHICHTPLAN_OPENING"); v != "" {
		cfg.Store.Opening = v
	}
	if v := os.Getenv("SCHICHTPLAN_CLOSING"); v != "" {
		cfg.Store.Closing = v
	}
	if v := os.Getenv("SCHICHTPLAN_OPENING_DAYS"); v != "" {
		cfg.Store.OpeningDays = strings.Split(v, ",")
	}
	if v := os.Getenv("SCHICHTPLAN_KEYHOLDER_BEFORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Store.KeyholderBefore = n
		}
	}
	if v := os.Getenv("SCHICHTPLAN_KEYHOLDER_AFTER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Store.KeyholderAfter = n
		}
	}
	if v := os.Getenv("SCHICHTPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SCHICHTPLAN_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// normalize snaps store hours to quarter-hour marks and zero-pads them,
// so downstream arithmetic never re-checks formats.
func (c *Config) normalize() {
	if t, err := coverage.SnapToQuarterHour(c.Store.Opening); err == nil {
		c.Store.Opening = t
	}
	if t, err := coverage.SnapToQuarterHour(c.Store.Closing); err == nil {
		c.Store.Closing = t
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Store.Opening, "opening"); err != nil {
		return err
	}
	if err := validateTime(c.Store.Closing, "closing"); err != nil {
		return err
	}
	if c.Store.Opening >= c.Store.Closing {
		return errors.New("opening must be before closing")
	}
	if len(c.Store.OpeningDays) == 0 {
		return errors.New("at least one opening day must be configured")
	}
	for _, day := range c.Store.OpeningDays {
		if !isValidWeekday(day) {
			return fmt.Errorf("invalid opening day: %s", day)
		}
	}
	if c.Store.MinEmployees < 1 {
		return errors.New("min_employees must be at least 1")
	}
	if c.Store.MinEmployees > c.Store.MaxEmployees {
		return errors.New("min_employees must not exceed max_employees")
	}
	if c.Store.KeyholderBefore < 0 || c.Store.KeyholderAfter < 0 {
		return errors.New("keyholder minutes must not be negative")
	}
	if len(c.Store.EmployeeTypes) == 0 {
		return errors.New("at least one employee type must be configured")
	}
	seen := map[string]bool{}
	for _, et := range c.Store.EmployeeTypes {
		if et.ID == "" {
			return errors.New("employee type id must not be empty")
		}
		if seen[et.ID] {
			return fmt.Errorf("duplicate employee type id: %s", et.ID)
		}
		seen[et.ID] = true
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if _, err := coverage.TimeToMinutes(t); err != nil {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

// weekdayIndex maps weekday names to the Monday-first day index.
var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

func isValidWeekday(day string) bool {
	_, ok := weekdayIndex[strings.ToLower(day)]
	return ok
}

// StoreConfig converts the validated configuration into the normalized
// shape the coverage core consumes.
func (c *Config) StoreConfig() coverage.StoreConfig {
	sc := coverage.StoreConfig{
		Opening:         c.Store.Opening,
		Closing:         c.Store.Closing,
		MinEmployees:    c.Store.MinEmployees,
		MaxEmployees:    c.Store.MaxEmployees,
		KeyholderBefore: c.Store.KeyholderBefore,
		KeyholderAfter:  c.Store.KeyholderAfter,
	}
	for _, day := range c.Store.OpeningDays {
		if i, ok := weekdayIndex[strings.ToLower(day)]; ok {
			sc.OpeningDays[i] = true
		}
	}
	for _, et := range c.Store.EmployeeTypes {
		sc.EmployeeTypes = append(sc.EmployeeTypes, coverage.EmployeeType{ID: et.ID, Name: et.Name})
	}
	return sc
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
