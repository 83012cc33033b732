// Package ui implements the command line interface around the coverage
// editor: the root command launches the TUI, subcommands give quick
// read-only views and config management.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jango-blockchained/schichtplan-sub003/internal/config"
	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
	"github.com/jango-blockchained/schichtplan-sub003/internal/db"
	"github.com/jango-blockchained/schichtplan-sub003/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   coverage.Repository
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given config. The
// repository is opened lazily by the commands that need it.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "schichtplan",
		Short: "A staffing coverage grid editor",
		Long: `Schichtplan edits weekly staffing coverage requirements on a
per-day time grid.

Slots snap to quarter hours, never overlap, and slots touching the
opening or closing edge carry the keyholder lead and wrap time.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			a.config.UI.Theme = detectTheme(a.config.UI.Theme)
			return tui.Run(a.repo, a.config)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("schichtplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the sqlite repository on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
