// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

// CoverageLoadedMsg is sent when the persisted week has been loaded.
type CoverageLoadedMsg struct {
	Days []coverage.DailyCoverage
}

// CoverageSavedMsg is sent after a successful persistence round-trip.
type CoverageSavedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

const ioTimeout = 5 * time.Second

// LoadCoverage loads the persisted week from the repository.
func LoadCoverage(repo coverage.Repository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()

		days, err := repo.LoadWeek(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return CoverageLoadedMsg{Days: days}
	}
}

// SaveCoverage persists the full seven-day set after a mutation.
func SaveCoverage(repo coverage.Repository, days []coverage.DailyCoverage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()

		if err := repo.ReplaceWeek(ctx, days); err != nil {
			return ErrMsg{Err: err}
		}
		return CoverageSavedMsg{}
	}
}

// SaveDay persists one changed day.
func SaveDay(repo coverage.Repository, day coverage.DailyCoverage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()

		if err := repo.ReplaceDay(ctx, day); err != nil {
			return ErrMsg{Err: err}
		}
		return CoverageSavedMsg{}
	}
}

// Status returns a command that emits a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
