package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Coverage blocks: bold cyan
	colorBlock = color.New(color.FgCyan, color.Bold)

	// Keyholder markers: yellow to make them pop
	colorKeyholder = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Closed days and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Totals: green
	colorStats = color.New(color.FgGreen)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// detectTheme picks a TUI theme from the terminal background when the
// config does not force one.
func detectTheme(configured string) string {
	if configured != "" {
		return configured
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
