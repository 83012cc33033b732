package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jango-blockchained/schichtplan-sub003/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Store.Opening = promptValue(reader, "Opening time", cfg.Store.Opening)
	cfg.Store.Closing = promptValue(reader, "Closing time", cfg.Store.Closing)
	cfg.Store.OpeningDays = promptSlice(reader, "Opening days (comma-separated)", cfg.Store.OpeningDays)
	cfg.Store.MinEmployees = promptInt(reader, "Default min employees", cfg.Store.MinEmployees)
	cfg.Store.MaxEmployees = promptInt(reader, "Default max employees", cfg.Store.MaxEmployees)
	cfg.Store.KeyholderBefore = promptInt(reader, "Keyholder minutes before opening", cfg.Store.KeyholderBefore)
	cfg.Store.KeyholderAfter = promptInt(reader, "Keyholder minutes after closing", cfg.Store.KeyholderAfter)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptValue(reader, "Theme (dark/light)", cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Println("\nConfiguration saved.")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(colorHeader.Sprint("Store"))
	fmt.Printf("  Hours:            %s-%s\n", cfg.Store.Opening, cfg.Store.Closing)
	fmt.Printf("  Open days:        %s\n", strings.Join(cfg.Store.OpeningDays, ", "))
	fmt.Printf("  Staffing default: %d-%d\n", cfg.Store.MinEmployees, cfg.Store.MaxEmployees)
	fmt.Printf("  Keyholder:        %d min before, %d min after\n",
		cfg.Store.KeyholderBefore, cfg.Store.KeyholderAfter)
	for _, t := range cfg.Store.EmployeeTypes {
		fmt.Printf("  Employee type:    %s (%s)\n", t.ID, t.Name)
	}
	fmt.Println(colorHeader.Sprint("Storage"))
	fmt.Printf("  Database: %s\n", cfg.Storage.DBPath)
	fmt.Println(colorHeader.Sprint("UI"))
	fmt.Printf("  Theme: %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current
	}
	return answer
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	answer := promptValue(reader, label, strconv.Itoa(current))
	n, err := strconv.Atoi(answer)
	if err != nil {
		return current
	}
	return n
}

func promptSlice(reader *bufio.Reader, label string, current []string) []string {
	answer := promptValue(reader, label, strings.Join(current, ","))
	parts := strings.Split(answer, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return current
	}
	return out
}
