package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jango-blockchained/schichtplan-sub003/internal/coverage"
)

var dayNames = [coverage.DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the weekly coverage requirements",
		Long: `Display the stored coverage slots for every opening day in a
simple table, without starting the editor.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			days, err := a.repo.LoadWeek(context.Background())
			if err != nil {
				return fmt.Errorf("loading coverage: %w", err)
			}

			storeCfg := a.config.StoreConfig()
			fmt.Printf("=== Coverage %s-%s ===\n", storeCfg.Opening, storeCfg.Closing)
			rule := termWidth()
			if rule > 64 {
				rule = 64
			}
			fmt.Println(colorMuted.Sprint(strings.Repeat("-", rule)))

			totalMinutes := 0
			for _, d := range days {
				if d.Day < 0 || d.Day >= coverage.DaysPerWeek {
					continue
				}
				if !storeCfg.OpeningDays[d.Day] {
					continue
				}
				fmt.Println(colorHeader.Sprint(dayNames[d.Day]))
				if len(d.Slots) == 0 {
					fmt.Println(colorMuted.Sprint("  no coverage"))
					continue
				}
				for _, s := range d.SortedSlots() {
					printSlotRow(s)
					totalMinutes += s.Duration()
				}
			}

			fmt.Println()
			fmt.Println(colorStats.Sprintf("Total coverage: %s",
				minutesLabel(totalMinutes)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printSlotRow(s coverage.TimeSlot) {
	span := fmt.Sprintf("  %s-%s", s.Start, s.End)
	staff := fmt.Sprintf("%d-%d staff", s.MinEmployees, s.MaxEmployees)
	types := strings.Join(s.EmployeeTypes, ",")

	line := fmt.Sprintf("%s  %-6s  %-12s %s",
		colorBlock.Sprint(span),
		coverage.FormatDuration(s.Start, s.End),
		staff, types)
	if s.RequiresKeyholder {
		line += "  " + colorKeyholder.Sprintf("key +%d/+%d min", s.KeyholderBefore, s.KeyholderAfter)
	}
	fmt.Println(line)
}

func minutesLabel(m int) string {
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}
