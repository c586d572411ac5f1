package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tim-element/element-nutrients-automation/internal/model"
	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

var remindersHours int

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Show today's upcoming reminders",
	Args:  cobra.NoArgs,
	RunE:  runReminders,
}

func init() {
	remindersCmd.Flags().IntVar(&remindersHours, "hours", 12, "Look-ahead window in hours")
}

func runReminders(cmd *cobra.Command, args []string) error {
	if remindersHours < 0 {
		return fmt.Errorf("--hours must not be negative")
	}
	now := time.Now()
	agg := newAggregator(feedHousehold(), customStore())
	upcoming := agg.Upcoming(now, time.Duration(remindersHours)*time.Hour)

	printReminders(cmd.OutOrStdout(), upcoming, remindersHours)
	return nil
}

var sourceColors = map[model.SourceType]*color.Color{
	model.SourceActivityPrep: color.New(color.FgYellow),
	model.SourceRecurring:    color.New(color.FgGreen),
	model.SourceBedtime:      color.New(color.FgMagenta),
	model.SourceCustom:       color.New(color.FgCyan),
}

// printReminders prints one "7:00 PM: message" line per reminder, the time
// coloured by source.
func printReminders(w io.Writer, upcoming []model.Reminder, hours int) {
	if len(upcoming) == 0 {
		fmt.Fprintf(w, "No upcoming reminders for the next %d hours.\n", hours)
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(w, "⏰ UPCOMING REMINDERS (%d):\n", len(upcoming))
	for _, r := range upcoming {
		c, ok := sourceColors[r.Source]
		if !ok {
			c = color.New(color.Reset)
		}
		fmt.Fprintf(w, "  %s: %s\n", c.Sprint(timecalc.FormatClock(r.DueAt)), r.Message)
	}
}
