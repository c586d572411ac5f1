package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tim-element/element-nutrients-automation/internal/msgraph"
	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

var (
	outlookSyncFrom   string
	outlookSyncTo     string
	outlookSyncDate   string
	outlookSyncDryRun bool
	outlookSyncLead   int
	outlookSyncTZ     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as custom reminders",
	Args:  cobra.NoArgs,
	RunE:  runOutlookImport,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Import a specific date (YYYY-MM-DD)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned reminders without writing")
	outlookSyncCmd.Flags().IntVar(&outlookSyncLead, "lead", -1, "Minutes before an event its reminder fires (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (e.g. Europe/Berlin)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// importRange works out the [from, to] day range from the date flags.
func importRange(now time.Time, date, fromStr, toStr string) (time.Time, time.Time, error) {
	switch {
	case date != "":
		d, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --date value %q: %w", date, err)
		}
		return timecalc.StartOfDay(d), timecalc.EndOfDay(d), nil

	case fromStr != "" || toStr != "":
		if fromStr == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from is required when --to is specified")
		}
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from value %q: %w", fromStr, err)
		}
		to := now
		if toStr != "" {
			to, err = time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid --to value %q: %w", toStr, err)
			}
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to.Format("2006-01-02"), fromStr)
		}
		return timecalc.StartOfDay(from), timecalc.EndOfDay(to), nil

	default:
		return timecalc.StartOfDay(now), timecalc.EndOfDay(now), nil
	}
}

func runOutlookImport(cmd *cobra.Command, args []string) error {
	now := time.Now()

	from, to, err := importRange(now, outlookSyncDate, outlookSyncFrom, outlookSyncTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	timezone := outlookSyncTZ
	if timezone == "" {
		timezone = appCfg.Outlook.Timezone
	}
	lead := appCfg.Outlook.LeadMinutes
	if outlookSyncLead >= 0 {
		lead = outlookSyncLead
	}

	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Importing Outlook events (%s → %s)%s...\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"), dryTag)
	fmt.Println()

	ctx := context.Background()
	tokenPath := msgraph.TokenPath(flagDataDir)

	auth := msgraph.Auth{
		TenantID:  appCfg.Outlook.TenantID,
		ClientID:  appCfg.Outlook.ClientID,
		TokenPath: tokenPath,
		Out:       os.Stdout,
		Logger:    componentLogger("msgraph"),
	}
	tok, oauthCfg, err := auth.Token(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}

	client := msgraph.NewClient(ctx, tok, oauthCfg, tokenPath)

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch calendar events: %v\n", err)
		os.Exit(1)
	}

	result, err := msgraph.ImportEvents(events, customStore(), msgraph.ImportOptions{
		Lead:     time.Duration(lead) * time.Minute,
		Timezone: timezone,
		DryRun:   outlookSyncDryRun,
		Now:      now,
		Out:      os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import error: %v\n", err)
		os.Exit(2)
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d imported\n", result.Imported)
	fmt.Printf("  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		os.Exit(2)
	}
	return nil
}
