package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tim-element/element-nutrients-automation/internal/model"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export custom reminders to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
}

func runExport(cmd *cobra.Command, args []string) error {
	records, err := customStore().ListAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		writeCSV(os.Stdout, records)
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
	}
	return nil
}

func writeCSV(w io.Writer, records []model.CustomReminderRecord) {
	fmt.Fprintln(w, "message,time,created")
	for _, r := range records {
		fmt.Fprintf(w, "%s,%s,%s\n",
			csvEscape(r.Message),
			csvEscape(r.Time.Format(time.RFC3339)),
			csvEscape(r.Created.Format(time.RFC3339)),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
