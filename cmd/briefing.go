package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tim-element/element-nutrients-automation/internal/briefing"
	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

var briefingDay string

var briefingCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Print the morning briefing",
	Args:  cobra.NoArgs,
	RunE:  runBriefing,
}

func init() {
	briefingCmd.Flags().StringVar(&briefingDay, "day", "", "Preview the briefing for the next given weekday (e.g. monday)")
}

func runBriefing(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if briefingDay != "" {
		wd, err := timecalc.ParseWeekday(briefingDay)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		day = timecalc.NextWeekday(day, wd)
		fmt.Printf("🧪 Showing briefing for %s\n\n", strings.ToUpper(wd.String()))
	}

	fmt.Println(briefing.Generate(loadHousehold(), day, nil))
	return nil
}
