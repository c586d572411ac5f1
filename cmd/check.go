package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Deliver reminders that are due now",
	Long: `check runs one delivery pass: every reminder due within five minutes of now
that has not been delivered yet is sent. Run it at least every five minutes
(for example from cron), or use 'hearth watch'.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, err := openDispatch(ctx, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer d.Close()

	sent, err := d.dispatcher.SendDue(ctx, time.Now())
	if len(sent) > 0 {
		fmt.Printf("✅ Sent %d reminder(s)\n", len(sent))
	} else if err == nil {
		fmt.Println("No reminders due at this time.")
	}
	return err
}
