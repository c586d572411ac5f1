package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <text...>",
	Short: "Answer a single household command",
	Example: `  hearth ask what's today
  hearth ask remind me at 7pm to take out the trash
  hearth ask what's for dinner`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	fmt.Println(newResponder().Respond(strings.Join(args, " ")))
	return nil
}
