package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive household assistant",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func isExitWord(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "bye":
		return true
	}
	return false
}

func runChat(cmd *cobra.Command, args []string) error {
	responder := newResponder()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "🏠 > ",
		HistoryFile:     filepath.Join(flagDataDir, "chat_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting prompt: %w", err)
	}
	defer rl.Close()

	fmt.Println("🏠 Household assistant. Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isExitWord(line) {
			break
		}

		fmt.Println(responder.Respond(line))
		fmt.Println()
	}

	fmt.Println("Goodbye! 👋")
	return nil
}
