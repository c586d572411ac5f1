package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Placeholders substituted in CommandSink arguments.
const (
	MessagePlaceholder   = "{message}"
	RecipientPlaceholder = "{to}"
)

// CommandSink runs an external program per message, for example
// `imsg send --to {to} --text {message}`. Placeholders are substituted
// per argument, never passed through a shell. When no argument carries
// {message} the message is appended as the last argument.
type CommandSink struct {
	Program   string
	Args      []string
	Recipient string
}

// NewCommandSink validates and returns a CommandSink.
func NewCommandSink(program string, args []string, recipient string) (*CommandSink, error) {
	if program == "" {
		return nil, errors.New("command sink: program is required")
	}
	return &CommandSink{Program: program, Args: args, Recipient: recipient}, nil
}

func (s *CommandSink) Send(ctx context.Context, message string) error {
	args := make([]string, len(s.Args))
	substituted := false
	for i, a := range s.Args {
		if strings.Contains(a, MessagePlaceholder) {
			substituted = true
		}
		a = strings.ReplaceAll(a, RecipientPlaceholder, s.Recipient)
		args[i] = strings.ReplaceAll(a, MessagePlaceholder, message)
	}
	if !substituted {
		args = append(args, message)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Program, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w: %s", s.Program, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
