// Package notify contains delivery sinks for reminder messages.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Sink kinds.
const (
	KindConsole = "console"
	KindCommand = "command"
	KindWebhook = "webhook"
	KindAMQP    = "amqp"
)

// Sink delivers one message. A nil error means the message was handed off.
type Sink interface {
	Send(ctx context.Context, message string) error
}

// ConsoleSink writes messages to a writer.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink returns a sink that prints to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Send(_ context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "📱 SENDING: %s\n", message)
	return err
}
