package notify

import (
	"fmt"
	"io"
)

// Options selects and configures a sink.
type Options struct {
	Kind       string
	Program    string
	Args       []string
	To         string
	WebhookURL string
	AMQPURL    string
	Exchange   string
	RoutingKey string
}

// Open builds the sink selected by opts.Kind. The returned close function
// releases any connection and is never nil.
func Open(opts Options, stdout io.Writer) (Sink, func() error, error) {
	noop := func() error { return nil }
	switch opts.Kind {
	case "", KindConsole:
		return NewConsoleSink(stdout), noop, nil
	case KindCommand:
		s, err := NewCommandSink(opts.Program, opts.Args, opts.To)
		return s, noop, err
	case KindWebhook:
		s, err := NewWebhookSink(opts.WebhookURL, nil)
		return s, noop, err
	case KindAMQP:
		s, err := NewAMQPSink(opts.AMQPURL, opts.Exchange, opts.RoutingKey)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown sink kind %q", opts.Kind)
	}
}
