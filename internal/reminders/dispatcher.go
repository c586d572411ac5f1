package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tim-element/element-nutrients-automation/internal/metrics"
	"github.com/Tim-element/element-nutrients-automation/internal/model"
)

// ErrDelivery wraps every sink failure reported by SendDue.
var ErrDelivery = errors.New("reminder delivery failed")

const (
	// DueWindow is how far from now a reminder may be and still count as due.
	// Sources only produce reminders after now, so a reminder is caught only
	// by a poll in the DueWindow before it: pollers must run at least every
	// DueWindow.
	DueWindow = 300 * time.Second
	// dispatchLookAhead bounds the feed the dispatcher inspects.
	dispatchLookAhead = time.Hour
)

// Sink delivers a single message.
type Sink interface {
	Send(ctx context.Context, message string) error
}

// Ledger records idempotency keys of delivered reminders. Claim must be
// atomic: of several dispatchers claiming one key only one wins.
type Ledger interface {
	Claim(ctx context.Context, key string, at time.Time) (bool, error)
	Release(ctx context.Context, key string) error
}

// Dispatcher delivers due reminders at most once per ledger lifetime.
// Calls to SendDue must be serialized by the caller.
type Dispatcher struct {
	agg    *Aggregator
	ledger Ledger
	sink   Sink
	logger zerolog.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(agg *Aggregator, ledger Ledger, sink Sink, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{agg: agg, ledger: ledger, sink: sink, logger: logger}
}

// SendDue delivers every reminder within DueWindow of now that has not been
// delivered before, and returns the ones delivered by this call. A key is
// claimed before delivery. A failing delivery does not stop the pass: its
// claim is released so the next poll retries it, and the failure is part of
// the returned error.
func (d *Dispatcher) SendDue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	metrics.DispatchRuns.Inc()

	upcoming := d.agg.Upcoming(now, dispatchLookAhead)
	metrics.UpcomingReminders.Set(float64(len(upcoming)))

	var (
		sent []model.Reminder
		errs []error
	)
	for _, r := range upcoming {
		diff := r.DueAt.Sub(now)
		if diff < 0 {
			diff = -diff
		}
		if diff >= DueWindow {
			continue
		}

		key := r.Key()
		claimed, err := d.ledger.Claim(ctx, key, now)
		held := err == nil
		if err != nil {
			// Prefer a duplicate over a lost reminder.
			d.logger.Warn().Err(err).Str("key", key).Msg("ledger claim failed, delivering anyway")
			claimed = true
		}
		if !claimed {
			metrics.RecordDispatch(metrics.OutcomeDuplicate, string(r.Source))
			continue
		}

		if err := d.sink.Send(ctx, r.Message); err != nil {
			metrics.RecordDispatch(metrics.OutcomeFailed, string(r.Source))
			d.logger.Error().Err(err).Str("key", key).Msg("reminder delivery failed")
			errs = append(errs, fmt.Errorf("%w: %q: %w", ErrDelivery, r.Message, err))
			if held {
				if err := d.ledger.Release(ctx, key); err != nil {
					d.logger.Warn().Err(err).Str("key", key).Msg("could not release claim, reminder will not be retried")
				}
			}
			continue
		}

		metrics.RecordDispatch(metrics.OutcomeDelivered, string(r.Source))
		d.logger.Info().Str("key", key).Str("source", string(r.Source)).Msg("reminder delivered")
		sent = append(sent, r)
	}
	return sent, errors.Join(errs...)
}
