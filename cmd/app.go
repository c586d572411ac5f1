package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Tim-element/element-nutrients-automation/internal/command"
	"github.com/Tim-element/element-nutrients-automation/internal/household"
	"github.com/Tim-element/element-nutrients-automation/internal/ledger"
	"github.com/Tim-element/element-nutrients-automation/internal/notify"
	"github.com/Tim-element/element-nutrients-automation/internal/reminders"
	"github.com/Tim-element/element-nutrients-automation/internal/storage"
)

func componentLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// loadHousehold exits with status 2 when the household file is invalid.
func loadHousehold() *household.Household {
	h, err := household.Load(appCfg.HouseholdFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return h
}

// feedHousehold loads the household for the reminder feed. A broken file
// only silences the calendar sources; custom reminders keep flowing.
func feedHousehold() *household.Household {
	h, err := household.Load(appCfg.HouseholdFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		componentLogger("reminders").Warn().Err(err).Msg("household calendar unavailable, only custom reminders are served")
		return nil
	}
	return h
}

func customStore() *storage.CustomStore {
	return storage.NewCustomStore(appCfg.CustomStoreFile)
}

func newAggregator(h *household.Household, store *storage.CustomStore) *reminders.Aggregator {
	return reminders.DefaultAggregator(h, store, componentLogger("reminders"))
}

func newResponder() *command.Responder {
	r := command.NewResponder(loadHousehold(), customStore(), componentLogger("command"))
	r.Resolver = command.Resolver{AssumeFutureOnPastTime: appCfg.AssumeFutureOnPastTime}
	return r
}

// dispatch bundles a dispatcher with the resources it holds open.
type dispatch struct {
	dispatcher *reminders.Dispatcher
	ledger     ledger.Ledger
	closeSink  func() error
}

func (d *dispatch) Close() {
	if err := d.closeSink(); err != nil {
		log.Warn().Err(err).Msg("closing sink")
	}
	if err := d.ledger.Close(); err != nil {
		log.Warn().Err(err).Msg("closing ledger")
	}
}

// openDispatch wires the dispatcher; the console sink writes to out.
func openDispatch(ctx context.Context, out io.Writer) (*dispatch, error) {
	agg := newAggregator(feedHousehold(), customStore())

	l, err := ledger.Open(ctx, appCfg.LedgerOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s ledger: %w", appCfg.Ledger.Backend, err)
	}

	sink, closeSink, err := notify.Open(appCfg.SinkOptions(), out)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("opening %s sink: %w", appCfg.Sink.Kind, err)
	}

	return &dispatch{
		dispatcher: reminders.NewDispatcher(agg, l, sink, componentLogger("dispatcher")),
		ledger:     l,
		closeSink:  closeSink,
	}, nil
}
