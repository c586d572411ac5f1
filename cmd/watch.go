package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Tim-element/element-nutrients-automation/internal/ledger"
	"github.com/Tim-element/element-nutrients-automation/internal/metrics"
	"github.com/Tim-element/element-nutrients-automation/internal/reminders"
	"github.com/Tim-element/element-nutrients-automation/internal/scheduler"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Deliver reminders continuously until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Poll interval (default from config, 5m)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval := appCfg.PollInterval
	if watchInterval > 0 {
		interval = watchInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := openDispatch(ctx, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer d.Close()

	fmt.Printf("Watching for due reminders every %s (Ctrl+C to stop)...\n", interval)
	log.Info().Dur("interval", interval).Str("ledger", appCfg.Ledger.Backend).Str("sink", appCfg.Sink.Kind).Msg("watch started")

	sched := scheduler.New(componentLogger("scheduler"))
	if err := sched.EveryNow("dispatch", interval, pollJob(d.dispatcher)); err != nil {
		return err
	}
	ledgerLogger := componentLogger("ledger")
	if err := sched.Every("ledger-prune", time.Hour, func(ctx context.Context) {
		ledger.PruneExpired(ctx, d.ledger, time.Now(), appCfg.Ledger.Retention, ledgerLogger)
	}); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(ctx)
	})

	if appCfg.MetricsAddr != "" {
		srv := &http.Server{Addr: appCfg.MetricsAddr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			log.Info().Str("addr", appCfg.MetricsAddr).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	fmt.Println("\nStopped.")
	log.Info().Msg("watch stopped")
	return err
}

// pollJob delivers due reminders once per run.
func pollJob(d *reminders.Dispatcher) scheduler.Job {
	return func(ctx context.Context) {
		sent, err := d.SendDue(ctx, time.Now())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if len(sent) > 0 {
			fmt.Printf("✅ Sent %d reminder(s)\n", len(sent))
		}
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
