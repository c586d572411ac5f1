// Package scheduler runs periodic jobs on robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one run of a periodic task. The context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context)

type entry struct {
	name      string
	spec      string
	job       Job
	immediate bool
}

// Scheduler collects jobs and runs them until its context ends. Runs of the
// same job never overlap: a tick that arrives while the previous run is still
// going is skipped.
type Scheduler struct {
	logger  zerolog.Logger
	entries []entry
}

// New creates an empty scheduler.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Every registers job to run every interval, starting one interval after Run.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) error {
	return s.add(name, interval, job, false)
}

// EveryNow is Every plus a first run as soon as Run starts.
func (s *Scheduler) EveryNow(name string, interval time.Duration, job Job) error {
	return s.add(name, interval, job, true)
}

func (s *Scheduler) add(name string, interval time.Duration, job Job, immediate bool) error {
	// cron rounds anything shorter up to a second.
	if interval < time.Second {
		return fmt.Errorf("scheduler: job %q: interval %s is below one second", name, interval)
	}
	s.entries = append(s.entries, entry{
		name:      name,
		spec:      "@every " + interval.String(),
		job:       job,
		immediate: immediate,
	})
	return nil
}

// Run starts every job and blocks until ctx is cancelled. It returns once
// running jobs have finished.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := cronLogger{s.logger}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	var immediate []cron.EntryID
	for _, e := range s.entries {
		id, err := c.AddFunc(e.spec, func() {
			s.logger.Debug().Str("job", e.name).Msg("running job")
			e.job(ctx)
		})
		if err != nil {
			return fmt.Errorf("scheduler: job %q: %w", e.name, err)
		}
		if e.immediate {
			immediate = append(immediate, id)
		}
	}

	c.Start()

	// The wrapped job shares the skip guard with the scheduled runs.
	var wg sync.WaitGroup
	for _, id := range immediate {
		wrapped := c.Entry(id).WrappedJob
		wg.Add(1)
		go func() {
			defer wg.Done()
			wrapped.Run()
		}()
	}

	<-ctx.Done()
	<-c.Stop().Done()
	wg.Wait()
	return nil
}

// cronLogger routes cron's own logging to zerolog. Its chatty info lines go
// to debug.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
