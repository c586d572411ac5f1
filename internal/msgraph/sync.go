package msgraph

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Tim-element/element-nutrients-automation/internal/metrics"
	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

// ReminderStore is the part of the custom reminder store the import uses.
type ReminderStore interface {
	Add(message string, when time.Time) (string, error)
	Contains(message string, when time.Time) (bool, error)
}

// SyncResult holds counters for an import run.
type SyncResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// ImportOptions configures an import run.
type ImportOptions struct {
	// Lead is how long before an event its reminder fires.
	Lead time.Duration
	// Timezone is the IANA zone events are shown in. Empty = local.
	Timezone string
	DryRun   bool
	// Now is the import time; reminders already due are skipped.
	Now time.Time
	// Out receives one progress line per event.
	Out io.Writer
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix;
// the zone comes from the event's timeZone field or the Prefer header.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip returns true if the event should not become a reminder.
func shouldSkip(event CalendarEvent) bool {
	switch {
	case event.IsCancelled, event.IsAllDay:
		return true
	case event.Sensitivity == "private":
		return true
	case event.ShowAs == "free":
		return true
	case event.Start.DateTime == "":
		return true
	}
	return false
}

func displayLocation(timezone string) *time.Location {
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			return l
		}
	}
	return time.Local
}

// MapEventToReminder returns the reminder text and due time for an event:
// "📅 <subject> at 3:04 PM", due lead before the start.
func MapEventToReminder(event CalendarEvent, timezone string, lead time.Duration) (string, time.Time, error) {
	zone := event.Start.TimeZone
	if zone == "" {
		zone = timezone
	}
	start, err := parseGraphTime(event.Start.DateTime, zone)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parsing start time: %w", err)
	}
	start = start.In(displayLocation(timezone))

	subject := event.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	msg := fmt.Sprintf("📅 %s at %s", subject, timecalc.FormatClock(start))
	return msg, start.Add(-lead).Truncate(time.Second), nil
}

// ImportEvents turns Graph events into custom reminders. Filtered events
// (cancelled, all-day, private, free) are ignored silently; events whose
// reminder is already due or already stored count as skipped.
func ImportEvents(events []CalendarEvent, store ReminderStore, opts ImportOptions) (SyncResult, error) {
	var result SyncResult
	if opts.Lead < 0 {
		return result, errors.New("lead must not be negative")
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	for _, event := range events {
		if shouldSkip(event) {
			continue
		}

		msg, due, err := MapEventToReminder(event, opts.Timezone, opts.Lead)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		if !due.After(now) {
			fmt.Fprintf(out, "  – Skipped:  %s (reminder time passed)\n", event.Subject)
			result.Skipped++
			continue
		}

		exists, err := store.Contains(msg, due)
		if err != nil {
			fmt.Fprintf(out, "  ! Error reading reminders for %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		if exists {
			fmt.Fprintf(out, "  – Skipped:  %s (already exists)\n", event.Subject)
			result.Skipped++
			continue
		}

		if !opts.DryRun {
			if _, err := store.Add(msg, due); err != nil {
				fmt.Fprintf(out, "  ! Error saving %q: %v\n", event.Subject, err)
				result.Errors++
				continue
			}
			metrics.RecordCustomCreated("outlook")
		}
		fmt.Fprintf(out, "  ✓ Imported: %s (reminder %s)\n", event.Subject, due.Format("Mon 3:04 PM"))
		result.Imported++
	}

	return result, nil
}
