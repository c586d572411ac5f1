package reminders

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tim-element/element-nutrients-automation/internal/model"
)

// Aggregator merges the output of its sources into one ordered feed.
type Aggregator struct {
	sources []Source
}

// NewAggregator evaluates sources in the given order. The order is the
// tie-break for reminders due at the same instant.
func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// DefaultAggregator wires the four standard sources: activity prep,
// recurring, bedtime, custom.
func DefaultAggregator(cal Calendar, store RecordLister, logger zerolog.Logger) *Aggregator {
	return NewAggregator(
		ActivityPrepSource{Calendar: cal},
		RecurringSource{Calendar: cal},
		BedtimeSource{Calendar: cal},
		CustomSource{Store: store, Logger: logger},
	)
}

// Upcoming returns every candidate due no later than now+ahead, sorted by
// due time. An empty result means nothing is scheduled.
func (a *Aggregator) Upcoming(now time.Time, ahead time.Duration) []model.Reminder {
	cutoff := now.Add(ahead)

	var all []model.Reminder
	for _, src := range a.sources {
		all = append(all, src.Candidates(now)...)
	}

	upcoming := make([]model.Reminder, 0, len(all))
	for _, r := range all {
		if !r.DueAt.After(cutoff) {
			upcoming = append(upcoming, r)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueAt.Before(upcoming[j].DueAt)
	})
	return upcoming
}

// Format renders a reminder as "7:00 PM: message".
func Format(r model.Reminder) string {
	return r.DueAt.Format("3:04 PM") + ": " + r.Message
}
