// Package reminders merges today's reminders from the household calendar and
// the custom reminder store, and delivers due reminders at most once.
package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tim-element/element-nutrients-automation/internal/household"
	"github.com/Tim-element/element-nutrients-automation/internal/model"
	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

// bedtimeLead is how long before a bedtime target its reminder fires.
const bedtimeLead = 30 * time.Minute

// Calendar is the read-only household schedule the sources draw from.
type Calendar interface {
	ActivitiesOn(wd time.Weekday) []household.Activity
	RecurringOn(wd time.Weekday) []household.RecurringReminder
	PrepLeadFor(activity string) (household.PrepLead, bool)
	BedtimeCohorts() []household.BedtimeCohort
}

// RecordLister reads persisted custom reminders.
type RecordLister interface {
	ListAll() ([]model.CustomReminderRecord, error)
}

// Source produces today's candidate reminders. Candidates are always on now's
// calendar date and strictly after now.
type Source interface {
	Candidates(now time.Time) []model.Reminder
}

// upcomingToday reports whether t is still ahead of now on the same day.
func upcomingToday(t, now time.Time) bool {
	return t.After(now) && timecalc.SameDay(t, now)
}

// ActivityPrepSource emits a prep reminder ahead of each of today's
// activities that has a configured lead time.
type ActivityPrepSource struct {
	Calendar Calendar
}

func (s ActivityPrepSource) Candidates(now time.Time) []model.Reminder {
	if s.Calendar == nil {
		return nil
	}
	var out []model.Reminder
	for _, a := range s.Calendar.ActivitiesOn(now.Weekday()) {
		lead, ok := s.Calendar.PrepLeadFor(a.Name)
		if !ok {
			continue
		}
		due := a.Time.On(now).Add(-time.Duration(lead.Minutes) * time.Minute)
		if !upcomingToday(due, now) {
			continue
		}
		out = append(out, model.Reminder{
			DueAt:   due,
			Message: fmt.Sprintf("⏰ %s (%s)", lead.Message, strings.Join(a.Participants, ", ")),
			Source:  model.SourceActivityPrep,
		})
	}
	return out
}

// RecurringSource emits the weekly recurring reminders configured for today.
type RecurringSource struct {
	Calendar Calendar
}

func (s RecurringSource) Candidates(now time.Time) []model.Reminder {
	if s.Calendar == nil {
		return nil
	}
	var out []model.Reminder
	for _, r := range s.Calendar.RecurringOn(now.Weekday()) {
		due := r.Time.On(now)
		if !upcomingToday(due, now) {
			continue
		}
		out = append(out, model.Reminder{DueAt: due, Message: r.Message, Source: model.SourceRecurring})
	}
	return out
}

// BedtimeSource emits a wind-down reminder 30 minutes before each bedtime
// cohort's target.
type BedtimeSource struct {
	Calendar Calendar
}

func (s BedtimeSource) Candidates(now time.Time) []model.Reminder {
	if s.Calendar == nil {
		return nil
	}
	var out []model.Reminder
	for _, c := range s.Calendar.BedtimeCohorts() {
		due := c.Target.On(now).Add(-bedtimeLead)
		// A target shortly after midnight would put the reminder on the
		// previous day.
		if !upcomingToday(due, now) {
			continue
		}
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("🌙 %s bedtime in 30 min", c.Label)
		}
		out = append(out, model.Reminder{DueAt: due, Message: msg, Source: model.SourceBedtime})
	}
	return out
}

// CustomSource emits today's still-pending user-created reminders.
type CustomSource struct {
	Store  RecordLister
	Logger zerolog.Logger
}

func (s CustomSource) Candidates(now time.Time) []model.Reminder {
	if s.Store == nil {
		return nil
	}
	records, err := s.Store.ListAll()
	if err != nil {
		s.Logger.Warn().Err(err).Msg("custom reminder store unreadable, treating as empty")
		return nil
	}
	var out []model.Reminder
	for _, r := range records {
		due := r.Time.In(now.Location())
		if !upcomingToday(due, now) {
			continue
		}
		out = append(out, model.Reminder{DueAt: due, Message: r.Message, Source: model.SourceCustom})
	}
	return out
}
