// Package household holds the static household calendar: members, weekly
// activities, recurring reminders, activity prep leads, bedtimes and meals.
// It is read-only for the lifetime of a process.
package household

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

//go:embed default.yaml
var defaultYAML []byte

// Weekday is a time.Weekday that reads from an English day name in YAML.
type Weekday time.Weekday

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Weekday) UnmarshalYAML(value *yaml.Node) error {
	d, err := timecalc.ParseWeekday(value.Value)
	if err != nil {
		return err
	}
	*w = Weekday(d)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (w Weekday) MarshalYAML() (any, error) {
	return strings.ToLower(time.Weekday(w).String()), nil
}

// Member is a household member with an optional per-weekday location.
type Member struct {
	Name   string              `yaml:"name"`
	Role   string              `yaml:"role"`
	HomeAt *timecalc.ClockTime `yaml:"home_at,omitempty"`
	Days   map[string]string   `yaml:"days,omitempty"`
}

// LocationOn returns the member's location label for a weekday, or "" when
// nothing is scheduled.
func (m Member) LocationOn(wd time.Weekday) string {
	return m.Days[strings.ToLower(wd.String())]
}

// Activity is a weekly scheduled activity.
type Activity struct {
	Name         string             `yaml:"name"`
	Participants []string           `yaml:"participants"`
	Day          Weekday            `yaml:"day"`
	Time         timecalc.ClockTime `yaml:"time"`
	Duration     int                `yaml:"duration"`
}

// RecurringReminder fires every week on Day at Time.
type RecurringReminder struct {
	Name    string             `yaml:"name"`
	Day     Weekday            `yaml:"day"`
	Time    timecalc.ClockTime `yaml:"time"`
	Message string             `yaml:"message"`
}

// PrepLead is how long before an activity its prep reminder fires.
type PrepLead struct {
	Minutes int    `yaml:"minutes"`
	Message string `yaml:"message"`
}

// BedtimeCohort is a group of members sharing a bedtime target.
type BedtimeCohort struct {
	Label   string             `yaml:"label"`
	Target  timecalc.ClockTime `yaml:"target"`
	Message string             `yaml:"message"`
}

// Meal is an entry of the meal catalogue.
type Meal struct {
	Name        string `yaml:"name"`
	PrepMinutes int    `yaml:"prep_minutes"`
	Notes       string `yaml:"notes"`
}

// Meals groups the catalogue by effort.
type Meals struct {
	Quick   []Meal `yaml:"quick"`
	Normal  []Meal `yaml:"normal"`
	Weekend []Meal `yaml:"weekend"`
}

// Household is the full static calendar.
type Household struct {
	DinnerTime timecalc.ClockTime  `yaml:"dinner_time"`
	Note       string              `yaml:"note"`
	Members    []Member            `yaml:"members"`
	Activities []Activity          `yaml:"activities"`
	Recurring  []RecurringReminder `yaml:"recurring"`
	PrepLeads  map[string]PrepLead `yaml:"prep_leads"`
	Bedtimes   []BedtimeCohort     `yaml:"bedtimes"`
	Meals      Meals               `yaml:"meals"`
}

// Default returns the embedded household calendar.
func Default() (*Household, error) {
	return Parse(defaultYAML)
}

// Load reads a household file. A missing file falls back to the embedded
// default; an invalid file is an error.
func Load(path string) (*Household, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default()
	}
	if err != nil {
		return nil, fmt.Errorf("reading household file %s: %w", path, err)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("household file %s: %w", path, err)
	}
	return h, nil
}

// Parse decodes and validates household YAML.
func Parse(data []byte) (*Household, error) {
	var h Household
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing household yaml: %w", err)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}

// Validate reports every structural problem in the calendar.
func (h *Household) Validate() error {
	var errs []error
	for i, a := range h.Activities {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("activities[%d]: name is required", i))
		}
		if a.Duration < 0 {
			errs = append(errs, fmt.Errorf("activities[%d] %s: duration must not be negative", i, a.Name))
		}
	}
	for i, r := range h.Recurring {
		if r.Message == "" {
			errs = append(errs, fmt.Errorf("recurring[%d] %s: message is required", i, r.Name))
		}
	}
	for name, p := range h.PrepLeads {
		if p.Minutes <= 0 {
			errs = append(errs, fmt.Errorf("prep_leads[%s]: minutes must be positive", name))
		}
	}
	for i, b := range h.Bedtimes {
		if b.Label == "" {
			errs = append(errs, fmt.Errorf("bedtimes[%d]: label is required", i))
		}
	}
	return errors.Join(errs...)
}

// ActivitiesOn returns the activities scheduled on wd in file order. The
// lookup methods are safe on a nil *Household and return nothing.
func (h *Household) ActivitiesOn(wd time.Weekday) []Activity {
	if h == nil {
		return nil
	}
	var out []Activity
	for _, a := range h.Activities {
		if time.Weekday(a.Day) == wd {
			out = append(out, a)
		}
	}
	return out
}

// ActivitiesByTime returns the activities scheduled on wd sorted by start time.
func (h *Household) ActivitiesByTime(wd time.Weekday) []Activity {
	out := h.ActivitiesOn(wd)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// RecurringOn returns the recurring reminders configured for wd.
func (h *Household) RecurringOn(wd time.Weekday) []RecurringReminder {
	if h == nil {
		return nil
	}
	var out []RecurringReminder
	for _, r := range h.Recurring {
		if time.Weekday(r.Day) == wd {
			out = append(out, r)
		}
	}
	return out
}

// PrepLeadFor returns the prep lead configured for an activity name.
func (h *Household) PrepLeadFor(activity string) (PrepLead, bool) {
	if h == nil {
		return PrepLead{}, false
	}
	p, ok := h.PrepLeads[activity]
	return p, ok
}

// BedtimeCohorts returns the configured bedtime cohorts.
func (h *Household) BedtimeCohorts() []BedtimeCohort {
	if h == nil {
		return nil
	}
	return h.Bedtimes
}
