package briefing

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tim-element/element-nutrients-automation/internal/household"
)

// Effort selects a section of the meal catalogue.
type Effort string

const (
	EffortQuick   Effort = "quick"
	EffortNormal  Effort = "normal"
	EffortWeekend Effort = "weekend"
)

// suggestionCount is how many meals SuggestDinner offers.
const suggestionCount = 3

// IsBusyNight reports whether a weekday has an activity starting before
// dinner time.
func IsBusyNight(h *household.Household, day time.Time) bool {
	if h == nil || isWeekend(day.Weekday()) {
		return false
	}
	for _, a := range h.ActivitiesOn(day.Weekday()) {
		if a.Time.Before(h.DinnerTime) {
			return true
		}
	}
	return false
}

// DinnerEffort picks the catalogue section for day.
func DinnerEffort(h *household.Household, day time.Time) Effort {
	switch {
	case IsBusyNight(h, day):
		return EffortQuick
	case isWeekend(day.Weekday()):
		return EffortWeekend
	default:
		return EffortNormal
	}
}

// PickDinner chooses one meal for day. ok is false when the catalogue
// section is empty.
func PickDinner(h *household.Household, day time.Time, rng Rand) (household.Meal, Effort, bool) {
	effort := DinnerEffort(h, day)
	meals := catalogue(h, effort)
	if len(meals) == 0 {
		return household.Meal{}, effort, false
	}
	return meals[orGlobal(rng).IntN(len(meals))], effort, true
}

// SuggestDinner offers up to three distinct meals for the evening of now.
func SuggestDinner(h *household.Household, now time.Time, rng Rand) string {
	effort := DinnerEffort(h, now)
	meals := catalogue(h, effort)
	if len(meals) == 0 {
		return "🍽️ No meals in the catalogue yet - add some to the household file."
	}

	var header string
	switch effort {
	case EffortQuick:
		header = "🍽️ QUICK DINNER IDEAS (busy night!):\n"
	case EffortWeekend:
		header = "🍽️ WEEKEND DINNER IDEAS:\n"
	default:
		header = "🍽️ DINNER SUGGESTIONS:\n"
	}

	lines := []string{header}
	n := min(suggestionCount, len(meals))
	for i, idx := range orGlobal(rng).Perm(len(meals))[:n] {
		m := meals[idx]
		lines = append(lines, fmt.Sprintf("%d. %s (%d min)", i+1, m.Name, m.PrepMinutes))
		lines = append(lines, fmt.Sprintf("   💡 %s\n", m.Notes))
	}
	return strings.Join(lines, "\n")
}

func dinnerNote(m household.Meal, effort Effort) string {
	switch effort {
	case EffortQuick:
		return fmt.Sprintf("Quick meal tonight - %s (%d min)", m.Name, m.PrepMinutes)
	case EffortWeekend:
		return "Weekend meal idea: " + m.Name
	default:
		return fmt.Sprintf("Tonight: %s (%d min)", m.Name, m.PrepMinutes)
	}
}

func catalogue(h *household.Household, effort Effort) []household.Meal {
	if h == nil {
		return nil
	}
	switch effort {
	case EffortQuick:
		return h.Meals.Quick
	case EffortWeekend:
		return h.Meals.Weekend
	default:
		return h.Meals.Normal
	}
}

func isWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}
