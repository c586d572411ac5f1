// Package briefing renders the household's daily briefing, tomorrow preview,
// activity listing and dinner suggestions as plain text.
package briefing

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Tim-element/element-nutrients-automation/internal/household"
	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

// Rand is the random source used to pick meals. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Perm(n int) []int
}

type globalRand struct{}

func (globalRand) IntN(n int) int    { return rand.IntN(n) }
func (globalRand) Perm(n int) []int { return rand.Perm(n) }

func orGlobal(rng Rand) Rand {
	if rng == nil {
		return globalRand{}
	}
	return rng
}

// Generate renders the full briefing for day.
func Generate(h *household.Household, day time.Time, rng Rand) string {
	wd := day.Weekday()
	lines := []string{
		fmt.Sprintf("🏠 Good morning! Here's your %s briefing:", day.Format("Monday, January 02")),
		"",
		"═══ TODAY'S SCHEDULE ═══",
		"",
	}

	if adults := adultLines(h, wd); len(adults) > 0 {
		lines = append(lines, adults...)
		lines = append(lines, "")
	}

	if kids := kidLines(h, wd); len(kids) > 0 {
		lines = append(lines, "👶 Kids:")
		for _, k := range kids {
			lines = append(lines, "  "+k)
		}
		lines = append(lines, "")
	}

	activities := h.ActivitiesOn(wd)
	if len(activities) > 0 {
		lines = append(lines, "🎯 ACTIVITIES TODAY:", busyRating(len(activities)))
		for _, a := range activities {
			lines = append(lines, formatActivity(a))
		}
	} else {
		lines = append(lines, "🎯 No activities today - enjoy the break!")
	}
	lines = append(lines, "")

	if meal, effort, ok := PickDinner(h, day, rng); ok {
		lines = append(lines, "🍽️ DINNER:", "  "+dinnerNote(meal, effort))
		if meal.Notes != "" {
			lines = append(lines, "  💡 "+meal.Notes)
		}
		lines = append(lines, "")
	}

	if recurring := h.RecurringOn(wd); len(recurring) > 0 {
		lines = append(lines, "⏰ REMINDERS:")
		for _, r := range recurring {
			lines = append(lines, "  "+r.Message)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "═══ COMING UP ═══", ComingUp(h, day), "")

	if h != nil && h.Note != "" {
		lines = append(lines, "═══ NOTE ═══", h.Note, "")
	}

	lines = append(lines, "Have a great day! 🌟")
	return strings.Join(lines, "\n")
}

// ComingUp is the one-line summary of the day after day.
func ComingUp(h *household.Household, day time.Time) string {
	activities := h.ActivitiesOn(day.AddDate(0, 0, 1).Weekday())
	if len(activities) == 0 {
		return "Tomorrow: No scheduled activities"
	}
	if len(activities) > 2 {
		activities = activities[:2]
	}
	parts := make([]string, 0, len(activities))
	for _, a := range activities {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Name, strings.Join(a.Participants, ", ")))
	}
	return "Tomorrow: " + strings.Join(parts, ", ")
}

// TomorrowPreview lists the activities of the day after now.
func TomorrowPreview(h *household.Household, now time.Time) string {
	tomorrow := now.AddDate(0, 0, 1)
	lines := []string{fmt.Sprintf("📅 TOMORROW (%s):\n", tomorrow.Format("Monday, January 02"))}

	activities := h.ActivitiesOn(tomorrow.Weekday())
	if len(activities) == 0 {
		lines = append(lines, "No scheduled activities - enjoy the free time!")
		return strings.Join(lines, "\n")
	}
	lines = append(lines, "Activities:")
	for _, a := range activities {
		lines = append(lines, formatActivity(a))
	}
	return strings.Join(lines, "\n")
}

// TodaysActivities lists today's activities in start order.
func TodaysActivities(h *household.Household, now time.Time) string {
	activities := h.ActivitiesByTime(now.Weekday())
	if len(activities) == 0 {
		return "🎯 No activities scheduled today!"
	}
	lines := []string{fmt.Sprintf("🎯 TODAY'S ACTIVITIES (%d):\n", len(activities))}
	for _, a := range activities {
		lines = append(lines, fmt.Sprintf("  %s: %s (%s)",
			timecalc.FormatClockTime(a.Time), a.Name, strings.Join(a.Participants, ", ")))
	}
	return strings.Join(lines, "\n")
}

func formatActivity(a household.Activity) string {
	return fmt.Sprintf("  • %s: %s at %s",
		strings.Join(a.Participants, ", "), a.Name, timecalc.FormatClockTime(a.Time))
}

func busyRating(count int) string {
	switch {
	case count == 0:
		return "🟢 Chill evening - no activities"
	case count <= 2:
		return "🟡 Moderate evening"
	default:
		return "🔥 Busy night! Multiple activities"
	}
}

const roleKid = "kid"

func adultLines(h *household.Household, wd time.Weekday) []string {
	if h == nil {
		return nil
	}
	var out []string
	for _, m := range h.Members {
		if m.Role == roleKid || len(m.Days) == 0 {
			continue
		}
		switch loc := m.LocationOn(wd); loc {
		case "commute":
			out = append(out, fmt.Sprintf("🚗 %s commutes to office", m.Name))
		case "wfh":
			out = append(out, fmt.Sprintf("🏠 %s works from home", m.Name))
		case "":
			out = append(out, fmt.Sprintf("☕ %s is off today", m.Name))
		default:
			out = append(out, fmt.Sprintf("📍 %s: %s", m.Name, loc))
		}
	}
	return out
}

func kidLines(h *household.Household, wd time.Weekday) []string {
	if h == nil {
		return nil
	}
	var out []string
	for _, m := range h.Members {
		if m.Role != roleKid {
			continue
		}
		homeAt := ""
		if m.HomeAt != nil {
			homeAt = ", home at " + timecalc.FormatClockTime(*m.HomeAt)
		}
		switch loc := m.LocationOn(wd); loc {
		case "school":
			out = append(out, fmt.Sprintf("📚 %s: School%s", m.Name, homeAt))
		case "daycare":
			out = append(out, fmt.Sprintf("🧸 %s: Daycare%s", m.Name, homeAt))
		case "grandmother":
			out = append(out, fmt.Sprintf("👵 %s: Grandmother's house", m.Name))
		case "":
			out = append(out, fmt.Sprintf("🏠 %s: Home", m.Name))
		default:
			out = append(out, fmt.Sprintf("📍 %s: %s%s", m.Name, loc, homeAt))
		}
	}
	return out
}
