package command

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// "at 7:30", "at 7:30pm", "at 19:30"
	atClockPattern = regexp.MustCompile(`\bat\s+(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	// "at 7pm"
	atHourPattern = regexp.MustCompile(`\bat\s+(\d{1,2})\s*(am|pm)\b`)
	// "7pm", "9 am"
	hourPattern = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
)

type clockMatch struct {
	pattern *regexp.Regexp
	minutes bool
}

var clockMatchers = []clockMatch{
	{atClockPattern, true},
	{atHourPattern, false},
	{hourPattern, false},
}

var relativePhrases = []struct {
	phrase string
	offset time.Duration
}{
	{"in an hour", time.Hour},
	{"in 1 hour", time.Hour},
	{"in 30 minutes", 30 * time.Minute},
	{"in half an hour", 30 * time.Minute},
}

// tonightAt is the clock time "tonight" resolves to.
const tonightAt = 19

// Resolver turns time expressions in free text into instants.
type Resolver struct {
	// AssumeFutureOnPastTime moves a clock time that already passed today to
	// tomorrow unless the text says "today".
	AssumeFutureOnPastTime bool
}

// DefaultResolver rolls past clock times over to the next day.
func DefaultResolver() Resolver {
	return Resolver{AssumeFutureOnPastTime: true}
}

// Resolve finds the first time expression in text. Clock times are checked
// before relative phrases. ok is false when nothing usable is found,
// including out-of-range clock values.
func (r Resolver) Resolve(text string, now time.Time) (time.Time, bool) {
	lower := normalize(text)

	for _, m := range clockMatchers {
		sub := m.pattern.FindStringSubmatch(lower)
		if sub == nil {
			continue
		}
		hour, _ := strconv.Atoi(sub[1])
		minute, suffix := 0, sub[2]
		if m.minutes {
			minute, _ = strconv.Atoi(sub[2])
			suffix = sub[3]
		}
		hour, ok := to24h(hour, suffix)
		if !ok || minute > 59 {
			return time.Time{}, false
		}

		when := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		switch {
		case strings.Contains(lower, "tomorrow"):
			when = when.AddDate(0, 0, 1)
		case r.AssumeFutureOnPastTime && !when.After(now) && !strings.Contains(lower, "today"):
			when = when.AddDate(0, 0, 1)
		}
		return when, true
	}

	for _, rel := range relativePhrases {
		if strings.Contains(lower, rel.phrase) {
			return now.Add(rel.offset), true
		}
	}
	if strings.Contains(lower, "tonight") {
		return time.Date(now.Year(), now.Month(), now.Day(), tonightAt, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// to24h converts a 12-hour clock value. Without a suffix the hour is taken
// as 24-hour.
func to24h(hour int, suffix string) (int, bool) {
	switch suffix {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			return 0, true
		}
		return hour, true
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			return 12, true
		}
		return hour + 12, true
	default:
		if hour > 23 {
			return 0, false
		}
		return hour, true
	}
}

func normalize(text string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), "’", "'")
}
