package briefing_test

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tim-element/element-nutrients-automation/internal/briefing"
	"github.com/Tim-element/element-nutrients-automation/internal/household"
)

func day(d, hour int) time.Time {
	// October 2026: the 19th is a Monday.
	return time.Date(2026, 10, d, hour, 0, 0, 0, time.Local)
}

func defaultHousehold(t *testing.T) *household.Household {
	t.Helper()
	h, err := household.Default()
	require.NoError(t, err)
	return h
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGenerate_BusyWeekday(t *testing.T) {
	out := briefing.Generate(defaultHousehold(t), day(21, 7), seeded())

	for _, want := range []string{
		"🏠 Good morning! Here's your Wednesday, October 21 briefing:",
		"🚗 Faith commutes to office",
		"  📚 Reagan: School, home at 4:00 PM",
		"  👵 Rory: Grandmother's house",
		"🔥 Busy night! Multiple activities",
		"  • Reagan, Rory: Kumon at 5:00 PM",
		"  Quick meal tonight - ",
		"⏰ REMINDERS:",
		"  🗑️ Trash pickup today - take bins to curb",
		"Tomorrow: Tumbling (Reagan)",
		"═══ NOTE ═══",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "Have a great day! 🌟"))
	assert.NotContains(t, out, "Ryan", "members without a weekly schedule are not listed")
}

func TestGenerate_Weekend(t *testing.T) {
	out := briefing.Generate(defaultHousehold(t), day(24, 7), seeded())

	assert.Contains(t, out, "☕ Faith is off today")
	assert.Contains(t, out, "  🏠 Reagan: Home")
	assert.Contains(t, out, "🟡 Moderate evening")
	assert.Contains(t, out, "  Weekend meal idea: ")
	assert.Contains(t, out, "Tomorrow: No scheduled activities")
	assert.NotContains(t, out, "⏰ REMINDERS:")
}

func TestGenerate_QuietFriday(t *testing.T) {
	out := briefing.Generate(defaultHousehold(t), day(23, 7), seeded())

	assert.Contains(t, out, "🏠 Faith works from home")
	assert.Contains(t, out, "  🧸 Owen: Daycare, home at 6:00 PM")
	assert.Contains(t, out, "🎯 No activities today - enjoy the break!")
	assert.Contains(t, out, "  Tonight: ")
}

func TestGenerate_NilHousehold(t *testing.T) {
	out := briefing.Generate(nil, day(21, 7), nil)
	assert.Contains(t, out, "🎯 No activities today")
	assert.NotContains(t, out, "🍽️ DINNER:")
}

func TestIsBusyNight(t *testing.T) {
	h := defaultHousehold(t)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"monday kumon before dinner", day(19, 8), true},
		{"tuesday nothing scheduled", day(20, 8), false},
		{"thursday tumbling before dinner", day(22, 8), true},
		{"friday nothing scheduled", day(23, 8), false},
		{"saturday never busy", day(24, 8), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, briefing.IsBusyNight(h, tt.day))
		})
	}
}

func TestDinnerEffort(t *testing.T) {
	h := defaultHousehold(t)
	assert.Equal(t, briefing.EffortQuick, briefing.DinnerEffort(h, day(21, 8)))
	assert.Equal(t, briefing.EffortNormal, briefing.DinnerEffort(h, day(23, 8)))
	assert.Equal(t, briefing.EffortWeekend, briefing.DinnerEffort(h, day(25, 8)))
}

func TestSuggestDinner(t *testing.T) {
	h := defaultHousehold(t)
	out := briefing.SuggestDinner(h, day(21, 15), seeded())

	require.True(t, strings.HasPrefix(out, "🍽️ QUICK DINNER IDEAS (busy night!):"))

	seen := map[string]bool{}
	for _, m := range h.Meals.Quick {
		if strings.Contains(out, ". "+m.Name+" (") {
			seen[m.Name] = true
		}
	}
	assert.Len(t, seen, 3, "three distinct quick meals")
	assert.Contains(t, out, "3. ")
	assert.NotContains(t, out, "4. ")
}

func TestSuggestDinner_SmallCatalogue(t *testing.T) {
	h, err := household.Parse([]byte(`
meals:
  normal:
    - {name: Soup, prep_minutes: 20, notes: Easy}
`))
	require.NoError(t, err)

	out := briefing.SuggestDinner(h, day(23, 15), seeded())
	assert.Contains(t, out, "🍽️ DINNER SUGGESTIONS:")
	assert.Contains(t, out, "1. Soup (20 min)")
	assert.Contains(t, out, "   💡 Easy")
	assert.NotContains(t, out, "2. ")

	empty := briefing.SuggestDinner(h, day(24, 15), seeded())
	assert.Contains(t, empty, "No meals in the catalogue")
}

func TestTomorrowPreview(t *testing.T) {
	h := defaultHousehold(t)

	out := briefing.TomorrowPreview(h, day(20, 21))
	assert.Contains(t, out, "📅 TOMORROW (Wednesday, October 21):")
	assert.Contains(t, out, "Activities:")
	assert.Contains(t, out, "  • Reagan: Cheer at 6:30 PM")

	quiet := briefing.TomorrowPreview(h, day(22, 21))
	assert.Contains(t, quiet, "No scheduled activities - enjoy the free time!")
}

func TestTodaysActivities(t *testing.T) {
	h := defaultHousehold(t)

	out := briefing.TodaysActivities(h, day(21, 9))
	assert.Contains(t, out, "🎯 TODAY'S ACTIVITIES (3):")
	kumon := strings.Index(out, "5:00 PM: Kumon (Reagan, Rory)")
	cheer := strings.Index(out, "6:30 PM: Cheer (Reagan)")
	require.NotEqual(t, -1, kumon)
	require.NotEqual(t, -1, cheer)
	assert.Less(t, kumon, cheer)

	assert.Equal(t, "🎯 No activities scheduled today!", briefing.TodaysActivities(h, day(23, 9)))
}
