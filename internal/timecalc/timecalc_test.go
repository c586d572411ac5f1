package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestStartEndOfDay(t *testing.T) {
	ts := time.Date(2026, 2, 27, 15, 30, 45, 0, time.UTC)

	start := timecalc.StartOfDay(ts)
	if !start.Equal(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfDay = %v", start)
	}
	end := timecalc.EndOfDay(ts)
	if !end.Equal(time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("EndOfDay = %v", end)
	}
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2026, 2, 28, 22, 0, 0, 0, time.UTC)
	got := timecalc.Midnight(ts)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight = %v, want %v", got, want)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    timecalc.ClockTime
		wantErr bool
	}{
		{"07:30", timecalc.ClockTime{Hour: 7, Minute: 30}, false},
		{"19:00", timecalc.ClockTime{Hour: 19, Minute: 0}, false},
		{" 20:05 ", timecalc.ClockTime{Hour: 20, Minute: 5}, false},
		{"7pm", timecalc.ClockTime{}, true},
		{"25:00", timecalc.ClockTime{}, true},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClockTimeOn(t *testing.T) {
	day := time.Date(2026, 10, 17, 8, 12, 13, 14, time.UTC)
	got := timecalc.ClockTime{Hour: 19, Minute: 30}.On(day)
	want := time.Date(2026, 10, 17, 19, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On = %v, want %v", got, want)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC), "7:00 AM"},
		{time.Date(2026, 1, 1, 19, 5, 0, 0, time.UTC), "7:05 PM"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "12:00 AM"},
		{time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC), "12:30 PM"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatClock(tt.t); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestNextWeekday(t *testing.T) {
	// 2026-10-17 is a Saturday.
	sat := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	if got := timecalc.NextWeekday(sat, time.Saturday); !got.Equal(sat) {
		t.Errorf("NextWeekday(sat, Saturday) = %v, want same day", got)
	}
	want := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	if got := timecalc.NextWeekday(sat, time.Monday); !got.Equal(want) {
		t.Errorf("NextWeekday(sat, Monday) = %v, want %v", got, want)
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := timecalc.ParseWeekday("Wednesday")
	if err != nil || d != time.Wednesday {
		t.Errorf("ParseWeekday(Wednesday) = %v, %v", d, err)
	}
	if _, err := timecalc.ParseWeekday("someday"); err == nil {
		t.Error("expected error for unknown weekday")
	}
}
