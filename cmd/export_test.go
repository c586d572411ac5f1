package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/Tim-element/element-nutrients-automation/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	records := []model.CustomReminderRecord{
		{
			Message: "water plants, then feed cat",
			Time:    model.NewTimestamp(time.Date(2026, 10, 18, 9, 0, 0, 0, loc)),
			Created: model.NewTimestamp(time.Date(2026, 10, 17, 20, 15, 30, 0, loc)),
		},
	}

	var buf bytes.Buffer
	writeCSV(&buf, records)

	want := "message,time,created\n" +
		`"water plants, then feed cat",2026-10-18T09:00:00+02:00,2026-10-17T20:15:30+02:00` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("writeCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestIsExitWord(t *testing.T) {
	for _, in := range []string{"exit", "quit", " Bye "} {
		if !isExitWord(in) {
			t.Errorf("isExitWord(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"", "goodbye", "exit now"} {
		if isExitWord(in) {
			t.Errorf("isExitWord(%q) = true, want false", in)
		}
	}
}
