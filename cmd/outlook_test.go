package cmd

import (
	"testing"
	"time"
)

func TestImportRange(t *testing.T) {
	now := time.Date(2026, 10, 17, 14, 30, 0, 0, time.Local)
	day := func(d int) time.Time { return time.Date(2026, 10, d, 0, 0, 0, 0, time.Local) }
	end := func(d int) time.Time { return time.Date(2026, 10, d, 23, 59, 59, 0, time.Local) }

	tests := []struct {
		name             string
		date, from, to   string
		wantFrom, wantTo time.Time
		wantErr          bool
	}{
		{name: "default today", wantFrom: day(17), wantTo: end(17)},
		{name: "single date", date: "2026-10-20", wantFrom: day(20), wantTo: end(20)},
		{name: "from only", from: "2026-10-15", wantFrom: day(15), wantTo: end(17)},
		{name: "from and to", from: "2026-10-15", to: "2026-10-16", wantFrom: day(15), wantTo: end(16)},
		{name: "to without from", to: "2026-10-16", wantErr: true},
		{name: "to before from", from: "2026-10-16", to: "2026-10-15", wantErr: true},
		{name: "bad date", date: "17.10.2026", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := importRange(now, tt.date, tt.from, tt.to)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("importRange() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("importRange() error = %v", err)
			}
			if !from.Equal(tt.wantFrom) || !to.Equal(tt.wantTo) {
				t.Errorf("importRange() = %v, %v; want %v, %v", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}
