package msgraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestGetCalendarView_Paging(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Prefer"); got != `outlook.timezone="UTC"` {
			t.Errorf("Prefer = %q", got)
		}
		page := calendarViewResponse{}
		if r.URL.Query().Get("page") == "" {
			if r.URL.Path != "/me/calendarView" {
				t.Errorf("path = %q", r.URL.Path)
			}
			if r.URL.Query().Get("startDateTime") != "2026-02-27T00:00:00Z" {
				t.Errorf("startDateTime = %q", r.URL.Query().Get("startDateTime"))
			}
			page.Value = []CalendarEvent{{ID: "1", Subject: "first"}}
			page.NextLink = srv.URL + "/me/calendarView?page=2"
		} else {
			page.Value = []CalendarEvent{{ID: "2", Subject: "second"}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(srv.Client(), srv.URL)
	from := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	events, err := c.GetCalendarView(context.Background(), from, from.AddDate(0, 0, 1), "UTC")
	if err != nil {
		t.Fatalf("GetCalendarView: %v", err)
	}
	if len(events) != 2 || events[0].Subject != "first" || events[1].Subject != "second" {
		t.Errorf("events = %+v", events)
	}
}

func TestGetCalendarView_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"InvalidAuthenticationToken"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(srv.Client(), srv.URL)
	_, err := c.GetCalendarView(context.Background(), time.Now(), time.Now().Add(time.Hour), "")
	if err == nil {
		t.Fatal("expected an error for 401")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := TokenPath(t.TempDir())

	tok, err := loadToken(path)
	if err != nil || tok != nil {
		t.Fatalf("missing token file: got %v, %v", tok, err)
	}

	want := &oauth2.Token{AccessToken: "abc", RefreshToken: "def", TokenType: "Bearer"}
	if err := saveToken(path, want); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	got, err := loadToken(path)
	if err != nil {
		t.Fatalf("loadToken: %v", err)
	}
	if got.AccessToken != "abc" || got.RefreshToken != "def" {
		t.Errorf("token = %+v", got)
	}
	if filepath.Base(filepath.Dir(path)) != "auth" {
		t.Errorf("token path = %q", path)
	}
}
