package strava

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}))
	c.BaseURL = baseURL
	c.rateLimiter.minInterval = 0
	return c
}

func TestGetActivities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete/activities" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("per_page"); got != "2" {
			t.Errorf("per_page = %q, want 2", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		w.Header().Set("X-RateLimit-Usage", "5,50")
		w.Header().Set("X-RateLimit-Limit", "100,1000")
		fmt.Fprint(w, `[
			{"id": 1, "name": "Morning Run", "type": "Run", "sport_type": "Run",
			 "start_date": "2025-09-08T12:00:00Z", "start_date_local": "2025-09-08T07:00:00Z",
			 "distance": 8046.72, "moving_time": 2400, "elapsed_time": 2500,
			 "total_elevation_gain": 42.0},
			{"id": 2, "name": "Lunch Ride", "type": "Ride", "sport_type": "Ride",
			 "start_date": "2025-09-08T17:00:00Z", "start_date_local": "2025-09-08T12:00:00Z",
			 "distance": 20000, "moving_time": 3600, "elapsed_time": 3700}
		]`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	activities, err := c.GetActivities(context.Background(), time.Time{}, 1, 2)
	if err != nil {
		t.Fatalf("GetActivities: %v", err)
	}

	if len(activities) != 2 {
		t.Fatalf("len = %d, want 2", len(activities))
	}
	if activities[0].ID != 1 || activities[0].Name != "Morning Run" {
		t.Errorf("first activity = %+v", activities[0])
	}
	if activities[0].Distance != 8046.72 || activities[0].MovingTime != 2400 {
		t.Errorf("distance/moving_time = %v/%d", activities[0].Distance, activities[0].MovingTime)
	}
	if !activities[0].IsRun() || activities[1].IsRun() {
		t.Errorf("run detection wrong: %v, %v", activities[0].IsRun(), activities[1].IsRun())
	}

	short, daily := c.RateLimitStatus()
	if short != 95 || daily != 950 {
		t.Errorf("rate limit status = %d, %d; want 95, 950", short, daily)
	}
}

func TestGetAllActivitiesPaginates(t *testing.T) {
	var pagesServed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)
		switch page {
		case "1":
			// Full page forces a second fetch
			fmt.Fprint(w, "[")
			for i := 1; i <= 100; i++ {
				if i > 1 {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `{"id": %d, "type": "Run", "start_date": "2025-09-01T12:00:00Z", "start_date_local": "2025-09-01T07:00:00Z"}`, i)
			}
			fmt.Fprint(w, "]")
		default:
			fmt.Fprint(w, `[{"id": 101, "type": "Run", "start_date": "2025-09-02T12:00:00Z", "start_date_local": "2025-09-02T07:00:00Z"}]`)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	activities, err := c.GetAllActivities(context.Background(), time.Time{}, nil)
	if err != nil {
		t.Fatalf("GetAllActivities: %v", err)
	}

	if len(activities) != 101 {
		t.Errorf("len = %d, want 101", len(activities))
	}
	if len(pagesServed) != 2 || pagesServed[0] != "1" || pagesServed[1] != "2" {
		t.Errorf("pages served = %v", pagesServed)
	}
}

func TestGetActivitiesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Rate Limit Exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.GetActivities(context.Background(), time.Time{}, 1, 30); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGetAthlete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"id": 42, "firstname": "Ada", "lastname": "L"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	athlete, err := c.GetAthlete(context.Background())
	if err != nil {
		t.Fatalf("GetAthlete: %v", err)
	}
	if athlete.ID != 42 || athlete.Firstname != "Ada" {
		t.Errorf("athlete = %+v", athlete)
	}
}

func TestParseLimitPair(t *testing.T) {
	tests := []struct {
		input string
		short int
		daily int
		ok    bool
	}{
		{"34,512", 34, 512, true},
		{"34, 512", 34, 512, true},
		{"", 0, 0, false},
		{"34", 0, 0, false},
		{"a,b", 0, 0, false},
	}

	for _, tt := range tests {
		short, daily, ok := parseLimitPair(tt.input)
		if short != tt.short || daily != tt.daily || ok != tt.ok {
			t.Errorf("parseLimitPair(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.input, short, daily, ok, tt.short, tt.daily, tt.ok)
		}
	}
}
