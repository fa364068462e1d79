package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"runlog/internal/models"
	"runlog/internal/strava"
	"runlog/internal/units"
)

type fakeFetcher struct {
	activities []strava.Activity
	err        error
}

func (f *fakeFetcher) GetAllActivities(ctx context.Context, after time.Time, onProgress func(int)) ([]strava.Activity, error) {
	return f.activities, f.err
}

func (f *fakeFetcher) GetActivities(ctx context.Context, after time.Time, page, perPage int) ([]strava.Activity, error) {
	return f.activities, f.err
}

func runActivity(id int64, name string, start time.Time, meters float64, movingTime int) strava.Activity {
	return strava.Activity{
		ID:             id,
		Name:           name,
		Type:           "Run",
		SportType:      "Run",
		StartDate:      start,
		StartDateLocal: start,
		Distance:       meters,
		MovingTime:     movingTime,
	}
}

func TestSyncImportsRuns(t *testing.T) {
	st := newTestStore(t)
	start := time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC)

	fetcher := &fakeFetcher{activities: []strava.Activity{
		runActivity(1, "Morning Run", start, 8046.72, 2400), // 5 miles
		{ID: 2, Name: "Lunch Ride", Type: "Ride", SportType: "Ride", StartDateLocal: start, Distance: 20000, MovingTime: 3600},
	}}

	im := NewImporter(st, fetcher, zerolog.Nop())
	result, err := im.Sync(context.Background(), SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if result.Fetched != 2 || result.Imported != 1 || result.NonRuns != 1 {
		t.Errorf("result = %+v", result)
	}

	runs, err := st.AllRuns()
	if err != nil {
		t.Fatalf("AllRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("stored runs = %d, want 1", len(runs))
	}
	got := runs[0]
	if got.Title != "Morning Run" || got.Source != "strava" || got.SourceRef != "1" {
		t.Errorf("imported run = %+v", got)
	}
	if got.Distance != 5 || got.Unit != units.Miles {
		t.Errorf("distance = %v %s, want 5 mi", got.Distance, got.Unit)
	}
	if got.PaceSeconds != 480 {
		t.Errorf("pace = %d, want 480", got.PaceSeconds)
	}
}

func TestSyncSkipsAlreadyImported(t *testing.T) {
	st := newTestStore(t)
	start := time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC)

	fetcher := &fakeFetcher{activities: []strava.Activity{
		runActivity(1, "Morning Run", start, 8046.72, 2400),
	}}
	im := NewImporter(st, fetcher, zerolog.Nop())

	if _, err := im.Sync(context.Background(), SyncOptions{}); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	result, err := im.Sync(context.Background(), SyncOptions{})
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	if result.Imported != 0 || result.Skipped != 1 {
		t.Errorf("second pass result = %+v", result)
	}
}

func TestSyncSkipsManualDuplicate(t *testing.T) {
	st := newTestStore(t)
	start := time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC)

	// Hand-entered run: same day, 5.01 miles, 2405s. Within the dedupe
	// buckets of the Strava copy (0.02 mi, 10 s).
	manual := &models.Run{
		ID:              "manual1",
		Title:           "My morning run",
		StartedAt:       start.Add(5 * time.Minute),
		Distance:        5.01,
		Unit:            units.Miles,
		DurationSeconds: 2405,
		RunType:         models.RunEasy,
		Source:          "manual",
	}
	if err := st.CreateRun(manual); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	fetcher := &fakeFetcher{activities: []strava.Activity{
		runActivity(1, "Morning Run", start, 8046.72, 2400), // 5.00 mi, 2400 s
	}}
	im := NewImporter(st, fetcher, zerolog.Nop())

	result, err := im.Sync(context.Background(), SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Imported != 0 || result.Skipped != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestSyncDryRun(t *testing.T) {
	st := newTestStore(t)
	start := time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC)

	fetcher := &fakeFetcher{activities: []strava.Activity{
		runActivity(1, "Morning Run", start, 8046.72, 2400),
	}}
	im := NewImporter(st, fetcher, zerolog.Nop())

	result, err := im.Sync(context.Background(), SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.WouldImport != 1 || result.Imported != 0 {
		t.Errorf("result = %+v", result)
	}

	n, err := st.CountRuns()
	if err != nil || n != 0 {
		t.Errorf("dry run wrote %d runs", n)
	}
}

func TestSyncRespectsMax(t *testing.T) {
	st := newTestStore(t)
	start := time.Date(2025, 9, 1, 7, 0, 0, 0, time.UTC)

	var acts []strava.Activity
	for i := int64(1); i <= 5; i++ {
		acts = append(acts, runActivity(i, "Run", start.AddDate(0, 0, int(i)), 5000+float64(i)*500, 1800+int(i)*60))
	}
	fetcher := &fakeFetcher{activities: acts}
	im := NewImporter(st, fetcher, zerolog.Nop())

	result, err := im.Sync(context.Background(), SyncOptions{Max: 2})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}
}

func TestActivitiesPreview(t *testing.T) {
	st := newTestStore(t)
	start := time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC)

	fetcher := &fakeFetcher{activities: []strava.Activity{
		runActivity(1, "Morning Run", start, 8046.72, 2400),
		{ID: 2, Name: "Lunch Ride", Type: "Ride", SportType: "Ride", StartDateLocal: start, Distance: 20000, MovingTime: 3600},
	}}
	im := NewImporter(st, fetcher, zerolog.Nop())

	// Import once, then preview: the run should show as already imported.
	if _, err := im.Sync(context.Background(), SyncOptions{}); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	previews, err := im.Activities(context.Background(), time.Time{}, 1, 30)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(previews) != 2 {
		t.Fatalf("previews = %d, want 2", len(previews))
	}
	if !previews[0].IsRun || !previews[0].AlreadyImported {
		t.Errorf("run preview = %+v", previews[0])
	}
	if previews[1].IsRun || previews[1].AlreadyImported {
		t.Errorf("ride preview = %+v", previews[1])
	}
	if previews[0].Run.Distance != 5 {
		t.Errorf("preview distance = %v, want 5", previews[0].Run.Distance)
	}
}

func TestMapActivityElevation(t *testing.T) {
	a := runActivity(9, "Hilly", time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC), 1609.344, 600)
	a.TotalElevationGain = 100 // meters

	run := MapActivity(a)
	if run.Distance != 1 {
		t.Errorf("distance = %v, want 1", run.Distance)
	}
	if run.ElevationFt == nil || *run.ElevationFt != 328 {
		t.Errorf("elevation = %v, want 328", run.ElevationFt)
	}
}
