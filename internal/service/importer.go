package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"runlog/internal/models"
	"runlog/internal/pace"
	"runlog/internal/store"
	"runlog/internal/strava"
	"runlog/internal/units"
)

// ActivityFetcher is the slice of the Strava client the importer and
// the activity-picker endpoint need.
type ActivityFetcher interface {
	GetActivities(ctx context.Context, after time.Time, page, perPage int) ([]strava.Activity, error)
	GetAllActivities(ctx context.Context, after time.Time, onProgress func(fetched int)) ([]strava.Activity, error)
}

// SyncOptions controls one import pass.
type SyncOptions struct {
	After  time.Time // only fetch activities started after this time; zero means everything
	Max    int       // cap on imported runs; zero means no cap
	DryRun bool      // report what would be imported without writing
}

// SyncResult summarizes one import pass.
type SyncResult struct {
	Fetched     int `json:"fetched"`
	Imported    int `json:"imported"`
	WouldImport int `json:"would_import,omitempty"`
	Skipped     int `json:"skipped"`
	NonRuns     int `json:"non_runs"`
}

// Importer pulls activities from Strava and writes them into the run
// log, skipping anything that looks like a duplicate of an existing run.
type Importer struct {
	store   *store.Store
	fetcher ActivityFetcher
	log     zerolog.Logger
}

// NewImporter creates an importer
func NewImporter(s *store.Store, fetcher ActivityFetcher, log zerolog.Logger) *Importer {
	return &Importer{store: s, fetcher: fetcher, log: log}
}

// Sync fetches activities and imports the runs among them that aren't
// already in the log.
func (im *Importer) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	existing, err := im.store.AllRuns()
	if err != nil {
		return nil, fmt.Errorf("loading existing runs: %w", err)
	}

	seenRefs := make(map[string]bool)
	seenKeys := make(map[dedupeKey]bool)
	for _, r := range existing {
		if r.SourceRef != "" {
			seenRefs[r.SourceRef] = true
		}
		seenKeys[runDedupeKey(r)] = true
	}

	activities, err := im.fetcher.GetAllActivities(ctx, opts.After, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}

	result := &SyncResult{Fetched: len(activities)}
	for _, a := range activities {
		if !a.IsRun() {
			result.NonRuns++
			continue
		}

		run := MapActivity(a)
		key := runDedupeKey(*run)
		if seenRefs[run.SourceRef] || seenKeys[key] {
			result.Skipped++
			continue
		}

		if opts.Max > 0 && result.Imported+result.WouldImport >= opts.Max {
			break
		}

		if opts.DryRun {
			result.WouldImport++
			continue
		}

		run.ID = newRunID()
		if err := im.store.CreateRun(run); err != nil {
			return result, fmt.Errorf("importing activity %d: %w", a.ID, err)
		}
		seenRefs[run.SourceRef] = true
		seenKeys[key] = true
		result.Imported++

		im.log.Debug().
			Int64("activity_id", a.ID).
			Str("title", run.Title).
			Float64("distance_mi", run.Distance).
			Msg("imported strava activity")
	}

	im.log.Info().
		Int("fetched", result.Fetched).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Bool("dry_run", opts.DryRun).
		Msg("strava sync finished")

	return result, nil
}

// ActivityPreview is one Strava activity mapped for the import picker.
type ActivityPreview struct {
	ID              int64       `json:"id"`
	Run             *models.Run `json:"run"`
	IsRun           bool        `json:"is_run"`
	AlreadyImported bool        `json:"already_imported"`
}

// Activities returns one page of Strava activities as run previews,
// marking the ones that already have a matching log entry.
func (im *Importer) Activities(ctx context.Context, after time.Time, page, perPage int) ([]ActivityPreview, error) {
	existing, err := im.store.AllRuns()
	if err != nil {
		return nil, fmt.Errorf("loading existing runs: %w", err)
	}

	seenRefs := make(map[string]bool)
	seenKeys := make(map[dedupeKey]bool)
	for _, r := range existing {
		if r.SourceRef != "" {
			seenRefs[r.SourceRef] = true
		}
		seenKeys[runDedupeKey(r)] = true
	}

	activities, err := im.fetcher.GetActivities(ctx, after, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}

	previews := make([]ActivityPreview, 0, len(activities))
	for _, a := range activities {
		run := MapActivity(a)
		previews = append(previews, ActivityPreview{
			ID:              a.ID,
			Run:             run,
			IsRun:           a.IsRun(),
			AlreadyImported: seenRefs[run.SourceRef] || seenKeys[runDedupeKey(*run)],
		})
	}
	return previews, nil
}

// MapActivity converts a Strava activity to a run record. Distances are
// stored in miles and elevation in feet.
func MapActivity(a strava.Activity) *models.Run {
	miles := a.Distance / units.MetersPerMile
	run := &models.Run{
		Title:           a.Name,
		StartedAt:       a.StartDateLocal,
		Distance:        math.Round(miles*100) / 100,
		Unit:            units.Miles,
		DurationSeconds: a.MovingTime,
		RunType:         models.RunEasy,
		Source:          "strava",
		SourceRef:       strconv.FormatInt(a.ID, 10),
	}
	if a.TotalElevationGain > 0 {
		ft := math.Round(a.TotalElevationGain * units.FeetPerMeter)
		run.ElevationFt = &ft
	}
	if sec, ok := pace.PaceSeconds(run.Distance, run.DurationSeconds); ok {
		run.PaceSeconds = sec
		run.Pace = pace.SecondsToMMSS(sec)
	}
	return run
}

// dedupeKey identifies a run loosely enough to catch the same workout
// entered by hand and imported from Strava: same UTC day, distance in
// 0.02-mile buckets, duration in 10-second buckets. The day is taken in
// UTC so a candidate keys the same no matter what offset its start time
// carries; stored runs come back from the store in UTC already.
type dedupeKey struct {
	day        string
	distBucket int64
	durBucket  int64
}

func runDedupeKey(r models.Run) dedupeKey {
	return dedupeKey{
		day:        r.StartedAt.UTC().Format("2006-01-02"),
		distBucket: int64(math.Round(units.ToMiles(r.Distance, r.Unit) / 0.02)),
		durBucket:  int64(math.Round(float64(r.DurationSeconds) / 10)),
	}
}
