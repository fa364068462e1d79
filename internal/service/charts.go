package service

import (
	"fmt"
	"math"
	"time"

	"runlog/internal/aggregate"
	"runlog/internal/models"
	"runlog/internal/pace"
	"runlog/internal/store"
)

// WeeklyChart is one bar chart of weekly mileage, oldest week first.
// Totals are always in miles regardless of each run's stored unit.
type WeeklyChart struct {
	Range      string      `json:"range"`
	WeekStarts []time.Time `json:"week_starts"`
	Labels     []string    `json:"labels"`
	Totals     []float64   `json:"totals_mi"`
}

// WeekSummary is the Monday-to-Sunday breakdown for the week containing
// a reference day.
type WeekSummary struct {
	WeekStart time.Time  `json:"week_start"`
	Daily     [7]float64 `json:"daily_mi"`
	Total     float64    `json:"total_mi"`
	Runs      []RunLine  `json:"runs"`
}

// RunLine pairs a run with its one-line display summary.
type RunLine struct {
	Run     models.Run `json:"run"`
	Summary string     `json:"summary"`
}

// Charts builds mileage aggregations over the run log.
type Charts struct {
	store *store.Store
}

// NewCharts creates the charts service
func NewCharts(s *store.Store) *Charts {
	return &Charts{store: s}
}

// Weekly builds the weekly-totals chart for a named range ("12w", "6m",
// or "1y") ending at the week containing ref.
func (s *Charts) Weekly(rangeKey string, ref time.Time) (*WeeklyChart, error) {
	if _, err := aggregate.RangeWeeks(rangeKey); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	runs, err := s.store.AllRuns()
	if err != nil {
		return nil, err
	}

	totals, err := aggregate.WeeklyTotals(runs, rangeKey, ref)
	if err != nil {
		return nil, err
	}
	starts, err := aggregate.WeekStarts(rangeKey, ref)
	if err != nil {
		return nil, err
	}
	labels, err := aggregate.WeekLabels(rangeKey, ref)
	if err != nil {
		return nil, err
	}

	return &WeeklyChart{
		Range:      rangeKey,
		WeekStarts: starts,
		Labels:     labels,
		Totals:     roundAll(totals),
	}, nil
}

// Week builds the per-day breakdown for the week containing ref.
func (s *Charts) Week(ref time.Time) (*WeekSummary, error) {
	runs, err := s.store.AllRuns()
	if err != nil {
		return nil, err
	}

	weekStart := aggregate.StartOfWeek(ref)
	weekEnd := weekStart.AddDate(0, 0, 7)
	daily := aggregate.WeekDailyMiles(runs, ref)

	summary := &WeekSummary{WeekStart: weekStart}
	for i, v := range daily {
		summary.Daily[i] = round2(v)
		summary.Total += v
	}
	summary.Total = round2(summary.Total)

	// AllRuns is newest first; keep that order for the week's run list.
	for _, r := range runs {
		if r.StartedAt.IsZero() || r.StartedAt.Before(weekStart) || !r.StartedAt.Before(weekEnd) {
			continue
		}
		summary.Runs = append(summary.Runs, RunLine{Run: r, Summary: pace.SummaryLine(r)})
	}

	return summary, nil
}

func roundAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = round2(v)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
