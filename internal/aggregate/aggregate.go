// Package aggregate buckets run records into Monday-anchored calendar weeks
// for the mileage charts. Every function takes an explicit reference date so
// results are deterministic and testable.
package aggregate

import (
	"fmt"
	"math"
	"time"

	"runlog/internal/models"
	"runlog/internal/units"
)

const daysPerWeek = 7

// rangeWeeks maps a chart range key to its number of weekly buckets.
// "6m" and "1y" are fixed week counts, not calendar months or years.
var rangeWeeks = map[string]int{
	"12w": 12,
	"6m":  26,
	"1y":  52,
}

// RangeWeeks returns the number of weekly buckets for a chart range key.
func RangeWeeks(rangeKey string) (int, error) {
	n, ok := rangeWeeks[rangeKey]
	if !ok {
		return 0, fmt.Errorf("unknown chart range %q (use 12w, 6m, or 1y)", rangeKey)
	}
	return n, nil
}

// StartOfWeek returns the Monday of the week containing t, at local midnight.
// Weekday indexing treats Monday as 0 and Sunday as 6, independent of any
// locale first-day-of-week convention.
func StartOfWeek(t time.Time) time.Time {
	daysFromMonday := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -daysFromMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// WeekDailyMiles sums canonical miles per weekday (index 0=Monday ... 6=Sunday)
// for the week containing ref. The window is half-open: [weekStart, weekStart+7d).
// Runs with a zero start time are excluded; runs with non-positive distance
// stay in their bucket but contribute nothing.
func WeekDailyMiles(runs []models.Run, ref time.Time) [7]float64 {
	var daily [7]float64
	weekStart := StartOfWeek(ref)
	weekEnd := weekStart.AddDate(0, 0, daysPerWeek)

	for _, r := range runs {
		if r.StartedAt.IsZero() {
			continue
		}
		if r.StartedAt.Before(weekStart) || !r.StartedAt.Before(weekEnd) {
			continue
		}
		day := (int(r.StartedAt.Weekday()) + 6) % 7
		daily[day] += bucketMiles(r)
	}
	return daily
}

// WeeklyTotals sums canonical miles into N consecutive Monday-anchored weekly
// buckets ending with the bucket containing ref, oldest first. Bucket
// intervals are inclusive at the start and exclusive at the end, so a run
// exactly on a boundary belongs to the bucket it opens.
func WeeklyTotals(runs []models.Run, rangeKey string, ref time.Time) ([]float64, error) {
	n, err := RangeWeeks(rangeKey)
	if err != nil {
		return nil, err
	}

	totals := make([]float64, n)
	currentWeekStart := StartOfWeek(ref)
	oldestWeekStart := currentWeekStart.AddDate(0, 0, -daysPerWeek*(n-1))

	for _, r := range runs {
		if r.StartedAt.IsZero() || r.StartedAt.Before(oldestWeekStart) {
			continue
		}
		idx := weekIndex(oldestWeekStart, r.StartedAt)
		if idx < 0 || idx >= n {
			continue
		}
		totals[idx] += bucketMiles(r)
	}
	return totals, nil
}

// WeekStarts returns the bucket start dates for a chart range, oldest first.
func WeekStarts(rangeKey string, ref time.Time) ([]time.Time, error) {
	n, err := RangeWeeks(rangeKey)
	if err != nil {
		return nil, err
	}
	currentWeekStart := StartOfWeek(ref)
	starts := make([]time.Time, n)
	for i := 0; i < n; i++ {
		starts[i] = currentWeekStart.AddDate(0, 0, -daysPerWeek*(n-1-i))
	}
	return starts, nil
}

// WeekLabels returns "Jan 02" style labels for each bucket, oldest first.
func WeekLabels(rangeKey string, ref time.Time) ([]string, error) {
	starts, err := WeekStarts(rangeKey, ref)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(starts))
	for i, s := range starts {
		labels[i] = s.Format("Jan 02")
	}
	return labels, nil
}

// weekIndex returns the bucket index of t relative to the oldest bucket's
// Monday. Rounding absorbs DST offsets between the two local midnights.
func weekIndex(oldestWeekStart, t time.Time) int {
	weekStart := StartOfWeek(t)
	days := math.Round(weekStart.Sub(oldestWeekStart).Hours() / 24)
	return int(days) / daysPerWeek
}

// bucketMiles is a run's canonical-miles contribution to its bucket.
// Non-positive or non-finite distance contributes zero.
func bucketMiles(r models.Run) float64 {
	d := r.Distance
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0
	}
	return units.ToMiles(d, r.Unit)
}
