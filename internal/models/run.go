// Package models defines the run record shared across the app.
package models

import (
	"time"

	"runlog/internal/units"
)

// RunType categorizes a run for filtering and analytics.
type RunType string

const (
	RunEasy    RunType = "Easy Run"
	RunWorkout RunType = "Workout"
	RunLong    RunType = "Long Run"
	RunRace    RunType = "Race"
)

// ParseRunType maps a run type string to a RunType, defaulting to Easy Run.
func ParseRunType(s string) RunType {
	switch RunType(s) {
	case RunWorkout, RunLong, RunRace:
		return RunType(s)
	default:
		return RunEasy
	}
}

// Run is a stored run record. PaceSeconds and Pace are derived server-side
// from distance and duration when the record is written.
type Run struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	Distance        float64    `json:"distance"`
	Unit            units.Unit `json:"unit"`
	DurationSeconds int        `json:"duration_s"`
	RunType         RunType    `json:"run_type"`
	ElevationFt     *float64   `json:"elevation_ft,omitempty"`
	Source          string     `json:"source,omitempty"`
	SourceRef       string     `json:"source_ref,omitempty"`
	PaceSeconds     int        `json:"pace_s,omitempty"`
	Pace            string     `json:"pace,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty"`
}
