// Package service implements the application logic between the HTTP
// handlers and the store: run validation and persistence, chart
// assembly, and the Strava import pipeline.
package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"runlog/internal/models"
	"runlog/internal/pace"
	"runlog/internal/store"
	"runlog/internal/units"
)

// ErrValidation marks user-correctable input failures. Handlers map it
// to a 400 response.
var ErrValidation = errors.New("validation failed")

const maxTitleLen = 120

// RunInput carries the client-supplied fields for creating or updating
// a run. Pace is never accepted from the client; it is derived here.
type RunInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartedAt   time.Time `json:"started_at"`
	Distance    float64   `json:"distance"`
	Unit        string    `json:"unit"`
	DurationS   int       `json:"duration_s"`
	RunType     string    `json:"run_type"`
	ElevationFt *float64  `json:"elevation_ft"`
}

// Validate checks the input and returns an ErrValidation-wrapped error
// describing the first problem found.
func (in RunInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(in.Title) > maxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, maxTitleLen)
	}
	if in.StartedAt.IsZero() {
		return fmt.Errorf("%w: started_at is required", ErrValidation)
	}
	if math.IsNaN(in.Distance) || math.IsInf(in.Distance, 0) || in.Distance <= 0 {
		return fmt.Errorf("%w: distance must be a positive number", ErrValidation)
	}
	if in.DurationS <= 0 {
		return fmt.Errorf("%w: duration_s must be positive", ErrValidation)
	}
	return nil
}

// Runs provides run CRUD on top of the store, deriving pace fields
// server-side on every write.
type Runs struct {
	store *store.Store
}

// NewRuns creates the runs service
func NewRuns(s *store.Store) *Runs {
	return &Runs{store: s}
}

// Create validates the input, derives pace, and persists a new run.
func (s *Runs) Create(in RunInput) (*models.Run, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	run := buildRun(in)
	run.ID = newRunID()
	run.Source = "manual"

	if err := s.store.CreateRun(run); err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}
	return s.store.GetRun(run.ID)
}

// Get retrieves a run by ID
func (s *Runs) Get(id string) (*models.Run, error) {
	return s.store.GetRun(id)
}

// List returns runs newest first, optionally filtered by run type.
func (s *Runs) List(runType string, limit, offset int) ([]models.Run, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListRuns(runType, limit, offset)
}

// Update validates the input and replaces the run's mutable fields,
// re-deriving pace. Source and SourceRef are preserved.
func (s *Runs) Update(id string, in RunInput) (*models.Run, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetRun(id)
	if err != nil {
		return nil, err
	}

	run := buildRun(in)
	run.ID = existing.ID
	run.Source = existing.Source
	run.SourceRef = existing.SourceRef

	if err := s.store.UpdateRun(run); err != nil {
		return nil, fmt.Errorf("updating run: %w", err)
	}
	return s.store.GetRun(id)
}

// Delete removes a run by ID
func (s *Runs) Delete(id string) error {
	return s.store.DeleteRun(id)
}

// buildRun assembles a Run from validated input, deriving the pace
// fields from distance and duration.
func buildRun(in RunInput) *models.Run {
	run := &models.Run{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		StartedAt:       in.StartedAt,
		Distance:        in.Distance,
		Unit:            units.Parse(in.Unit),
		DurationSeconds: in.DurationS,
		RunType:         models.ParseRunType(in.RunType),
		ElevationFt:     in.ElevationFt,
	}
	if sec, ok := pace.PaceSeconds(run.Distance, run.DurationSeconds); ok {
		run.PaceSeconds = sec
		run.Pace = pace.SecondsToMMSS(sec)
	}
	return run
}

// newRunID returns a fresh 32-char hex identifier
func newRunID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
