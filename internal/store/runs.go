package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"runlog/internal/models"
	"runlog/internal/units"
)

const runColumns = `id, title, description, started_at, distance, unit,
	duration_s, run_type, elevation_ft, source, source_ref, pace_s, pace,
	created_at, updated_at`

// CreateRun inserts a new run record. started_at is normalized to UTC so
// the RFC3339 strings compare chronologically under ORDER BY started_at.
func (s *Store) CreateRun(r *models.Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (
			id, title, description, started_at, distance, unit,
			duration_s, run_type, elevation_ft, source, source_ref, pace_s, pace
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.Title, r.Description, r.StartedAt.UTC().Format(time.RFC3339),
		r.Distance, string(r.Unit), r.DurationSeconds, string(r.RunType),
		r.ElevationFt, r.Source, r.SourceRef, r.PaceSeconds, r.Pace,
	)
	return err
}

// GetRun retrieves a run by ID
func (s *Store) GetRun(id string) (*models.Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns runs ordered newest first. An empty runType returns all
// runs; otherwise only runs of the given type.
func (s *Store) ListRuns(runType string, limit, offset int) ([]models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if runType != "" {
		query += ` WHERE run_type = ?`
		args = append(args, runType)
	}
	query += ` ORDER BY started_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// AllRuns returns every run, newest first. Used by chart builders and the
// Strava import dedupe pass.
func (s *Store) AllRuns() ([]models.Run, error) {
	rows, err := s.db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// UpdateRun replaces the mutable fields of an existing run
func (s *Store) UpdateRun(r *models.Run) error {
	result, err := s.db.Exec(`
		UPDATE runs
		SET title = ?, description = ?, started_at = ?, distance = ?, unit = ?,
			duration_s = ?, run_type = ?, elevation_ft = ?, pace_s = ?, pace = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		r.Title, r.Description, r.StartedAt.UTC().Format(time.RFC3339),
		r.Distance, string(r.Unit), r.DurationSeconds, string(r.RunType),
		r.ElevationFt, r.PaceSeconds, r.Pace, r.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRunNotFound
	}
	return nil
}

// DeleteRun removes a run by ID
func (s *Store) DeleteRun(id string) error {
	result, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRunNotFound
	}
	return nil
}

// CountRuns returns the total number of runs
func (s *Store) CountRuns() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

// scanRun scans a single run from a row
func scanRun(row *sql.Row) (*models.Run, error) {
	var r models.Run
	var startedAt, unit, runType string
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &startedAt, &r.Distance, &unit,
		&r.DurationSeconds, &runType, &r.ElevationFt, &r.Source, &r.SourceRef,
		&r.PaceSeconds, &r.Pace, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := fillRunTimes(&r, startedAt, unit, runType, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// scanRuns scans multiple runs from rows
func scanRuns(rows *sql.Rows) ([]models.Run, error) {
	var runs []models.Run

	for rows.Next() {
		var r models.Run
		var startedAt, unit, runType string
		var createdAt, updatedAt sql.NullString

		err := rows.Scan(
			&r.ID, &r.Title, &r.Description, &startedAt, &r.Distance, &unit,
			&r.DurationSeconds, &runType, &r.ElevationFt, &r.Source, &r.SourceRef,
			&r.PaceSeconds, &r.Pace, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := fillRunTimes(&r, startedAt, unit, runType, createdAt, updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

func fillRunTimes(r *models.Run, startedAt, unit, runType string, createdAt, updatedAt sql.NullString) error {
	var err error
	r.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return fmt.Errorf("parsing started_at %q: %w", startedAt, err)
	}
	r.Unit = units.Parse(unit)
	r.RunType = models.ParseRunType(runType)

	// CURRENT_TIMESTAMP writes "2006-01-02 15:04:05"; ignore parse failures
	// since these columns are informational only.
	if createdAt.Valid {
		r.CreatedAt, _ = time.Parse(time.DateTime, createdAt.String)
	}
	if updatedAt.Valid {
		r.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt.String)
	}
	return nil
}
