package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/nvfuse/internal/passes"
)

// ReadRun retrieves a run and its events by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, fixture, pass, digest, seq
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		return Run{}, err
	}

	run.Events, err = s.readEvents(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// readEvents returns the events of a run ordered by seq.
func (s *Store) readEvents(ctx context.Context, runID string) ([]passes.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, category, variant, node
		FROM events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []passes.Event{}
	for rows.Next() {
		var e passes.Event
		if err := rows.Scan(&e.Seq, &e.Category, &e.Variant, &e.Node); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// ListRuns returns every run without events, ordered by seq.
//
// Returns an empty slice (not nil) if the store holds no runs.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	return s.queryRuns(ctx, `
		SELECT id, fixture, pass, digest, seq
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
}

// FindRuns returns the runs recorded for fixture and pass, ordered by seq.
func (s *Store) FindRuns(ctx context.Context, fixture, pass string) ([]Run, error) {
	return s.queryRuns(ctx, `
		SELECT id, fixture, pass, digest, seq
		FROM runs
		WHERE fixture = ? AND pass = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, fixture, pass)
}

// FindRunsByDigest returns the runs whose trace has the given digest.
func (s *Store) FindRunsByDigest(ctx context.Context, digest string) ([]Run, error) {
	return s.queryRuns(ctx, `
		SELECT id, fixture, pass, digest, seq
		FROM runs
		WHERE digest = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, digest)
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetLastSeq returns the highest run seq in the store, or 0 when empty.
func (s *Store) GetLastSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq, nil
}

// VerifyRun recomputes the digest of a stored run's events and reports a
// mismatch with the recorded digest.
func (s *Store) VerifyRun(ctx context.Context, id string) error {
	run, err := s.ReadRun(ctx, id)
	if err != nil {
		return fmt.Errorf("verify run %s: %w", id, err)
	}
	got, err := TraceDigest(run.Events)
	if err != nil {
		return fmt.Errorf("verify run %s: %w", id, err)
	}
	if got != run.Digest {
		return fmt.Errorf("verify run %s: digest mismatch: stored %s, events hash to %s", id, run.Digest, got)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun scans a runs row. Works for both *sql.Row and *sql.Rows.
func scanRun(row scanner) (Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.Fixture, &run.Pass, &run.Digest, &run.Seq)
	if err == sql.ErrNoRows {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}
