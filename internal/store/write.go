package store

import (
	"context"
	"fmt"

	"github.com/roach88/nvfuse/internal/passes"
)

// Run is one recorded traversal.
type Run struct {
	ID      string `json:"id"`
	Fixture string `json:"fixture"`
	Pass    string `json:"pass"`
	Digest  string `json:"digest"`
	Seq     int64  `json:"seq"`

	// Events is nil in listings; ReadRun fills it.
	Events []passes.Event `json:"events,omitempty"`
}

// NewRun builds a run for events with a fresh ID and the trace digest.
// The seq is assigned by WriteRun.
func NewRun(gen RunIDGenerator, fixture, pass string, events []passes.Event) (Run, error) {
	digest, err := TraceDigest(events)
	if err != nil {
		return Run{}, err
	}
	return Run{
		ID:      gen.Generate(),
		Fixture: fixture,
		Pass:    pass,
		Digest:  digest,
		Events:  events,
	}, nil
}

// WriteRun stores run and its events in one transaction and returns the
// run with its assigned seq.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same ID
// again leaves the first run untouched and returns it as stored.
//
// An empty Digest is computed from the events.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		return Run{}, fmt.Errorf("write run: empty id")
	}
	if run.Digest == "" {
		d, err := TraceDigest(run.Events)
		if err != nil {
			return Run{}, fmt.Errorf("write run: %w", err)
		}
		run.Digest = d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, fixture, pass, digest, seq)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs))
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Fixture, run.Pass, run.Digest)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return Run{}, fmt.Errorf("write run: rows affected: %w", err)
	}
	if rows == 0 {
		// Already stored; the existing row wins.
		if err := tx.Commit(); err != nil {
			return Run{}, fmt.Errorf("write run: commit: %w", err)
		}
		return s.ReadRun(ctx, run.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (run_id, seq, category, variant, node)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Run{}, fmt.Errorf("write run: prepare events: %w", err)
	}
	defer stmt.Close()

	for _, e := range run.Events {
		if _, err := stmt.ExecContext(ctx, run.ID, e.Seq, e.Category, e.Variant, e.Node); err != nil {
			return Run{}, fmt.Errorf("write run: event %d: %w", e.Seq, err)
		}
	}

	if err := tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("write run: read seq: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}
