package store

import (
	"context"
	"testing"

	"github.com/roach88/nvfuse/internal/passes"
)

func TestWriteRun_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := NewFixedGenerator("run-a", "run-b")

	for i, want := range []int64{1, 2} {
		run, err := NewRun(gen, "addmul.yaml", "trace", createTestEvents())
		if err != nil {
			t.Fatalf("NewRun() failed: %v", err)
		}
		stored, err := s.WriteRun(ctx, run)
		if err != nil {
			t.Fatalf("WriteRun(%d) failed: %v", i, err)
		}
		if stored.Seq != want {
			t.Errorf("run %d seq = %d, want %d", i, stored.Seq, want)
		}
	}

	last, err := s.GetLastSeq(ctx)
	if err != nil {
		t.Fatalf("GetLastSeq() failed: %v", err)
	}
	if last != 2 {
		t.Errorf("GetLastSeq() = %d, want 2", last)
	}
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := Run{ID: "run-1", Fixture: "a.yaml", Pass: "trace", Events: createTestEvents()}
	if _, err := s.WriteRun(ctx, first); err != nil {
		t.Fatalf("first WriteRun() failed: %v", err)
	}

	second := Run{ID: "run-1", Fixture: "b.yaml", Pass: "trace"}
	got, err := s.WriteRun(ctx, second)
	if err != nil {
		t.Fatalf("second WriteRun() failed: %v", err)
	}
	if got.Fixture != "a.yaml" {
		t.Errorf("fixture = %q, want the first write to win", got.Fixture)
	}
	if len(got.Events) != len(first.Events) {
		t.Errorf("events = %d, want %d", len(got.Events), len(first.Events))
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if count != 1 {
		t.Errorf("runs = %d, want 1", count)
	}
}

func TestWriteRun_ComputesMissingDigest(t *testing.T) {
	s := createTestStore(t)

	events := createTestEvents()
	got, err := s.WriteRun(context.Background(), Run{ID: "run-1", Fixture: "f", Pass: "trace", Events: events})
	if err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	want, err := TraceDigest(events)
	if err != nil {
		t.Fatalf("TraceDigest() failed: %v", err)
	}
	if got.Digest != want {
		t.Errorf("digest = %s, want %s", got.Digest, want)
	}
}

func TestWriteRun_EmptyID(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.WriteRun(context.Background(), Run{Fixture: "f"}); err == nil {
		t.Error("WriteRun() with empty id succeeded, want error")
	}
}

func TestWriteRun_DuplicateEventSeqRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	events := []passes.Event{
		{Seq: 1, Category: "value", Variant: "Int", Node: 0},
		{Seq: 1, Category: "value", Variant: "Int", Node: 1},
	}
	if _, err := s.WriteRun(ctx, Run{ID: "run-1", Fixture: "f", Pass: "trace", Events: events}); err == nil {
		t.Fatal("WriteRun() with duplicate event seq succeeded, want error")
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %d after failed write, want 0", len(runs))
	}
}
