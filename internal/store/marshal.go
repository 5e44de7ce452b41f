package store

import (
	"fmt"

	"github.com/roach88/nvfuse/internal/canon"
	"github.com/roach88/nvfuse/internal/passes"
)

// eventsValue converts events to the plain form canon.Marshal accepts.
func eventsValue(events []passes.Event) []any {
	out := make([]any, len(events))
	for i, e := range events {
		out[i] = map[string]any{
			"seq":      e.Seq,
			"category": e.Category,
			"variant":  e.Variant,
			"node":     e.Node,
		}
	}
	return out
}

// TraceDigest returns the content digest of a trace.
// An empty trace has a digest too.
func TraceDigest(events []passes.Event) (string, error) {
	d, err := canon.Digest(canon.DomainTrace, eventsValue(events))
	if err != nil {
		return "", fmt.Errorf("trace digest: %w", err)
	}
	return d, nil
}

// MarshalTrace returns the canonical JSON of a trace, the bytes TraceDigest
// hashes.
func MarshalTrace(events []passes.Event) ([]byte, error) {
	data, err := canon.Marshal(eventsValue(events))
	if err != nil {
		return nil, fmt.Errorf("marshal trace: %w", err)
	}
	return data, nil
}
