package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/nvfuse/internal/canon"
	"github.com/roach88/nvfuse/internal/passes"
)

// TraceSnapshot captures the trace of a scenario execution.
type TraceSnapshot struct {
	ScenarioName string         `json:"scenario_name"`
	Pass         string         `json:"pass"`
	Trace        []passes.Event `json:"trace"`
}

// toCanonicalMap converts a TraceSnapshot to the plain form canon.Marshal
// accepts.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		traceList[i] = map[string]any{
			"seq":      event.Seq,
			"category": event.Category,
			"variant":  event.Variant,
			"node":     event.Node,
		}
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"pass":          s.Pass,
		"trace":         traceList,
	}
}

// MarshalSnapshot returns the canonical JSON of a scenario's trace.
func MarshalSnapshot(name, pass string, trace []passes.Event) ([]byte, error) {
	snapshot := TraceSnapshot{ScenarioName: name, Pass: pass, Trace: trace}
	return canon.Marshal(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, scenario.Pass, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, name, pass string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalSnapshot(name, pass, result.Trace)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, traceJSON)
	return nil
}
