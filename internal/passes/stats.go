package passes

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
)

// Stats tallies visited nodes by category and exact variant.
type Stats struct {
	Values     map[string]int `json:"values"`
	Operations map[string]int `json:"operations"`
}

// NewStats creates empty tallies.
func NewStats() *Stats {
	return &Stats{
		Values:     make(map[string]int),
		Operations: make(map[string]int),
	}
}

// Record counts n. It has the Unhandled hook signature, so a Stats can
// observe any opt-out traversal.
func (s *Stats) Record(n ir.Node) {
	category, variant := dispatch.Describe(n)
	switch category {
	case "value":
		s.Values[variant]++
	case "operation":
		s.Operations[variant]++
	}
}

// Total returns the number of nodes recorded.
func (s *Stats) Total() int {
	total := 0
	for _, n := range s.Values {
		total += n
	}
	for _, n := range s.Operations {
		total += n
	}
	return total
}

// Variants returns every recorded variant name, sorted.
func (s *Stats) Variants() []string {
	names := slices.Collect(maps.Keys(s.Values))
	names = slices.AppendSeq(names, maps.Keys(s.Operations))
	slices.Sort(names)
	return slices.Compact(names)
}

// CountStats walks c with an opt-out visitor that overrides nothing, so
// every node lands in the Unhandled hook.
func CountStats(c *ir.Container) *Stats {
	s := NewStats()
	WalkContainer(dispatch.OptOutConstDispatch{Unhandled: s.Record}, c)
	slog.Debug("stats collected", "values", len(s.Values), "operations", len(s.Operations), "total", s.Total())
	return s
}
