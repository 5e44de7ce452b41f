package passes

import (
	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
)

// Event is one node visit observed during a traversal.
type Event struct {
	Seq      int64  `json:"seq"`
	Category string `json:"category"`
	Variant  string `json:"variant"`
	Node     int    `json:"node"`
}

// Trace records the visit order of WalkContainer over c. Seq starts at 1.
// Equal containers produce equal traces.
func Trace(c *ir.Container) []Event {
	var events []Event
	record := func(n ir.Node) {
		category, variant := dispatch.Describe(n)
		events = append(events, Event{
			Seq:      int64(len(events) + 1),
			Category: category,
			Variant:  variant,
			Node:     n.Name(),
		})
	}
	WalkContainer(dispatch.OptOutConstDispatch{Unhandled: record}, c)
	return events
}
