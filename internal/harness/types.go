package harness

import (
	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/passes"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	// Output is the rendered pass output.
	Output string `json:"output"`

	// Trace is the dispatcher's visit order over the container after the
	// pass ran.
	Trace []passes.Event `json:"trace"`

	// Issues holds the problems reported by the check pass.
	Issues []passes.Issue `json:"issues,omitempty"`

	// Fatal is set when the pass aborted with a fatal dispatch error.
	Fatal *dispatch.FatalError `json:"fatal,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []passes.Event{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
