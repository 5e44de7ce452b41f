package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
	"github.com/roach88/nvfuse/internal/irfile"
	"github.com/roach88/nvfuse/internal/passes"
)

// Output is the outcome of one pass over a container. Only the fields of
// the pass that ran are set.
type Output struct {
	Pass   string
	Text   string
	Stats  *passes.Stats
	Issues []passes.Issue
	Fold   *passes.Result
	Trace  []passes.Event
}

// RunPass runs pass over c and renders its text output.
//
// A fatal dispatch error raised by the pass is returned as a
// *dispatch.FatalError instead of aborting. fold rewrites c in place.
func RunPass(pass string, c *ir.Container) (*Output, error) {
	out := &Output{Pass: pass}
	var buf strings.Builder
	var passErr error

	err := dispatch.Run(func() {
		switch pass {
		case PassPrint:
			passErr = passes.NewPrinter(&buf).Container(c)
		case PassStats:
			out.Stats = passes.CountStats(c)
			writeStats(&buf, out.Stats)
		case PassCheck:
			out.Issues, passErr = passes.CheckFusion(c)
			writeIssues(&buf, out.Issues)
		case PassFold:
			res := passes.Fold(c)
			out.Fold = &res
			fmt.Fprintf(&buf, "folded %d, rebuilt %d\n", res.Folded, res.Rebuilt)
			passErr = passes.NewPrinter(&buf).Container(c)
		case PassTrace:
			out.Trace = passes.Trace(c)
			writeTrace(&buf, out.Trace)
		default:
			passErr = fmt.Errorf("unknown pass %q", pass)
		}
	})
	if err != nil {
		return nil, err
	}
	if passErr != nil {
		return nil, passErr
	}
	out.Text = buf.String()
	return out, nil
}

func writeStats(w io.Writer, s *passes.Stats) {
	for _, variant := range s.Variants() {
		if n, ok := s.Values[variant]; ok {
			fmt.Fprintf(w, "value %s %d\n", variant, n)
		}
		if n, ok := s.Operations[variant]; ok {
			fmt.Fprintf(w, "operation %s %d\n", variant, n)
		}
	}
	fmt.Fprintf(w, "total %d\n", s.Total())
}

func writeIssues(w io.Writer, issues []passes.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "no issues")
		return
	}
	for _, issue := range issues {
		fmt.Fprintln(w, issue)
	}
}

func writeTrace(w io.Writer, events []passes.Event) {
	for _, e := range events {
		fmt.Fprintf(w, "%d %s %s %d\n", e.Seq, e.Category, e.Variant, e.Node)
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Load and build the fixture
// 2. Run the pass, capturing a fatal dispatch error
// 3. Trace the container as the pass left it
// 4. Evaluate assertions
//
// A fatal error fails the result unless a fatal assertion expects it.
// The returned error is reserved for problems outside the pass: an
// unreadable fixture or a failing writer.
func Run(scenario *Scenario) (*Result, error) {
	_, c, err := irfile.Load(scenario.Fixture)
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}

	result := NewResult()
	out, err := RunPass(scenario.Pass, c)
	var fe *dispatch.FatalError
	switch {
	case errors.As(err, &fe):
		result.Fatal = fe
	case err != nil:
		return nil, fmt.Errorf("run %s: %w", scenario.Pass, err)
	default:
		result.Output = out.Text
		result.Issues = out.Issues
	}
	result.Trace = passes.Trace(c)

	expectsFatal := false
	for i, assertion := range scenario.Assertions {
		if assertion.Type == AssertFatal {
			expectsFatal = true
		}
		if err := evaluate(result, assertion); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	if result.Fatal != nil && !expectsFatal {
		result.AddError(fmt.Sprintf("pass aborted: %v", result.Fatal))
	}

	slog.Debug("scenario completed",
		"name", scenario.Name,
		"pass", scenario.Pass,
		"events", len(result.Trace),
		"ok", result.Pass,
	)
	return result, nil
}
