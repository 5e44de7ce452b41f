package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/nvfuse/internal/passes"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string         // Assertion type for categorization
	Expected string         // Human-readable expected outcome
	Actual   string         // Human-readable actual outcome
	Trace    []passes.Event // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s %d\n", event.Seq, event.Category, event.Variant, event.Node)
		}
	}

	return buf.String()
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertOutputContains:
		return assertOutputContains(result, a)
	case AssertVariantCount:
		return assertVariantCount(result.Trace, a)
	case AssertTraceOrder:
		return assertTraceOrder(result.Trace, a)
	case AssertIssueCount:
		return assertIssueCount(result, a)
	case AssertFatal:
		return assertFatal(result, a)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func assertOutputContains(result *Result, a Assertion) error {
	if strings.Contains(result.Output, a.Contains) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("output containing %q", a.Contains),
		Actual:   fmt.Sprintf("%q", result.Output),
	}
}

// assertVariantCount checks that a variant is visited exactly Count times.
func assertVariantCount(trace []passes.Event, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Category == a.Category && event.Variant == a.Variant {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertVariantCount,
			Expected: fmt.Sprintf("%d visits of %s %s", a.Count, a.Category, a.Variant),
			Actual:   fmt.Sprintf("%d visits", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceOrder checks that variants first appear in the specified order.
// Visits need not be consecutive (intervening visits are allowed).
func assertTraceOrder(trace []passes.Event, a Assertion) error {
	// Step 1: Find first position of each expected variant
	positions := make(map[string]int)
	for i, event := range trace {
		if positions[event.Variant] == 0 {
			positions[event.Variant] = i + 1 // 1-indexed for readability
		}
	}

	// Step 2: Verify all variants found
	for _, variant := range a.Variants {
		if positions[variant] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all variants present: %v", a.Variants),
				Actual:   fmt.Sprintf("missing variant: %s", variant),
				Trace:    trace,
			}
		}
	}

	// Step 3: Verify order
	for i := 1; i < len(a.Variants); i++ {
		prev, curr := a.Variants[i-1], a.Variants[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("variants in order: %v", a.Variants),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

func assertIssueCount(result *Result, a Assertion) error {
	if len(result.Issues) == a.Count {
		return nil
	}
	found := make([]string, len(result.Issues))
	for i, issue := range result.Issues {
		found[i] = issue.String()
	}
	return &AssertionError{
		Type:     AssertIssueCount,
		Expected: fmt.Sprintf("%d issues", a.Count),
		Actual:   fmt.Sprintf("%d issues: %v", len(result.Issues), found),
	}
}

func assertFatal(result *Result, a Assertion) error {
	if result.Fatal == nil {
		return &AssertionError{
			Type:     AssertFatal,
			Expected: fmt.Sprintf("fatal %s", a.Code),
			Actual:   "pass completed",
		}
	}
	if string(result.Fatal.Code) != a.Code {
		return &AssertionError{
			Type:     AssertFatal,
			Expected: fmt.Sprintf("fatal %s", a.Code),
			Actual:   result.Fatal.Error(),
		}
	}
	return nil
}
