package dispatch

import (
	"context"
	"log/slog"

	"github.com/roach88/nvfuse/internal/ir"
)

// LogUnhandled returns an Unhandled hook for the opt-out bases that logs
// each skipped node at debug level. A nil logger uses slog.Default.
func LogUnhandled(logger *slog.Logger) func(ir.Node) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(n ir.Node) {
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			return
		}
		category, variant := Describe(n)
		logger.Debug("variant not handled",
			"category", category,
			"variant", variant,
			"node", n.Name(),
		)
	}
}

// Describe returns the category ("value" or "operation") and exact variant
// name of n, the same strings fatal errors report.
func Describe(n ir.Node) (category, variant string) {
	var e FatalError
	describe(&e, n)
	return e.Category, e.Variant
}
