package dispatch

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nvfuse/internal/ir"
	"github.com/roach88/nvfuse/internal/testutil"
)

// splitCounter overrides exactly one variant of the read-only opt-out base.
type splitCounter struct {
	OptOutConstDispatch
	splits []*ir.Split
}

func (c *splitCounter) VisitSplit(op *ir.Split) { c.splits = append(c.splits, op) }

func TestOptOutConstDispatch_OverriddenVariantRunsOnce(t *testing.T) {
	for _, s := range allSamples() {
		c := &splitCounter{}
		ConstDispatchStatement(c, s.Node)

		if s.Variant == "Split" {
			require.Len(t, c.splits, 1)
			assert.Same(t, s.Node, c.splits[0])
		} else {
			assert.Empty(t, c.splits, s.Variant)
		}
	}
}

func TestOptOutDispatch_SilentNoOp(t *testing.T) {
	for _, s := range allSamples() {
		assert.NotPanics(t, func() {
			DispatchStatement(OptOutDispatch{}, s.Node)
			ConstDispatchStatement(OptOutConstDispatch{}, s.Node)
		}, s.Variant)
	}
}

func TestOptOutDispatch_UnhandledHook(t *testing.T) {
	var seen []string
	hook := func(n ir.Node) {
		_, variant := Describe(n)
		seen = append(seen, variant)
	}

	var want []string
	for _, s := range allSamples() {
		DispatchStatement(OptOutDispatch{Unhandled: hook}, s.Node)
		want = append(want, s.Variant)
	}
	assert.Equal(t, want, seen)

	seen = nil
	for _, s := range allSamples() {
		ConstDispatchStatement(OptOutConstDispatch{Unhandled: hook}, s.Node)
	}
	assert.Equal(t, want, seen)
}

// parallelizer is a mutable opt-out handler that edits the nodes it visits.
type parallelizer struct {
	OptOutDispatch
}

func (parallelizer) HandleIterDomain(id *ir.IterDomain) { id.Parallel = ir.ParallelThreadX }

func TestOptOutDispatch_MutableHandlerEditsNode(t *testing.T) {
	id := ir.NewIterDomain(ir.NewInt(0), ir.NewInt(128))
	HandleValue(parallelizer{}, id)
	assert.Equal(t, ir.ParallelThreadX, id.Parallel)
	assert.Equal(t, ir.ValueTypeIterDomain, id.ValueType())
}

// binaryOnly is an opt-in visitor that handles a single variant.
type binaryOnly struct {
	OptInConstDispatch
	seen int
}

func (b *binaryOnly) VisitBinaryOp(*ir.BinaryOp) { b.seen++ }

func TestOptInConstDispatch_OverrideSuppressesFailure(t *testing.T) {
	f := testutil.NewAddMul()
	b := &binaryOnly{}
	require.NoError(t, Run(func() { VisitOperation(b, f.Add) }))
	assert.Equal(t, 1, b.seen)
}

func TestOptInConstDispatch_MissingOverrideIsFatal(t *testing.T) {
	fe := fatal(t, func() { VisitValue(&binaryOnly{}, ir.NewInt(4)) })

	assert.Equal(t, ErrCodeUnhandledVariant, fe.Code)
	assert.Equal(t, "value", fe.Category)
	assert.Equal(t, "Int", fe.Variant)
	assert.Equal(t, "Handle not overridden for Int.", fe.Message)
	assert.True(t, IsUnhandledVariant(fe))
}

func TestOptInDispatch_EveryDefaultIsFatal(t *testing.T) {
	for _, s := range allSamples() {
		t.Run(s.Variant, func(t *testing.T) {
			fe := fatal(t, func() { DispatchStatement(OptInDispatch{}, s.Node) })
			assert.Equal(t, ErrCodeUnhandledVariant, fe.Code)
			assert.Equal(t, s.Variant, fe.Variant)

			want := "value"
			if s.Node.IsOperation() {
				want = "operation"
			}
			assert.Equal(t, want, fe.Category)

			fe = fatal(t, func() { ConstDispatchStatement(OptInConstDispatch{}, s.Node) })
			assert.Equal(t, s.Variant, fe.Variant)
		})
	}
}

func TestOptInDispatch_ReportsContainerName(t *testing.T) {
	f := testutil.NewAddMul()
	fe := fatal(t, func() { HandleOperation(OptInDispatch{}, f.Add) })
	assert.Equal(t, f.Add.Name(), fe.Node)
	assert.Equal(t, 1, fe.Node)
}

func TestLogUnhandled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ConstDispatchValue(OptOutConstDispatch{Unhandled: LogUnhandled(logger)}, ir.NewBool(true))

	out := buf.String()
	assert.Contains(t, out, "variant not handled")
	assert.Contains(t, out, "category=value")
	assert.Contains(t, out, "variant=Bool")
}

func TestLogUnhandled_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ConstDispatchValue(OptOutConstDispatch{Unhandled: LogUnhandled(logger)}, ir.NewBool(true))
	assert.Empty(t, buf.String())
}

// walkCounter counts binary ops and integer scalars and nothing else.
type walkCounter struct {
	OptOutConstDispatch
	ops    map[*ir.BinaryOp]int
	values map[*ir.Int]int
}

func (w *walkCounter) VisitBinaryOp(op *ir.BinaryOp) { w.ops[op]++ }
func (w *walkCounter) VisitInt(v *ir.Int)            { w.values[v]++ }

func TestEndToEnd_AddMulWalk(t *testing.T) {
	f := testutil.NewAddMul()
	w := &walkCounter{ops: map[*ir.BinaryOp]int{}, values: map[*ir.Int]int{}}

	// Caller-supplied recursion: an operand with a definition is reached
	// through its defining op, leaves are visited as values.
	var walk func(op ir.Operation)
	walk = func(op ir.Operation) {
		VisitOperation(w, op)
		for _, in := range op.Inputs() {
			if def := in.Definition(); def != nil {
				walk(def)
				continue
			}
			VisitValue(w, in)
		}
	}
	walk(f.Sum.Definition())

	assert.Equal(t, map[*ir.BinaryOp]int{f.Add: 1, f.Mul: 1}, w.ops)
	assert.Equal(t, map[*ir.Int]int{f.X: 1, f.Y: 1, f.Z: 1}, w.values)
}
