package passes

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
	"github.com/roach88/nvfuse/internal/testutil"
)

func render(t *testing.T, c *ir.Container) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).Container(c))
	return buf.String()
}

func TestReplaceValues_RebuildsConsumers(t *testing.T) {
	f := testutil.NewAddMul()
	res := ReplaceValues(f.Container, map[ir.Value]ir.Value{f.X: ir.NewInt(5)})

	assert.Equal(t, 1, res.Rebuilt)
	assert.Zero(t, res.Folded)
	require.Len(t, res.Outputs, 1)
	assert.NotSame(t, f.Sum, res.Outputs[0])
	assert.Equal(t, res.Outputs, f.Container.Outputs())

	want := "inputs: i1, i2\n" +
		"i3 = i1 * i2\n" +
		"i6 = 5 + i3\n" +
		"outputs: i6\n"
	if diff := cmp.Diff(want, render(t, f.Container)); diff != "" {
		t.Errorf("rewritten fusion mismatch (-want +got):\n%s", diff)
	}

	// The original graph is left intact.
	assert.Same(t, f.X, f.Add.Lhs)
	assert.Same(t, f.Add, f.Sum.Definition())
}

func TestReplaceValues_TraceOfRewrite(t *testing.T) {
	f := testutil.NewAddMul()
	ReplaceValues(f.Container, map[ir.Value]ir.Value{f.Z: ir.NewSymbolicInt()})

	want := []Event{
		{Seq: 1, Category: "operation", Variant: "BinaryOp", Node: 3},
		{Seq: 2, Category: "value", Variant: "Int", Node: 0},
		{Seq: 3, Category: "operation", Variant: "BinaryOp", Node: 2},
		{Seq: 4, Category: "value", Variant: "Int", Node: 1},
		{Seq: 5, Category: "value", Variant: "Int", Node: 5},
	}
	if diff := cmp.Diff(want, Trace(f.Container)); diff != "" {
		t.Errorf("Trace() after rewrite mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceValues_NoSubstitutions(t *testing.T) {
	f := testutil.NewAddMul()
	res := ReplaceValues(f.Container, nil)

	assert.Zero(t, res.Rebuilt)
	assert.Equal(t, []ir.Value{f.Sum}, res.Outputs)
}

func TestReplaceValues_PropagatesThroughDomains(t *testing.T) {
	c := ir.NewContainer()
	extent := ir.Add(c, ir.NewSymbolicInt())
	axis := ir.Add(c, ir.NewIterDomain(ir.NewInt(0), extent))
	axis.Parallel = ir.ParallelThreadX
	in := ir.Add(c, ir.NewTensorView(ir.NewTensorDomain(axis)))
	out := ir.Add(c, ir.NewTensorView(ir.NewTensorDomain(axis)))
	ir.Add(c, ir.NewViewOp(out, in))
	c.AddOutput(out)

	res := ReplaceValues(c, map[ir.Value]ir.Value{extent: ir.NewInt(128)})
	require.Equal(t, 1, res.Rebuilt)

	view, ok := res.Outputs[0].Definition().(*ir.ViewOp)
	require.True(t, ok)
	rebuiltIn, ok := view.In.(*ir.TensorView)
	require.True(t, ok)
	assert.NotSame(t, in, rebuiltIn)

	newAxis := rebuiltIn.Domain.Axes[0]
	assert.Equal(t, ir.ParallelThreadX, newAxis.Parallel)
	n, ok := newAxis.Extent.(*ir.Int).Const()
	require.True(t, ok)
	assert.Equal(t, int64(128), n)
}

func TestReplaceValues_SubstitutedOutputIsNotRebuilt(t *testing.T) {
	f := testutil.NewAddMul()
	product := ir.NewInt(42)

	var res Result
	require.NoError(t, dispatch.Run(func() {
		res = ReplaceValues(f.Container, map[ir.Value]ir.Value{f.Y: ir.NewInt(1), f.Product: product})
	}))

	assert.Equal(t, 1, res.Rebuilt, "only the add reading the product is rebuilt")
	add, ok := res.Outputs[0].Definition().(*ir.BinaryOp)
	require.True(t, ok)
	assert.Same(t, product, add.Rhs)
}
