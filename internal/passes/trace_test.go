package passes

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/nvfuse/internal/testutil"
)

func TestTrace_AddMul(t *testing.T) {
	want := []Event{
		{Seq: 1, Category: "operation", Variant: "BinaryOp", Node: 1},
		{Seq: 2, Category: "value", Variant: "Int", Node: 0},
		{Seq: 3, Category: "operation", Variant: "BinaryOp", Node: 0},
		{Seq: 4, Category: "value", Variant: "Int", Node: 1},
		{Seq: 5, Category: "value", Variant: "Int", Node: 2},
	}
	if diff := cmp.Diff(want, Trace(testutil.NewAddMul().Container)); diff != "" {
		t.Errorf("Trace() mismatch (-want +got):\n%s", diff)
	}
}

func TestTrace_Deterministic(t *testing.T) {
	a := Trace(newKernel().c)
	b := Trace(newKernel().c)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("equal kernels traced differently (-first +second):\n%s", diff)
	}
}
