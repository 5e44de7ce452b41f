package passes

import (
	"fmt"
	"maps"
	"slices"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
)

// Issue is one structural problem found by CheckFusion.
type Issue struct {
	Variant string `json:"variant"`
	Node    int    `json:"node"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Variant, id(i.Node), i.Message)
}

// CheckFusion validates every registered node of a fusion, values first,
// then operations, in name order.
//
// The checker is opt-in and handles only fusion-level variants. Kernel IR
// (Allocate, Sync, the magic-zero ops, ForLoop, IfThenElse, the grid ops,
// Predicate and TensorIndex) has no override, so meeting one before
// lowering returns an UNHANDLED_VARIANT fatal error instead of issues.
func CheckFusion(c *ir.Container) ([]Issue, error) {
	ch := &checker{}
	err := dispatch.Run(func() {
		for _, v := range c.Values() {
			dispatch.VisitValue(ch, v)
		}
		for _, op := range c.Operations() {
			dispatch.VisitOperation(ch, op)
		}
	})
	if err != nil {
		return nil, err
	}
	return ch.issues, nil
}

type checker struct {
	dispatch.OptInConstDispatch
	issues []Issue
}

func (c *checker) report(n ir.Node, format string, args ...any) {
	_, variant := dispatch.Describe(n)
	c.issues = append(c.issues, Issue{
		Variant: variant,
		Node:    n.Name(),
		Message: fmt.Sprintf(format, args...),
	})
}

// require reports each named operand that is absent.
func (c *checker) require(n ir.Node, operands map[string]ir.Value) {
	for _, name := range slices.Sorted(maps.Keys(operands)) {
		if ir.IsNil(operands[name]) {
			c.report(n, "missing %s", name)
		}
	}
}

func isScalar(v ir.Value) bool {
	return !ir.IsNil(v) && v.ValueType() == ir.ValueTypeScalar
}

// Values

func (c *checker) VisitBool(*ir.Bool)               {}
func (c *checker) VisitDouble(*ir.Double)           {}
func (c *checker) VisitInt(*ir.Int)                 {}
func (c *checker) VisitNamedScalar(*ir.NamedScalar) {}

func (c *checker) VisitIterDomain(v *ir.IterDomain) {
	c.require(v, map[string]ir.Value{"start": v.Start, "extent": v.Extent})
	if ir.IsNil(v.Extent) {
		return
	}
	if extent, ok := v.Extent.(*ir.Int); ok {
		if n, ok := extent.Const(); ok && n <= 0 {
			c.report(v, "extent %d is not positive", n)
		}
	} else if !isScalar(v.Extent) && v.Extent.ValueType() != ir.ValueTypeNamedScalar {
		c.report(v, "extent is a %s, not a scalar", ir.Variant(v.Extent))
	}
}

func (c *checker) VisitTensorDomain(v *ir.TensorDomain) {
	for i, axis := range v.Axes {
		if axis == nil {
			c.report(v, "axis %d is missing", i)
		}
	}
}

func (c *checker) VisitTensorView(v *ir.TensorView) {
	if v.Domain == nil {
		c.report(v, "missing domain")
	}
}

// Fusion operations

func (c *checker) VisitUnaryOp(op *ir.UnaryOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in": op.In})
}

func (c *checker) VisitBinaryOp(op *ir.BinaryOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "lhs": op.Lhs, "rhs": op.Rhs})
	if isScalar(op.Lhs) && isScalar(op.Rhs) && op.Lhs.DataType() != op.Rhs.DataType() {
		c.report(op, "operand types differ: %s and %s", op.Lhs.DataType(), op.Rhs.DataType())
	}
	if isComparison(op.Kind) && isScalar(op.Out) && op.Out.DataType() != ir.DataTypeBool {
		c.report(op, "%s produces %s, want Bool", op.Kind, op.Out.DataType())
	}
}

func (c *checker) VisitTernaryOp(op *ir.TernaryOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in1": op.In1, "in2": op.In2, "in3": op.In3})
	if op.Kind == ir.TernaryWhere && isScalar(op.In1) && op.In1.DataType() != ir.DataTypeBool {
		c.report(op, "where condition is %s, want Bool", op.In1.DataType())
	}
}

func (c *checker) VisitReductionOp(op *ir.ReductionOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in": op.In, "init": op.Init})
	if !ir.IsNil(op.Init) && !ir.IsConstScalar(op.Init) {
		c.report(op, "initial value is not a constant")
	}
}

func (c *checker) VisitWelfordOp(op *ir.WelfordOp) {
	c.require(op, map[string]ir.Value{
		"out_avg": op.OutAvg, "out_var": op.OutVar, "out_n": op.OutN,
		"in_avg": op.InAvg, "in_n": op.InN,
	})
}

func (c *checker) VisitBroadcastOp(op *ir.BroadcastOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in": op.In})
	if !slices.Contains(op.Axes, true) {
		c.report(op, "no broadcast axis")
	}
}

func (c *checker) VisitSplit(op *ir.Split) {
	c.require(op, map[string]ir.Value{"outer": op.Outer, "inner": op.Inner, "in": op.In, "factor": op.Factor})
	if ir.IsNil(op.Factor) {
		return
	}
	factor, ok := op.Factor.(*ir.Int)
	if !ok {
		c.report(op, "factor is a %s, want Int", ir.Variant(op.Factor))
		return
	}
	if n, ok := factor.Const(); ok && n <= 0 {
		c.report(op, "factor %d is not positive", n)
	}
}

func (c *checker) VisitMerge(op *ir.Merge) {
	c.require(op, map[string]ir.Value{"out": op.Out, "outer": op.Outer, "inner": op.Inner})
}

func (c *checker) VisitTransposeOp(op *ir.TransposeOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in": op.In})
	seen := make([]bool, len(op.Perm))
	for _, axis := range op.Perm {
		if axis < 0 || axis >= len(op.Perm) || seen[axis] {
			c.report(op, "%v is not a permutation", op.Perm)
			return
		}
		seen[axis] = true
	}
}

func (c *checker) VisitShiftOp(op *ir.ShiftOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in": op.In})
}

func (c *checker) VisitGatherOp(op *ir.GatherOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in": op.In})
	if len(op.Window) != len(op.Pad) {
		c.report(op, "window has %d axes but pad has %d", len(op.Window), len(op.Pad))
	}
	for i, w := range op.Window {
		if w <= 0 {
			c.report(op, "window %d on axis %d is not positive", w, i)
		}
	}
}

func (c *checker) VisitViewOp(op *ir.ViewOp) {
	c.require(op, map[string]ir.Value{"out": op.Out, "in": op.In})
}

func isComparison(k ir.BinaryOpType) bool {
	switch k {
	case ir.BinaryEq, ir.BinaryNE, ir.BinaryLT, ir.BinaryLE, ir.BinaryGT, ir.BinaryGE:
		return true
	}
	return false
}
