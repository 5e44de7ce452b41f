// Package testutil builds small IR graphs for tests in other packages.
package testutil

import "github.com/roach88/nvfuse/internal/ir"

// Sample is one node of a known exact variant.
type Sample struct {
	Variant string
	Node    ir.Node
}

// ValueSamples returns one constructed node per Value variant, in
// ir.ValueVariants order.
func ValueSamples() []Sample {
	id := ir.NewIterDomain(ir.NewInt(0), ir.NewSymbolicInt())
	td := ir.NewTensorDomain(id)
	tv := ir.NewTensorView(td)

	return []Sample{
		{"Bool", ir.NewBool(true)},
		{"Double", ir.NewDouble(1.5)},
		{"Int", ir.NewInt(7)},
		{"NamedScalar", ir.NewNamedScalar("threadIdx.x")},
		{"IterDomain", id},
		{"TensorDomain", td},
		{"TensorView", tv},
		{"Predicate", ir.NewPredicate(ir.PredicateInline, ir.NewSymbolicBool())},
		{"TensorIndex", ir.NewTensorIndex(tv, ir.NewNamedScalar("threadIdx.x"))},
	}
}

// OperationSamples returns one constructed node per Operation variant, in
// ir.OpTypes order.
func OperationSamples() []Sample {
	tv := func() *ir.TensorView {
		return ir.NewTensorView(ir.NewTensorDomain(ir.NewIterDomain(ir.NewInt(0), ir.NewSymbolicInt())))
	}
	in := ir.NewIterDomain(ir.NewInt(0), ir.NewSymbolicInt())
	outer := ir.NewIterDomain(ir.NewInt(0), ir.NewSymbolicInt())
	inner := ir.NewIterDomain(ir.NewInt(0), ir.NewInt(4))

	red := ir.NewReductionOp(ir.BinaryAdd, ir.NewDouble(0), tv(), tv())
	bcast := ir.NewBroadcastOp(tv(), tv(), []bool{false, true})
	welford := ir.NewWelfordOp(tv(), tv(), tv(), tv(), nil, ir.NewInt(1))
	buf := func() *ir.Allocate {
		return ir.NewAllocate(tv(), ir.MemoryGlobal, ir.NewSymbolicInt(), false)
	}
	pred := ir.NewPredicate(ir.PredicateInline, ir.NewSymbolicBool())

	return []Sample{
		{"UnaryOp", ir.NewUnaryOp(ir.UnaryNeg, ir.NewSymbolicInt(), ir.NewSymbolicInt())},
		{"BinaryOp", ir.NewBinaryOp(ir.BinaryAdd, ir.NewSymbolicInt(), ir.NewSymbolicInt(), ir.NewInt(1))},
		{"TernaryOp", ir.NewTernaryOp(ir.TernaryWhere, ir.NewSymbolicDouble(), ir.NewSymbolicBool(), ir.NewDouble(1), ir.NewDouble(0))},
		{"ReductionOp", red},
		{"WelfordOp", welford},
		{"BroadcastOp", bcast},
		{"Split", ir.NewSplit(ir.NewIterDomain(ir.NewInt(0), ir.NewSymbolicInt()), ir.NewIterDomain(ir.NewInt(0), ir.NewInt(4)), in, ir.NewInt(4), true)},
		{"Merge", ir.NewMerge(ir.NewIterDomain(ir.NewInt(0), ir.NewSymbolicInt()), outer, inner)},
		{"TransposeOp", ir.NewTransposeOp(tv(), tv(), []int{1, 0})},
		{"ShiftOp", ir.NewShiftOp(tv(), tv(), []int{1, -1})},
		{"GatherOp", ir.NewGatherOp(tv(), tv(), []int{3}, [][2]int{{1, 1}})},
		{"ViewOp", ir.NewViewOp(tv(), tv())},
		{"Allocate", buf()},
		{"Sync", ir.NewSync(false)},
		{"InitMagicZero", ir.NewInitMagicZero()},
		{"UpdateMagicZero", ir.NewUpdateMagicZero()},
		{"ForLoop", ir.NewForLoop(ir.NewSymbolicInt(), ir.NewIterDomain(ir.NewInt(0), ir.NewSymbolicInt()), ir.NewSync(false))},
		{"IfThenElse", ir.NewIfThenElse(pred, []ir.Operation{ir.NewSync(false)}, nil)},
		{"GridReduction", ir.NewGridReduction(red, buf(), buf())},
		{"GridBroadcast", ir.NewGridBroadcast(bcast, buf(), buf())},
		{"GridWelford", ir.NewGridWelford(welford, buf(), buf(), buf(), buf())},
	}
}

// AddMul is the fusion add(x, mul(y, z)) over integer scalars.
type AddMul struct {
	Container *ir.Container
	X, Y, Z   *ir.Int
	Product   *ir.Int
	Sum       *ir.Int
	Mul       *ir.BinaryOp
	Add       *ir.BinaryOp
}

// NewAddMul builds add(x, mul(y, z)) in a fresh container with Sum as
// the only output. X, Y and Z are symbolic.
func NewAddMul() *AddMul {
	c := ir.NewContainer()
	f := &AddMul{Container: c}
	f.X = ir.Add(c, ir.NewSymbolicInt())
	f.Y = ir.Add(c, ir.NewSymbolicInt())
	f.Z = ir.Add(c, ir.NewSymbolicInt())
	f.Product = ir.Add(c, ir.NewSymbolicInt())
	f.Mul = ir.Add(c, ir.NewBinaryOp(ir.BinaryMul, f.Product, f.Y, f.Z))
	f.Sum = ir.Add(c, ir.NewSymbolicInt())
	f.Add = ir.Add(c, ir.NewBinaryOp(ir.BinaryAdd, f.Sum, f.X, f.Product))
	c.AddOutput(f.Sum)
	return f
}
