package dispatch

import "github.com/roach88/nvfuse/internal/ir"

// Handler receives nodes from the mutable dispatch routines. Handle methods
// may modify the node they are given (set attributes, rewrite bodies) but
// never its tags.
//
// A type that implements Handler directly, without embedding OptOutDispatch
// or OptInDispatch, must provide every method: the compiler enforces that
// each current and future variant is considered.
type Handler interface {
	// Values
	HandleBool(*ir.Bool)
	HandleDouble(*ir.Double)
	HandleInt(*ir.Int)
	HandleNamedScalar(*ir.NamedScalar)
	HandleIterDomain(*ir.IterDomain)
	HandleTensorDomain(*ir.TensorDomain)
	HandleTensorView(*ir.TensorView)
	HandlePredicate(*ir.Predicate)
	HandleTensorIndex(*ir.TensorIndex)

	// Fusion-level operations
	HandleUnaryOp(*ir.UnaryOp)
	HandleBinaryOp(*ir.BinaryOp)
	HandleTernaryOp(*ir.TernaryOp)
	HandleReductionOp(*ir.ReductionOp)
	HandleWelfordOp(*ir.WelfordOp)
	HandleBroadcastOp(*ir.BroadcastOp)
	HandleSplit(*ir.Split)
	HandleMerge(*ir.Merge)
	HandleTransposeOp(*ir.TransposeOp)
	HandleShiftOp(*ir.ShiftOp)
	HandleGatherOp(*ir.GatherOp)
	HandleViewOp(*ir.ViewOp)

	// Kernel IR operations
	HandleAllocate(*ir.Allocate)
	HandleSync(*ir.Sync)
	HandleInitMagicZero(*ir.InitMagicZero)
	HandleUpdateMagicZero(*ir.UpdateMagicZero)
	HandleForLoop(*ir.ForLoop)
	HandleIfThenElse(*ir.IfThenElse)
	HandleGridReduction(*ir.GridReduction)
	HandleGridBroadcast(*ir.GridBroadcast)
	HandleGridWelford(*ir.GridWelford)
}

// ConstHandler receives nodes from the read-only dispatch routines. Visit
// methods must not modify the node they are given; printers, analyses and
// sorters are ConstHandlers.
//
// As with Handler, implementing ConstHandler directly is the compile-time
// opt-in form.
type ConstHandler interface {
	// Values
	VisitBool(*ir.Bool)
	VisitDouble(*ir.Double)
	VisitInt(*ir.Int)
	VisitNamedScalar(*ir.NamedScalar)
	VisitIterDomain(*ir.IterDomain)
	VisitTensorDomain(*ir.TensorDomain)
	VisitTensorView(*ir.TensorView)
	VisitPredicate(*ir.Predicate)
	VisitTensorIndex(*ir.TensorIndex)

	// Fusion-level operations
	VisitUnaryOp(*ir.UnaryOp)
	VisitBinaryOp(*ir.BinaryOp)
	VisitTernaryOp(*ir.TernaryOp)
	VisitReductionOp(*ir.ReductionOp)
	VisitWelfordOp(*ir.WelfordOp)
	VisitBroadcastOp(*ir.BroadcastOp)
	VisitSplit(*ir.Split)
	VisitMerge(*ir.Merge)
	VisitTransposeOp(*ir.TransposeOp)
	VisitShiftOp(*ir.ShiftOp)
	VisitGatherOp(*ir.GatherOp)
	VisitViewOp(*ir.ViewOp)

	// Kernel IR operations
	VisitAllocate(*ir.Allocate)
	VisitSync(*ir.Sync)
	VisitInitMagicZero(*ir.InitMagicZero)
	VisitUpdateMagicZero(*ir.UpdateMagicZero)
	VisitForLoop(*ir.ForLoop)
	VisitIfThenElse(*ir.IfThenElse)
	VisitGridReduction(*ir.GridReduction)
	VisitGridBroadcast(*ir.GridBroadcast)
	VisitGridWelford(*ir.GridWelford)
}

// Mutator receives nodes from the mutator dispatch routines and returns the
// node that replaces each one. Returning the argument leaves it in place.
//
// Mutation and RegisterMutation form the pass-scoped mutation record; embed
// OptOutMutator to get them together with identity defaults.
type Mutator interface {
	// Values
	MutateBool(*ir.Bool) ir.Value
	MutateDouble(*ir.Double) ir.Value
	MutateInt(*ir.Int) ir.Value
	MutateNamedScalar(*ir.NamedScalar) ir.Value
	MutateIterDomain(*ir.IterDomain) ir.Value
	MutateTensorDomain(*ir.TensorDomain) ir.Value
	MutateTensorView(*ir.TensorView) ir.Value
	MutatePredicate(*ir.Predicate) ir.Value
	MutateTensorIndex(*ir.TensorIndex) ir.Value

	// Fusion-level operations
	MutateUnaryOp(*ir.UnaryOp) ir.Operation
	MutateBinaryOp(*ir.BinaryOp) ir.Operation
	MutateTernaryOp(*ir.TernaryOp) ir.Operation
	MutateReductionOp(*ir.ReductionOp) ir.Operation
	MutateWelfordOp(*ir.WelfordOp) ir.Operation
	MutateBroadcastOp(*ir.BroadcastOp) ir.Operation
	MutateSplit(*ir.Split) ir.Operation
	MutateMerge(*ir.Merge) ir.Operation
	MutateTransposeOp(*ir.TransposeOp) ir.Operation
	MutateShiftOp(*ir.ShiftOp) ir.Operation
	MutateGatherOp(*ir.GatherOp) ir.Operation
	MutateViewOp(*ir.ViewOp) ir.Operation

	// Kernel IR operations
	MutateAllocate(*ir.Allocate) ir.Operation
	MutateSync(*ir.Sync) ir.Operation
	MutateInitMagicZero(*ir.InitMagicZero) ir.Operation
	MutateUpdateMagicZero(*ir.UpdateMagicZero) ir.Operation
	MutateForLoop(*ir.ForLoop) ir.Operation
	MutateIfThenElse(*ir.IfThenElse) ir.Operation
	MutateGridReduction(*ir.GridReduction) ir.Operation
	MutateGridBroadcast(*ir.GridBroadcast) ir.Operation
	MutateGridWelford(*ir.GridWelford) ir.Operation

	// Mutation returns the replacement registered for v, if any.
	Mutation(v ir.Value) (ir.Value, bool)

	// RegisterMutation records that orig is replaced by repl for the rest of
	// the pass. Registering the same orig twice is fatal.
	RegisterMutation(orig, repl ir.Value)
}
