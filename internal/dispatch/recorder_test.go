package dispatch

import "github.com/roach88/nvfuse/internal/ir"

// call is one handler invocation observed by a recorder.
type call struct {
	method string
	node   ir.Node
}

// recorder implements Handler, ConstHandler and Mutator directly, with no
// embedded base, and records every call it receives.
type recorder struct {
	OptOutMutator
	calls []call
}

func (r *recorder) record(method string, n ir.Node) {
	r.calls = append(r.calls, call{method: method, node: n})
}

var (
	_ Handler      = (*recorder)(nil)
	_ ConstHandler = (*recorder)(nil)
	_ Mutator      = (*recorder)(nil)
)

func (r *recorder) HandleBool(v *ir.Bool)                        { r.record("HandleBool", v) }
func (r *recorder) HandleDouble(v *ir.Double)                    { r.record("HandleDouble", v) }
func (r *recorder) HandleInt(v *ir.Int)                          { r.record("HandleInt", v) }
func (r *recorder) HandleNamedScalar(v *ir.NamedScalar)          { r.record("HandleNamedScalar", v) }
func (r *recorder) HandleIterDomain(v *ir.IterDomain)            { r.record("HandleIterDomain", v) }
func (r *recorder) HandleTensorDomain(v *ir.TensorDomain)        { r.record("HandleTensorDomain", v) }
func (r *recorder) HandleTensorView(v *ir.TensorView)            { r.record("HandleTensorView", v) }
func (r *recorder) HandlePredicate(v *ir.Predicate)              { r.record("HandlePredicate", v) }
func (r *recorder) HandleTensorIndex(v *ir.TensorIndex)          { r.record("HandleTensorIndex", v) }
func (r *recorder) HandleUnaryOp(op *ir.UnaryOp)                 { r.record("HandleUnaryOp", op) }
func (r *recorder) HandleBinaryOp(op *ir.BinaryOp)               { r.record("HandleBinaryOp", op) }
func (r *recorder) HandleTernaryOp(op *ir.TernaryOp)             { r.record("HandleTernaryOp", op) }
func (r *recorder) HandleReductionOp(op *ir.ReductionOp)         { r.record("HandleReductionOp", op) }
func (r *recorder) HandleWelfordOp(op *ir.WelfordOp)             { r.record("HandleWelfordOp", op) }
func (r *recorder) HandleBroadcastOp(op *ir.BroadcastOp)         { r.record("HandleBroadcastOp", op) }
func (r *recorder) HandleSplit(op *ir.Split)                     { r.record("HandleSplit", op) }
func (r *recorder) HandleMerge(op *ir.Merge)                     { r.record("HandleMerge", op) }
func (r *recorder) HandleTransposeOp(op *ir.TransposeOp)         { r.record("HandleTransposeOp", op) }
func (r *recorder) HandleShiftOp(op *ir.ShiftOp)                 { r.record("HandleShiftOp", op) }
func (r *recorder) HandleGatherOp(op *ir.GatherOp)               { r.record("HandleGatherOp", op) }
func (r *recorder) HandleViewOp(op *ir.ViewOp)                   { r.record("HandleViewOp", op) }
func (r *recorder) HandleAllocate(op *ir.Allocate)               { r.record("HandleAllocate", op) }
func (r *recorder) HandleSync(op *ir.Sync)                       { r.record("HandleSync", op) }
func (r *recorder) HandleInitMagicZero(op *ir.InitMagicZero)     { r.record("HandleInitMagicZero", op) }
func (r *recorder) HandleUpdateMagicZero(op *ir.UpdateMagicZero) { r.record("HandleUpdateMagicZero", op) }
func (r *recorder) HandleForLoop(op *ir.ForLoop)                 { r.record("HandleForLoop", op) }
func (r *recorder) HandleIfThenElse(op *ir.IfThenElse)           { r.record("HandleIfThenElse", op) }
func (r *recorder) HandleGridReduction(op *ir.GridReduction)     { r.record("HandleGridReduction", op) }
func (r *recorder) HandleGridBroadcast(op *ir.GridBroadcast)     { r.record("HandleGridBroadcast", op) }
func (r *recorder) HandleGridWelford(op *ir.GridWelford)         { r.record("HandleGridWelford", op) }

func (r *recorder) VisitBool(v *ir.Bool)                        { r.record("VisitBool", v) }
func (r *recorder) VisitDouble(v *ir.Double)                    { r.record("VisitDouble", v) }
func (r *recorder) VisitInt(v *ir.Int)                          { r.record("VisitInt", v) }
func (r *recorder) VisitNamedScalar(v *ir.NamedScalar)          { r.record("VisitNamedScalar", v) }
func (r *recorder) VisitIterDomain(v *ir.IterDomain)            { r.record("VisitIterDomain", v) }
func (r *recorder) VisitTensorDomain(v *ir.TensorDomain)        { r.record("VisitTensorDomain", v) }
func (r *recorder) VisitTensorView(v *ir.TensorView)            { r.record("VisitTensorView", v) }
func (r *recorder) VisitPredicate(v *ir.Predicate)              { r.record("VisitPredicate", v) }
func (r *recorder) VisitTensorIndex(v *ir.TensorIndex)          { r.record("VisitTensorIndex", v) }
func (r *recorder) VisitUnaryOp(op *ir.UnaryOp)                 { r.record("VisitUnaryOp", op) }
func (r *recorder) VisitBinaryOp(op *ir.BinaryOp)               { r.record("VisitBinaryOp", op) }
func (r *recorder) VisitTernaryOp(op *ir.TernaryOp)             { r.record("VisitTernaryOp", op) }
func (r *recorder) VisitReductionOp(op *ir.ReductionOp)         { r.record("VisitReductionOp", op) }
func (r *recorder) VisitWelfordOp(op *ir.WelfordOp)             { r.record("VisitWelfordOp", op) }
func (r *recorder) VisitBroadcastOp(op *ir.BroadcastOp)         { r.record("VisitBroadcastOp", op) }
func (r *recorder) VisitSplit(op *ir.Split)                     { r.record("VisitSplit", op) }
func (r *recorder) VisitMerge(op *ir.Merge)                     { r.record("VisitMerge", op) }
func (r *recorder) VisitTransposeOp(op *ir.TransposeOp)         { r.record("VisitTransposeOp", op) }
func (r *recorder) VisitShiftOp(op *ir.ShiftOp)                 { r.record("VisitShiftOp", op) }
func (r *recorder) VisitGatherOp(op *ir.GatherOp)               { r.record("VisitGatherOp", op) }
func (r *recorder) VisitViewOp(op *ir.ViewOp)                   { r.record("VisitViewOp", op) }
func (r *recorder) VisitAllocate(op *ir.Allocate)               { r.record("VisitAllocate", op) }
func (r *recorder) VisitSync(op *ir.Sync)                       { r.record("VisitSync", op) }
func (r *recorder) VisitInitMagicZero(op *ir.InitMagicZero)     { r.record("VisitInitMagicZero", op) }
func (r *recorder) VisitUpdateMagicZero(op *ir.UpdateMagicZero) { r.record("VisitUpdateMagicZero", op) }
func (r *recorder) VisitForLoop(op *ir.ForLoop)                 { r.record("VisitForLoop", op) }
func (r *recorder) VisitIfThenElse(op *ir.IfThenElse)           { r.record("VisitIfThenElse", op) }
func (r *recorder) VisitGridReduction(op *ir.GridReduction)     { r.record("VisitGridReduction", op) }
func (r *recorder) VisitGridBroadcast(op *ir.GridBroadcast)     { r.record("VisitGridBroadcast", op) }
func (r *recorder) VisitGridWelford(op *ir.GridWelford)         { r.record("VisitGridWelford", op) }

func (r *recorder) MutateBool(v *ir.Bool) ir.Value {
	r.record("MutateBool", v)
	return v
}

func (r *recorder) MutateDouble(v *ir.Double) ir.Value {
	r.record("MutateDouble", v)
	return v
}

func (r *recorder) MutateInt(v *ir.Int) ir.Value {
	r.record("MutateInt", v)
	return v
}

func (r *recorder) MutateNamedScalar(v *ir.NamedScalar) ir.Value {
	r.record("MutateNamedScalar", v)
	return v
}

func (r *recorder) MutateIterDomain(v *ir.IterDomain) ir.Value {
	r.record("MutateIterDomain", v)
	return v
}

func (r *recorder) MutateTensorDomain(v *ir.TensorDomain) ir.Value {
	r.record("MutateTensorDomain", v)
	return v
}

func (r *recorder) MutateTensorView(v *ir.TensorView) ir.Value {
	r.record("MutateTensorView", v)
	return v
}

func (r *recorder) MutatePredicate(v *ir.Predicate) ir.Value {
	r.record("MutatePredicate", v)
	return v
}

func (r *recorder) MutateTensorIndex(v *ir.TensorIndex) ir.Value {
	r.record("MutateTensorIndex", v)
	return v
}

func (r *recorder) MutateUnaryOp(op *ir.UnaryOp) ir.Operation {
	r.record("MutateUnaryOp", op)
	return op
}

func (r *recorder) MutateBinaryOp(op *ir.BinaryOp) ir.Operation {
	r.record("MutateBinaryOp", op)
	return op
}

func (r *recorder) MutateTernaryOp(op *ir.TernaryOp) ir.Operation {
	r.record("MutateTernaryOp", op)
	return op
}

func (r *recorder) MutateReductionOp(op *ir.ReductionOp) ir.Operation {
	r.record("MutateReductionOp", op)
	return op
}

func (r *recorder) MutateWelfordOp(op *ir.WelfordOp) ir.Operation {
	r.record("MutateWelfordOp", op)
	return op
}

func (r *recorder) MutateBroadcastOp(op *ir.BroadcastOp) ir.Operation {
	r.record("MutateBroadcastOp", op)
	return op
}

func (r *recorder) MutateSplit(op *ir.Split) ir.Operation {
	r.record("MutateSplit", op)
	return op
}

func (r *recorder) MutateMerge(op *ir.Merge) ir.Operation {
	r.record("MutateMerge", op)
	return op
}

func (r *recorder) MutateTransposeOp(op *ir.TransposeOp) ir.Operation {
	r.record("MutateTransposeOp", op)
	return op
}

func (r *recorder) MutateShiftOp(op *ir.ShiftOp) ir.Operation {
	r.record("MutateShiftOp", op)
	return op
}

func (r *recorder) MutateGatherOp(op *ir.GatherOp) ir.Operation {
	r.record("MutateGatherOp", op)
	return op
}

func (r *recorder) MutateViewOp(op *ir.ViewOp) ir.Operation {
	r.record("MutateViewOp", op)
	return op
}

func (r *recorder) MutateAllocate(op *ir.Allocate) ir.Operation {
	r.record("MutateAllocate", op)
	return op
}

func (r *recorder) MutateSync(op *ir.Sync) ir.Operation {
	r.record("MutateSync", op)
	return op
}

func (r *recorder) MutateInitMagicZero(op *ir.InitMagicZero) ir.Operation {
	r.record("MutateInitMagicZero", op)
	return op
}

func (r *recorder) MutateUpdateMagicZero(op *ir.UpdateMagicZero) ir.Operation {
	r.record("MutateUpdateMagicZero", op)
	return op
}

func (r *recorder) MutateForLoop(op *ir.ForLoop) ir.Operation {
	r.record("MutateForLoop", op)
	return op
}

func (r *recorder) MutateIfThenElse(op *ir.IfThenElse) ir.Operation {
	r.record("MutateIfThenElse", op)
	return op
}

func (r *recorder) MutateGridReduction(op *ir.GridReduction) ir.Operation {
	r.record("MutateGridReduction", op)
	return op
}

func (r *recorder) MutateGridBroadcast(op *ir.GridBroadcast) ir.Operation {
	r.record("MutateGridBroadcast", op)
	return op
}

func (r *recorder) MutateGridWelford(op *ir.GridWelford) ir.Operation {
	r.record("MutateGridWelford", op)
	return op
}
