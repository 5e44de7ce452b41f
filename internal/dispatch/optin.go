package dispatch

import "github.com/roach88/nvfuse/internal/ir"

// OptInDispatch is an embeddable Handler whose variant methods all fail
// fatally (UNHANDLED_VARIANT). Embed it when a pass must explicitly handle
// every variant it can meet: a missing override surfaces the first time
// that variant is dispatched instead of being skipped silently.
type OptInDispatch struct{}

var _ Handler = OptInDispatch{}

func (OptInDispatch) HandleBool(v *ir.Bool)                 { unhandled(v) }
func (OptInDispatch) HandleDouble(v *ir.Double)             { unhandled(v) }
func (OptInDispatch) HandleInt(v *ir.Int)                   { unhandled(v) }
func (OptInDispatch) HandleNamedScalar(v *ir.NamedScalar)   { unhandled(v) }
func (OptInDispatch) HandleIterDomain(v *ir.IterDomain)     { unhandled(v) }
func (OptInDispatch) HandleTensorDomain(v *ir.TensorDomain) { unhandled(v) }
func (OptInDispatch) HandleTensorView(v *ir.TensorView)     { unhandled(v) }
func (OptInDispatch) HandlePredicate(v *ir.Predicate)       { unhandled(v) }
func (OptInDispatch) HandleTensorIndex(v *ir.TensorIndex)   { unhandled(v) }

func (OptInDispatch) HandleUnaryOp(op *ir.UnaryOp)                 { unhandled(op) }
func (OptInDispatch) HandleBinaryOp(op *ir.BinaryOp)               { unhandled(op) }
func (OptInDispatch) HandleTernaryOp(op *ir.TernaryOp)             { unhandled(op) }
func (OptInDispatch) HandleReductionOp(op *ir.ReductionOp)         { unhandled(op) }
func (OptInDispatch) HandleWelfordOp(op *ir.WelfordOp)             { unhandled(op) }
func (OptInDispatch) HandleBroadcastOp(op *ir.BroadcastOp)         { unhandled(op) }
func (OptInDispatch) HandleSplit(op *ir.Split)                     { unhandled(op) }
func (OptInDispatch) HandleMerge(op *ir.Merge)                     { unhandled(op) }
func (OptInDispatch) HandleTransposeOp(op *ir.TransposeOp)         { unhandled(op) }
func (OptInDispatch) HandleShiftOp(op *ir.ShiftOp)                 { unhandled(op) }
func (OptInDispatch) HandleGatherOp(op *ir.GatherOp)               { unhandled(op) }
func (OptInDispatch) HandleViewOp(op *ir.ViewOp)                   { unhandled(op) }
func (OptInDispatch) HandleAllocate(op *ir.Allocate)               { unhandled(op) }
func (OptInDispatch) HandleSync(op *ir.Sync)                       { unhandled(op) }
func (OptInDispatch) HandleInitMagicZero(op *ir.InitMagicZero)     { unhandled(op) }
func (OptInDispatch) HandleUpdateMagicZero(op *ir.UpdateMagicZero) { unhandled(op) }
func (OptInDispatch) HandleForLoop(op *ir.ForLoop)                 { unhandled(op) }
func (OptInDispatch) HandleIfThenElse(op *ir.IfThenElse)           { unhandled(op) }
func (OptInDispatch) HandleGridReduction(op *ir.GridReduction)     { unhandled(op) }
func (OptInDispatch) HandleGridBroadcast(op *ir.GridBroadcast)     { unhandled(op) }
func (OptInDispatch) HandleGridWelford(op *ir.GridWelford)         { unhandled(op) }

// OptInConstDispatch is the read-only counterpart of OptInDispatch.
type OptInConstDispatch struct{}

var _ ConstHandler = OptInConstDispatch{}

func (OptInConstDispatch) VisitBool(v *ir.Bool)                 { unhandled(v) }
func (OptInConstDispatch) VisitDouble(v *ir.Double)             { unhandled(v) }
func (OptInConstDispatch) VisitInt(v *ir.Int)                   { unhandled(v) }
func (OptInConstDispatch) VisitNamedScalar(v *ir.NamedScalar)   { unhandled(v) }
func (OptInConstDispatch) VisitIterDomain(v *ir.IterDomain)     { unhandled(v) }
func (OptInConstDispatch) VisitTensorDomain(v *ir.TensorDomain) { unhandled(v) }
func (OptInConstDispatch) VisitTensorView(v *ir.TensorView)     { unhandled(v) }
func (OptInConstDispatch) VisitPredicate(v *ir.Predicate)       { unhandled(v) }
func (OptInConstDispatch) VisitTensorIndex(v *ir.TensorIndex)   { unhandled(v) }

func (OptInConstDispatch) VisitUnaryOp(op *ir.UnaryOp)                 { unhandled(op) }
func (OptInConstDispatch) VisitBinaryOp(op *ir.BinaryOp)               { unhandled(op) }
func (OptInConstDispatch) VisitTernaryOp(op *ir.TernaryOp)             { unhandled(op) }
func (OptInConstDispatch) VisitReductionOp(op *ir.ReductionOp)         { unhandled(op) }
func (OptInConstDispatch) VisitWelfordOp(op *ir.WelfordOp)             { unhandled(op) }
func (OptInConstDispatch) VisitBroadcastOp(op *ir.BroadcastOp)         { unhandled(op) }
func (OptInConstDispatch) VisitSplit(op *ir.Split)                     { unhandled(op) }
func (OptInConstDispatch) VisitMerge(op *ir.Merge)                     { unhandled(op) }
func (OptInConstDispatch) VisitTransposeOp(op *ir.TransposeOp)         { unhandled(op) }
func (OptInConstDispatch) VisitShiftOp(op *ir.ShiftOp)                 { unhandled(op) }
func (OptInConstDispatch) VisitGatherOp(op *ir.GatherOp)               { unhandled(op) }
func (OptInConstDispatch) VisitViewOp(op *ir.ViewOp)                   { unhandled(op) }
func (OptInConstDispatch) VisitAllocate(op *ir.Allocate)               { unhandled(op) }
func (OptInConstDispatch) VisitSync(op *ir.Sync)                       { unhandled(op) }
func (OptInConstDispatch) VisitInitMagicZero(op *ir.InitMagicZero)     { unhandled(op) }
func (OptInConstDispatch) VisitUpdateMagicZero(op *ir.UpdateMagicZero) { unhandled(op) }
func (OptInConstDispatch) VisitForLoop(op *ir.ForLoop)                 { unhandled(op) }
func (OptInConstDispatch) VisitIfThenElse(op *ir.IfThenElse)           { unhandled(op) }
func (OptInConstDispatch) VisitGridReduction(op *ir.GridReduction)     { unhandled(op) }
func (OptInConstDispatch) VisitGridBroadcast(op *ir.GridBroadcast)     { unhandled(op) }
func (OptInConstDispatch) VisitGridWelford(op *ir.GridWelford)         { unhandled(op) }

// unhandled reports a variant that an opt-in handler did not override.
func unhandled(n ir.Node) {
	panic(newUnhandledVariant(n))
}
