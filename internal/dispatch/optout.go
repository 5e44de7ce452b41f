package dispatch

import "github.com/roach88/nvfuse/internal/ir"

// OptOutDispatch is an embeddable Handler whose variant methods do nothing.
// Concrete visitors embed it and override only the variants they need.
//
// Unhandled, when set, is called with every node that reaches a method the
// embedding type did not override. It is the hook for counting or logging
// skipped variants.
type OptOutDispatch struct {
	Unhandled func(ir.Node)
}

var _ Handler = OptOutDispatch{}

func (d OptOutDispatch) skip(n ir.Node) {
	if d.Unhandled != nil {
		d.Unhandled(n)
	}
}

func (d OptOutDispatch) HandleBool(v *ir.Bool)                 { d.skip(v) }
func (d OptOutDispatch) HandleDouble(v *ir.Double)             { d.skip(v) }
func (d OptOutDispatch) HandleInt(v *ir.Int)                   { d.skip(v) }
func (d OptOutDispatch) HandleNamedScalar(v *ir.NamedScalar)   { d.skip(v) }
func (d OptOutDispatch) HandleIterDomain(v *ir.IterDomain)     { d.skip(v) }
func (d OptOutDispatch) HandleTensorDomain(v *ir.TensorDomain) { d.skip(v) }
func (d OptOutDispatch) HandleTensorView(v *ir.TensorView)     { d.skip(v) }
func (d OptOutDispatch) HandlePredicate(v *ir.Predicate)       { d.skip(v) }
func (d OptOutDispatch) HandleTensorIndex(v *ir.TensorIndex)   { d.skip(v) }

func (d OptOutDispatch) HandleUnaryOp(op *ir.UnaryOp)                 { d.skip(op) }
func (d OptOutDispatch) HandleBinaryOp(op *ir.BinaryOp)               { d.skip(op) }
func (d OptOutDispatch) HandleTernaryOp(op *ir.TernaryOp)             { d.skip(op) }
func (d OptOutDispatch) HandleReductionOp(op *ir.ReductionOp)         { d.skip(op) }
func (d OptOutDispatch) HandleWelfordOp(op *ir.WelfordOp)             { d.skip(op) }
func (d OptOutDispatch) HandleBroadcastOp(op *ir.BroadcastOp)         { d.skip(op) }
func (d OptOutDispatch) HandleSplit(op *ir.Split)                     { d.skip(op) }
func (d OptOutDispatch) HandleMerge(op *ir.Merge)                     { d.skip(op) }
func (d OptOutDispatch) HandleTransposeOp(op *ir.TransposeOp)         { d.skip(op) }
func (d OptOutDispatch) HandleShiftOp(op *ir.ShiftOp)                 { d.skip(op) }
func (d OptOutDispatch) HandleGatherOp(op *ir.GatherOp)               { d.skip(op) }
func (d OptOutDispatch) HandleViewOp(op *ir.ViewOp)                   { d.skip(op) }
func (d OptOutDispatch) HandleAllocate(op *ir.Allocate)               { d.skip(op) }
func (d OptOutDispatch) HandleSync(op *ir.Sync)                       { d.skip(op) }
func (d OptOutDispatch) HandleInitMagicZero(op *ir.InitMagicZero)     { d.skip(op) }
func (d OptOutDispatch) HandleUpdateMagicZero(op *ir.UpdateMagicZero) { d.skip(op) }
func (d OptOutDispatch) HandleForLoop(op *ir.ForLoop)                 { d.skip(op) }
func (d OptOutDispatch) HandleIfThenElse(op *ir.IfThenElse)           { d.skip(op) }
func (d OptOutDispatch) HandleGridReduction(op *ir.GridReduction)     { d.skip(op) }
func (d OptOutDispatch) HandleGridBroadcast(op *ir.GridBroadcast)     { d.skip(op) }
func (d OptOutDispatch) HandleGridWelford(op *ir.GridWelford)         { d.skip(op) }

// OptOutConstDispatch is the read-only counterpart of OptOutDispatch.
type OptOutConstDispatch struct {
	Unhandled func(ir.Node)
}

var _ ConstHandler = OptOutConstDispatch{}

func (d OptOutConstDispatch) skip(n ir.Node) {
	if d.Unhandled != nil {
		d.Unhandled(n)
	}
}

func (d OptOutConstDispatch) VisitBool(v *ir.Bool)                 { d.skip(v) }
func (d OptOutConstDispatch) VisitDouble(v *ir.Double)             { d.skip(v) }
func (d OptOutConstDispatch) VisitInt(v *ir.Int)                   { d.skip(v) }
func (d OptOutConstDispatch) VisitNamedScalar(v *ir.NamedScalar)   { d.skip(v) }
func (d OptOutConstDispatch) VisitIterDomain(v *ir.IterDomain)     { d.skip(v) }
func (d OptOutConstDispatch) VisitTensorDomain(v *ir.TensorDomain) { d.skip(v) }
func (d OptOutConstDispatch) VisitTensorView(v *ir.TensorView)     { d.skip(v) }
func (d OptOutConstDispatch) VisitPredicate(v *ir.Predicate)       { d.skip(v) }
func (d OptOutConstDispatch) VisitTensorIndex(v *ir.TensorIndex)   { d.skip(v) }

func (d OptOutConstDispatch) VisitUnaryOp(op *ir.UnaryOp)                 { d.skip(op) }
func (d OptOutConstDispatch) VisitBinaryOp(op *ir.BinaryOp)               { d.skip(op) }
func (d OptOutConstDispatch) VisitTernaryOp(op *ir.TernaryOp)             { d.skip(op) }
func (d OptOutConstDispatch) VisitReductionOp(op *ir.ReductionOp)         { d.skip(op) }
func (d OptOutConstDispatch) VisitWelfordOp(op *ir.WelfordOp)             { d.skip(op) }
func (d OptOutConstDispatch) VisitBroadcastOp(op *ir.BroadcastOp)         { d.skip(op) }
func (d OptOutConstDispatch) VisitSplit(op *ir.Split)                     { d.skip(op) }
func (d OptOutConstDispatch) VisitMerge(op *ir.Merge)                     { d.skip(op) }
func (d OptOutConstDispatch) VisitTransposeOp(op *ir.TransposeOp)         { d.skip(op) }
func (d OptOutConstDispatch) VisitShiftOp(op *ir.ShiftOp)                 { d.skip(op) }
func (d OptOutConstDispatch) VisitGatherOp(op *ir.GatherOp)               { d.skip(op) }
func (d OptOutConstDispatch) VisitViewOp(op *ir.ViewOp)                   { d.skip(op) }
func (d OptOutConstDispatch) VisitAllocate(op *ir.Allocate)               { d.skip(op) }
func (d OptOutConstDispatch) VisitSync(op *ir.Sync)                       { d.skip(op) }
func (d OptOutConstDispatch) VisitInitMagicZero(op *ir.InitMagicZero)     { d.skip(op) }
func (d OptOutConstDispatch) VisitUpdateMagicZero(op *ir.UpdateMagicZero) { d.skip(op) }
func (d OptOutConstDispatch) VisitForLoop(op *ir.ForLoop)                 { d.skip(op) }
func (d OptOutConstDispatch) VisitIfThenElse(op *ir.IfThenElse)           { d.skip(op) }
func (d OptOutConstDispatch) VisitGridReduction(op *ir.GridReduction)     { d.skip(op) }
func (d OptOutConstDispatch) VisitGridBroadcast(op *ir.GridBroadcast)     { d.skip(op) }
func (d OptOutConstDispatch) VisitGridWelford(op *ir.GridWelford)         { d.skip(op) }
