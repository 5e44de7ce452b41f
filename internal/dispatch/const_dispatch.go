package dispatch

import "github.com/roach88/nvfuse/internal/ir"

// ConstDispatchValue is the read-only counterpart of DispatchValue.
func ConstDispatchValue(h ConstHandler, v ir.Value) {
	if ir.IsNil(v) {
		panic(newUnknownVariant(stageValue, nil))
	}
	switch v.ValueType() {
	case ir.ValueTypeScalar:
		switch v.DataType() {
		case ir.DataTypeBool:
			h.VisitBool(as[*ir.Bool](v, stageValue))
			return
		case ir.DataTypeDouble:
			h.VisitDouble(as[*ir.Double](v, stageValue))
			return
		case ir.DataTypeInt:
			h.VisitInt(as[*ir.Int](v, stageValue))
			return
		}
	case ir.ValueTypeNamedScalar:
		h.VisitNamedScalar(as[*ir.NamedScalar](v, stageValue))
		return
	case ir.ValueTypeIterDomain:
		h.VisitIterDomain(as[*ir.IterDomain](v, stageValue))
		return
	case ir.ValueTypeTensorDomain:
		h.VisitTensorDomain(as[*ir.TensorDomain](v, stageValue))
		return
	case ir.ValueTypeTensorView:
		h.VisitTensorView(as[*ir.TensorView](v, stageValue))
		return
	case ir.ValueTypePredicate:
		h.VisitPredicate(as[*ir.Predicate](v, stageValue))
		return
	case ir.ValueTypeTensorIndex:
		h.VisitTensorIndex(as[*ir.TensorIndex](v, stageValue))
		return
	}
	panic(newUnknownVariant(stageValue, v))
}

// ConstDispatchOperation is the read-only counterpart of DispatchOperation.
func ConstDispatchOperation(h ConstHandler, op ir.Operation) {
	if ir.IsNilOperation(op) {
		panic(newUnknownVariant(stageOperation, nil))
	}
	switch op.OpType() {
	case ir.OpTypeUnaryOp:
		h.VisitUnaryOp(as[*ir.UnaryOp](op, stageOperation))
		return
	case ir.OpTypeBinaryOp:
		h.VisitBinaryOp(as[*ir.BinaryOp](op, stageOperation))
		return
	case ir.OpTypeTernaryOp:
		h.VisitTernaryOp(as[*ir.TernaryOp](op, stageOperation))
		return
	case ir.OpTypeReductionOp:
		h.VisitReductionOp(as[*ir.ReductionOp](op, stageOperation))
		return
	case ir.OpTypeWelfordOp:
		h.VisitWelfordOp(as[*ir.WelfordOp](op, stageOperation))
		return
	case ir.OpTypeBroadcastOp:
		h.VisitBroadcastOp(as[*ir.BroadcastOp](op, stageOperation))
		return
	case ir.OpTypeSplit:
		h.VisitSplit(as[*ir.Split](op, stageOperation))
		return
	case ir.OpTypeMerge:
		h.VisitMerge(as[*ir.Merge](op, stageOperation))
		return
	case ir.OpTypeTransposeOp:
		h.VisitTransposeOp(as[*ir.TransposeOp](op, stageOperation))
		return
	case ir.OpTypeShiftOp:
		h.VisitShiftOp(as[*ir.ShiftOp](op, stageOperation))
		return
	case ir.OpTypeGatherOp:
		h.VisitGatherOp(as[*ir.GatherOp](op, stageOperation))
		return
	case ir.OpTypeViewOp:
		h.VisitViewOp(as[*ir.ViewOp](op, stageOperation))
		return
	case ir.OpTypeAllocate:
		h.VisitAllocate(as[*ir.Allocate](op, stageOperation))
		return
	case ir.OpTypeSync:
		h.VisitSync(as[*ir.Sync](op, stageOperation))
		return
	case ir.OpTypeInitMagicZero:
		h.VisitInitMagicZero(as[*ir.InitMagicZero](op, stageOperation))
		return
	case ir.OpTypeUpdateMagicZero:
		h.VisitUpdateMagicZero(as[*ir.UpdateMagicZero](op, stageOperation))
		return
	case ir.OpTypeForLoop:
		h.VisitForLoop(as[*ir.ForLoop](op, stageOperation))
		return
	case ir.OpTypeIfThenElse:
		h.VisitIfThenElse(as[*ir.IfThenElse](op, stageOperation))
		return
	case ir.OpTypeGridReduction:
		h.VisitGridReduction(as[*ir.GridReduction](op, stageOperation))
		return
	case ir.OpTypeGridBroadcast:
		h.VisitGridBroadcast(as[*ir.GridBroadcast](op, stageOperation))
		return
	case ir.OpTypeGridWelford:
		h.VisitGridWelford(as[*ir.GridWelford](op, stageOperation))
		return
	}
	panic(newUnknownVariant(stageOperation, op))
}

// ConstDispatchStatement is the read-only counterpart of DispatchStatement.
func ConstDispatchStatement(h ConstHandler, n ir.Node) {
	switch s := n.(type) {
	case ir.Value:
		ConstDispatchValue(h, s)
	case ir.Operation:
		ConstDispatchOperation(h, s)
	default:
		panic(newUnknownVariant(stageStatement, n))
	}
}

// Visit is the read-only entry point; it only re-enters ConstDispatchStatement.
func Visit(h ConstHandler, n ir.Node) {
	ConstDispatchStatement(h, n)
}

// VisitValue re-enters ConstDispatchValue.
func VisitValue(h ConstHandler, v ir.Value) {
	ConstDispatchValue(h, v)
}

// VisitOperation re-enters ConstDispatchOperation.
func VisitOperation(h ConstHandler, op ir.Operation) {
	ConstDispatchOperation(h, op)
}
