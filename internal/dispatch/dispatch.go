package dispatch

import "github.com/roach88/nvfuse/internal/ir"

// DispatchValue routes v to the one Handle method for its exact variant.
// Scalars are routed on their DataType as well as their ValueType.
//
// A tag that matches no variant, or that disagrees with the concrete type,
// is fatal (UNKNOWN_VARIANT).
func DispatchValue(h Handler, v ir.Value) {
	if ir.IsNil(v) {
		panic(newUnknownVariant(stageValue, nil))
	}
	switch v.ValueType() {
	case ir.ValueTypeScalar:
		switch v.DataType() {
		case ir.DataTypeBool:
			h.HandleBool(as[*ir.Bool](v, stageValue))
			return
		case ir.DataTypeDouble:
			h.HandleDouble(as[*ir.Double](v, stageValue))
			return
		case ir.DataTypeInt:
			h.HandleInt(as[*ir.Int](v, stageValue))
			return
		}
	case ir.ValueTypeNamedScalar:
		h.HandleNamedScalar(as[*ir.NamedScalar](v, stageValue))
		return
	case ir.ValueTypeIterDomain:
		h.HandleIterDomain(as[*ir.IterDomain](v, stageValue))
		return
	case ir.ValueTypeTensorDomain:
		h.HandleTensorDomain(as[*ir.TensorDomain](v, stageValue))
		return
	case ir.ValueTypeTensorView:
		h.HandleTensorView(as[*ir.TensorView](v, stageValue))
		return
	case ir.ValueTypePredicate:
		h.HandlePredicate(as[*ir.Predicate](v, stageValue))
		return
	case ir.ValueTypeTensorIndex:
		h.HandleTensorIndex(as[*ir.TensorIndex](v, stageValue))
		return
	}
	panic(newUnknownVariant(stageValue, v))
}

// DispatchOperation routes op to the one Handle method for its exact variant.
func DispatchOperation(h Handler, op ir.Operation) {
	if ir.IsNilOperation(op) {
		panic(newUnknownVariant(stageOperation, nil))
	}
	switch op.OpType() {
	case ir.OpTypeUnaryOp:
		h.HandleUnaryOp(as[*ir.UnaryOp](op, stageOperation))
		return
	case ir.OpTypeBinaryOp:
		h.HandleBinaryOp(as[*ir.BinaryOp](op, stageOperation))
		return
	case ir.OpTypeTernaryOp:
		h.HandleTernaryOp(as[*ir.TernaryOp](op, stageOperation))
		return
	case ir.OpTypeReductionOp:
		h.HandleReductionOp(as[*ir.ReductionOp](op, stageOperation))
		return
	case ir.OpTypeWelfordOp:
		h.HandleWelfordOp(as[*ir.WelfordOp](op, stageOperation))
		return
	case ir.OpTypeBroadcastOp:
		h.HandleBroadcastOp(as[*ir.BroadcastOp](op, stageOperation))
		return
	case ir.OpTypeSplit:
		h.HandleSplit(as[*ir.Split](op, stageOperation))
		return
	case ir.OpTypeMerge:
		h.HandleMerge(as[*ir.Merge](op, stageOperation))
		return
	case ir.OpTypeTransposeOp:
		h.HandleTransposeOp(as[*ir.TransposeOp](op, stageOperation))
		return
	case ir.OpTypeShiftOp:
		h.HandleShiftOp(as[*ir.ShiftOp](op, stageOperation))
		return
	case ir.OpTypeGatherOp:
		h.HandleGatherOp(as[*ir.GatherOp](op, stageOperation))
		return
	case ir.OpTypeViewOp:
		h.HandleViewOp(as[*ir.ViewOp](op, stageOperation))
		return
	case ir.OpTypeAllocate:
		h.HandleAllocate(as[*ir.Allocate](op, stageOperation))
		return
	case ir.OpTypeSync:
		h.HandleSync(as[*ir.Sync](op, stageOperation))
		return
	case ir.OpTypeInitMagicZero:
		h.HandleInitMagicZero(as[*ir.InitMagicZero](op, stageOperation))
		return
	case ir.OpTypeUpdateMagicZero:
		h.HandleUpdateMagicZero(as[*ir.UpdateMagicZero](op, stageOperation))
		return
	case ir.OpTypeForLoop:
		h.HandleForLoop(as[*ir.ForLoop](op, stageOperation))
		return
	case ir.OpTypeIfThenElse:
		h.HandleIfThenElse(as[*ir.IfThenElse](op, stageOperation))
		return
	case ir.OpTypeGridReduction:
		h.HandleGridReduction(as[*ir.GridReduction](op, stageOperation))
		return
	case ir.OpTypeGridBroadcast:
		h.HandleGridBroadcast(as[*ir.GridBroadcast](op, stageOperation))
		return
	case ir.OpTypeGridWelford:
		h.HandleGridWelford(as[*ir.GridWelford](op, stageOperation))
		return
	}
	panic(newUnknownVariant(stageOperation, op))
}

// DispatchStatement redispatches n as a Value or an Operation.
func DispatchStatement(h Handler, n ir.Node) {
	switch s := n.(type) {
	case ir.Value:
		DispatchValue(h, s)
	case ir.Operation:
		DispatchOperation(h, s)
	default:
		panic(newUnknownVariant(stageStatement, n))
	}
}

// Handle is the entry point callers and handler bodies use to process a
// node of unknown category. It only re-enters DispatchStatement.
func Handle(h Handler, n ir.Node) {
	DispatchStatement(h, n)
}

// HandleValue re-enters DispatchValue.
func HandleValue(h Handler, v ir.Value) {
	DispatchValue(h, v)
}

// HandleOperation re-enters DispatchOperation.
func HandleOperation(h Handler, op ir.Operation) {
	DispatchOperation(h, op)
}

// as narrows n to the variant type selected by its tag.
func as[T ir.Node](n ir.Node, stage dispatchStage) T {
	x, ok := n.(T)
	if !ok {
		panic(newUnknownVariant(stage, n))
	}
	return x
}
