package dispatch

import "github.com/roach88/nvfuse/internal/ir"

// MutatorDispatchValue routes v to the one Mutate method for its exact
// variant and returns its replacement. It does not consult the mutation
// record; MutateValue does.
func MutatorDispatchValue(m Mutator, v ir.Value) ir.Value {
	if ir.IsNil(v) {
		panic(newUnknownVariant(stageValue, nil))
	}
	switch v.ValueType() {
	case ir.ValueTypeScalar:
		switch v.DataType() {
		case ir.DataTypeBool:
			return m.MutateBool(as[*ir.Bool](v, stageValue))
		case ir.DataTypeDouble:
			return m.MutateDouble(as[*ir.Double](v, stageValue))
		case ir.DataTypeInt:
			return m.MutateInt(as[*ir.Int](v, stageValue))
		}
	case ir.ValueTypeNamedScalar:
		return m.MutateNamedScalar(as[*ir.NamedScalar](v, stageValue))
	case ir.ValueTypeIterDomain:
		return m.MutateIterDomain(as[*ir.IterDomain](v, stageValue))
	case ir.ValueTypeTensorDomain:
		return m.MutateTensorDomain(as[*ir.TensorDomain](v, stageValue))
	case ir.ValueTypeTensorView:
		return m.MutateTensorView(as[*ir.TensorView](v, stageValue))
	case ir.ValueTypePredicate:
		return m.MutatePredicate(as[*ir.Predicate](v, stageValue))
	case ir.ValueTypeTensorIndex:
		return m.MutateTensorIndex(as[*ir.TensorIndex](v, stageValue))
	}
	panic(newUnknownVariant(stageValue, v))
}

// MutatorDispatchOperation routes op to the one Mutate method for its exact
// variant and returns its replacement.
func MutatorDispatchOperation(m Mutator, op ir.Operation) ir.Operation {
	if ir.IsNilOperation(op) {
		panic(newUnknownVariant(stageOperation, nil))
	}
	switch op.OpType() {
	case ir.OpTypeUnaryOp:
		return m.MutateUnaryOp(as[*ir.UnaryOp](op, stageOperation))
	case ir.OpTypeBinaryOp:
		return m.MutateBinaryOp(as[*ir.BinaryOp](op, stageOperation))
	case ir.OpTypeTernaryOp:
		return m.MutateTernaryOp(as[*ir.TernaryOp](op, stageOperation))
	case ir.OpTypeReductionOp:
		return m.MutateReductionOp(as[*ir.ReductionOp](op, stageOperation))
	case ir.OpTypeWelfordOp:
		return m.MutateWelfordOp(as[*ir.WelfordOp](op, stageOperation))
	case ir.OpTypeBroadcastOp:
		return m.MutateBroadcastOp(as[*ir.BroadcastOp](op, stageOperation))
	case ir.OpTypeSplit:
		return m.MutateSplit(as[*ir.Split](op, stageOperation))
	case ir.OpTypeMerge:
		return m.MutateMerge(as[*ir.Merge](op, stageOperation))
	case ir.OpTypeTransposeOp:
		return m.MutateTransposeOp(as[*ir.TransposeOp](op, stageOperation))
	case ir.OpTypeShiftOp:
		return m.MutateShiftOp(as[*ir.ShiftOp](op, stageOperation))
	case ir.OpTypeGatherOp:
		return m.MutateGatherOp(as[*ir.GatherOp](op, stageOperation))
	case ir.OpTypeViewOp:
		return m.MutateViewOp(as[*ir.ViewOp](op, stageOperation))
	case ir.OpTypeAllocate:
		return m.MutateAllocate(as[*ir.Allocate](op, stageOperation))
	case ir.OpTypeSync:
		return m.MutateSync(as[*ir.Sync](op, stageOperation))
	case ir.OpTypeInitMagicZero:
		return m.MutateInitMagicZero(as[*ir.InitMagicZero](op, stageOperation))
	case ir.OpTypeUpdateMagicZero:
		return m.MutateUpdateMagicZero(as[*ir.UpdateMagicZero](op, stageOperation))
	case ir.OpTypeForLoop:
		return m.MutateForLoop(as[*ir.ForLoop](op, stageOperation))
	case ir.OpTypeIfThenElse:
		return m.MutateIfThenElse(as[*ir.IfThenElse](op, stageOperation))
	case ir.OpTypeGridReduction:
		return m.MutateGridReduction(as[*ir.GridReduction](op, stageOperation))
	case ir.OpTypeGridBroadcast:
		return m.MutateGridBroadcast(as[*ir.GridBroadcast](op, stageOperation))
	case ir.OpTypeGridWelford:
		return m.MutateGridWelford(as[*ir.GridWelford](op, stageOperation))
	}
	panic(newUnknownVariant(stageOperation, op))
}

// MutatorDispatchStatement redispatches n through MutateValue or
// MutateOperation.
func MutatorDispatchStatement(m Mutator, n ir.Node) ir.Node {
	switch s := n.(type) {
	case ir.Value:
		return MutateValue(m, s)
	case ir.Operation:
		return MutateOperation(m, s)
	}
	panic(newUnknownVariant(stageStatement, n))
}

// Mutate returns the replacement for n.
func Mutate(m Mutator, n ir.Node) ir.Node {
	return MutatorDispatchStatement(m, n)
}

// MutateOperation returns the replacement for op. Operations are not
// memoized; each call dispatches.
func MutateOperation(m Mutator, op ir.Operation) ir.Operation {
	return MutatorDispatchOperation(m, op)
}

// MutateValue returns the replacement for v. A value with a registered
// mutation short-circuits to it without dispatching, so every reference to
// the same original converges on the same replacement within a pass.
func MutateValue(m Mutator, v ir.Value) ir.Value {
	if repl, ok := m.Mutation(v); ok {
		return repl
	}
	return MutatorDispatchValue(m, v)
}

// OptOutMutator is an embeddable Mutator. Every variant method returns its
// argument unchanged, and it owns the pass-scoped mutation record.
//
// The zero value is ready to use. Use a fresh OptOutMutator for each pass;
// it is not safe for concurrent use.
type OptOutMutator struct {
	mutations map[ir.Value]ir.Value
}

var _ Mutator = (*OptOutMutator)(nil)

// Mutation returns the replacement registered for v, if any.
func (m *OptOutMutator) Mutation(v ir.Value) (ir.Value, bool) {
	repl, ok := m.mutations[v]
	return repl, ok
}

// RegisterMutation records that orig is replaced by repl. A pass decides
// each value's replacement exactly once: a second registration for the
// same orig is fatal (DUPLICATE_MUTATION).
func (m *OptOutMutator) RegisterMutation(orig, repl ir.Value) {
	if _, ok := m.mutations[orig]; ok {
		panic(newDuplicateMutation(orig))
	}
	if m.mutations == nil {
		m.mutations = make(map[ir.Value]ir.Value)
	}
	m.mutations[orig] = repl
}

// Mutations reports how many substitutions have been registered.
func (m *OptOutMutator) Mutations() int {
	return len(m.mutations)
}

func (m *OptOutMutator) MutateBool(v *ir.Bool) ir.Value                 { return v }
func (m *OptOutMutator) MutateDouble(v *ir.Double) ir.Value             { return v }
func (m *OptOutMutator) MutateInt(v *ir.Int) ir.Value                   { return v }
func (m *OptOutMutator) MutateNamedScalar(v *ir.NamedScalar) ir.Value   { return v }
func (m *OptOutMutator) MutateIterDomain(v *ir.IterDomain) ir.Value     { return v }
func (m *OptOutMutator) MutateTensorDomain(v *ir.TensorDomain) ir.Value { return v }
func (m *OptOutMutator) MutateTensorView(v *ir.TensorView) ir.Value     { return v }
func (m *OptOutMutator) MutatePredicate(v *ir.Predicate) ir.Value       { return v }
func (m *OptOutMutator) MutateTensorIndex(v *ir.TensorIndex) ir.Value   { return v }

func (m *OptOutMutator) MutateUnaryOp(op *ir.UnaryOp) ir.Operation                 { return op }
func (m *OptOutMutator) MutateBinaryOp(op *ir.BinaryOp) ir.Operation               { return op }
func (m *OptOutMutator) MutateTernaryOp(op *ir.TernaryOp) ir.Operation             { return op }
func (m *OptOutMutator) MutateReductionOp(op *ir.ReductionOp) ir.Operation         { return op }
func (m *OptOutMutator) MutateWelfordOp(op *ir.WelfordOp) ir.Operation             { return op }
func (m *OptOutMutator) MutateBroadcastOp(op *ir.BroadcastOp) ir.Operation         { return op }
func (m *OptOutMutator) MutateSplit(op *ir.Split) ir.Operation                     { return op }
func (m *OptOutMutator) MutateMerge(op *ir.Merge) ir.Operation                     { return op }
func (m *OptOutMutator) MutateTransposeOp(op *ir.TransposeOp) ir.Operation         { return op }
func (m *OptOutMutator) MutateShiftOp(op *ir.ShiftOp) ir.Operation                 { return op }
func (m *OptOutMutator) MutateGatherOp(op *ir.GatherOp) ir.Operation               { return op }
func (m *OptOutMutator) MutateViewOp(op *ir.ViewOp) ir.Operation                   { return op }
func (m *OptOutMutator) MutateAllocate(op *ir.Allocate) ir.Operation               { return op }
func (m *OptOutMutator) MutateSync(op *ir.Sync) ir.Operation                       { return op }
func (m *OptOutMutator) MutateInitMagicZero(op *ir.InitMagicZero) ir.Operation     { return op }
func (m *OptOutMutator) MutateUpdateMagicZero(op *ir.UpdateMagicZero) ir.Operation { return op }
func (m *OptOutMutator) MutateForLoop(op *ir.ForLoop) ir.Operation                 { return op }
func (m *OptOutMutator) MutateIfThenElse(op *ir.IfThenElse) ir.Operation           { return op }
func (m *OptOutMutator) MutateGridReduction(op *ir.GridReduction) ir.Operation     { return op }
func (m *OptOutMutator) MutateGridBroadcast(op *ir.GridBroadcast) ir.Operation     { return op }
func (m *OptOutMutator) MutateGridWelford(op *ir.GridWelford) ir.Operation         { return op }
