package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConst(t *testing.T) {
	i, ok := NewInt(7).Const()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = NewSymbolicInt().Const()
	assert.False(t, ok)

	d, ok := NewDouble(0.5).Const()
	require.True(t, ok)
	assert.Equal(t, 0.5, d)

	b, ok := NewBool(true).Const()
	require.True(t, ok)
	assert.True(t, b)

	assert.True(t, IsConstScalar(NewInt(0)))
	assert.False(t, IsConstScalar(NewSymbolicBool()))
	assert.False(t, IsConstScalar(NewNamedScalar("blockDim.x")))
}

func TestConstructors_SetDefinition(t *testing.T) {
	out := NewSymbolicInt()
	op := NewBinaryOp(BinaryAdd, out, NewInt(1), NewInt(2))
	assert.Same(t, op, out.Definition())

	avg, variance, n := NewSymbolicDouble(), NewSymbolicDouble(), NewSymbolicInt()
	w := NewWelfordOp(avg, variance, n, NewSymbolicDouble(), nil, NewInt(1))
	for _, v := range []Value{avg, variance, n} {
		assert.Same(t, w, v.Definition())
	}

	outer := NewIterDomain(NewInt(0), NewSymbolicInt())
	inner := NewIterDomain(NewInt(0), NewInt(4))
	s := NewSplit(outer, inner, NewIterDomain(NewInt(0), NewSymbolicInt()), NewInt(4), true)
	assert.Same(t, s, outer.Definition())
	assert.Same(t, s, inner.Definition())
}

func TestInputsOutputs_SkipAbsentOperands(t *testing.T) {
	w := NewWelfordOp(NewSymbolicDouble(), NewSymbolicDouble(), NewSymbolicInt(), NewSymbolicDouble(), nil, NewInt(1))
	assert.Len(t, w.Inputs(), 2)
	assert.Len(t, w.Outputs(), 3)

	loop := NewForLoop(NewSymbolicInt(), nil)
	assert.Empty(t, loop.Inputs())

	grid := NewGridReduction(nil, nil, nil)
	assert.Empty(t, grid.Inputs())
}

func TestInputs_OperandOrder(t *testing.T) {
	lhs, rhs := NewSymbolicInt(), NewInt(3)
	op := NewBinaryOp(BinaryMax, NewSymbolicInt(), lhs, rhs)
	assert.Equal(t, []Value{lhs, rhs}, op.Inputs())

	in := NewIterDomain(NewInt(0), NewSymbolicInt())
	factor := NewInt(32)
	split := NewSplit(NewIterDomain(NewInt(0), NewSymbolicInt()), NewIterDomain(NewInt(0), factor), in, factor, true)
	assert.Equal(t, []Value{in, factor}, split.Inputs())
}

func TestGridOps_DelegateInputs(t *testing.T) {
	in := NewTensorView(NewTensorDomain())
	red := NewReductionOp(BinaryAdd, NewDouble(0), NewTensorView(NewTensorDomain()), in)
	buf := NewAllocate(NewTensorView(NewTensorDomain()), MemoryGlobal, NewSymbolicInt(), true)

	grid := NewGridReduction(red, buf, buf)
	assert.Equal(t, red.Inputs(), grid.Inputs())
	assert.Empty(t, grid.Outputs())
	assert.Equal(t, OpTypeGridReduction, grid.OpType())
}

func TestNodeCategory(t *testing.T) {
	var v Node = NewInt(1)
	assert.True(t, v.IsValue())
	assert.False(t, v.IsOperation())

	var op Node = NewSync(false)
	assert.True(t, op.IsOperation())
	assert.False(t, op.IsValue())
}

func TestStructLiteral_KeepsZeroTags(t *testing.T) {
	assert.Equal(t, ValueTypeInvalid, (&Int{}).ValueType())
	assert.Equal(t, OpTypeInvalid, (&BinaryOp{}).OpType())
	assert.Equal(t, -1, (&Int{}).Name())
}

func TestIsNil_TypedNils(t *testing.T) {
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil((*Int)(nil)))
	assert.True(t, IsNil((*TensorView)(nil)))
	assert.False(t, IsNil(NewInt(1)))

	assert.True(t, IsNilOperation(nil))
	assert.True(t, IsNilOperation((*BinaryOp)(nil)))
	assert.True(t, IsNilOperation((*GridWelford)(nil)))
	assert.False(t, IsNilOperation(&Sync{}))
}
