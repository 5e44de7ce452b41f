package ir

// Node is the universal base of the IR tree.
//
// This is a sealed interface - only types in this package implement it.
// Every Node is exactly one of Value or Operation; the category is fixed by
// the concrete type and never changes.
type Node interface {
	// Name is the per-category index assigned by the owning Container.
	// Nodes not registered with a Container report -1.
	Name() int

	IsValue() bool
	IsOperation() bool

	node() // Marker method - seals interface to this package
}

// Value is a Node that holds data: scalars, iteration and tensor domains,
// tensor views, predicates and tensor indices.
type Value interface {
	Node

	// ValueType is the coarse variant tag.
	ValueType() ValueType

	// DataType is the secondary tag. It is meaningful only when ValueType
	// is ValueTypeScalar and is DataTypeNone otherwise.
	DataType() DataType

	// Definition is the Operation that produced this value, or nil for
	// leaves (inputs and constants).
	Definition() Operation

	value()
}

// Operation is a Node that computes something from Values.
type Operation interface {
	Node

	// OpType is the variant tag.
	OpType() OpType

	// Inputs lists the values read by the operation, in operand order.
	// Absent optional operands are omitted.
	Inputs() []Value

	// Outputs lists the values produced by the operation. Constructors set
	// Definition on each of them.
	Outputs() []Value

	operation()
}

// valueBase carries the immutable tags shared by every Value variant.
// A Value built from a struct literal instead of a constructor keeps the
// zero tags and is rejected by dispatch.
type valueBase struct {
	name  int
	named bool
	vtype ValueType
	dtype DataType
	def   Operation
}

func newValueBase(vt ValueType, dt DataType) valueBase {
	return valueBase{vtype: vt, dtype: dt}
}

func (v *valueBase) Name() int {
	if !v.named {
		return -1
	}
	return v.name
}

func (v *valueBase) IsValue() bool              { return true }
func (v *valueBase) IsOperation() bool          { return false }
func (v *valueBase) ValueType() ValueType       { return v.vtype }
func (v *valueBase) DataType() DataType         { return v.dtype }
func (v *valueBase) Definition() Operation      { return v.def }
func (v *valueBase) setDefinition(op Operation) { v.def = op }
func (v *valueBase) setName(n int)              { v.name, v.named = n, true }
func (v *valueBase) node()                      {}
func (v *valueBase) value()                     {}

// opBase carries the immutable tag shared by every Operation variant.
type opBase struct {
	name  int
	named bool
	otype OpType
}

func newOpBase(t OpType) opBase {
	return opBase{otype: t}
}

func (o *opBase) Name() int {
	if !o.named {
		return -1
	}
	return o.name
}

func (o *opBase) IsValue() bool     { return false }
func (o *opBase) IsOperation() bool { return true }
func (o *opBase) OpType() OpType    { return o.otype }
func (o *opBase) setName(n int)     { o.name, o.named = n, true }
func (o *opBase) node()             {}
func (o *opBase) operation()        {}

type namer interface {
	setName(int)
}

type definer interface {
	setDefinition(Operation)
}

// define points every output of op back at op.
func define[O Operation](op O) O {
	for _, out := range op.Outputs() {
		if d, ok := out.(definer); ok {
			d.setDefinition(op)
		}
	}
	return op
}

// appendPresent appends the non-nil values in vs to dst.
func appendPresent(dst []Value, vs ...Value) []Value {
	for _, v := range vs {
		if !IsNil(v) {
			dst = append(dst, v)
		}
	}
	return dst
}

// IsNil reports whether v is nil or a typed nil pointer of a known variant.
// Optional operands held in concrete-typed fields convert to typed nils.
func IsNil(v Value) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *IterDomain:
		return x == nil
	case *TensorDomain:
		return x == nil
	case *TensorView:
		return x == nil
	case *Predicate:
		return x == nil
	case *Bool:
		return x == nil
	case *Int:
		return x == nil
	case *Double:
		return x == nil
	case *NamedScalar:
		return x == nil
	case *TensorIndex:
		return x == nil
	}
	return false
}

// IsNilOperation is the Operation counterpart of IsNil.
func IsNilOperation(op Operation) bool {
	switch x := op.(type) {
	case nil:
		return true
	case *UnaryOp:
		return x == nil
	case *BinaryOp:
		return x == nil
	case *TernaryOp:
		return x == nil
	case *ReductionOp:
		return x == nil
	case *WelfordOp:
		return x == nil
	case *BroadcastOp:
		return x == nil
	case *Split:
		return x == nil
	case *Merge:
		return x == nil
	case *TransposeOp:
		return x == nil
	case *ShiftOp:
		return x == nil
	case *GatherOp:
		return x == nil
	case *ViewOp:
		return x == nil
	case *Allocate:
		return x == nil
	case *Sync:
		return x == nil
	case *InitMagicZero:
		return x == nil
	case *UpdateMagicZero:
		return x == nil
	case *ForLoop:
		return x == nil
	case *IfThenElse:
		return x == nil
	case *GridReduction:
		return x == nil
	case *GridBroadcast:
		return x == nil
	case *GridWelford:
		return x == nil
	}
	return false
}
