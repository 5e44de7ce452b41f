package ir

// Bool is a boolean scalar, either a compile-time constant or symbolic.
type Bool struct {
	valueBase
	val *bool
}

// NewBool creates a constant boolean scalar.
func NewBool(b bool) *Bool {
	return &Bool{valueBase: newValueBase(ValueTypeScalar, DataTypeBool), val: &b}
}

// NewSymbolicBool creates a boolean scalar whose value is known only at run time.
func NewSymbolicBool() *Bool {
	return &Bool{valueBase: newValueBase(ValueTypeScalar, DataTypeBool)}
}

// Const returns the constant value and whether one is set.
func (b *Bool) Const() (bool, bool) {
	if b.val == nil {
		return false, false
	}
	return *b.val, true
}

// Double is a floating-point scalar, either constant or symbolic.
type Double struct {
	valueBase
	val *float64
}

// NewDouble creates a constant double scalar.
func NewDouble(d float64) *Double {
	return &Double{valueBase: newValueBase(ValueTypeScalar, DataTypeDouble), val: &d}
}

// NewSymbolicDouble creates a double scalar whose value is known only at run time.
func NewSymbolicDouble() *Double {
	return &Double{valueBase: newValueBase(ValueTypeScalar, DataTypeDouble)}
}

// Const returns the constant value and whether one is set.
func (d *Double) Const() (float64, bool) {
	if d.val == nil {
		return 0, false
	}
	return *d.val, true
}

// Int is an integer scalar, either constant or symbolic. Index arithmetic,
// extents and split factors are all Ints.
type Int struct {
	valueBase
	val *int64
}

// NewInt creates a constant integer scalar.
func NewInt(i int64) *Int {
	return &Int{valueBase: newValueBase(ValueTypeScalar, DataTypeInt), val: &i}
}

// NewSymbolicInt creates an integer scalar whose value is known only at run time.
func NewSymbolicInt() *Int {
	return &Int{valueBase: newValueBase(ValueTypeScalar, DataTypeInt)}
}

// Const returns the constant value and whether one is set.
func (i *Int) Const() (int64, bool) {
	if i.val == nil {
		return 0, false
	}
	return *i.val, true
}

// NamedScalar is a scalar referred to by a fixed name in generated code,
// such as "threadIdx.x" or "blockDim.x".
type NamedScalar struct {
	valueBase
	Label string
}

// NewNamedScalar creates a named scalar.
func NewNamedScalar(label string) *NamedScalar {
	return &NamedScalar{valueBase: newValueBase(ValueTypeNamedScalar, DataTypeNone), Label: label}
}

// IterDomain is one axis of iteration: [Start, Start+Extent).
type IterDomain struct {
	valueBase
	Start     Value
	Extent    Value
	Parallel  ParallelType
	Reduction bool
}

// NewIterDomain creates a serial iteration domain.
func NewIterDomain(start, extent Value) *IterDomain {
	return &IterDomain{valueBase: newValueBase(ValueTypeIterDomain, DataTypeNone), Start: start, Extent: extent}
}

// TensorDomain is the ordered set of axes describing a tensor's iteration space.
type TensorDomain struct {
	valueBase
	Axes []*IterDomain
}

// NewTensorDomain creates a tensor domain over axes.
func NewTensorDomain(axes ...*IterDomain) *TensorDomain {
	return &TensorDomain{valueBase: newValueBase(ValueTypeTensorDomain, DataTypeNone), Axes: axes}
}

// TensorView is a tensor as seen by the scheduler: a domain plus where it lives.
type TensorView struct {
	valueBase
	Domain *TensorDomain
	Memory MemoryType
}

// NewTensorView creates a global-memory tensor view over domain.
func NewTensorView(domain *TensorDomain) *TensorView {
	return &TensorView{valueBase: newValueBase(ValueTypeTensorView, DataTypeNone), Domain: domain, Memory: MemoryGlobal}
}

// Predicate guards lowered code. Cond is the boolean it evaluates to once
// generated; it may be nil until predicate generation runs.
type Predicate struct {
	valueBase
	Kind PredicateKind
	Cond *Bool
}

// NewPredicate creates a predicate of the given kind.
func NewPredicate(kind PredicateKind, cond *Bool) *Predicate {
	return &Predicate{valueBase: newValueBase(ValueTypePredicate, DataTypeNone), Kind: kind, Cond: cond}
}

// TensorIndex is an element access View[Indices...] in lowered code.
type TensorIndex struct {
	valueBase
	View    *TensorView
	Indices []Value
}

// NewTensorIndex creates an index expression into view.
func NewTensorIndex(view *TensorView, indices ...Value) *TensorIndex {
	return &TensorIndex{valueBase: newValueBase(ValueTypeTensorIndex, DataTypeNone), View: view, Indices: indices}
}

// IsConstScalar reports whether v is a Bool, Double or Int with a constant value.
func IsConstScalar(v Value) bool {
	switch s := v.(type) {
	case *Bool:
		_, ok := s.Const()
		return ok
	case *Double:
		_, ok := s.Const()
		return ok
	case *Int:
		_, ok := s.Const()
		return ok
	}
	return false
}
