package ir

import "fmt"

// ValueType is the coarse variant tag carried by every Value.
// The zero value is ValueTypeInvalid and never routes anywhere.
type ValueType int

const (
	ValueTypeInvalid ValueType = iota
	ValueTypeScalar
	ValueTypeNamedScalar
	ValueTypeIterDomain
	ValueTypeTensorDomain
	ValueTypeTensorView
	ValueTypePredicate
	ValueTypeTensorIndex
)

var valueTypeNames = map[ValueType]string{
	ValueTypeScalar:       "Scalar",
	ValueTypeNamedScalar:  "NamedScalar",
	ValueTypeIterDomain:   "IterDomain",
	ValueTypeTensorDomain: "TensorDomain",
	ValueTypeTensorView:   "TensorView",
	ValueTypePredicate:    "Predicate",
	ValueTypeTensorIndex:  "TensorIndex",
}

func (t ValueType) String() string {
	if s, ok := valueTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

func (t ValueType) MarshalText() ([]byte, error) { return marshalTag(valueTypeNames, "ValueType", t) }

func (t *ValueType) UnmarshalText(b []byte) error {
	return unmarshalTag(valueTypeNames, "ValueType", t, b)
}

// DataType is the secondary tag read only for Scalar values.
type DataType int

const (
	DataTypeNone DataType = iota
	DataTypeBool
	DataTypeDouble
	DataTypeInt
)

var dataTypeNames = map[DataType]string{
	DataTypeBool:   "Bool",
	DataTypeDouble: "Double",
	DataTypeInt:    "Int",
}

func (t DataType) String() string {
	if s, ok := dataTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

func (t DataType) MarshalText() ([]byte, error) { return marshalTag(dataTypeNames, "DataType", t) }

func (t *DataType) UnmarshalText(b []byte) error {
	return unmarshalTag(dataTypeNames, "DataType", t, b)
}

// OpType is the variant tag carried by every Operation.
// The zero value is OpTypeInvalid and never routes anywhere.
type OpType int

const (
	OpTypeInvalid OpType = iota

	// Fusion-level compute and loop-transform ops.
	OpTypeUnaryOp
	OpTypeBinaryOp
	OpTypeTernaryOp
	OpTypeReductionOp
	OpTypeWelfordOp
	OpTypeBroadcastOp
	OpTypeSplit
	OpTypeMerge
	OpTypeTransposeOp
	OpTypeShiftOp
	OpTypeGatherOp
	OpTypeViewOp

	// Lowered (kernel IR) constructs.
	OpTypeAllocate
	OpTypeSync
	OpTypeInitMagicZero
	OpTypeUpdateMagicZero
	OpTypeForLoop
	OpTypeIfThenElse
	OpTypeGridReduction
	OpTypeGridBroadcast
	OpTypeGridWelford
)

var opTypeNames = map[OpType]string{
	OpTypeUnaryOp:         "UnaryOp",
	OpTypeBinaryOp:        "BinaryOp",
	OpTypeTernaryOp:       "TernaryOp",
	OpTypeReductionOp:     "ReductionOp",
	OpTypeWelfordOp:       "WelfordOp",
	OpTypeBroadcastOp:     "BroadcastOp",
	OpTypeSplit:           "Split",
	OpTypeMerge:           "Merge",
	OpTypeTransposeOp:     "TransposeOp",
	OpTypeShiftOp:         "ShiftOp",
	OpTypeGatherOp:        "GatherOp",
	OpTypeViewOp:          "ViewOp",
	OpTypeAllocate:        "Allocate",
	OpTypeSync:            "Sync",
	OpTypeInitMagicZero:   "InitMagicZero",
	OpTypeUpdateMagicZero: "UpdateMagicZero",
	OpTypeForLoop:         "ForLoop",
	OpTypeIfThenElse:      "IfThenElse",
	OpTypeGridReduction:   "GridReduction",
	OpTypeGridBroadcast:   "GridBroadcast",
	OpTypeGridWelford:     "GridWelford",
}

func (t OpType) String() string {
	if s, ok := opTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("OpType(%d)", int(t))
}

func (t OpType) MarshalText() ([]byte, error) { return marshalTag(opTypeNames, "OpType", t) }

func (t *OpType) UnmarshalText(b []byte) error {
	return unmarshalTag(opTypeNames, "OpType", t, b)
}

// marshalTag refuses the invalid zero tag and any value outside names.
func marshalTag[T ~int](names map[T]string, kind string, t T) ([]byte, error) {
	s, ok := names[t]
	if !ok {
		return nil, fmt.Errorf("invalid %s %d", kind, int(t))
	}
	return []byte(s), nil
}

func unmarshalTag[T ~int](names map[T]string, kind string, t *T, b []byte) error {
	for tag, name := range names {
		if name == string(b) {
			*t = tag
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, b)
}

// IsKernel reports whether t is a lowered construct that only appears
// after lowering to kernel IR.
func (t OpType) IsKernel() bool {
	return t >= OpTypeAllocate && t <= OpTypeGridWelford
}

// OpTypes returns every valid OpType in declaration order.
func OpTypes() []OpType {
	out := make([]OpType, 0, len(opTypeNames))
	for t := OpTypeUnaryOp; t <= OpTypeGridWelford; t++ {
		out = append(out, t)
	}
	return out
}

// Variant names a Value variant precisely: the coarse ValueType, plus the
// DataType when the ValueType is Scalar. It is the string form used in
// traces, statistics and fatal diagnostics.
func Variant(v Value) string {
	if v.ValueType() == ValueTypeScalar {
		return v.DataType().String()
	}
	return v.ValueType().String()
}

// ValueVariants lists the nine exact Value variant names in dispatch order.
func ValueVariants() []string {
	return []string{
		"Bool", "Double", "Int",
		"NamedScalar", "IterDomain", "TensorDomain", "TensorView",
		"Predicate", "TensorIndex",
	}
}

// Op kinds carried as attributes by compute ops. They do not take part in
// dispatch.

// UnaryOpType selects the function applied by a UnaryOp.
type UnaryOpType string

const (
	UnaryNeg  UnaryOpType = "neg"
	UnaryAbs  UnaryOpType = "abs"
	UnaryNot  UnaryOpType = "not"
	UnarySet  UnaryOpType = "set"
	UnaryCast UnaryOpType = "cast"
	UnarySqrt UnaryOpType = "sqrt"
	UnaryExp  UnaryOpType = "exp"
	UnaryLog  UnaryOpType = "log"
)

// BinaryOpType selects the function applied by a BinaryOp or ReductionOp.
type BinaryOpType string

const (
	BinaryAdd     BinaryOpType = "add"
	BinarySub     BinaryOpType = "sub"
	BinaryMul     BinaryOpType = "mul"
	BinaryDiv     BinaryOpType = "div"
	BinaryMod     BinaryOpType = "mod"
	BinaryCeilDiv BinaryOpType = "ceildiv"
	BinaryMax     BinaryOpType = "max"
	BinaryMin     BinaryOpType = "min"
	BinaryAnd     BinaryOpType = "and"
	BinaryOr      BinaryOpType = "or"
	BinaryEq      BinaryOpType = "eq"
	BinaryNE      BinaryOpType = "ne"
	BinaryLT      BinaryOpType = "lt"
	BinaryLE      BinaryOpType = "le"
	BinaryGT      BinaryOpType = "gt"
	BinaryGE      BinaryOpType = "ge"
)

// TernaryOpType selects the function applied by a TernaryOp.
type TernaryOpType string

const (
	TernaryWhere     TernaryOpType = "where"
	TernaryClamp     TernaryOpType = "clamp"
	TernaryThreshold TernaryOpType = "threshold"
	TernaryLerp      TernaryOpType = "lerp"
)

// ParallelType binds an IterDomain to a hardware parallel dimension.
// The empty string means serial.
type ParallelType string

const (
	ParallelSerial    ParallelType = ""
	ParallelBlockX    ParallelType = "BIDx"
	ParallelBlockY    ParallelType = "BIDy"
	ParallelBlockZ    ParallelType = "BIDz"
	ParallelThreadX   ParallelType = "TIDx"
	ParallelThreadY   ParallelType = "TIDy"
	ParallelThreadZ   ParallelType = "TIDz"
	ParallelVectorize ParallelType = "V"
	ParallelUnroll    ParallelType = "UR"
)

// MemoryType is where a tensor or allocation lives.
type MemoryType string

const (
	MemoryLocal  MemoryType = "local"
	MemoryShared MemoryType = "shared"
	MemoryGlobal MemoryType = "global"
)

// PredicateKind is the lowering-time role of a Predicate.
type PredicateKind string

const (
	PredicateManual         PredicateKind = "manual"
	PredicateInline         PredicateKind = "inline"
	PredicateUnswitch       PredicateKind = "unswitch"
	PredicateVectorize      PredicateKind = "vectorize"
	PredicateShift          PredicateKind = "shift"
	PredicatePadding        PredicateKind = "padding"
	PredicateReductionWrite PredicateKind = "reduction_write"
)
