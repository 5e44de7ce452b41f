package ir

// UnaryOp computes Out = Kind(In).
type UnaryOp struct {
	opBase
	Kind UnaryOpType
	Out  Value
	In   Value
}

// NewUnaryOp creates a unary op and makes it the definition of out.
func NewUnaryOp(kind UnaryOpType, out, in Value) *UnaryOp {
	return define(&UnaryOp{opBase: newOpBase(OpTypeUnaryOp), Kind: kind, Out: out, In: in})
}

func (o *UnaryOp) Inputs() []Value  { return appendPresent(nil, o.In) }
func (o *UnaryOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// BinaryOp computes Out = Lhs Kind Rhs.
type BinaryOp struct {
	opBase
	Kind BinaryOpType
	Out  Value
	Lhs  Value
	Rhs  Value
}

// NewBinaryOp creates a binary op and makes it the definition of out.
func NewBinaryOp(kind BinaryOpType, out, lhs, rhs Value) *BinaryOp {
	return define(&BinaryOp{opBase: newOpBase(OpTypeBinaryOp), Kind: kind, Out: out, Lhs: lhs, Rhs: rhs})
}

func (o *BinaryOp) Inputs() []Value  { return appendPresent(nil, o.Lhs, o.Rhs) }
func (o *BinaryOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// TernaryOp computes Out = Kind(In1, In2, In3).
type TernaryOp struct {
	opBase
	Kind TernaryOpType
	Out  Value
	In1  Value
	In2  Value
	In3  Value
}

// NewTernaryOp creates a ternary op and makes it the definition of out.
func NewTernaryOp(kind TernaryOpType, out, in1, in2, in3 Value) *TernaryOp {
	return define(&TernaryOp{opBase: newOpBase(OpTypeTernaryOp), Kind: kind, Out: out, In1: in1, In2: in2, In3: in3})
}

func (o *TernaryOp) Inputs() []Value  { return appendPresent(nil, o.In1, o.In2, o.In3) }
func (o *TernaryOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// ReductionOp folds In into Out with Kind, starting from Init.
type ReductionOp struct {
	opBase
	Kind BinaryOpType
	Init Value
	Out  Value
	In   Value
}

// NewReductionOp creates a reduction and makes it the definition of out.
func NewReductionOp(kind BinaryOpType, init, out, in Value) *ReductionOp {
	return define(&ReductionOp{opBase: newOpBase(OpTypeReductionOp), Kind: kind, Init: init, Out: out, In: in})
}

func (o *ReductionOp) Inputs() []Value  { return appendPresent(nil, o.In) }
func (o *ReductionOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// WelfordOp is a one-pass mean/variance reduction. InVar and the Init*
// operands are optional.
type WelfordOp struct {
	opBase
	OutAvg, OutVar, OutN    Value
	InitAvg, InitVar, InitN Value
	InAvg, InVar, InN       Value
}

// NewWelfordOp creates a Welford reduction and makes it the definition of its outputs.
func NewWelfordOp(outAvg, outVar, outN, inAvg, inVar, inN Value) *WelfordOp {
	return define(&WelfordOp{
		opBase: newOpBase(OpTypeWelfordOp),
		OutAvg: outAvg, OutVar: outVar, OutN: outN,
		InAvg: inAvg, InVar: inVar, InN: inN,
	})
}

func (o *WelfordOp) Inputs() []Value {
	return appendPresent(nil, o.InAvg, o.InVar, o.InN, o.InitAvg, o.InitVar, o.InitN)
}

func (o *WelfordOp) Outputs() []Value { return appendPresent(nil, o.OutAvg, o.OutVar, o.OutN) }

// BroadcastOp expands In to Out; Axes[i] is true where a new broadcast axis is inserted.
type BroadcastOp struct {
	opBase
	Out  Value
	In   Value
	Axes []bool
}

// NewBroadcastOp creates a broadcast and makes it the definition of out.
func NewBroadcastOp(out, in Value, axes []bool) *BroadcastOp {
	return define(&BroadcastOp{opBase: newOpBase(OpTypeBroadcastOp), Out: out, In: in, Axes: axes})
}

func (o *BroadcastOp) Inputs() []Value  { return appendPresent(nil, o.In) }
func (o *BroadcastOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// Split divides In into Outer and Inner by Factor. InnerSplit selects
// whether Factor sizes the inner (true) or the outer axis.
type Split struct {
	opBase
	Outer      *IterDomain
	Inner      *IterDomain
	In         *IterDomain
	Factor     Value
	InnerSplit bool
}

// NewSplit creates a split and makes it the definition of outer and inner.
func NewSplit(outer, inner, in *IterDomain, factor Value, innerSplit bool) *Split {
	return define(&Split{opBase: newOpBase(OpTypeSplit), Outer: outer, Inner: inner, In: in, Factor: factor, InnerSplit: innerSplit})
}

func (o *Split) Inputs() []Value  { return appendPresent(nil, o.In, o.Factor) }
func (o *Split) Outputs() []Value { return appendPresent(nil, o.Outer, o.Inner) }

// Merge fuses Outer and Inner into Out.
type Merge struct {
	opBase
	Out   *IterDomain
	Outer *IterDomain
	Inner *IterDomain
}

// NewMerge creates a merge and makes it the definition of out.
func NewMerge(out, outer, inner *IterDomain) *Merge {
	return define(&Merge{opBase: newOpBase(OpTypeMerge), Out: out, Outer: outer, Inner: inner})
}

func (o *Merge) Inputs() []Value  { return appendPresent(nil, o.Outer, o.Inner) }
func (o *Merge) Outputs() []Value { return appendPresent(nil, o.Out) }

// TransposeOp permutes the axes of In; Perm[i] is the input axis that
// becomes output axis i.
type TransposeOp struct {
	opBase
	Out  Value
	In   Value
	Perm []int
}

// NewTransposeOp creates a transpose and makes it the definition of out.
func NewTransposeOp(out, in Value, perm []int) *TransposeOp {
	return define(&TransposeOp{opBase: newOpBase(OpTypeTransposeOp), Out: out, In: in, Perm: perm})
}

func (o *TransposeOp) Inputs() []Value  { return appendPresent(nil, o.In) }
func (o *TransposeOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// ShiftOp shifts In by a per-axis offset.
type ShiftOp struct {
	opBase
	Out     Value
	In      Value
	Offsets []int
}

// NewShiftOp creates a shift and makes it the definition of out.
func NewShiftOp(out, in Value, offsets []int) *ShiftOp {
	return define(&ShiftOp{opBase: newOpBase(OpTypeShiftOp), Out: out, In: in, Offsets: offsets})
}

func (o *ShiftOp) Inputs() []Value  { return appendPresent(nil, o.In) }
func (o *ShiftOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// GatherOp collects a sliding window of In. Pad holds the (before, after)
// padding per axis.
type GatherOp struct {
	opBase
	Out    Value
	In     Value
	Window []int
	Pad    [][2]int
}

// NewGatherOp creates a gather and makes it the definition of out.
func NewGatherOp(out, in Value, window []int, pad [][2]int) *GatherOp {
	return define(&GatherOp{opBase: newOpBase(OpTypeGatherOp), Out: out, In: in, Window: window, Pad: pad})
}

func (o *GatherOp) Inputs() []Value  { return appendPresent(nil, o.In) }
func (o *GatherOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// ViewOp reinterprets In with the shape of Out.
type ViewOp struct {
	opBase
	Out Value
	In  Value
}

// NewViewOp creates a view and makes it the definition of out.
func NewViewOp(out, in Value) *ViewOp {
	return define(&ViewOp{opBase: newOpBase(OpTypeViewOp), Out: out, In: in})
}

func (o *ViewOp) Inputs() []Value  { return appendPresent(nil, o.In) }
func (o *ViewOp) Outputs() []Value { return appendPresent(nil, o.Out) }

// Allocate reserves Size elements of Memory for Buffer. Buffer is an
// attribute, not an output: its definition stays with the op that computes it.
type Allocate struct {
	opBase
	Buffer   Value
	Memory   MemoryType
	Size     Value
	ZeroInit bool
}

// NewAllocate creates an allocation.
func NewAllocate(buffer Value, memory MemoryType, size Value, zeroInit bool) *Allocate {
	return &Allocate{opBase: newOpBase(OpTypeAllocate), Buffer: buffer, Memory: memory, Size: size, ZeroInit: zeroInit}
}

func (o *Allocate) Inputs() []Value  { return appendPresent(nil, o.Size) }
func (o *Allocate) Outputs() []Value { return nil }

// Sync is a block-level barrier. WARHazard marks a barrier inserted to
// resolve a write-after-read hazard on shared memory.
type Sync struct {
	opBase
	WARHazard bool
}

// NewSync creates a barrier.
func NewSync(warHazard bool) *Sync {
	return &Sync{opBase: newOpBase(OpTypeSync), WARHazard: warHazard}
}

func (o *Sync) Inputs() []Value  { return nil }
func (o *Sync) Outputs() []Value { return nil }

// InitMagicZero declares the magic-zero register used to defeat
// unrolling-time constant propagation of indices.
type InitMagicZero struct {
	opBase
}

// NewInitMagicZero creates the magic-zero declaration.
func NewInitMagicZero() *InitMagicZero {
	return &InitMagicZero{opBase: newOpBase(OpTypeInitMagicZero)}
}

func (o *InitMagicZero) Inputs() []Value  { return nil }
func (o *InitMagicZero) Outputs() []Value { return nil }

// UpdateMagicZero refreshes the magic-zero register after an unrolled loop.
type UpdateMagicZero struct {
	opBase
}

// NewUpdateMagicZero creates the magic-zero update.
func NewUpdateMagicZero() *UpdateMagicZero {
	return &UpdateMagicZero{opBase: newOpBase(OpTypeUpdateMagicZero)}
}

func (o *UpdateMagicZero) Inputs() []Value  { return nil }
func (o *UpdateMagicZero) Outputs() []Value { return nil }

// ForLoop iterates Index over Iter from Start to Stop by Step, running Body.
// Start, Stop and Step default to the domain's bounds when nil.
type ForLoop struct {
	opBase
	Index Value
	Iter  *IterDomain
	Start Value
	Stop  Value
	Step  Value
	Body  []Operation
}

// NewForLoop creates a loop over iter.
func NewForLoop(index Value, iter *IterDomain, body ...Operation) *ForLoop {
	return &ForLoop{opBase: newOpBase(OpTypeForLoop), Index: index, Iter: iter, Body: body}
}

func (o *ForLoop) Inputs() []Value  { return appendPresent(nil, o.Iter, o.Start, o.Stop, o.Step) }
func (o *ForLoop) Outputs() []Value { return nil }

// IfThenElse runs Then when Cond holds and Else otherwise.
type IfThenElse struct {
	opBase
	Cond *Predicate
	Then []Operation
	Else []Operation
}

// NewIfThenElse creates a conditional.
func NewIfThenElse(cond *Predicate, then, els []Operation) *IfThenElse {
	return &IfThenElse{opBase: newOpBase(OpTypeIfThenElse), Cond: cond, Then: then, Else: els}
}

func (o *IfThenElse) Inputs() []Value  { return appendPresent(nil, o.Cond) }
func (o *IfThenElse) Outputs() []Value { return nil }

// GridReduction is a ReductionOp completed across thread blocks through a
// global work buffer and a semaphore buffer.
type GridReduction struct {
	opBase
	Reduction  *ReductionOp
	Buffer     *Allocate
	SyncBuffer *Allocate
}

// NewGridReduction wraps a block reduction for grid-level completion.
func NewGridReduction(red *ReductionOp, buffer, syncBuffer *Allocate) *GridReduction {
	return &GridReduction{opBase: newOpBase(OpTypeGridReduction), Reduction: red, Buffer: buffer, SyncBuffer: syncBuffer}
}

func (o *GridReduction) Inputs() []Value {
	if o.Reduction == nil {
		return nil
	}
	return o.Reduction.Inputs()
}

func (o *GridReduction) Outputs() []Value { return nil }

// GridBroadcast is a BroadcastOp across thread blocks.
type GridBroadcast struct {
	opBase
	Broadcast  *BroadcastOp
	Buffer     *Allocate
	SyncBuffer *Allocate
}

// NewGridBroadcast wraps a broadcast for grid-level distribution.
func NewGridBroadcast(bcast *BroadcastOp, buffer, syncBuffer *Allocate) *GridBroadcast {
	return &GridBroadcast{opBase: newOpBase(OpTypeGridBroadcast), Broadcast: bcast, Buffer: buffer, SyncBuffer: syncBuffer}
}

func (o *GridBroadcast) Inputs() []Value {
	if o.Broadcast == nil {
		return nil
	}
	return o.Broadcast.Inputs()
}

func (o *GridBroadcast) Outputs() []Value { return nil }

// GridWelford is a WelfordOp completed across thread blocks.
type GridWelford struct {
	opBase
	Welford    *WelfordOp
	VarBuffer  *Allocate
	AvgBuffer  *Allocate
	NBuffer    *Allocate
	SyncBuffer *Allocate
}

// NewGridWelford wraps a block Welford for grid-level completion.
func NewGridWelford(w *WelfordOp, varBuf, avgBuf, nBuf, syncBuf *Allocate) *GridWelford {
	return &GridWelford{
		opBase:  newOpBase(OpTypeGridWelford),
		Welford: w, VarBuffer: varBuf, AvgBuffer: avgBuf, NBuffer: nBuf, SyncBuffer: syncBuf,
	}
}

func (o *GridWelford) Inputs() []Value {
	if o.Welford == nil {
		return nil
	}
	return o.Welford.Inputs()
}

func (o *GridWelford) Outputs() []Value { return nil }
