package passes

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
)

// Printer renders IR as text, one statement per line.
//
// Printer implements every ConstHandler method itself, so adding a variant
// to the IR breaks its build until the variant has a rendering. Values
// render inline; operations render as full lines with nested bodies
// indented by two spaces.
type Printer struct {
	w      io.Writer
	line   strings.Builder
	indent int
	err    error
}

var _ dispatch.ConstHandler = (*Printer)(nil)

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

// Statement prints n on its own line.
func (p *Printer) Statement(n ir.Node) {
	if v, ok := n.(ir.Value); ok {
		p.value(v)
		p.flush()
		return
	}
	dispatch.Visit(p, n)
}

// Container prints a kernel's top-level statements, or a fusion framed by
// its inputs and outputs with operations in dependency order.
func (p *Printer) Container(c *ir.Container) error {
	if c.IsKernel() {
		for _, op := range c.TopLevel() {
			dispatch.VisitOperation(p, op)
		}
		return p.err
	}

	p.list("inputs", FusionInputs(c.Outputs()...))
	for _, op := range TopoSort(c.Outputs()...) {
		dispatch.VisitOperation(p, op)
	}
	p.list("outputs", c.Outputs())
	return p.err
}

// Sprint renders a single node without a trailing newline.
func Sprint(n ir.Node) string {
	var sb strings.Builder
	p := NewPrinter(&sb)
	p.Statement(n)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (p *Printer) list(label string, vs []ir.Value) {
	p.str(label + ":")
	for i, v := range vs {
		if i > 0 {
			p.str(",")
		}
		p.str(" ")
		p.value(v)
	}
	p.flush()
}

func (p *Printer) str(s string) {
	p.line.WriteString(s)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(&p.line, format, args...)
}

func (p *Printer) value(v ir.Value) {
	if ir.IsNil(v) {
		p.str("none")
		return
	}
	dispatch.VisitValue(p, v)
}

func (p *Printer) values(vs []ir.Value) {
	for i, v := range vs {
		if i > 0 {
			p.str(", ")
		}
		p.value(v)
	}
}

// flush writes the pending line at the current indentation.
func (p *Printer) flush() {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), p.line.String())
	}
	p.line.Reset()
}

func (p *Printer) block(ops []ir.Operation) {
	p.indent++
	for _, op := range ops {
		dispatch.VisitOperation(p, op)
	}
	p.indent--
}

func (p *Printer) buffer(a *ir.Allocate) {
	if a == nil {
		p.str("none")
		return
	}
	p.value(a.Buffer)
}

func id(n int) string {
	if n < 0 {
		return "?"
	}
	return strconv.Itoa(n)
}

func formatDouble(d float64) string {
	s := strconv.FormatFloat(d, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnI") {
		s += ".0"
	}
	return s
}

func ints(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func bools(xs []bool) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatBool(x)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func memoryTag(m ir.MemoryType) string {
	switch m {
	case ir.MemoryLocal:
		return "l"
	case ir.MemoryShared:
		return "s"
	}
	return "g"
}

var infix = map[ir.BinaryOpType]string{
	ir.BinaryAdd: "+",
	ir.BinarySub: "-",
	ir.BinaryMul: "*",
	ir.BinaryDiv: "/",
	ir.BinaryMod: "%",
	ir.BinaryAnd: "&&",
	ir.BinaryOr:  "||",
	ir.BinaryEq:  "==",
	ir.BinaryNE:  "!=",
	ir.BinaryLT:  "<",
	ir.BinaryLE:  "<=",
	ir.BinaryGT:  ">",
	ir.BinaryGE:  ">=",
}

// Values

func (p *Printer) VisitBool(v *ir.Bool) {
	if b, ok := v.Const(); ok {
		p.str(strconv.FormatBool(b))
		return
	}
	p.str("b" + id(v.Name()))
}

func (p *Printer) VisitDouble(v *ir.Double) {
	if d, ok := v.Const(); ok {
		p.str(formatDouble(d))
		return
	}
	p.str("d" + id(v.Name()))
}

func (p *Printer) VisitInt(v *ir.Int) {
	if i, ok := v.Const(); ok {
		p.str(strconv.FormatInt(i, 10))
		return
	}
	p.str("i" + id(v.Name()))
}

func (p *Printer) VisitNamedScalar(v *ir.NamedScalar) {
	p.str(v.Label)
}

// VisitIterDomain renders e.g. iS0{i3}, rS1{8} or iTIDx2{128}.
func (p *Printer) VisitIterDomain(v *ir.IterDomain) {
	if v.Reduction {
		p.str("r")
	} else {
		p.str("i")
	}
	if v.Parallel == ir.ParallelSerial {
		p.str("S")
	} else {
		p.str(string(v.Parallel))
	}
	p.str(id(v.Name()) + "{")
	p.value(v.Extent)
	p.str("}")
}

func (p *Printer) VisitTensorDomain(v *ir.TensorDomain) {
	p.str("[ ")
	for i, axis := range v.Axes {
		if i > 0 {
			p.str(", ")
		}
		p.value(axis)
	}
	p.str(" ]")
}

func (p *Printer) VisitTensorView(v *ir.TensorView) {
	p.printf("T%s_%s", id(v.Name()), memoryTag(v.Memory))
	if v.Domain != nil {
		p.value(v.Domain)
	}
}

func (p *Printer) VisitPredicate(v *ir.Predicate) {
	if v.Cond != nil {
		p.value(v.Cond)
		return
	}
	p.printf("pred(%s)", v.Kind)
}

func (p *Printer) VisitTensorIndex(v *ir.TensorIndex) {
	if v.View != nil {
		p.str("T" + id(v.View.Name()))
	} else {
		p.str("T?")
	}
	p.str("[ ")
	p.values(v.Indices)
	p.str(" ]")
}

// Fusion operations

func (p *Printer) VisitUnaryOp(op *ir.UnaryOp) {
	p.value(op.Out)
	p.printf(" = %s(", op.Kind)
	p.value(op.In)
	p.str(")")
	p.flush()
}

func (p *Printer) VisitBinaryOp(op *ir.BinaryOp) {
	p.value(op.Out)
	p.str(" = ")
	if sym, ok := infix[op.Kind]; ok {
		p.value(op.Lhs)
		p.str(" " + sym + " ")
		p.value(op.Rhs)
	} else {
		p.printf("%s(", op.Kind)
		p.values([]ir.Value{op.Lhs, op.Rhs})
		p.str(")")
	}
	p.flush()
}

func (p *Printer) VisitTernaryOp(op *ir.TernaryOp) {
	p.value(op.Out)
	p.printf(" = %s(", op.Kind)
	p.values([]ir.Value{op.In1, op.In2, op.In3})
	p.str(")")
	p.flush()
}

func (p *Printer) VisitReductionOp(op *ir.ReductionOp) {
	p.value(op.Out)
	p.str(" = reduction( ")
	p.value(op.In)
	p.printf(", op = %s, initial value = ", op.Kind)
	p.value(op.Init)
	p.str(" )")
	p.flush()
}

func (p *Printer) VisitWelfordOp(op *ir.WelfordOp) {
	p.values([]ir.Value{op.OutAvg, op.OutVar, op.OutN})
	p.str(" = welford( ")
	p.values([]ir.Value{op.InAvg, op.InVar, op.InN})
	p.str(" )")
	p.flush()
}

func (p *Printer) VisitBroadcastOp(op *ir.BroadcastOp) {
	p.value(op.Out)
	p.str(" = broadcast( ")
	p.value(op.In)
	p.printf(", flags = %s )", bools(op.Axes))
	p.flush()
}

func (p *Printer) VisitSplit(op *ir.Split) {
	p.str("Split: ")
	p.value(op.In)
	p.str(" by factor ")
	p.value(op.Factor)
	p.str(" -> ")
	p.values([]ir.Value{op.Outer, op.Inner})
	if !op.InnerSplit {
		p.str(", outer split")
	}
	p.flush()
}

func (p *Printer) VisitMerge(op *ir.Merge) {
	p.str("Merge: ")
	p.value(op.Outer)
	p.str(" and ")
	p.value(op.Inner)
	p.str(" -> ")
	p.value(op.Out)
	p.flush()
}

func (p *Printer) VisitTransposeOp(op *ir.TransposeOp) {
	p.value(op.Out)
	p.str(" = transpose( ")
	p.value(op.In)
	p.printf(", perm = %s )", ints(op.Perm))
	p.flush()
}

func (p *Printer) VisitShiftOp(op *ir.ShiftOp) {
	p.value(op.Out)
	p.str(" = shift( ")
	p.value(op.In)
	p.printf(", offsets = %s )", ints(op.Offsets))
	p.flush()
}

func (p *Printer) VisitGatherOp(op *ir.GatherOp) {
	p.value(op.Out)
	p.str(" = gather( ")
	p.value(op.In)
	pads := make([]string, len(op.Pad))
	for i, pad := range op.Pad {
		pads[i] = ints(pad[:])
	}
	p.printf(", window = %s, pad = {%s} )", ints(op.Window), strings.Join(pads, ", "))
	p.flush()
}

func (p *Printer) VisitViewOp(op *ir.ViewOp) {
	p.value(op.Out)
	p.str(" = view( ")
	p.value(op.In)
	p.str(" )")
	p.flush()
}

// Kernel operations

func (p *Printer) VisitAllocate(op *ir.Allocate) {
	p.value(op.Buffer)
	p.printf(" = ALLOCATE(mem_type = %s, size = ", op.Memory)
	p.value(op.Size)
	p.printf(", zero_init = %t)", op.ZeroInit)
	p.flush()
}

func (p *Printer) VisitSync(op *ir.Sync) {
	p.printf("SYNC(war_hazard = %t)", op.WARHazard)
	p.flush()
}

func (p *Printer) VisitInitMagicZero(*ir.InitMagicZero) {
	p.str("NVFUSER_DEFINE_MAGIC_ZERO")
	p.flush()
}

func (p *Printer) VisitUpdateMagicZero(*ir.UpdateMagicZero) {
	p.str("NVFUSER_UPDATE_MAGIC_ZERO")
	p.flush()
}

func (p *Printer) VisitForLoop(op *ir.ForLoop) {
	p.str("FOR ")
	p.value(op.Index)
	p.str(" in ")
	p.value(op.Iter)
	p.str(":")
	p.flush()
	p.block(op.Body)
}

func (p *Printer) VisitIfThenElse(op *ir.IfThenElse) {
	p.str("IF ")
	p.value(op.Cond)
	p.str(":")
	p.flush()
	p.block(op.Then)
	if len(op.Else) > 0 {
		p.str("ELSE:")
		p.flush()
		p.block(op.Else)
	}
}

func (p *Printer) VisitGridReduction(op *ir.GridReduction) {
	p.str("GRID_REDUCTION(work = ")
	p.buffer(op.Buffer)
	p.str(", sync = ")
	p.buffer(op.SyncBuffer)
	p.str("):")
	p.flush()
	if op.Reduction != nil {
		p.block([]ir.Operation{op.Reduction})
	}
}

func (p *Printer) VisitGridBroadcast(op *ir.GridBroadcast) {
	p.str("GRID_BROADCAST(work = ")
	p.buffer(op.Buffer)
	p.str(", sync = ")
	p.buffer(op.SyncBuffer)
	p.str("):")
	p.flush()
	if op.Broadcast != nil {
		p.block([]ir.Operation{op.Broadcast})
	}
}

func (p *Printer) VisitGridWelford(op *ir.GridWelford) {
	p.str("GRID_WELFORD(var = ")
	p.buffer(op.VarBuffer)
	p.str(", avg = ")
	p.buffer(op.AvgBuffer)
	p.str(", n = ")
	p.buffer(op.NBuffer)
	p.str(", sync = ")
	p.buffer(op.SyncBuffer)
	p.str("):")
	p.flush()
	if op.Welford != nil {
		p.block([]ir.Operation{op.Welford})
	}
}
