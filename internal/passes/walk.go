package passes

import (
	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
)

// Walk visits the graph reachable from outputs through h, pre-order.
//
// Each operation is visited once and then its inputs. An input with a
// definition is reached through its defining operation; leaves (inputs
// and constants) are visited as values. No node is visited twice, and the
// outputs themselves are reached only through their definitions.
func Walk(h dispatch.ConstHandler, outputs ...ir.Value) {
	w := newWalker(h)
	for _, out := range outputs {
		w.value(out)
	}
}

// WalkOperations visits ops and everything they read, descending into
// loop and conditional bodies and into the block op wrapped by a grid op.
func WalkOperations(h dispatch.ConstHandler, ops ...ir.Operation) {
	w := newWalker(h)
	for _, op := range ops {
		w.op(op)
	}
}

// WalkContainer walks a kernel's top-level statements, or a fusion's
// outputs when c has none.
func WalkContainer(h dispatch.ConstHandler, c *ir.Container) {
	if c.IsKernel() {
		WalkOperations(h, c.TopLevel()...)
		return
	}
	Walk(h, c.Outputs()...)
}

// FusionInputs returns the non-constant leaves reachable from outputs, in
// walk order.
func FusionInputs(outputs ...ir.Value) []ir.Value {
	var in []ir.Value
	Walk(dispatch.OptOutConstDispatch{Unhandled: func(n ir.Node) {
		if v, ok := n.(ir.Value); ok && !ir.IsConstScalar(v) {
			in = append(in, v)
		}
	}}, outputs...)
	return in
}

type walker struct {
	h      dispatch.ConstHandler
	ops    map[ir.Operation]bool
	values map[ir.Value]bool
}

func newWalker(h dispatch.ConstHandler) *walker {
	return &walker{
		h:      h,
		ops:    make(map[ir.Operation]bool),
		values: make(map[ir.Value]bool),
	}
}

func (w *walker) value(v ir.Value) {
	if ir.IsNil(v) {
		return
	}
	if def := v.Definition(); def != nil {
		w.op(def)
		return
	}
	if w.values[v] {
		return
	}
	w.values[v] = true
	dispatch.VisitValue(w.h, v)
}

func (w *walker) op(op ir.Operation) {
	if w.ops[op] {
		return
	}
	w.ops[op] = true
	dispatch.VisitOperation(w.h, op)
	for _, in := range op.Inputs() {
		w.value(in)
	}
	for _, nested := range Nested(op) {
		w.op(nested)
	}
}

// Nested returns the statements op contains: a loop's body, both branches
// of a conditional, or the block op a grid op completes.
func Nested(op ir.Operation) []ir.Operation {
	var n nested
	dispatch.VisitOperation(&n, op)
	return n.ops
}

type nested struct {
	dispatch.OptOutConstDispatch
	ops []ir.Operation
}

func (n *nested) VisitForLoop(op *ir.ForLoop) {
	n.ops = append(n.ops, op.Body...)
}

func (n *nested) VisitIfThenElse(op *ir.IfThenElse) {
	n.ops = append(n.ops, op.Then...)
	n.ops = append(n.ops, op.Else...)
}

func (n *nested) VisitGridReduction(op *ir.GridReduction) {
	if op.Reduction != nil {
		n.ops = append(n.ops, op.Reduction)
	}
}

func (n *nested) VisitGridBroadcast(op *ir.GridBroadcast) {
	if op.Broadcast != nil {
		n.ops = append(n.ops, op.Broadcast)
	}
}

func (n *nested) VisitGridWelford(op *ir.GridWelford) {
	if op.Welford != nil {
		n.ops = append(n.ops, op.Welford)
	}
}

// TopoSort returns the operations that produce outputs, producers before
// consumers.
func TopoSort(outputs ...ir.Value) []ir.Operation {
	t := topo{seen: make(map[ir.Operation]bool)}
	for _, out := range outputs {
		if ir.IsNil(out) {
			continue
		}
		if def := out.Definition(); def != nil {
			t.visit(def)
		}
	}
	return t.order
}

type topo struct {
	seen  map[ir.Operation]bool
	order []ir.Operation
}

func (t *topo) visit(op ir.Operation) {
	if t.seen[op] {
		return
	}
	t.seen[op] = true
	for _, in := range op.Inputs() {
		if def := in.Definition(); def != nil {
			t.visit(def)
		}
	}
	t.order = append(t.order, op)
}
