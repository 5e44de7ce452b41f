package passes

import (
	"log/slog"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
)

// Result summarizes one rewrite pass over a fusion.
type Result struct {
	// Outputs are the fusion outputs after the rewrite.
	Outputs []ir.Value

	// Folded counts values replaced by a constant or a forwarded operand.
	Folded int

	// Rebuilt counts operations recreated because an operand changed.
	Rebuilt int
}

// ReplaceValues substitutes values throughout the fusion in c.
//
// Each key of subs is replaced by its value everywhere it is read. Every
// operation reading a replaced value is rebuilt with a fresh output, and
// the change propagates to its consumers and to the IterDomains, domains
// and views built from replaced extents. New nodes are registered with c
// and c's outputs are updated. Replaced nodes stay registered but
// unreachable.
func ReplaceValues(c *ir.Container, subs map[ir.Value]ir.Value) Result {
	r := &rewriter{c: c}
	for orig, repl := range subs {
		ir.Add(c, repl)
		r.RegisterMutation(orig, repl)
	}
	return r.run()
}

// Fold constant-folds scalar unary, binary and ternary operations in c and
// rebuilds the consumers of folded values. It rewrites c in place like
// ReplaceValues.
func Fold(c *ir.Container) Result {
	r := &rewriter{c: c, fold: true}
	res := r.run()
	slog.Debug("folded", "folded", res.Folded, "rebuilt", res.Rebuilt)
	return res
}

// rewriter is the shared mutator behind ReplaceValues and Fold. It visits
// operations in dependency order so operands are settled before their
// consumers.
type rewriter struct {
	dispatch.OptOutMutator
	c       *ir.Container
	fold    bool
	folded  int
	rebuilt int
}

func (r *rewriter) run() Result {
	for _, op := range TopoSort(r.c.Outputs()...) {
		dispatch.MutateOperation(r, op)
	}
	outs := make([]ir.Value, len(r.c.Outputs()))
	for i, out := range r.c.Outputs() {
		outs[i] = r.value(out)
	}
	r.c.SetOutputs(outs)
	return Result{Outputs: outs, Folded: r.folded, Rebuilt: r.rebuilt}
}

func (r *rewriter) value(v ir.Value) ir.Value {
	if ir.IsNil(v) {
		return v
	}
	return dispatch.MutateValue(r, v)
}

// operands returns the replacements of vs and whether any changed.
func (r *rewriter) operands(vs ...ir.Value) ([]ir.Value, bool) {
	out := make([]ir.Value, len(vs))
	changed := false
	for i, v := range vs {
		out[i] = r.value(v)
		if out[i] != v {
			changed = true
		}
	}
	return out, changed
}

func (r *rewriter) settled(v ir.Value) bool {
	_, ok := r.Mutation(v)
	return ok
}

// forward replaces orig by repl, a constant or an existing operand.
func (r *rewriter) forward(orig, repl ir.Value) {
	if r.settled(orig) {
		return
	}
	ir.Add(r.c, repl)
	r.RegisterMutation(orig, repl)
	r.folded++
}

// rebuild replaces old with the op build returns for a fresh copy of out.
// Outputs that cannot be copied keep old in place.
func (r *rewriter) rebuild(old ir.Operation, out ir.Value, build func(out ir.Value) ir.Operation) ir.Operation {
	if r.settled(out) {
		return old
	}
	repl, ok := fresh(out)
	if !ok {
		return old
	}
	op := build(repl)
	ir.Add(r.c, repl)
	ir.Add(r.c, op)
	r.RegisterMutation(out, repl)
	r.rebuilt++
	return op
}

// fresh returns an undefined value of the same variant as v.
func fresh(v ir.Value) (ir.Value, bool) {
	switch x := v.(type) {
	case *ir.Bool:
		return ir.NewSymbolicBool(), true
	case *ir.Double:
		return ir.NewSymbolicDouble(), true
	case *ir.Int:
		return ir.NewSymbolicInt(), true
	case *ir.TensorView:
		tv := ir.NewTensorView(x.Domain)
		tv.Memory = x.Memory
		return tv, true
	}
	return nil, false
}

// Values

func (r *rewriter) MutateIterDomain(v *ir.IterDomain) ir.Value {
	if v.Definition() != nil {
		return v
	}
	in, changed := r.operands(v.Start, v.Extent)
	if !changed {
		return v
	}
	id := ir.NewIterDomain(in[0], in[1])
	id.Parallel = v.Parallel
	id.Reduction = v.Reduction
	ir.Add(r.c, id)
	r.RegisterMutation(v, id)
	return id
}

func (r *rewriter) MutateTensorDomain(v *ir.TensorDomain) ir.Value {
	axes := make([]*ir.IterDomain, len(v.Axes))
	changed := false
	for i, axis := range v.Axes {
		axes[i] = axis
		if axis == nil {
			continue
		}
		if id, ok := r.value(axis).(*ir.IterDomain); ok && id != axis {
			axes[i] = id
			changed = true
		}
	}
	if !changed {
		return v
	}
	td := ir.Add(r.c, ir.NewTensorDomain(axes...))
	r.RegisterMutation(v, td)
	return td
}

func (r *rewriter) MutateTensorView(v *ir.TensorView) ir.Value {
	if v.Domain == nil || v.Definition() != nil {
		return v
	}
	td, ok := r.value(v.Domain).(*ir.TensorDomain)
	if !ok || td == v.Domain {
		return v
	}
	tv := ir.NewTensorView(td)
	tv.Memory = v.Memory
	ir.Add(r.c, tv)
	r.RegisterMutation(v, tv)
	return tv
}

// Operations

func (r *rewriter) MutateUnaryOp(op *ir.UnaryOp) ir.Operation {
	in, changed := r.operands(op.In)
	if r.fold {
		if v, ok := foldUnary(op.Kind, in[0], op.Out); ok {
			r.forward(op.Out, v)
			return op
		}
	}
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewUnaryOp(op.Kind, out, in[0])
	})
}

func (r *rewriter) MutateBinaryOp(op *ir.BinaryOp) ir.Operation {
	in, changed := r.operands(op.Lhs, op.Rhs)
	if r.fold {
		if v, ok := foldBinary(op.Kind, in[0], in[1]); ok {
			r.forward(op.Out, v)
			return op
		}
	}
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewBinaryOp(op.Kind, out, in[0], in[1])
	})
}

func (r *rewriter) MutateTernaryOp(op *ir.TernaryOp) ir.Operation {
	in, changed := r.operands(op.In1, op.In2, op.In3)
	if r.fold {
		if v, ok := foldTernary(op.Kind, in[0], in[1], in[2]); ok {
			r.forward(op.Out, v)
			return op
		}
	}
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewTernaryOp(op.Kind, out, in[0], in[1], in[2])
	})
}

func (r *rewriter) MutateReductionOp(op *ir.ReductionOp) ir.Operation {
	in, changed := r.operands(op.In)
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewReductionOp(op.Kind, op.Init, out, in[0])
	})
}

func (r *rewriter) MutateBroadcastOp(op *ir.BroadcastOp) ir.Operation {
	in, changed := r.operands(op.In)
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewBroadcastOp(out, in[0], op.Axes)
	})
}

func (r *rewriter) MutateTransposeOp(op *ir.TransposeOp) ir.Operation {
	in, changed := r.operands(op.In)
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewTransposeOp(out, in[0], op.Perm)
	})
}

func (r *rewriter) MutateShiftOp(op *ir.ShiftOp) ir.Operation {
	in, changed := r.operands(op.In)
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewShiftOp(out, in[0], op.Offsets)
	})
}

func (r *rewriter) MutateGatherOp(op *ir.GatherOp) ir.Operation {
	in, changed := r.operands(op.In)
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewGatherOp(out, in[0], op.Window, op.Pad)
	})
}

func (r *rewriter) MutateViewOp(op *ir.ViewOp) ir.Operation {
	in, changed := r.operands(op.In)
	if !changed {
		return op
	}
	return r.rebuild(op, op.Out, func(out ir.Value) ir.Operation {
		return ir.NewViewOp(out, in[0])
	})
}
