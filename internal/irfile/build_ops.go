package irfile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/nvfuse/internal/ir"
)

func (b *builder) op(path string, s OpSpec) (ir.Operation, error) {
	var t ir.OpType
	if err := t.UnmarshalText([]byte(s.Op)); err != nil {
		return nil, unknownKind(path+".op", "op", s.Op)
	}
	// Constructors repoint Definition, so a second writer must be caught
	// before newOp runs.
	for i, name := range s.Out {
		v, ok := b.values[name]
		if !ok || ir.IsNil(v) {
			continue
		}
		if def := v.Definition(); def != nil {
			return nil, badNode(fmt.Sprintf("%s.out[%d]", path, i), "value %q already defined by %s", name, b.paths[def])
		}
	}
	op, err := b.newOp(path, t, s)
	if err != nil {
		return nil, err
	}
	ir.Add(b.c, op)
	b.paths[op] = path
	b.order = append(b.order, op)
	if s.Name != "" {
		if _, dup := b.ops[s.Name]; dup {
			return nil, badNode(path+".name", "duplicate op %q", s.Name)
		}
		b.ops[s.Name] = op
	}
	return op, nil
}

// checkCycles rejects an op that reads, directly or through other ops, a
// value it defines.
func (b *builder) checkCycles() error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[ir.Operation]int)
	var stack []ir.Operation

	var visit func(op ir.Operation) error
	visit = func(op ir.Operation) error {
		state[op] = active
		stack = append(stack, op)
		for _, in := range op.Inputs() {
			if ir.IsNil(in) {
				continue
			}
			def := in.Definition()
			if def == nil {
				continue
			}
			switch state[def] {
			case active:
				cycle := stack[slices.Index(stack, def):]
				names := make([]string, 0, len(cycle)+1)
				for _, c := range cycle {
					names = append(names, b.paths[c])
				}
				names = append(names, b.paths[def])
				return badNode(b.paths[def], "definition cycle %s", strings.Join(names, " -> "))
			case unvisited:
				if err := visit(def); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[op] = done
		return nil
	}

	for _, op := range b.order {
		if state[op] == unvisited {
			if err := visit(op); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) block(path string, specs []OpSpec) ([]ir.Operation, error) {
	ops := make([]ir.Operation, 0, len(specs))
	for i, s := range specs {
		op, err := b.op(fmt.Sprintf("%s[%d]", path, i), s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func arity(path string, got []string, lo, hi int) error {
	if len(got) >= lo && len(got) <= hi {
		return nil
	}
	if lo == hi {
		return badNode(path, "want %d entries, got %d", lo, len(got))
	}
	return badNode(path, "want %d to %d entries, got %d", lo, hi, len(got))
}

// outs resolves output references, which must name declared values.
func (b *builder) outs(path string, names []string, n int) ([]ir.Value, error) {
	if err := arity(path, names, n, n); err != nil {
		return nil, err
	}
	for i, name := range names {
		if _, ok := literal(name); ok {
			return nil, badNode(fmt.Sprintf("%s[%d]", path, i), "output %q is a literal", name)
		}
	}
	return b.refs(path, names)
}

// ins resolves between lo and hi operand references; "" is absent.
func (b *builder) ins(path string, names []string, lo, hi int) ([]ir.Value, error) {
	if err := arity(path, names, lo, hi); err != nil {
		return nil, err
	}
	vs := make([]ir.Value, hi)
	for i, name := range names {
		v, err := b.optRef(fmt.Sprintf("%s[%d]", path, i), name)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

func (b *builder) allocate(path, name string) (*ir.Allocate, error) {
	op, ok := b.ops[name]
	if !ok {
		return nil, &LoadError{Code: ErrCodeUnknownRef, Path: path, Message: fmt.Sprintf("unknown op %q", name)}
	}
	a, ok := op.(*ir.Allocate)
	if !ok {
		return nil, badNode(path, "%q is a %s, want Allocate", name, op.OpType())
	}
	return a, nil
}

func (b *builder) buffers(path string, names []string, n int) ([]*ir.Allocate, error) {
	if err := arity(path, names, n, n); err != nil {
		return nil, err
	}
	bufs := make([]*ir.Allocate, n)
	for i, name := range names {
		a, err := b.allocate(fmt.Sprintf("%s[%d]", path, i), name)
		if err != nil {
			return nil, err
		}
		bufs[i] = a
	}
	return bufs, nil
}

// wrapped builds the single block op a grid op completes.
func wrapped[O ir.Operation](b *builder, path string, body []OpSpec) (O, error) {
	var zero O
	if len(body) != 1 {
		return zero, badNode(path, "want exactly one wrapped op, got %d", len(body))
	}
	op, err := b.op(path+"[0]", body[0])
	if err != nil {
		return zero, err
	}
	o, ok := op.(O)
	if !ok {
		return zero, badNode(path+"[0]", "cannot wrap a %s", op.OpType())
	}
	return o, nil
}

func iterDomain(path string, v ir.Value) (*ir.IterDomain, error) {
	id, ok := v.(*ir.IterDomain)
	if !ok {
		return nil, badNode(path, "want an IterDomain, got %s", ir.Variant(v))
	}
	return id, nil
}

func opKind[K ~string](path, got string, known []K) (K, error) {
	k := K(got)
	if !slices.Contains(known, k) {
		return k, unknownKind(path, "kind", got)
	}
	return k, nil
}

func (b *builder) newOp(path string, t ir.OpType, s OpSpec) (ir.Operation, error) {
	switch t {
	case ir.OpTypeUnaryOp:
		k, err := opKind(path+".kind", s.Kind, unaryKinds)
		if err != nil {
			return nil, err
		}
		out, err := b.outs(path+".out", s.Out, 1)
		if err != nil {
			return nil, err
		}
		in, err := b.ins(path+".in", s.In, 1, 1)
		if err != nil {
			return nil, err
		}
		return ir.NewUnaryOp(k, out[0], in[0]), nil

	case ir.OpTypeBinaryOp:
		k, err := opKind(path+".kind", s.Kind, binaryKinds)
		if err != nil {
			return nil, err
		}
		out, err := b.outs(path+".out", s.Out, 1)
		if err != nil {
			return nil, err
		}
		in, err := b.ins(path+".in", s.In, 2, 2)
		if err != nil {
			return nil, err
		}
		return ir.NewBinaryOp(k, out[0], in[0], in[1]), nil

	case ir.OpTypeTernaryOp:
		k, err := opKind(path+".kind", s.Kind, ternaryKinds)
		if err != nil {
			return nil, err
		}
		out, err := b.outs(path+".out", s.Out, 1)
		if err != nil {
			return nil, err
		}
		in, err := b.ins(path+".in", s.In, 3, 3)
		if err != nil {
			return nil, err
		}
		return ir.NewTernaryOp(k, out[0], in[0], in[1], in[2]), nil

	case ir.OpTypeReductionOp:
		k, err := opKind(path+".kind", s.Kind, binaryKinds)
		if err != nil {
			return nil, err
		}
		out, err := b.outs(path+".out", s.Out, 1)
		if err != nil {
			return nil, err
		}
		// in: [input, initial value]
		in, err := b.ins(path+".in", s.In, 2, 2)
		if err != nil {
			return nil, err
		}
		return ir.NewReductionOp(k, in[1], out[0], in[0]), nil

	case ir.OpTypeWelfordOp:
		out, err := b.outs(path+".out", s.Out, 3)
		if err != nil {
			return nil, err
		}
		// in: [avg, var, n]; var may be "".
		in, err := b.ins(path+".in", s.In, 3, 3)
		if err != nil {
			return nil, err
		}
		return ir.NewWelfordOp(out[0], out[1], out[2], in[0], in[1], in[2]), nil

	case ir.OpTypeBroadcastOp:
		out, in, err := b.unary(path, s)
		if err != nil {
			return nil, err
		}
		return ir.NewBroadcastOp(out, in, s.Flags), nil

	case ir.OpTypeSplit:
		out, err := b.outs(path+".out", s.Out, 2)
		if err != nil {
			return nil, err
		}
		// in: [domain, factor]
		in, err := b.ins(path+".in", s.In, 2, 2)
		if err != nil {
			return nil, err
		}
		ids := make([]*ir.IterDomain, 3)
		for i, v := range []ir.Value{out[0], out[1], in[0]} {
			if ids[i], err = iterDomain(path, v); err != nil {
				return nil, err
			}
		}
		innerSplit := true
		if len(s.Flags) > 0 {
			innerSplit = s.Flags[0]
		}
		return ir.NewSplit(ids[0], ids[1], ids[2], in[1], innerSplit), nil

	case ir.OpTypeMerge:
		out, err := b.outs(path+".out", s.Out, 1)
		if err != nil {
			return nil, err
		}
		// in: [outer, inner]
		in, err := b.ins(path+".in", s.In, 2, 2)
		if err != nil {
			return nil, err
		}
		ids := make([]*ir.IterDomain, 3)
		for i, v := range []ir.Value{out[0], in[0], in[1]} {
			if ids[i], err = iterDomain(path, v); err != nil {
				return nil, err
			}
		}
		return ir.NewMerge(ids[0], ids[1], ids[2]), nil

	case ir.OpTypeTransposeOp:
		out, in, err := b.unary(path, s)
		if err != nil {
			return nil, err
		}
		return ir.NewTransposeOp(out, in, s.Ints), nil

	case ir.OpTypeShiftOp:
		out, in, err := b.unary(path, s)
		if err != nil {
			return nil, err
		}
		return ir.NewShiftOp(out, in, s.Ints), nil

	case ir.OpTypeGatherOp:
		out, in, err := b.unary(path, s)
		if err != nil {
			return nil, err
		}
		pad := make([][2]int, len(s.Pad))
		for i, p := range s.Pad {
			if len(p) != 2 {
				return nil, badNode(fmt.Sprintf("%s.pad[%d]", path, i), "want [before, after], got %v", p)
			}
			pad[i] = [2]int{p[0], p[1]}
		}
		return ir.NewGatherOp(out, in, s.Ints, pad), nil

	case ir.OpTypeViewOp:
		out, in, err := b.unary(path, s)
		if err != nil {
			return nil, err
		}
		return ir.NewViewOp(out, in), nil

	case ir.OpTypeAllocate:
		// in: [buffer, size]
		in, err := b.ins(path+".in", s.In, 2, 2)
		if err != nil {
			return nil, err
		}
		mem := ir.MemoryGlobal
		if s.Memory != "" {
			if mem, err = memory(path+".memory", s.Memory); err != nil {
				return nil, err
			}
		}
		return ir.NewAllocate(in[0], mem, in[1], s.ZeroInit), nil

	case ir.OpTypeSync:
		return ir.NewSync(len(s.Flags) > 0 && s.Flags[0]), nil

	case ir.OpTypeInitMagicZero:
		return ir.NewInitMagicZero(), nil

	case ir.OpTypeUpdateMagicZero:
		return ir.NewUpdateMagicZero(), nil

	case ir.OpTypeForLoop:
		// in: [index, domain, start?, stop?, step?]
		in, err := b.ins(path+".in", s.In, 2, 5)
		if err != nil {
			return nil, err
		}
		iter, err := iterDomain(path+".in[1]", in[1])
		if err != nil {
			return nil, err
		}
		body, err := b.block(path+".body", s.Body)
		if err != nil {
			return nil, err
		}
		loop := ir.NewForLoop(in[0], iter, body...)
		loop.Start, loop.Stop, loop.Step = in[2], in[3], in[4]
		return loop, nil

	case ir.OpTypeIfThenElse:
		in, err := b.ins(path+".in", s.In, 1, 1)
		if err != nil {
			return nil, err
		}
		pred, ok := in[0].(*ir.Predicate)
		if !ok {
			return nil, badNode(path+".in[0]", "want a Predicate")
		}
		then, err := b.block(path+".then", s.Then)
		if err != nil {
			return nil, err
		}
		els, err := b.block(path+".else", s.Else)
		if err != nil {
			return nil, err
		}
		return ir.NewIfThenElse(pred, then, els), nil

	case ir.OpTypeGridReduction:
		red, err := wrapped[*ir.ReductionOp](b, path+".body", s.Body)
		if err != nil {
			return nil, err
		}
		bufs, err := b.buffers(path+".buffers", s.Buffers, 2)
		if err != nil {
			return nil, err
		}
		return ir.NewGridReduction(red, bufs[0], bufs[1]), nil

	case ir.OpTypeGridBroadcast:
		bcast, err := wrapped[*ir.BroadcastOp](b, path+".body", s.Body)
		if err != nil {
			return nil, err
		}
		bufs, err := b.buffers(path+".buffers", s.Buffers, 2)
		if err != nil {
			return nil, err
		}
		return ir.NewGridBroadcast(bcast, bufs[0], bufs[1]), nil

	case ir.OpTypeGridWelford:
		w, err := wrapped[*ir.WelfordOp](b, path+".body", s.Body)
		if err != nil {
			return nil, err
		}
		// buffers: [var, avg, n, sync]
		bufs, err := b.buffers(path+".buffers", s.Buffers, 4)
		if err != nil {
			return nil, err
		}
		return ir.NewGridWelford(w, bufs[0], bufs[1], bufs[2], bufs[3]), nil
	}
	return nil, unknownKind(path+".op", "op", s.Op)
}

// unary resolves the single out and single in of a data-movement op.
func (b *builder) unary(path string, s OpSpec) (ir.Value, ir.Value, error) {
	out, err := b.outs(path+".out", s.Out, 1)
	if err != nil {
		return nil, nil, err
	}
	in, err := b.ins(path+".in", s.In, 1, 1)
	if err != nil {
		return nil, nil, err
	}
	return out[0], in[0], nil
}
