package irfile

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/nvfuse/internal/ir"
)

var (
	unaryKinds = []ir.UnaryOpType{
		ir.UnaryNeg, ir.UnaryAbs, ir.UnaryNot, ir.UnarySet,
		ir.UnaryCast, ir.UnarySqrt, ir.UnaryExp, ir.UnaryLog,
	}
	binaryKinds = []ir.BinaryOpType{
		ir.BinaryAdd, ir.BinarySub, ir.BinaryMul, ir.BinaryDiv,
		ir.BinaryMod, ir.BinaryCeilDiv, ir.BinaryMax, ir.BinaryMin,
		ir.BinaryAnd, ir.BinaryOr, ir.BinaryEq, ir.BinaryNE,
		ir.BinaryLT, ir.BinaryLE, ir.BinaryGT, ir.BinaryGE,
	}
	ternaryKinds = []ir.TernaryOpType{
		ir.TernaryWhere, ir.TernaryClamp, ir.TernaryThreshold, ir.TernaryLerp,
	}
	parallelTypes = []ir.ParallelType{
		ir.ParallelSerial, ir.ParallelBlockX, ir.ParallelBlockY, ir.ParallelBlockZ,
		ir.ParallelThreadX, ir.ParallelThreadY, ir.ParallelThreadZ,
		ir.ParallelVectorize, ir.ParallelUnroll,
	}
	memoryTypes    = []ir.MemoryType{ir.MemoryLocal, ir.MemoryShared, ir.MemoryGlobal}
	predicateKinds = []ir.PredicateKind{
		ir.PredicateManual, ir.PredicateInline, ir.PredicateUnswitch, ir.PredicateVectorize,
		ir.PredicateShift, ir.PredicatePadding, ir.PredicateReductionWrite,
	}
)

// Build turns doc into a container. Every declared value and operation is
// registered in document order; nested operations are registered before
// the statement that contains them. For kernel documents the top-level
// ops become the container's lowered program.
func Build(doc *Document) (*ir.Container, error) {
	b := &builder{
		c:      ir.NewContainer(),
		values: make(map[string]ir.Value),
		ops:    make(map[string]ir.Operation),
		paths:  make(map[ir.Operation]string),
	}
	for i, spec := range doc.Values {
		if err := b.value(fmt.Sprintf("values[%d]", i), spec); err != nil {
			return nil, err
		}
	}
	for i, spec := range doc.Ops {
		op, err := b.op(fmt.Sprintf("ops[%d]", i), spec)
		if err != nil {
			return nil, err
		}
		if doc.Kernel {
			b.c.AddTopLevel(op)
		}
	}
	if err := b.checkCycles(); err != nil {
		return nil, err
	}
	for i, name := range doc.Outputs {
		v, err := b.ref(fmt.Sprintf("outputs[%d]", i), name)
		if err != nil {
			return nil, err
		}
		b.c.AddOutput(v)
	}
	return b.c, nil
}

type builder struct {
	c      *ir.Container
	values map[string]ir.Value
	ops    map[string]ir.Operation

	// paths locates every built op; order lists them as registered.
	paths map[ir.Operation]string
	order []ir.Operation
}

// literal parses a constant reference.
func literal(s string) (ir.Value, bool) {
	switch s {
	case "true":
		return ir.NewBool(true), true
	case "false":
		return ir.NewBool(false), true
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ir.NewInt(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ir.NewDouble(f), true
	}
	return nil, false
}

// ref resolves a value reference. Literals are registered as new constants.
func (b *builder) ref(path, name string) (ir.Value, error) {
	if name == "" {
		return nil, badNode(path, "empty reference")
	}
	if v, ok := literal(name); ok {
		return ir.Add(b.c, v), nil
	}
	v, ok := b.values[name]
	if !ok {
		return nil, &LoadError{Code: ErrCodeUnknownRef, Path: path, Message: fmt.Sprintf("unknown value %q", name)}
	}
	return v, nil
}

// optRef is ref with "" meaning absent.
func (b *builder) optRef(path, name string) (ir.Value, error) {
	if name == "" {
		return nil, nil
	}
	return b.ref(path, name)
}

// refAs resolves a reference that must be of variant T.
func refAs[T ir.Value](b *builder, path, name string) (T, error) {
	var zero T
	v, err := b.ref(path, name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		want := strings.TrimPrefix(fmt.Sprintf("%T", zero), "*ir.")
		return zero, badNode(path, "%q is a %s, want %s", name, ir.Variant(v), want)
	}
	return t, nil
}

func (b *builder) refs(path string, names []string) ([]ir.Value, error) {
	out := make([]ir.Value, 0, len(names))
	for i, name := range names {
		v, err := b.ref(fmt.Sprintf("%s[%d]", path, i), name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (b *builder) value(path string, s ValueSpec) error {
	if s.Name == "" {
		return badNode(path, "value has no name")
	}
	if _, dup := b.values[s.Name]; dup {
		return badNode(path, "duplicate value %q", s.Name)
	}
	if _, ok := literal(s.Name); ok {
		return badNode(path, "value name %q reads as a literal", s.Name)
	}

	v, err := b.newValue(path, s)
	if err != nil {
		return err
	}
	b.values[s.Name] = ir.Add(b.c, v)
	return nil
}

func (b *builder) newValue(path string, s ValueSpec) (ir.Value, error) {
	switch s.Type {
	case "bool":
		if s.Value == nil {
			return ir.NewSymbolicBool(), nil
		}
		v, ok := s.Value.(bool)
		if !ok {
			return nil, badNode(path+".value", "want a bool, got %v", s.Value)
		}
		return ir.NewBool(v), nil

	case "double":
		if s.Value == nil {
			return ir.NewSymbolicDouble(), nil
		}
		v, ok := toFloat(s.Value)
		if !ok {
			return nil, badNode(path+".value", "want a number, got %v", s.Value)
		}
		return ir.NewDouble(v), nil

	case "int":
		if s.Value == nil {
			return ir.NewSymbolicInt(), nil
		}
		v, ok := toInt(s.Value)
		if !ok {
			return nil, badNode(path+".value", "want an integer, got %v", s.Value)
		}
		return ir.NewInt(v), nil

	case "named":
		label := s.Label
		if label == "" {
			label = s.Name
		}
		return ir.NewNamedScalar(label), nil

	case "iterdomain":
		var start ir.Value
		if s.Start == "" {
			start = ir.Add(b.c, ir.NewInt(0))
		} else {
			v, err := b.ref(path+".start", s.Start)
			if err != nil {
				return nil, err
			}
			start = v
		}
		extent, err := b.ref(path+".extent", s.Extent)
		if err != nil {
			return nil, err
		}
		pt := ir.ParallelType(s.Parallel)
		if !slices.Contains(parallelTypes, pt) {
			return nil, unknownKind(path+".parallel", "parallel type", s.Parallel)
		}
		id := ir.NewIterDomain(start, extent)
		id.Parallel = pt
		id.Reduction = s.Reduction
		return id, nil

	case "tensordomain":
		axes, err := b.axes(path+".axes", s.Axes)
		if err != nil {
			return nil, err
		}
		return ir.NewTensorDomain(axes...), nil

	case "tensorview":
		var domain *ir.TensorDomain
		switch {
		case s.Domain != "":
			d, err := refAs[*ir.TensorDomain](b, path+".domain", s.Domain)
			if err != nil {
				return nil, err
			}
			domain = d
		default:
			axes, err := b.axes(path+".axes", s.Axes)
			if err != nil {
				return nil, err
			}
			domain = ir.Add(b.c, ir.NewTensorDomain(axes...))
		}
		tv := ir.NewTensorView(domain)
		if s.Memory != "" {
			mem, err := memory(path+".memory", s.Memory)
			if err != nil {
				return nil, err
			}
			tv.Memory = mem
		}
		return tv, nil

	case "predicate":
		kind := ir.PredicateKind(s.Kind)
		if s.Kind == "" {
			kind = ir.PredicateInline
		}
		if !slices.Contains(predicateKinds, kind) {
			return nil, unknownKind(path+".kind", "predicate kind", s.Kind)
		}
		var cond *ir.Bool
		if s.Cond != "" {
			c, err := refAs[*ir.Bool](b, path+".cond", s.Cond)
			if err != nil {
				return nil, err
			}
			cond = c
		}
		return ir.NewPredicate(kind, cond), nil

	case "tensorindex":
		view, err := refAs[*ir.TensorView](b, path+".view", s.View)
		if err != nil {
			return nil, err
		}
		indices, err := b.refs(path+".indices", s.Indices)
		if err != nil {
			return nil, err
		}
		return ir.NewTensorIndex(view, indices...), nil
	}
	return nil, unknownKind(path+".type", "value type", s.Type)
}

func (b *builder) axes(path string, names []string) ([]*ir.IterDomain, error) {
	axes := make([]*ir.IterDomain, 0, len(names))
	for i, name := range names {
		id, err := refAs[*ir.IterDomain](b, fmt.Sprintf("%s[%d]", path, i), name)
		if err != nil {
			return nil, err
		}
		axes = append(axes, id)
	}
	return axes, nil
}

func unknownKind(path, what, got string) *LoadError {
	return &LoadError{Code: ErrCodeUnknownType, Path: path, Message: fmt.Sprintf("unknown %s %q", what, got)}
}

func memory(path, s string) (ir.MemoryType, error) {
	m := ir.MemoryType(s)
	if !slices.Contains(memoryTypes, m) {
		return "", unknownKind(path, "memory type", s)
	}
	return m, nil
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
