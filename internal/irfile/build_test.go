package irfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nvfuse/internal/ir"
	"github.com/roach88/nvfuse/internal/passes"
)

func build(t *testing.T, src string) (*ir.Container, error) {
	t.Helper()
	doc, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	return Build(doc)
}

func TestBuild_LiteralReferences(t *testing.T) {
	c, err := build(t, `
name: scale
values:
  - {name: x, type: double}
  - {name: y, type: double}
ops:
  - {op: BinaryOp, kind: mul, out: [y], in: [x, "2.5"]}
outputs: [y]
`)
	require.NoError(t, err)

	op := c.Operations()[0].(*ir.BinaryOp)
	d, ok := op.Rhs.(*ir.Double).Const()
	require.True(t, ok)
	assert.Equal(t, 2.5, d)
	assert.True(t, c.Contains(op.Rhs), "literals are registered")
	assert.Equal(t, "d1 = d0 * 2.5", passes.Sprint(op))
}

func TestBuild_Values(t *testing.T) {
	c, err := build(t, `
name: values
values:
  - {name: flag, type: bool, value: true}
  - {name: half, type: double, value: 0.5}
  - {name: n, type: int, value: 8}
  - {name: tid, type: named, label: threadIdx.x}
  - {name: r, type: iterdomain, start: "1", extent: n, reduction: true}
  - {name: dom, type: tensordomain, axes: [r]}
  - {name: tv, type: tensorview, domain: dom, memory: local}
  - {name: p, type: predicate, kind: unswitch, cond: flag}
  - {name: ti, type: tensorindex, view: tv, indices: [tid]}
`)
	require.NoError(t, err)

	vs := c.Values()
	var variants []string
	for _, v := range vs {
		variants = append(variants, ir.Variant(v))
	}
	// The literal start "1" is registered while r is being built.
	assert.Equal(t, []string{
		"Bool", "Double", "Int", "NamedScalar", "Int",
		"IterDomain", "TensorDomain", "TensorView", "Predicate", "TensorIndex",
	}, variants)

	r := vs[5].(*ir.IterDomain)
	assert.True(t, r.Reduction)
	assert.Same(t, vs[2], r.Extent)
	assert.Equal(t, ir.MemoryLocal, vs[7].(*ir.TensorView).Memory)
	assert.Equal(t, ir.PredicateUnswitch, vs[8].(*ir.Predicate).Kind)
	assert.Same(t, vs[0], vs[8].(*ir.Predicate).Cond)
}

func TestBuild_OpOperands(t *testing.T) {
	c, err := build(t, `
name: ops
values:
  - {name: n, type: int}
  - {name: a, type: iterdomain, extent: n}
  - {name: outer, type: iterdomain, extent: n}
  - {name: inner, type: iterdomain, extent: "4"}
  - {name: m, type: iterdomain, extent: n}
  - {name: in, type: tensorview, axes: [a]}
  - {name: t1, type: tensorview, axes: [a]}
  - {name: t2, type: tensorview, axes: [a]}
  - {name: avg, type: tensorview, axes: [a]}
  - {name: var, type: tensorview, axes: [a]}
  - {name: cnt, type: tensorview, axes: [a]}
ops:
  - {op: Split, out: [outer, inner], in: [a, "4"], flags: [false]}
  - {op: Merge, out: [m], in: [outer, inner]}
  - {op: ReductionOp, kind: max, out: [t1], in: [in, "0"]}
  - {op: GatherOp, out: [t2], in: [t1], ints: [3], pad: [[1, 1]]}
  - {op: WelfordOp, out: [avg, var, cnt], in: [t2, "", "1"]}
`)
	require.NoError(t, err)

	ops := c.Operations()
	require.Len(t, ops, 5)

	split := ops[0].(*ir.Split)
	assert.False(t, split.InnerSplit)
	assert.Same(t, split, split.Outer.Definition())

	red := ops[2].(*ir.ReductionOp)
	init, ok := red.Init.(*ir.Int).Const()
	require.True(t, ok)
	assert.Equal(t, int64(0), init)

	assert.Equal(t, [][2]int{{1, 1}}, ops[3].(*ir.GatherOp).Pad)
	w := ops[4].(*ir.WelfordOp)
	assert.True(t, ir.IsNil(w.InVar))
	assert.Len(t, w.Inputs(), 2)
}

func TestBuild_SplitDefaultsToInner(t *testing.T) {
	c, err := build(t, `
name: split
values:
  - {name: a, type: iterdomain, extent: "8"}
  - {name: o, type: iterdomain, extent: "2"}
  - {name: i, type: iterdomain, extent: "4"}
ops:
  - {op: Split, out: [o, i], in: [a, "4"]}
`)
	require.NoError(t, err)
	assert.True(t, c.Operations()[0].(*ir.Split).InnerSplit)
}

func TestBuild_GridOps(t *testing.T) {
	c, err := build(t, `
name: grid
kernel: true
values:
  - {name: n, type: int}
  - {name: a, type: iterdomain, extent: n, parallel: BIDx}
  - {name: in, type: tensorview, axes: [a]}
  - {name: out, type: tensorview, axes: [a]}
  - {name: work, type: tensorview, axes: [a]}
  - {name: sem, type: tensorview, axes: [a]}
ops:
  - {op: Allocate, name: work_buf, in: [work, n]}
  - {op: Allocate, name: sync_buf, in: [sem, n], zero_init: true}
  - op: GridReduction
    buffers: [work_buf, sync_buf]
    body:
      - {op: ReductionOp, kind: add, out: [out], in: [in, "0"]}
`)
	require.NoError(t, err)

	top := c.TopLevel()
	require.Len(t, top, 3)
	g := top[2].(*ir.GridReduction)
	assert.Same(t, top[0], g.Buffer)
	assert.Same(t, top[1], g.SyncBuffer)
	assert.Equal(t, ir.MemoryGlobal, g.Buffer.Memory)
	assert.True(t, c.Contains(g.Reduction))
	assert.Len(t, c.Operations(), 4)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
		path string
	}{
		{
			name: "unknown value reference",
			src:  "name: e\nvalues: [{name: x, type: int}]\nops: [{op: UnaryOp, kind: neg, out: [x], in: [q]}]\n",
			code: ErrCodeUnknownRef,
			path: "ops[0].in[0]",
		},
		{
			name: "unknown output",
			src:  "name: e\nvalues: [{name: x, type: int}]\noutputs: [y]\n",
			code: ErrCodeUnknownRef,
			path: "outputs[0]",
		},
		{
			name: "duplicate value",
			src:  "name: e\nvalues: [{name: x, type: int}, {name: x, type: int}]\n",
			code: ErrCodeBadNode,
			path: "values[1]",
		},
		{
			name: "literal value name",
			src:  "name: e\nvalues: [{name: \"3\", type: int}]\n",
			code: ErrCodeBadNode,
			path: "values[0]",
		},
		{
			name: "unknown value type",
			src:  "name: e\nvalues: [{name: x, type: half}]\n",
			code: ErrCodeUnknownType,
			path: "values[0].type",
		},
		{
			name: "unknown op tag",
			src:  "name: e\nvalues: []\nops: [{op: Convolution}]\n",
			code: ErrCodeUnknownType,
			path: "ops[0].op",
		},
		{
			name: "unknown kind",
			src:  "name: e\nvalues: [{name: x, type: int}]\nops: [{op: BinaryOp, kind: pow, out: [x], in: [x, x]}]\n",
			code: ErrCodeUnknownType,
			path: "ops[0].kind",
		},
		{
			name: "bad arity",
			src:  "name: e\nvalues: [{name: x, type: int}]\nops: [{op: BinaryOp, kind: add, out: [x], in: [x]}]\n",
			code: ErrCodeBadNode,
			path: "ops[0].in",
		},
		{
			name: "literal output",
			src:  "name: e\nvalues: [{name: x, type: int}]\nops: [{op: UnaryOp, kind: neg, out: [\"1\"], in: [x]}]\n",
			code: ErrCodeBadNode,
			path: "ops[0].out[0]",
		},
		{
			name: "wrong value variant",
			src:  "name: e\nvalues: [{name: x, type: int}, {name: tv, type: tensorview, domain: x}]\n",
			code: ErrCodeBadNode,
			path: "values[1].domain",
		},
		{
			name: "bad pad",
			src:  "name: e\nvalues: [{name: x, type: int}]\nops: [{op: GatherOp, out: [x], in: [x], ints: [3], pad: [[1]]}]\n",
			code: ErrCodeBadNode,
			path: "ops[0].pad[0]",
		},
		{
			name: "unknown buffer",
			src:  "name: e\nvalues: [{name: x, type: int}]\nops: [{op: GridReduction, buffers: [w, s], body: [{op: ReductionOp, kind: add, out: [x], in: [x, \"0\"]}]}]\n",
			code: ErrCodeUnknownRef,
			path: "ops[0].buffers[0]",
		},
		{
			name: "grid op wraps wrong op",
			src:  "name: e\nvalues: []\nops: [{op: GridBroadcast, body: [{op: Sync}]}]\n",
			code: ErrCodeBadNode,
			path: "ops[0].body[0]",
		},
		{
			name: "nested error path",
			src:  "name: e\nvalues: [{name: i, type: int}, {name: a, type: iterdomain, extent: \"4\"}]\nops: [{op: ForLoop, in: [i, a], body: [{op: Sync}, {op: Nope}]}]\n",
			code: ErrCodeUnknownType,
			path: "ops[0].body[1].op",
		},
		{
			name: "second writer of a value",
			src:  "name: e\nvalues: [{name: x, type: int}, {name: y, type: int}, {name: t, type: int}]\nops:\n  - {op: BinaryOp, kind: add, out: [t], in: [x, y]}\n  - {op: BinaryOp, kind: mul, out: [t], in: [x, y]}\n",
			code: ErrCodeBadNode,
			path: "ops[1].out[0]",
		},
		{
			name: "self cycle",
			src:  "name: e\nvalues: [{name: x, type: int}, {name: t, type: int}]\nops: [{op: BinaryOp, kind: add, out: [t], in: [t, x]}]\n",
			code: ErrCodeBadNode,
			path: "ops[0]",
		},
		{
			name: "two op cycle",
			src:  "name: e\nvalues: [{name: a, type: int}, {name: b, type: int}]\nops:\n  - {op: BinaryOp, kind: add, out: [a], in: [b, \"1\"]}\n  - {op: BinaryOp, kind: add, out: [b], in: [a, \"2\"]}\n",
			code: ErrCodeBadNode,
			path: "ops[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.src)
			le := loadErr(t, err)
			assert.Equal(t, tt.code, le.Code, le.Error())
			assert.Equal(t, tt.path, le.Path)
		})
	}
}

func TestBuild_RejectsMalformedGraphs(t *testing.T) {
	_, err := build(t, "name: e\nvalues: [{name: x, type: int}, {name: y, type: int}, {name: t, type: int}]\nops:\n"+
		"  - {op: BinaryOp, kind: add, out: [t], in: [x, y]}\n"+
		"  - {op: BinaryOp, kind: mul, out: [t], in: [x, y]}\n")
	assert.Equal(t, `value "t" already defined by ops[0]`, loadErr(t, err).Message)

	_, err = build(t, "name: e\nvalues: [{name: x, type: int}, {name: t, type: int}]\nops: [{op: BinaryOp, kind: add, out: [t], in: [t, x]}]\n")
	assert.Equal(t, "definition cycle ops[0] -> ops[0]", loadErr(t, err).Message)

	_, err = build(t, "name: e\nvalues: [{name: a, type: int}, {name: b, type: int}]\nops:\n"+
		"  - {op: BinaryOp, kind: add, out: [a], in: [b, \"1\"]}\n"+
		"  - {op: BinaryOp, kind: add, out: [b], in: [a, \"2\"]}\n")
	assert.Equal(t, "definition cycle ops[0] -> ops[1] -> ops[0]", loadErr(t, err).Message)
}
