package passes

import (
	"github.com/roach88/nvfuse/internal/ir"
)

// kernel is a small lowered program with one loop and one conditional.
type kernel struct {
	c      *ir.Container
	extent *ir.NamedScalar
	axis   *ir.IterDomain
	buffer *ir.TensorView
	loop   *ir.ForLoop
}

func newKernel() *kernel {
	c := ir.NewContainer()
	k := &kernel{c: c}
	k.extent = ir.Add(c, ir.NewNamedScalar("blockDim.x"))
	k.axis = ir.Add(c, ir.NewIterDomain(ir.NewInt(0), k.extent))
	k.axis.Parallel = ir.ParallelThreadX
	k.buffer = ir.Add(c, ir.NewTensorView(ir.NewTensorDomain(k.axis)))
	k.buffer.Memory = ir.MemoryShared
	size := ir.Add(c, ir.NewSymbolicInt())
	index := ir.Add(c, ir.NewSymbolicInt())
	in := ir.Add(c, ir.NewSymbolicDouble())
	out := ir.Add(c, ir.NewSymbolicDouble())
	pred := ir.Add(c, ir.NewPredicate(ir.PredicateInline, nil))

	neg := ir.Add(c, ir.NewUnaryOp(ir.UnaryNeg, out, in))
	branch := ir.Add(c, ir.NewIfThenElse(pred, []ir.Operation{neg}, []ir.Operation{ir.Add(c, ir.NewSync(false))}))
	k.loop = ir.Add(c, ir.NewForLoop(index, k.axis, branch, ir.Add(c, ir.NewSync(true))))

	c.AddTopLevel(ir.NewAllocate(k.buffer, ir.MemoryShared, size, true))
	c.AddTopLevel(ir.NewInitMagicZero())
	c.AddTopLevel(k.loop)
	c.AddTopLevel(ir.NewUpdateMagicZero())
	return k
}
