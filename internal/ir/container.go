package ir

// Container owns the nodes of one fusion and names them.
//
// Values and operations are numbered independently in registration order.
// Registering the same node twice is a no-op, so builders may register
// shared operands freely.
type Container struct {
	values  []Value
	ops     []Operation
	outputs []Value
	exprs   []Operation
	members map[Node]struct{}
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{members: make(map[Node]struct{})}
}

// Add registers n with c, assigning it the next name in its category,
// and returns n unchanged for chaining.
//
// Example:
//
//	x := ir.Add(c, ir.NewSymbolicInt())
//	y := ir.Add(c, ir.NewInt(2))
//	out := ir.Add(c, ir.NewSymbolicInt())
//	ir.Add(c, ir.NewBinaryOp(ir.BinaryMul, out, x, y))
func Add[N Node](c *Container, n N) N {
	if _, ok := c.members[n]; ok {
		return n
	}
	c.members[n] = struct{}{}
	switch x := any(n).(type) {
	case Value:
		x.(namer).setName(len(c.values))
		c.values = append(c.values, x)
	case Operation:
		x.(namer).setName(len(c.ops))
		c.ops = append(c.ops, x)
	}
	return n
}

// Contains reports whether n is registered with c.
func (c *Container) Contains(n Node) bool {
	_, ok := c.members[n]
	return ok
}

// AddOutput marks v as a fusion output, registering it if needed.
func (c *Container) AddOutput(v Value) {
	Add(c, v)
	c.outputs = append(c.outputs, v)
}

// SetOutputs replaces the fusion outputs, registering any new values.
func (c *Container) SetOutputs(vs []Value) {
	c.outputs = c.outputs[:0]
	for _, v := range vs {
		c.AddOutput(v)
	}
}

// AddTopLevel appends op to the lowered program, registering it if needed.
// Only lowered kernels have top-level statements; a fusion is described by
// its outputs alone.
func (c *Container) AddTopLevel(op Operation) {
	Add(c, op)
	c.exprs = append(c.exprs, op)
}

// TopLevel returns the lowered program's statements in program order.
func (c *Container) TopLevel() []Operation {
	return c.exprs
}

// IsKernel reports whether c holds a lowered program.
func (c *Container) IsKernel() bool {
	return len(c.exprs) > 0
}

// Values returns every registered value in name order.
func (c *Container) Values() []Value {
	return c.values
}

// Operations returns every registered operation in name order.
func (c *Container) Operations() []Operation {
	return c.ops
}

// Outputs returns the fusion outputs.
func (c *Container) Outputs() []Value {
	return c.outputs
}

// Inputs returns the registered values that have no definition and are
// not constants, in name order.
func (c *Container) Inputs() []Value {
	var in []Value
	for _, v := range c.values {
		if v.Definition() == nil && !IsConstScalar(v) {
			in = append(in, v)
		}
	}
	return in
}
