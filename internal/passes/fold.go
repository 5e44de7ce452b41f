package passes

import (
	"math"

	"github.com/roach88/nvfuse/internal/ir"
)

// foldUnary evaluates kind over a constant scalar. out supplies the target
// type of a cast.
func foldUnary(kind ir.UnaryOpType, in, out ir.Value) (ir.Value, bool) {
	if ir.IsNil(in) {
		return nil, false
	}
	if kind == ir.UnaryCast {
		if ir.IsNil(out) {
			return nil, false
		}
		return cast(in, out.DataType())
	}

	switch x := in.(type) {
	case *ir.Int:
		v, ok := x.Const()
		if !ok {
			return nil, false
		}
		switch kind {
		case ir.UnaryNeg:
			return ir.NewInt(-v), true
		case ir.UnaryAbs:
			if v < 0 {
				v = -v
			}
			return ir.NewInt(v), true
		case ir.UnaryNot:
			return ir.NewInt(^v), true
		case ir.UnarySet:
			return ir.NewInt(v), true
		}
	case *ir.Double:
		v, ok := x.Const()
		if !ok {
			return nil, false
		}
		switch kind {
		case ir.UnaryNeg:
			return ir.NewDouble(-v), true
		case ir.UnaryAbs:
			return ir.NewDouble(math.Abs(v)), true
		case ir.UnarySet:
			return ir.NewDouble(v), true
		case ir.UnarySqrt:
			return ir.NewDouble(math.Sqrt(v)), true
		case ir.UnaryExp:
			return ir.NewDouble(math.Exp(v)), true
		case ir.UnaryLog:
			return ir.NewDouble(math.Log(v)), true
		}
	case *ir.Bool:
		v, ok := x.Const()
		if !ok {
			return nil, false
		}
		switch kind {
		case ir.UnaryNot:
			return ir.NewBool(!v), true
		case ir.UnarySet:
			return ir.NewBool(v), true
		}
	}
	return nil, false
}

func cast(in ir.Value, to ir.DataType) (ir.Value, bool) {
	var f float64
	switch x := in.(type) {
	case *ir.Int:
		v, ok := x.Const()
		if !ok {
			return nil, false
		}
		if to == ir.DataTypeInt {
			return ir.NewInt(v), true
		}
		f = float64(v)
	case *ir.Double:
		v, ok := x.Const()
		if !ok {
			return nil, false
		}
		f = v
	case *ir.Bool:
		v, ok := x.Const()
		if !ok {
			return nil, false
		}
		if v {
			f = 1
		}
	default:
		return nil, false
	}

	switch to {
	case ir.DataTypeBool:
		return ir.NewBool(f != 0), true
	case ir.DataTypeDouble:
		return ir.NewDouble(f), true
	case ir.DataTypeInt:
		return ir.NewInt(int64(f)), true
	}
	return nil, false
}

// foldBinary evaluates kind over two constant scalars of the same type.
// Integer division and modulo by zero are left unfolded.
func foldBinary(kind ir.BinaryOpType, lhs, rhs ir.Value) (ir.Value, bool) {
	if ir.IsNil(lhs) || ir.IsNil(rhs) {
		return nil, false
	}
	switch a := lhs.(type) {
	case *ir.Int:
		b, ok := rhs.(*ir.Int)
		if !ok {
			return nil, false
		}
		x, xok := a.Const()
		y, yok := b.Const()
		if !xok || !yok {
			return nil, false
		}
		return foldInt(kind, x, y)
	case *ir.Double:
		b, ok := rhs.(*ir.Double)
		if !ok {
			return nil, false
		}
		x, xok := a.Const()
		y, yok := b.Const()
		if !xok || !yok {
			return nil, false
		}
		return foldDouble(kind, x, y)
	case *ir.Bool:
		b, ok := rhs.(*ir.Bool)
		if !ok {
			return nil, false
		}
		x, xok := a.Const()
		y, yok := b.Const()
		if !xok || !yok {
			return nil, false
		}
		return foldBool(kind, x, y)
	}
	return nil, false
}

func foldInt(kind ir.BinaryOpType, x, y int64) (ir.Value, bool) {
	switch kind {
	case ir.BinaryAdd:
		return ir.NewInt(x + y), true
	case ir.BinarySub:
		return ir.NewInt(x - y), true
	case ir.BinaryMul:
		return ir.NewInt(x * y), true
	case ir.BinaryDiv:
		if y == 0 {
			return nil, false
		}
		return ir.NewInt(x / y), true
	case ir.BinaryMod:
		if y == 0 {
			return nil, false
		}
		return ir.NewInt(x % y), true
	case ir.BinaryCeilDiv:
		if y == 0 {
			return nil, false
		}
		q := x / y
		if x%y != 0 && (x < 0) == (y < 0) {
			q++
		}
		return ir.NewInt(q), true
	case ir.BinaryMax:
		return ir.NewInt(max(x, y)), true
	case ir.BinaryMin:
		return ir.NewInt(min(x, y)), true
	case ir.BinaryAnd:
		return ir.NewInt(x & y), true
	case ir.BinaryOr:
		return ir.NewInt(x | y), true
	}
	return compare(kind, cmpInt(x, y))
}

func foldDouble(kind ir.BinaryOpType, x, y float64) (ir.Value, bool) {
	switch kind {
	case ir.BinaryAdd:
		return ir.NewDouble(x + y), true
	case ir.BinarySub:
		return ir.NewDouble(x - y), true
	case ir.BinaryMul:
		return ir.NewDouble(x * y), true
	case ir.BinaryDiv:
		return ir.NewDouble(x / y), true
	case ir.BinaryMod:
		return ir.NewDouble(math.Mod(x, y)), true
	case ir.BinaryCeilDiv:
		return ir.NewDouble(math.Ceil(x / y)), true
	case ir.BinaryMax:
		return ir.NewDouble(math.Max(x, y)), true
	case ir.BinaryMin:
		return ir.NewDouble(math.Min(x, y)), true
	case ir.BinaryAnd, ir.BinaryOr:
		return nil, false
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return ir.NewBool(kind == ir.BinaryNE), isComparison(kind)
	}
	c := 0
	if x < y {
		c = -1
	} else if x > y {
		c = 1
	}
	return compare(kind, c)
}

func foldBool(kind ir.BinaryOpType, x, y bool) (ir.Value, bool) {
	switch kind {
	case ir.BinaryAnd:
		return ir.NewBool(x && y), true
	case ir.BinaryOr:
		return ir.NewBool(x || y), true
	case ir.BinaryEq:
		return ir.NewBool(x == y), true
	case ir.BinaryNE:
		return ir.NewBool(x != y), true
	}
	return nil, false
}

func cmpInt(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// compare turns a three-way comparison result into the Bool for kind.
func compare(kind ir.BinaryOpType, c int) (ir.Value, bool) {
	switch kind {
	case ir.BinaryEq:
		return ir.NewBool(c == 0), true
	case ir.BinaryNE:
		return ir.NewBool(c != 0), true
	case ir.BinaryLT:
		return ir.NewBool(c < 0), true
	case ir.BinaryLE:
		return ir.NewBool(c <= 0), true
	case ir.BinaryGT:
		return ir.NewBool(c > 0), true
	case ir.BinaryGE:
		return ir.NewBool(c >= 0), true
	}
	return nil, false
}

// foldTernary folds where with a constant condition to the selected
// operand, constant or not, and clamp, threshold and lerp over constants.
func foldTernary(kind ir.TernaryOpType, a, b, c ir.Value) (ir.Value, bool) {
	if kind == ir.TernaryWhere {
		cond, ok := a.(*ir.Bool)
		if !ok || cond == nil {
			return nil, false
		}
		v, ok := cond.Const()
		if !ok {
			return nil, false
		}
		if v {
			return b, !ir.IsNil(b)
		}
		return c, !ir.IsNil(c)
	}

	if ir.IsNil(a) || ir.IsNil(b) || ir.IsNil(c) {
		return nil, false
	}
	if a.DataType() != b.DataType() || a.DataType() != c.DataType() {
		return nil, false
	}
	if ai, ok := a.(*ir.Int); ok {
		bi, bok := b.(*ir.Int)
		ci, cok := c.(*ir.Int)
		if !bok || !cok {
			return nil, false
		}
		x, xok := ai.Const()
		y, yok := bi.Const()
		z, zok := ci.Const()
		if !xok || !yok || !zok {
			return nil, false
		}
		return foldTernaryInt(kind, x, y, z)
	}

	x, xok := constDouble(a)
	y, yok := constDouble(b)
	z, zok := constDouble(c)
	if !xok || !yok || !zok {
		return nil, false
	}
	var r float64
	switch kind {
	case ir.TernaryClamp:
		r = math.Min(math.Max(x, y), z)
	case ir.TernaryThreshold:
		// threshold(x, th, value) is value where x <= th, else x.
		r = x
		if x <= y {
			r = z
		}
	case ir.TernaryLerp:
		r = x + z*(y-x)
	default:
		return nil, false
	}
	return ir.NewDouble(r), true
}

// foldTernaryInt keeps integer operands exact. Lerp has no integer form.
func foldTernaryInt(kind ir.TernaryOpType, x, y, z int64) (ir.Value, bool) {
	switch kind {
	case ir.TernaryClamp:
		return ir.NewInt(min(max(x, y), z)), true
	case ir.TernaryThreshold:
		if x <= y {
			return ir.NewInt(z), true
		}
		return ir.NewInt(x), true
	}
	return nil, false
}

func constDouble(v ir.Value) (float64, bool) {
	switch x := v.(type) {
	case *ir.Int:
		if x == nil {
			return 0, false
		}
		i, ok := x.Const()
		return float64(i), ok
	case *ir.Double:
		if x == nil {
			return 0, false
		}
		return x.Const()
	}
	return 0, false
}
