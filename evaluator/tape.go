package evaluator

import (
	"fmt"
	"math"

	"github.com/Huan-Yang/dMod/symbolic"
)

// opcode selects one stack operation of the compiled tape.
type opcode uint8

const (
	opConst opcode = iota // push instr.val
	opLoad                // push env[instr.sym]
	opAdd                 // fold top instr.n values by +
	opMul                 // fold top instr.n values by *
	opPow                 // pop exp, pop base, push base^exp
	opCall                // apply instr.fn to the top value
)

type instr struct {
	op  opcode
	n   int
	val float64
	sym string
	fn  func(float64) float64
}

// tape is a postfix program equivalent to one expression tree.
type tape struct {
	prog  []instr
	depth int // maximum stack depth, fixed at flatten time
}

// flatten compiles a tree into postfix form. The stack depth bound is
// computed alongside so run never reallocates.
func flatten(e symbolic.Expr) tape {
	var t tape
	t.depth = emit(&t.prog, e)

	return t
}

// emit appends the postfix program of e and returns its stack-depth bound.
func emit(prog *[]instr, e symbolic.Expr) int {
	switch v := e.(type) {
	case symbolic.Num:
		*prog = append(*prog, instr{op: opConst, val: v.Value()})

		return 1

	case symbolic.Sym:
		*prog = append(*prog, instr{op: opLoad, sym: v.Name()})

		return 1

	case symbolic.Add:
		return emitNary(prog, terms(v), opAdd)

	case symbolic.Mul:
		return emitNary(prog, factors(v), opMul)

	case symbolic.Pow:
		db := emit(prog, v.Base())
		de := emit(prog, v.Exp())
		*prog = append(*prog, instr{op: opPow})

		return maxInt(db, 1+de)

	case symbolic.Call:
		d := emit(prog, v.Arg())
		*prog = append(*prog, instr{op: opCall, fn: symbolic.FuncOf(v.Fn())})

		return d
	}

	panic(fmt.Sprintf("evaluator: unknown node %T", e))
}

func emitNary(prog *[]instr, children []symbolic.Expr, op opcode) int {
	depth := 0
	for i, c := range children {
		d := emit(prog, c)
		if i+d > depth {
			depth = i + d
		}
	}
	*prog = append(*prog, instr{op: op, n: len(children)})

	return depth
}

// run executes the program against env.
func (t tape) run(env map[string]float64) (float64, error) {
	stack := make([]float64, 0, t.depth)
	for _, in := range t.prog {
		switch in.op {
		case opConst:
			stack = append(stack, in.val)
		case opLoad:
			v, ok := env[in.sym]
			if !ok {
				return 0, fmt.Errorf("%w: %q", symbolic.ErrUnknownSymbol, in.sym)
			}
			stack = append(stack, v)
		case opAdd:
			base := len(stack) - in.n
			acc := 0.0
			for _, v := range stack[base:] {
				acc += v
			}
			stack = append(stack[:base], acc)
		case opMul:
			base := len(stack) - in.n
			acc := 1.0
			for _, v := range stack[base:] {
				acc *= v
			}
			stack = append(stack[:base], acc)
		case opPow:
			exp := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = math.Pow(stack[len(stack)-1], exp)
		case opCall:
			stack[len(stack)-1] = in.fn(stack[len(stack)-1])
		}
	}

	return stack[0], nil
}

// terms and factors unpack n-ary nodes via the symbolic accessors.
func terms(a symbolic.Add) []symbolic.Expr   { return a.Terms() }
func factors(m symbolic.Mul) []symbolic.Expr { return m.Factors() }

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
