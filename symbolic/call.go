package symbolic

import (
	"fmt"
	"math"
	"sort"
)

// Call is an application of one elementary function to one argument.
type Call struct {
	fn  string
	arg Expr
}

// funcTable is the fixed elementary-function vocabulary.
var funcTable = map[string]func(float64) float64{
	"exp":   math.Exp,
	"log":   math.Log,
	"log10": math.Log10,
	"sqrt":  math.Sqrt,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"abs":   math.Abs,
	"sign":  func(x float64) float64 { return signOf(x) },
}

func signOf(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// derivTable maps a function name to the derivative of fn(u) with respect
// to u. The chain-rule factor u' is applied by Call.Diff.
var derivTable = map[string]func(u Expr) Expr{
	"exp":   func(u Expr) Expr { return mustCall("exp", u) },
	"log":   func(u Expr) Expr { return PowOf(u, NumOf(-1)) },
	"log10": func(u Expr) Expr { return MulOf(NumOf(1/math.Ln10), PowOf(u, NumOf(-1))) },
	"sqrt":  func(u Expr) Expr { return MulOf(NumOf(0.5), PowOf(u, NumOf(-0.5))) },
	"sin":   func(u Expr) Expr { return mustCall("cos", u) },
	"cos":   func(u Expr) Expr { return Neg(mustCall("sin", u)) },
	"tan":   func(u Expr) Expr { return PowOf(mustCall("cos", u), NumOf(-2)) },
	"asin": func(u Expr) Expr {
		return PowOf(AddOf(NumOf(1), Neg(PowOf(u, NumOf(2)))), NumOf(-0.5))
	},
	"acos": func(u Expr) Expr {
		return Neg(PowOf(AddOf(NumOf(1), Neg(PowOf(u, NumOf(2)))), NumOf(-0.5)))
	},
	"atan": func(u Expr) Expr { return PowOf(AddOf(NumOf(1), PowOf(u, NumOf(2))), NumOf(-1)) },
	"sinh": func(u Expr) Expr { return mustCall("cosh", u) },
	"cosh": func(u Expr) Expr { return mustCall("sinh", u) },
	"tanh": func(u Expr) Expr { return AddOf(NumOf(1), Neg(PowOf(mustCall("tanh", u), NumOf(2)))) },
	"abs":  func(u Expr) Expr { return mustCall("sign", u) },
	"sign": func(Expr) Expr { return Num{} },
}

// CallOf applies a named elementary function to arg. Returns
// ErrUnknownFunction for names outside the vocabulary. A numeric argument
// folds to a constant immediately.
func CallOf(fn string, arg Expr) (Expr, error) {
	f, ok := funcTable[fn]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, fn)
	}
	if n, ok := arg.(Num); ok {
		return NumOf(f(n.v)), nil
	}

	return Call{fn: fn, arg: arg}, nil
}

// mustCall is CallOf for vocabulary names known at compile time.
func mustCall(fn string, arg Expr) Expr {
	e, err := CallOf(fn, arg)
	if err != nil {
		panic(err)
	}

	return e
}

// FuncNames returns the sorted elementary-function vocabulary.
func FuncNames() []string {
	names := make([]string, 0, len(funcTable))
	for name := range funcTable {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// FuncOf returns the numeric implementation of a vocabulary function, or
// nil for unknown names. Intended for evaluator backends.
func FuncOf(name string) func(float64) float64 { return funcTable[name] }

// Fn returns the function name.
func (c Call) Fn() string { return c.fn }

// Arg returns the argument subtree.
func (c Call) Arg() Expr { return c.arg }

func (c Call) Diff(name string) Expr {
	da := c.arg.Diff(name)
	if IsZero(da) {
		return Num{}
	}

	return MulOf(derivTable[c.fn](c.arg), da)
}

func (c Call) Eval(env map[string]float64) (float64, error) {
	v, err := c.arg.Eval(env)
	if err != nil {
		return 0, err
	}

	return funcTable[c.fn](v), nil
}

func (c Call) collectSymbols(set map[string]struct{}) { c.arg.collectSymbols(set) }

func (c Call) String() string { return c.fn + "(" + c.arg.String() + ")" }
