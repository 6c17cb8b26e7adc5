package symbolic

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Expr is an immutable expression tree node.
//
// Diff returns the partial derivative with respect to the named symbol as a
// fresh tree. Eval computes a numeric value against a name→value environment
// and returns ErrUnknownSymbol when a referenced symbol has no entry.
type Expr interface {
	Diff(name string) Expr
	Eval(env map[string]float64) (float64, error)
	String() string

	// collectSymbols appends the free symbols of the subtree into set.
	collectSymbols(set map[string]struct{})
}

// Symbols returns the sorted free-symbol universe of e.
func Symbols(e Expr) []string {
	set := make(map[string]struct{})
	e.collectSymbols(set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// IsZero reports whether e is the literal constant 0.
func IsZero(e Expr) bool {
	n, ok := e.(Num)
	return ok && n.v == 0
}

// ---------------------------------------------------------------------------
// Num — numeric constant
// ---------------------------------------------------------------------------

// Num is a floating-point constant.
type Num struct{ v float64 }

// NumOf wraps a float64 constant.
func NumOf(v float64) Num { return Num{v: v} }

// Value returns the constant value.
func (n Num) Value() float64 { return n.v }

func (n Num) Diff(string) Expr                    { return Num{} }
func (n Num) Eval(map[string]float64) (float64, error) { return n.v, nil }
func (n Num) collectSymbols(map[string]struct{})  {}

func (n Num) String() string {
	if n.v < 0 {
		return "(" + strconv.FormatFloat(n.v, 'g', -1, 64) + ")"
	}

	return strconv.FormatFloat(n.v, 'g', -1, 64)
}

// ---------------------------------------------------------------------------
// Sym — named symbol
// ---------------------------------------------------------------------------

// Sym is a named free symbol.
type Sym struct{ name string }

// SymOf creates a symbol node.
func SymOf(name string) Sym { return Sym{name: name} }

// Name returns the symbol name.
func (s Sym) Name() string { return s.name }

func (s Sym) Diff(name string) Expr {
	if s.name == name {
		return NumOf(1)
	}

	return Num{}
}

func (s Sym) Eval(env map[string]float64) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, s.name)
	}

	return v, nil
}

func (s Sym) collectSymbols(set map[string]struct{}) { set[s.name] = struct{}{} }
func (s Sym) String() string                         { return s.name }

// ---------------------------------------------------------------------------
// Add — n-ary sum
// ---------------------------------------------------------------------------

// Add is an n-ary sum of terms.
type Add struct{ terms []Expr }

// AddOf builds a sum with light folding: nested sums are flattened, numeric
// terms are accumulated, zero terms are dropped. A fully numeric sum folds
// to a single Num.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	acc := 0.0
	for _, t := range terms {
		switch v := t.(type) {
		case Add:
			for _, inner := range v.terms {
				if n, ok := inner.(Num); ok {
					acc += n.v
				} else {
					flat = append(flat, inner)
				}
			}
		case Num:
			acc += v.v
		default:
			flat = append(flat, t)
		}
	}
	if acc != 0 {
		flat = append(flat, NumOf(acc))
	}
	switch len(flat) {
	case 0:
		return Num{}
	case 1:
		return flat[0]
	}

	return Add{terms: flat}
}

// Terms returns a copy of the summands.
func (a Add) Terms() []Expr {
	out := make([]Expr, len(a.terms))
	copy(out, a.terms)

	return out
}

func (a Add) Diff(name string) Expr {
	d := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		d[i] = t.Diff(name)
	}

	return AddOf(d...)
}

func (a Add) Eval(env map[string]float64) (float64, error) {
	sum := 0.0
	for _, t := range a.terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		sum += v
	}

	return sum, nil
}

func (a Add) collectSymbols(set map[string]struct{}) {
	for _, t := range a.terms {
		t.collectSymbols(set)
	}
}

func (a Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}

	return strings.Join(parts, " + ")
}

// ---------------------------------------------------------------------------
// Mul — n-ary product
// ---------------------------------------------------------------------------

// Mul is an n-ary product of factors.
type Mul struct{ factors []Expr }

// MulOf builds a product with light folding: nested products are flattened,
// numeric factors are accumulated, unit factors are dropped, and a zero
// factor collapses the whole product to 0.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	coeff := 1.0
	for _, f := range factors {
		switch v := f.(type) {
		case Mul:
			for _, inner := range v.factors {
				if n, ok := inner.(Num); ok {
					coeff *= n.v
				} else {
					flat = append(flat, inner)
				}
			}
		case Num:
			coeff *= v.v
		default:
			flat = append(flat, f)
		}
	}
	if coeff == 0 {
		return Num{}
	}
	if coeff != 1 {
		flat = append([]Expr{NumOf(coeff)}, flat...)
	}
	switch len(flat) {
	case 0:
		return NumOf(1)
	case 1:
		return flat[0]
	}

	return Mul{factors: flat}
}

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(NumOf(-1), e) }

// Div returns a/b represented as a * b^(-1).
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, NumOf(-1))) }

// Factors returns a copy of the multiplicands.
func (m Mul) Factors() []Expr {
	out := make([]Expr, len(m.factors))
	copy(out, m.factors)

	return out
}

func (m Mul) Diff(name string) Expr {
	// Product rule: sum over i of f_i' * prod_{j != i} f_j.
	terms := make([]Expr, 0, len(m.factors))
	for i, fi := range m.factors {
		d := fi.Diff(name)
		if IsZero(d) {
			continue
		}
		rest := make([]Expr, 0, len(m.factors))
		rest = append(rest, d)
		for j, fj := range m.factors {
			if j != i {
				rest = append(rest, fj)
			}
		}
		terms = append(terms, MulOf(rest...))
	}

	return AddOf(terms...)
}

func (m Mul) Eval(env map[string]float64) (float64, error) {
	prod := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		prod *= v
	}

	return prod, nil
}

func (m Mul) collectSymbols(set map[string]struct{}) {
	for _, f := range m.factors {
		f.collectSymbols(set)
	}
}

func (m Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}

	return strings.Join(parts, "*")
}

// ---------------------------------------------------------------------------
// Pow — exponentiation
// ---------------------------------------------------------------------------

// Pow is base^exp.
type Pow struct{ base, exp Expr }

// PowOf builds an exponentiation with light folding: x^0 → 1, x^1 → x, and
// a fully numeric power folds to a constant.
func PowOf(base, exp Expr) Expr {
	if en, ok := exp.(Num); ok {
		if en.v == 0 {
			return NumOf(1)
		}
		if en.v == 1 {
			return base
		}
		if bn, ok := base.(Num); ok {
			return NumOf(math.Pow(bn.v, en.v))
		}
	}

	return Pow{base: base, exp: exp}
}

// Base returns the base subtree.
func (p Pow) Base() Expr { return p.base }

// Exp returns the exponent subtree.
func (p Pow) Exp() Expr { return p.exp }

func (p Pow) Diff(name string) Expr {
	db := p.base.Diff(name)
	de := p.exp.Diff(name)

	// Common case: constant exponent. d(u^c) = c*u^(c-1)*u'.
	if IsZero(de) {
		if IsZero(db) {
			return Num{}
		}
		if c, ok := p.exp.(Num); ok {
			return MulOf(NumOf(c.v), PowOf(p.base, NumOf(c.v-1)), db)
		}

		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, NumOf(-1))), db)
	}

	// General case: d(u^v) = u^v * (v'*log(u) + v*u'/u).
	inner := AddOf(
		MulOf(de, mustCall("log", p.base)),
		MulOf(p.exp, db, PowOf(p.base, NumOf(-1))),
	)

	return MulOf(PowOf(p.base, p.exp), inner)
}

func (p Pow) Eval(env map[string]float64) (float64, error) {
	b, err := p.base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.Eval(env)
	if err != nil {
		return 0, err
	}

	return math.Pow(b, e), nil
}

func (p Pow) collectSymbols(set map[string]struct{}) {
	p.base.collectSymbols(set)
	p.exp.collectSymbols(set)
}

func (p Pow) String() string {
	b := p.base.String()
	switch p.base.(type) {
	case Add, Mul, Pow:
		b = "(" + b + ")"
	}
	e := p.exp.String()
	switch p.exp.(type) {
	case Add, Mul, Pow:
		e = "(" + e + ")"
	}

	return b + "^" + e
}
