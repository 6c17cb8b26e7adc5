package eqnset

import (
	"fmt"
	"sort"

	"github.com/Huan-Yang/dMod/symbolic"
)

// Def is one ordered equation definition in wire form.
type Def struct {
	Name string
	Expr string
}

// Set is an ordered, immutable mapping from output name to expression.
// Names are unique; insertion order is preserved and drives the column
// order of every evaluator compiled from the set.
type Set struct {
	names []string
	exprs map[string]symbolic.Expr
	srcs  map[string]string
}

// New builds a Set from ordered definitions. Duplicate or empty output
// names and malformed expressions are construction errors.
func New(defs ...Def) (*Set, error) {
	s := &Set{
		names: make([]string, 0, len(defs)),
		exprs: make(map[string]symbolic.Expr, len(defs)),
		srcs:  make(map[string]string, len(defs)),
	}
	for _, d := range defs {
		e, err := symbolic.Parse(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("eqnset: equation %q: %w", d.Name, err)
		}
		if err := s.append(d.Name, e, d.Expr); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// append adds one parsed equation, enforcing name uniqueness.
func (s *Set) append(name string, e symbolic.Expr, src string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, dup := s.exprs[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	s.names = append(s.names, name)
	s.exprs[name] = e
	s.srcs[name] = src

	return nil
}

// Len returns the number of equations.
func (s *Set) Len() int { return len(s.names) }

// Names returns the output names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)

	return out
}

// Expr returns the parsed expression for an output name.
func (s *Set) Expr(name string) (symbolic.Expr, bool) {
	e, ok := s.exprs[name]

	return e, ok
}

// Source returns the wire-form expression string for an output name.
func (s *Set) Source(name string) (string, bool) {
	src, ok := s.srcs[name]

	return src, ok
}

// Has reports whether name is an output of the set.
func (s *Set) Has(name string) bool {
	_, ok := s.exprs[name]

	return ok
}

// Symbols returns the sorted union of free symbols referenced by all
// equations — the symbol universe of the set.
func (s *Set) Symbols() []string {
	set := make(map[string]struct{})
	for _, name := range s.names {
		for _, sym := range symbolic.Symbols(s.exprs[name]) {
			set[sym] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for sym := range set {
		out = append(out, sym)
	}
	sort.Strings(out)

	return out
}

// Subset returns a new Set holding only the named equations, in the order
// given. Unknown names are an error.
func (s *Set) Subset(names []string) (*Set, error) {
	sub := &Set{
		names: make([]string, 0, len(names)),
		exprs: make(map[string]symbolic.Expr, len(names)),
		srcs:  make(map[string]string, len(names)),
	}
	for _, name := range names {
		e, ok := s.exprs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		if err := sub.append(name, e, s.srcs[name]); err != nil {
			return nil, err
		}
	}

	return sub, nil
}

// WithIdentities returns a new Set extended with an identity equation
// (name maps to itself) for every parameter the set does not already
// define. Declared parameters that are outputs stay untouched; a duplicate
// in params is a construction error, mirroring the uniqueness invariant.
func (s *Set) WithIdentities(params []string) (*Set, error) {
	out := &Set{
		names: make([]string, 0, len(s.names)+len(params)),
		exprs: make(map[string]symbolic.Expr, len(s.names)+len(params)),
		srcs:  make(map[string]string, len(s.names)+len(params)),
	}
	for _, name := range s.names {
		if err := out.append(name, s.exprs[name], s.srcs[name]); err != nil {
			return nil, err
		}
	}
	for _, p := range params {
		if s.Has(p) {
			continue
		}
		if err := out.append(p, symbolic.SymOf(p), p); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// DerivName is the output name of the derivative of out with respect to v
// in a Jacobian set.
func DerivName(out, v string) string { return out + "." + v }

// Jacobian returns the derivative equation set of s with respect to vars:
// one equation per (output, variable) pair, named DerivName(out, v), in
// row-major order (outputs outermost). Zero partials are kept as the
// literal 0 so the flat result of an evaluator scatters positionally.
func (s *Set) Jacobian(vars []string) (*Set, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySet
	}
	jac := &Set{
		names: make([]string, 0, len(s.names)*len(vars)),
		exprs: make(map[string]symbolic.Expr, len(s.names)*len(vars)),
		srcs:  make(map[string]string, len(s.names)*len(vars)),
	}
	for _, out := range s.names {
		e := s.exprs[out]
		for _, v := range vars {
			d := e.Diff(v)
			if err := jac.append(DerivName(out, v), d, d.String()); err != nil {
				return nil, err
			}
		}
	}

	return jac, nil
}
