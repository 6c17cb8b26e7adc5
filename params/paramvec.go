package params

import (
	"fmt"
	"strings"
)

// ParamVec is an ordered mapping from parameter name to value, optionally
// carrying a Jacobian with respect to an upstream parameterization.
type ParamVec struct {
	names  []string
	values map[string]float64
	jac    *Jacobian
}

// New builds a ParamVec from parallel name and value slices.
func New(names []string, values []float64) (*ParamVec, error) {
	if len(names) != len(values) {
		return nil, ErrLengthMismatch
	}
	p := &ParamVec{
		names:  make([]string, 0, len(names)),
		values: make(map[string]float64, len(names)),
	}
	for i, name := range names {
		if _, dup := p.values[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		p.names = append(p.names, name)
		p.values[name] = values[i]
	}

	return p, nil
}

// Len returns the number of parameters.
func (p *ParamVec) Len() int {
	if p == nil {
		return 0
	}

	return len(p.names)
}

// Names returns the parameter names in insertion order.
func (p *ParamVec) Names() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.names))
	copy(out, p.names)

	return out
}

// Get returns the value for name and whether it is present.
func (p *ParamVec) Get(name string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.values[name]

	return v, ok
}

// Has reports whether name is present.
func (p *ParamVec) Has(name string) bool {
	_, ok := p.Get(name)

	return ok
}

// Values returns the values in insertion order.
func (p *ParamVec) Values() []float64 {
	if p == nil {
		return nil
	}
	out := make([]float64, len(p.names))
	for i, name := range p.names {
		out[i] = p.values[name]
	}

	return out
}

// Env returns a fresh name→value map, the evaluator calling convention.
func (p *ParamVec) Env() map[string]float64 {
	env := make(map[string]float64, p.Len())
	if p == nil {
		return env
	}
	for name, v := range p.values {
		env[name] = v
	}

	return env
}

// Merge returns a new vector with other's entries overriding or extending
// the receiver. Order: receiver order first, then other's new names in
// other's order. The result carries no Jacobian.
func (p *ParamVec) Merge(other *ParamVec) *ParamVec {
	out := &ParamVec{
		names:  make([]string, 0, p.Len()+other.Len()),
		values: make(map[string]float64, p.Len()+other.Len()),
	}
	if p != nil {
		for _, name := range p.names {
			out.names = append(out.names, name)
			out.values[name] = p.values[name]
		}
	}
	if other != nil {
		for _, name := range other.names {
			if _, seen := out.values[name]; !seen {
				out.names = append(out.names, name)
			}
			out.values[name] = other.values[name]
		}
	}

	return out
}

// WithJacobian returns a copy of the vector carrying j.
func (p *ParamVec) WithJacobian(j *Jacobian) *ParamVec {
	out := p.clone()
	out.jac = j

	return out
}

// Jacobian returns the attached Jacobian, or nil when no upstream
// sensitivity is known.
func (p *ParamVec) Jacobian() *Jacobian {
	if p == nil {
		return nil
	}

	return p.jac
}

func (p *ParamVec) clone() *ParamVec {
	out := &ParamVec{
		names:  make([]string, len(p.names)),
		values: make(map[string]float64, len(p.values)),
		jac:    p.jac,
	}
	copy(out.names, p.names)
	for name, v := range p.values {
		out.values[name] = v
	}

	return out
}

// String renders "name=value" pairs in insertion order.
func (p *ParamVec) String() string {
	if p == nil {
		return "params()"
	}
	var b strings.Builder
	b.WriteString("params(")
	for i, name := range p.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%g", name, p.values[name])
	}
	b.WriteString(")")

	return b.String()
}
