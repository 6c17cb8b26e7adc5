package transform

import (
	"github.com/Huan-Yang/dMod/eqnset"
	"github.com/Huan-Yang/dMod/params"
)

// Compose returns outer∘inner: inner runs first, its output (Jacobian
// attached when requested) feeds outer, and the chain rule composes the
// sensitivities through the attached Jacobians.
func Compose(outer, inner Transformation) Transformation {
	return &composed{outer: outer, inner: inner}
}

// Then returns next∘t, reading left to right: t runs first.
func Then(t, next Transformation) Transformation {
	return Compose(next, t)
}

type composed struct {
	outer, inner Transformation
}

func (c *composed) Call(p, fixed *params.ParamVec, wantDeriv bool) (*params.ParamVec, error) {
	mid, err := c.inner.Call(p, fixed, wantDeriv)
	if err != nil {
		return nil, err
	}
	return c.outer.Call(mid, fixed, wantDeriv)
}

// Parameters reports the innermost parameter names: the composition is
// called with the inner transformation's inputs.
func (c *composed) Parameters() []string { return c.inner.Parameters() }

// Equations returns the outer transformation's equation set.
func (c *composed) Equations() *eqnset.Set { return c.outer.Equations() }

// Condition reports the outer condition label, falling back to the inner.
func (c *composed) Condition() string {
	if cond := c.outer.Condition(); cond != "" {
		return cond
	}
	return c.inner.Condition()
}
