package transform

import (
	"github.com/Huan-Yang/dMod/eqnset"
	"github.com/Huan-Yang/dMod/params"
)

// Transformation maps an outer parameter vector to an inner one.
// Implementations are Explicit, Implicit and the value returned by Compose.
type Transformation interface {
	// Call evaluates the transformation at outer. fixed, when non-nil,
	// overrides and extends outer for the evaluation but its entries are
	// excluded from the result's Jacobian columns (and, for implicit
	// transforms, from the pass-through outputs). When wantDeriv is true
	// the result carries a Jacobian, chained onto any Jacobian attached
	// to outer.
	Call(outer, fixed *params.ParamVec, wantDeriv bool) (*params.ParamVec, error)

	// Parameters reports the names the outer vector is expected to supply.
	Parameters() []string

	// Equations returns the equation set the transformation was built from.
	Equations() *eqnset.Set

	// Condition reports the condition label, or "" when unset.
	Condition() string
}

// artifactLabel derives the evaluator artifact name for one compiled piece
// of a transformation. An empty model name defers to the evaluator's
// content hash; suffix distinguishes the derivative sets of one model.
func artifactLabel(model, condition, suffix string) string {
	if model == "" {
		return ""
	}
	if condition != "" {
		model = model + "." + condition
	}
	return model + suffix
}

// nameSet builds a membership set from a name slice.
func nameSet(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}
