package transform

import (
	"fmt"
	"log/slog"

	"github.com/Huan-Yang/dMod/eqnset"
	"github.com/Huan-Yang/dMod/evaluator"
	"github.com/Huan-Yang/dMod/params"
)

// ExplicitOptions configures NewExplicit. The zero value is a valid
// configuration; DefaultExplicitOptions returns it for symmetry with the
// other builders.
type ExplicitOptions struct {
	// Parameters declares the outer parameter names. Declared names the
	// equation set does not define as outputs receive identity equations.
	// When empty, the set's referenced symbols are declared.
	Parameters []string

	// AttachInput appends outer entries that are not transform outputs to
	// the result unchanged, with identity Jacobian rows.
	AttachInput bool

	// Compile selects the postfix-tape evaluation strategy.
	Compile bool

	// ModelName labels the compiled artifacts; empty means content hash.
	ModelName string

	// Condition namespaces the artifacts of one model across experimental
	// conditions. It does not affect the numerics.
	Condition string

	// Verbose enables per-call debug logging on Logger (or slog.Default).
	Verbose bool
	Logger  *slog.Logger
}

// DefaultExplicitOptions returns the baseline configuration.
func DefaultExplicitOptions() ExplicitOptions { return ExplicitOptions{} }

// Explicit is a direct algebraic transformation: each output is an
// expression evaluated over the merged outer and fixed values.
type Explicit struct {
	eqs         *eqnset.Set // augmented with identities
	paramNames  []string
	outputs     map[string]struct{}
	attachInput bool
	condition   string
	eval        *evaluator.Evaluator
	deriv       *evaluator.Evaluator
	log         *slog.Logger
}

// NewExplicit builds an explicit transformation from an equation set.
// Symbolic derivatives of every output with respect to every declared
// parameter are taken once here; Call only evaluates.
func NewExplicit(eqs *eqnset.Set, opts ExplicitOptions) (*Explicit, error) {
	if eqs == nil {
		return nil, ErrNilEquations
	}
	declared := opts.Parameters
	if len(declared) == 0 {
		declared = eqs.Symbols()
	}
	aug, err := eqs.WithIdentities(declared)
	if err != nil {
		return nil, fmt.Errorf("transform: augment identities: %w", err)
	}
	jacSet, err := aug.Jacobian(declared)
	if err != nil {
		return nil, fmt.Errorf("transform: differentiate: %w", err)
	}
	eval, err := evaluator.Compile(aug, evaluator.Options{
		Compile:   opts.Compile,
		ModelName: artifactLabel(opts.ModelName, opts.Condition, ""),
	})
	if err != nil {
		return nil, err
	}
	deriv, err := evaluator.Compile(jacSet, evaluator.Options{
		Compile:   opts.Compile,
		ModelName: artifactLabel(opts.ModelName, opts.Condition, ".deriv"),
	})
	if err != nil {
		return nil, err
	}
	t := &Explicit{
		eqs:         aug,
		paramNames:  append([]string(nil), declared...),
		outputs:     nameSet(aug.Names()),
		attachInput: opts.AttachInput,
		condition:   opts.Condition,
		eval:        eval,
		deriv:       deriv,
	}
	if opts.Verbose {
		t.log = opts.Logger
		if t.log == nil {
			t.log = slog.Default()
		}
	}
	return t, nil
}

// Parameters reports the declared outer parameter names.
func (t *Explicit) Parameters() []string {
	return append([]string(nil), t.paramNames...)
}

// Equations returns the identity-augmented equation set.
func (t *Explicit) Equations() *eqnset.Set { return t.eqs }

// Condition reports the condition label.
func (t *Explicit) Condition() string { return t.condition }

// Call evaluates the transformation at outer merged with fixed.
func (t *Explicit) Call(outer, fixed *params.ParamVec, wantDeriv bool) (*params.ParamVec, error) {
	if outer == nil {
		return nil, ErrNilParams
	}
	merged := outer.Merge(fixed)
	env := merged.Env()

	row, err := t.eval.Eval(env)
	if err != nil {
		return nil, err
	}

	names := t.eqs.Names()
	values := row
	var extras []string
	if t.attachInput {
		for _, n := range outer.Names() {
			if _, ok := t.outputs[n]; !ok {
				extras = append(extras, n)
			}
		}
		for _, n := range extras {
			v, _ := merged.Get(n)
			names = append(names, n)
			values = append(values, v)
		}
	}
	out, err := params.New(names, values)
	if err != nil {
		return nil, err
	}
	if t.log != nil {
		t.log.Debug("explicit transform",
			slog.String("model", t.eval.Name()),
			slog.Int("outputs", len(names)),
			slog.Bool("deriv", wantDeriv))
	}
	if !wantDeriv {
		return out, nil
	}

	jac, err := t.localJacobian(env, merged, outer, fixed, extras)
	if err != nil {
		return nil, err
	}
	if up := outer.Jacobian(); up != nil {
		jac, err = jac.Chain(up)
		if err != nil {
			return nil, err
		}
	}
	return out.WithJacobian(jac), nil
}

// localJacobian evaluates the symbolic derivative set and scatters it
// into a labeled matrix whose columns are the merged names minus the
// fixed overrides. Attached inputs contribute identity rows.
func (t *Explicit) localJacobian(env map[string]float64, merged, outer, fixed *params.ParamVec, extras []string) (*params.Jacobian, error) {
	derivRow, err := t.deriv.Eval(env)
	if err != nil {
		return nil, err
	}

	var fixedSet map[string]struct{}
	if fixed != nil {
		fixedSet = nameSet(fixed.Names())
	}
	var cols []string
	for _, n := range merged.Names() {
		if _, drop := fixedSet[n]; !drop {
			cols = append(cols, n)
		}
	}
	rows := append(t.eqs.Names(), extras...)
	jac, err := params.NewJacobian(rows, cols)
	if err != nil {
		return nil, err
	}

	outs := t.eqs.Names()
	for i, o := range outs {
		for k, v := range t.paramNames {
			if !jac.HasCol(v) {
				continue
			}
			if err := jac.Set(o, v, derivRow[i*len(t.paramNames)+k]); err != nil {
				return nil, err
			}
		}
	}
	for _, n := range extras {
		if jac.HasCol(n) {
			if err := jac.Set(n, n, 1); err != nil {
				return nil, err
			}
		}
	}
	return jac, nil
}
