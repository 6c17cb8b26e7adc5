package transform

import (
	"fmt"
	"log/slog"

	"github.com/Huan-Yang/dMod/eqnset"
	"github.com/Huan-Yang/dMod/evaluator"
	"github.com/Huan-Yang/dMod/matrix"
	"github.com/Huan-Yang/dMod/params"
	"github.com/Huan-Yang/dMod/rootfind"
)

// ImplicitOptions configures NewImplicit.
type ImplicitOptions struct {
	// Positive repairs solutions with negative components: the solve is
	// retried from the unwarmed guess and any remaining negative entries
	// are clamped to zero. On by default.
	Positive bool

	// KeepRoot caches each accepted solution as the warm-start guess for
	// the next call. On by default.
	KeepRoot bool

	// Solver overrides the Newton iteration settings; nil means
	// rootfind.DefaultOptions.
	Solver *rootfind.Options

	// Compile selects the postfix-tape evaluation strategy.
	Compile bool

	// ModelName labels the compiled artifacts; empty means content hash.
	ModelName string

	// Condition namespaces the artifacts of one model across experimental
	// conditions. It does not affect the numerics.
	Condition string

	// Verbose enables per-call debug logging on Logger (or slog.Default).
	// Positivity repairs are warned about regardless.
	Verbose bool
	Logger  *slog.Logger
}

// DefaultImplicitOptions returns the baseline configuration: positivity
// repair and root caching enabled.
func DefaultImplicitOptions() ImplicitOptions {
	return ImplicitOptions{Positive: true, KeepRoot: true}
}

// ImplicitStats describes the most recent Call of an Implicit transform.
type ImplicitStats struct {
	Iterations   int     // Newton iterations of the accepted solve
	ResidualNorm float64 // sup-norm of the residual at the solution
	Converged    bool
	WarmStarted  bool // guess came from the cache rather than the input
	Repaired     bool // negative components were clamped after a re-solve
}

// Implicit is a transformation whose dependent outputs solve a residual
// system. The remaining inputs pass through unchanged, and the Jacobian
// of the solution follows from the implicit function theorem.
type Implicit struct {
	eqs       *eqnset.Set
	dependent []string
	others    []string // nonstate symbols then free names
	depSet    map[string]struct{}
	condition string

	resid *evaluator.Evaluator
	dfdx  *evaluator.Evaluator
	dfdp  *evaluator.Evaluator

	positive bool
	keepRoot bool
	solver   rootfind.Options
	cache    *GuessCache
	stats    ImplicitStats
	log      *slog.Logger
	verbose  bool
}

// NewImplicit builds an implicit transformation. The equation outputs are
// the states; free names the states (or extra parameters) the solve treats
// as inputs, and the remaining states are determined by driving their
// residuals to zero.
func NewImplicit(eqs *eqnset.Set, free []string, opts ImplicitOptions) (*Implicit, error) {
	if eqs == nil {
		return nil, ErrNilEquations
	}
	freeSet := nameSet(free)
	var dependent []string
	for _, s := range eqs.Names() {
		if _, ok := freeSet[s]; !ok {
			dependent = append(dependent, s)
		}
	}
	if len(dependent) == 0 {
		return nil, ErrNoDependent
	}
	fsub, err := eqs.Subset(dependent)
	if err != nil {
		return nil, err
	}

	stateSet := nameSet(eqs.Names())
	var others []string
	for _, s := range fsub.Symbols() {
		_, isState := stateSet[s]
		_, isFree := freeSet[s]
		if !isState && !isFree {
			others = append(others, s)
		}
	}
	others = append(others, free...)

	label := func(suffix string) string {
		return artifactLabel(opts.ModelName, opts.Condition, suffix)
	}
	resid, err := evaluator.Compile(fsub, evaluator.Options{Compile: opts.Compile, ModelName: label("")})
	if err != nil {
		return nil, err
	}
	dxSet, err := fsub.Jacobian(dependent)
	if err != nil {
		return nil, err
	}
	dfdx, err := evaluator.Compile(dxSet, evaluator.Options{Compile: opts.Compile, ModelName: label(".dfdx")})
	if err != nil {
		return nil, err
	}
	dpSet, err := fsub.Jacobian(others)
	if err != nil {
		return nil, err
	}
	dfdp, err := evaluator.Compile(dpSet, evaluator.Options{Compile: opts.Compile, ModelName: label(".dfdp")})
	if err != nil {
		return nil, err
	}

	solver := rootfind.DefaultOptions()
	if opts.Solver != nil {
		solver = *opts.Solver
	}
	t := &Implicit{
		eqs:       eqs,
		dependent: dependent,
		others:    others,
		depSet:    nameSet(dependent),
		condition: opts.Condition,
		resid:     resid,
		dfdx:      dfdx,
		dfdp:      dfdp,
		positive:  opts.Positive,
		keepRoot:  opts.KeepRoot,
		solver:    solver,
		cache:     NewGuessCache(),
		verbose:   opts.Verbose,
		log:       opts.Logger,
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	return t, nil
}

// Parameters reports the names a call must supply: the dependent states
// (initial guesses) followed by the nonstate and free inputs.
func (t *Implicit) Parameters() []string {
	out := make([]string, 0, len(t.dependent)+len(t.others))
	out = append(out, t.dependent...)
	out = append(out, t.others...)
	return out
}

// Equations returns the full state equation set.
func (t *Implicit) Equations() *eqnset.Set { return t.eqs }

// Condition reports the condition label.
func (t *Implicit) Condition() string { return t.condition }

// Dependent reports the states the solver determines.
func (t *Implicit) Dependent() []string {
	return append([]string(nil), t.dependent...)
}

// Cache exposes the warm-start guess cache.
func (t *Implicit) Cache() *GuessCache { return t.cache }

// Stats describes the most recent Call.
func (t *Implicit) Stats() ImplicitStats { return t.stats }

// Call solves the residual system at the merged parameter values.
// Dependent entries of the input seed the Newton iteration; the output
// replaces them with the solution and passes the remaining non-fixed
// entries through. Solver failures are returned as errors and leave the
// guess cache untouched.
func (t *Implicit) Call(outer, fixed *params.ParamVec, wantDeriv bool) (*params.ParamVec, error) {
	if outer == nil {
		return nil, ErrNilParams
	}
	merged := outer.Merge(fixed)
	for _, n := range t.Parameters() {
		if !merged.Has(n) {
			return nil, fmt.Errorf("%w: %q", ErrMissingValue, n)
		}
	}

	t.stats = ImplicitStats{}
	fallback := make([]float64, len(t.dependent))
	guess := make([]float64, len(t.dependent))
	for i, n := range t.dependent {
		v, _ := merged.Get(n)
		fallback[i] = v
		guess[i] = v
	}
	if t.keepRoot {
		for i, n := range t.dependent {
			if v, ok := t.cache.Get(n); ok {
				guess[i] = v
				t.stats.WarmStarted = true
			}
		}
	}

	env := merged.Env()
	problem := rootfind.Problem{
		Residual: func(x []float64) ([]float64, error) {
			t.bind(env, x)
			return t.resid.Eval(env)
		},
		Jacobian: func(x []float64) (*matrix.Dense, error) {
			t.bind(env, x)
			return t.denseAt(t.dfdx, env, len(t.dependent))
		},
	}

	res, err := rootfind.Solve(problem, guess, &t.solver)
	if err != nil {
		return nil, fmt.Errorf("transform: implicit solve: %w", err)
	}
	root := res.Root
	if t.positive && anyNegative(root) {
		t.log.Warn("negative steady state, re-solving and clamping",
			slog.String("model", t.resid.Name()))
		res, err = rootfind.Solve(problem, fallback, &t.solver)
		if err != nil {
			return nil, fmt.Errorf("transform: implicit re-solve: %w", err)
		}
		root = res.Root
		for i, v := range root {
			if v < 0 {
				root[i] = 0
			}
		}
		t.cache.Reset()
		t.stats.Repaired = true
	}
	t.stats.Iterations = res.Iterations
	t.stats.ResidualNorm = res.ResidualNorm
	t.stats.Converged = res.Converged

	if t.keepRoot && !t.stats.Repaired {
		kept := make(map[string]float64, len(t.dependent))
		for i, n := range t.dependent {
			kept[n] = root[i]
		}
		t.cache.Set(kept)
	}

	var fixedSet map[string]struct{}
	if fixed != nil {
		fixedSet = nameSet(fixed.Names())
	}
	var names []string
	var values []float64
	var passThrough []string
	depIdx := make(map[string]int, len(t.dependent))
	for i, n := range t.dependent {
		depIdx[n] = i
	}
	for _, n := range merged.Names() {
		if i, dep := depIdx[n]; dep {
			names = append(names, n)
			values = append(values, root[i])
			continue
		}
		if _, drop := fixedSet[n]; drop {
			continue
		}
		v, _ := merged.Get(n)
		names = append(names, n)
		values = append(values, v)
		passThrough = append(passThrough, n)
	}
	out, err := params.New(names, values)
	if err != nil {
		return nil, err
	}
	if t.verbose {
		t.log.Debug("implicit transform",
			slog.String("model", t.resid.Name()),
			slog.Int("iterations", t.stats.Iterations),
			slog.Bool("warm", t.stats.WarmStarted),
			slog.Bool("repaired", t.stats.Repaired))
	}
	if !wantDeriv {
		return out, nil
	}

	t.bind(env, root)
	jac, err := t.implicitJacobian(env, names, passThrough)
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

// implicitJacobian applies the implicit function theorem at the solution:
// dx/dp solves dfdx · X = -dfdp, column by column, with identity rows for
// the pass-through entries.
func (t *Implicit) implicitJacobian(env map[string]float64, rows, passThrough []string) (*params.Jacobian, error) {
	nd := len(t.dependent)
	a, err := t.denseAt(t.dfdx, env, nd)
	if err != nil {
		return nil, err
	}
	b, err := t.denseAt(t.dfdp, env, nd)
	if err != nil {
		return nil, err
	}
	x, err := matrix.Solve(a, b.Scale(-1))
	if err != nil {
		return nil, fmt.Errorf("transform: implicit derivative: %w", err)
	}

	jac, err := params.NewJacobian(rows, passThrough)
	if err != nil {
		return nil, err
	}
	for i, d := range t.dependent {
		for k, p := range t.others {
			if !jac.HasCol(p) {
				continue
			}
			v, err := x.At(i, k)
			if err != nil {
				return nil, err
			}
			if err := jac.Set(d, p, v); err != nil {
				return nil, err
			}
		}
	}
	for _, p := range passThrough {
		if err := jac.Set(p, p, 1); err != nil {
			return nil, err
		}
	}
	return jac, nil
}

// bind writes the dependent values into the evaluation environment.
func (t *Implicit) bind(env map[string]float64, x []float64) {
	for i, n := range t.dependent {
		env[n] = x[i]
	}
}

// denseAt evaluates a derivative set and reshapes its row into a dense
// rows×(len/rows) matrix in output-major order.
func (t *Implicit) denseAt(ev *evaluator.Evaluator, env map[string]float64, rows int) (*matrix.Dense, error) {
	flat, err := ev.Eval(env)
	if err != nil {
		return nil, err
	}
	cols := len(flat) / rows
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if err := m.Set(i, j, flat[i*cols+j]); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func anyNegative(v []float64) bool {
	for _, x := range v {
		if x < 0 {
			return true
		}
	}
	return false
}
