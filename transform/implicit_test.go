package transform_test

import (
	"testing"

	"github.com/Huan-Yang/dMod/eqnset"
	"github.com/Huan-Yang/dMod/rootfind"
	"github.com/Huan-Yang/dMod/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reversibleSteadyState builds the implicit transform for the reaction
// A <-> B with mass conservation substituted into B's equation:
//
//	0 = -k1*A + k2*B
//	0 = A + B - total
//
// The closed form is A = k2*total/(k1+k2), B = k1*total/(k1+k2).
func reversibleSteadyState(t *testing.T, opts transform.ImplicitOptions) *transform.Implicit {
	t.Helper()
	set := mustSet(t,
		eqnset.Def{Name: "A", Expr: "-k1*A + k2*B"},
		eqnset.Def{Name: "B", Expr: "A + B - total"},
	)
	tr, err := transform.NewImplicit(set, []string{"k1", "k2"}, opts)
	require.NoError(t, err)
	return tr
}

// TestImplicit_SteadyState verifies the solved values and the implicit
// function theorem Jacobian against the closed form.
func TestImplicit_SteadyState(t *testing.T) {
	tr := reversibleSteadyState(t, transform.DefaultImplicitOptions())
	assert.Equal(t, []string{"A", "B"}, tr.Dependent())

	in := mustVec(t,
		[]string{"A", "B", "k1", "k2", "total"},
		[]float64{10, 1, 1, 0.1, 11})
	out, err := tr.Call(in, nil, true)
	require.NoError(t, err)

	a, _ := out.Get("A")
	b, _ := out.Get("B")
	assert.InDelta(t, 1, a, 1e-8, "A = k2*total/(k1+k2)")
	assert.InDelta(t, 10, b, 1e-8, "B = k1*total/(k1+k2)")
	kept, _ := out.Get("k1")
	assert.Equal(t, 1.0, kept, "non-dependent inputs pass through")

	st := tr.Stats()
	assert.True(t, st.Converged)
	assert.Greater(t, st.Iterations, 0)

	// Closed-form partials at k1=1, k2=0.1, total=11.
	jac := out.Jacobian()
	require.NotNil(t, jac)
	cases := []struct {
		row, col string
		want     float64
	}{
		{"A", "total", 0.1 / 1.1},
		{"B", "total", 1 / 1.1},
		{"A", "k1", -0.1 * 11 / (1.1 * 1.1)},
		{"A", "k2", 11 * 1 / (1.1 * 1.1)},
		{"k1", "k1", 1},
		{"total", "k2", 0},
	}
	for _, c := range cases {
		v, err := jac.At(c.row, c.col)
		require.NoError(t, err)
		assert.InDelta(t, c.want, v, 1e-7, "d%s/d%s", c.row, c.col)
	}
	assert.False(t, jac.HasCol("A"), "initial guesses are not sensitivities")
}

// TestImplicit_WarmStart verifies that a repeated call reuses the cached
// root and converges without iterating.
func TestImplicit_WarmStart(t *testing.T) {
	tr := reversibleSteadyState(t, transform.DefaultImplicitOptions())
	in := mustVec(t,
		[]string{"A", "B", "k1", "k2", "total"},
		[]float64{10, 1, 1, 0.1, 11})

	first, err := tr.Call(in, nil, false)
	require.NoError(t, err)
	cold := tr.Stats()
	assert.False(t, cold.WarmStarted)
	assert.Greater(t, cold.Iterations, 0)
	assert.Equal(t, 2, tr.Cache().Len())

	second, err := tr.Call(in, nil, false)
	require.NoError(t, err)
	warm := tr.Stats()
	assert.True(t, warm.WarmStarted)
	assert.Equal(t, 0, warm.Iterations, "cached root is already converged")

	for i, v := range first.Values() {
		assert.InDelta(t, v, second.Values()[i], 1e-9)
	}

	// Reset forces the next solve back to the supplied guess.
	tr.Cache().Reset()
	_, err = tr.Call(in, nil, false)
	require.NoError(t, err)
	assert.False(t, tr.Stats().WarmStarted)
}

// TestImplicit_KeepRootDisabled verifies the cache stays empty when
// KeepRoot is off.
func TestImplicit_KeepRootDisabled(t *testing.T) {
	opts := transform.DefaultImplicitOptions()
	opts.KeepRoot = false
	tr := reversibleSteadyState(t, opts)
	in := mustVec(t,
		[]string{"A", "B", "k1", "k2", "total"},
		[]float64{10, 1, 1, 0.1, 11})

	_, err := tr.Call(in, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Cache().Len())

	_, err = tr.Call(in, nil, false)
	require.NoError(t, err)
	assert.False(t, tr.Stats().WarmStarted)
}

// TestImplicit_NegativeRepair verifies that a negative root is re-solved
// from the unwarmed guess, clamped to zero and evicted from the cache.
func TestImplicit_NegativeRepair(t *testing.T) {
	set := mustSet(t, eqnset.Def{Name: "x", Expr: "x - a"})
	tr, err := transform.NewImplicit(set, nil, transform.DefaultImplicitOptions())
	require.NoError(t, err)

	out, err := tr.Call(mustVec(t, []string{"x", "a"}, []float64{1, -2}), nil, false)
	require.NoError(t, err)

	x, _ := out.Get("x")
	assert.Equal(t, 0.0, x, "negative component clamped")
	assert.True(t, tr.Stats().Repaired)
	assert.Equal(t, 0, tr.Cache().Len(), "repair resets the cache")
}

// TestImplicit_NegativeAllowed verifies the raw negative root is returned
// when positivity repair is disabled.
func TestImplicit_NegativeAllowed(t *testing.T) {
	opts := transform.DefaultImplicitOptions()
	opts.Positive = false
	set := mustSet(t, eqnset.Def{Name: "x", Expr: "x - a"})
	tr, err := transform.NewImplicit(set, nil, opts)
	require.NoError(t, err)

	out, err := tr.Call(mustVec(t, []string{"x", "a"}, []float64{1, -2}), nil, false)
	require.NoError(t, err)

	x, _ := out.Get("x")
	assert.InDelta(t, -2, x, 1e-10)
	assert.False(t, tr.Stats().Repaired)
	assert.Equal(t, 1, tr.Cache().Len())
}

// TestImplicit_FixedExcluded verifies fixed inputs feed the solve but are
// dropped from the output and its Jacobian columns.
func TestImplicit_FixedExcluded(t *testing.T) {
	tr := reversibleSteadyState(t, transform.DefaultImplicitOptions())
	outer := mustVec(t, []string{"A", "B", "k1", "k2"}, []float64{10, 1, 1, 0.1})
	fixed := mustVec(t, []string{"total"}, []float64{11})

	out, err := tr.Call(outer, fixed, true)
	require.NoError(t, err)

	a, _ := out.Get("A")
	assert.InDelta(t, 1, a, 1e-8)
	assert.False(t, out.Has("total"), "fixed non-dependent entries are dropped")
	assert.False(t, out.Jacobian().HasCol("total"))
	assert.True(t, out.Jacobian().HasCol("k1"))
}

// TestImplicit_SolveFailure verifies a non-convergent system surfaces the
// solver error and leaves the cache untouched.
func TestImplicit_SolveFailure(t *testing.T) {
	opts := transform.DefaultImplicitOptions()
	solver := rootfind.DefaultOptions()
	solver.MaxIterations = 8
	solver.StepTolerance = 0
	opts.Solver = &solver
	set := mustSet(t, eqnset.Def{Name: "x", Expr: "exp(x) + a"})
	tr, err := transform.NewImplicit(set, nil, opts)
	require.NoError(t, err)

	_, err = tr.Call(mustVec(t, []string{"x", "a"}, []float64{1, 1}), nil, false)
	assert.ErrorIs(t, err, rootfind.ErrNoConvergence)
	assert.Equal(t, 0, tr.Cache().Len())
}

// TestImplicit_Guards verifies the construction and call sentinels.
func TestImplicit_Guards(t *testing.T) {
	_, err := transform.NewImplicit(nil, nil, transform.DefaultImplicitOptions())
	assert.ErrorIs(t, err, transform.ErrNilEquations)

	set := mustSet(t, eqnset.Def{Name: "x", Expr: "x - a"})
	_, err = transform.NewImplicit(set, []string{"x"}, transform.DefaultImplicitOptions())
	assert.ErrorIs(t, err, transform.ErrNoDependent)

	tr, err := transform.NewImplicit(set, nil, transform.DefaultImplicitOptions())
	require.NoError(t, err)
	_, err = tr.Call(mustVec(t, []string{"x"}, []float64{1}), nil, false)
	assert.ErrorIs(t, err, transform.ErrMissingValue)
	_, err = tr.Call(nil, nil, false)
	assert.ErrorIs(t, err, transform.ErrNilParams)
}
