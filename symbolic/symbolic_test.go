package symbolic_test

import (
	"math"
	"testing"

	"github.com/Huan-Yang/dMod/symbolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalAt parses src and evaluates it against env, failing the test on error.
func evalAt(t *testing.T, src string, env map[string]float64) float64 {
	t.Helper()
	e, err := symbolic.Parse(src)
	require.NoError(t, err, "parse %q", src)
	v, err := e.Eval(env)
	require.NoError(t, err, "eval %q", src)

	return v
}

// TestParse_Precedence verifies that *, /, ^ and unary minus bind in the
// conventional order.
func TestParse_Precedence(t *testing.T) {
	env := map[string]float64{"x": 3, "y": 2}

	assert.InDelta(t, 3+2*2, evalAt(t, "x + y*2", env), 1e-12, "* before +")
	assert.InDelta(t, (3+2)*2, evalAt(t, "(x + y)*2", env), 1e-12, "parens override")
	assert.InDelta(t, 3.0/2/2, evalAt(t, "x/y/2", env), 1e-12, "/ left-assoc")
	assert.InDelta(t, math.Pow(2, 9), evalAt(t, "2^x^y", env), 1e-12, "^ right-assoc")
	assert.InDelta(t, -math.Pow(3, 2), evalAt(t, "-x^2", env), 1e-12, "unary minus below ^")
	assert.InDelta(t, math.Pow(3, -2), evalAt(t, "x^-2", env), 1e-12, "negative exponent")
}

// TestParse_ScientificNotation verifies float literals with exponent suffix.
func TestParse_ScientificNotation(t *testing.T) {
	assert.InDelta(t, 1.5e-3, evalAt(t, "1.5e-3", nil), 1e-18)
	assert.InDelta(t, 2e10, evalAt(t, "2E+10", nil), 1e-3)
}

// TestParse_Errors verifies the sentinel classification of malformed input.
func TestParse_Errors(t *testing.T) {
	_, err := symbolic.Parse("   ")
	assert.ErrorIs(t, err, symbolic.ErrEmptyExpression, "blank input")

	_, err = symbolic.Parse("a + * b")
	assert.ErrorIs(t, err, symbolic.ErrParse, "dangling operator")

	_, err = symbolic.Parse("(a + b")
	assert.ErrorIs(t, err, symbolic.ErrParse, "unbalanced paren")

	_, err = symbolic.Parse("a b")
	assert.ErrorIs(t, err, symbolic.ErrParse, "trailing input")

	_, err = symbolic.Parse("frob(a)")
	assert.ErrorIs(t, err, symbolic.ErrUnknownFunction, "unknown function name")
}

// TestEval_UnknownSymbol verifies that a missing environment entry surfaces
// ErrUnknownSymbol.
func TestEval_UnknownSymbol(t *testing.T) {
	e := symbolic.MustParse("a + b")
	_, err := e.Eval(map[string]float64{"a": 1})
	assert.ErrorIs(t, err, symbolic.ErrUnknownSymbol)
}

// TestSymbols verifies free-symbol extraction is sorted and deduplicated.
func TestSymbols(t *testing.T) {
	e := symbolic.MustParse("k2*B - k1*A + exp(A*tau)")
	assert.Equal(t, []string{"A", "B", "k1", "k2", "tau"}, symbolic.Symbols(e))
}

// TestDiff_Basic checks a handful of closed-form derivatives numerically.
func TestDiff_Basic(t *testing.T) {
	cases := []struct {
		src  string
		wrt  string
		at   map[string]float64
		want float64
	}{
		{"x^2", "x", map[string]float64{"x": 3}, 6},
		{"x*y", "x", map[string]float64{"x": 3, "y": 5}, 5},
		{"x*y", "z", map[string]float64{"x": 3, "y": 5}, 0},
		{"exp(2*x)", "x", map[string]float64{"x": 0.5}, 2 * math.E},
		{"log(x)", "x", map[string]float64{"x": 4}, 0.25},
		{"sin(x)", "x", map[string]float64{"x": 1}, math.Cos(1)},
		{"sqrt(x)", "x", map[string]float64{"x": 9}, 1.0 / 6},
		{"1/x", "x", map[string]float64{"x": 2}, -0.25},
		{"tanh(x)", "x", map[string]float64{"x": 0.3}, 1 - math.Pow(math.Tanh(0.3), 2)},
	}
	for _, tc := range cases {
		e := symbolic.MustParse(tc.src)
		d := e.Diff(tc.wrt)
		got, err := d.Eval(tc.at)
		require.NoError(t, err, "d(%s)/d%s", tc.src, tc.wrt)
		assert.InDelta(t, tc.want, got, 1e-12, "d(%s)/d%s", tc.src, tc.wrt)
	}
}

// TestDiff_MatchesFiniteDifference cross-checks the structural derivative of
// a composite expression against a central finite difference.
func TestDiff_MatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	e := symbolic.MustParse("exp(-k*t)*sin(w*t) + log(k + w^2)")
	d := e.Diff("k")

	env := map[string]float64{"k": 0.7, "t": 1.3, "w": 2.1}
	analytic, err := d.Eval(env)
	require.NoError(t, err)

	hi := map[string]float64{"k": 0.7 + h, "t": 1.3, "w": 2.1}
	lo := map[string]float64{"k": 0.7 - h, "t": 1.3, "w": 2.1}
	fHi, err := e.Eval(hi)
	require.NoError(t, err)
	fLo, err := e.Eval(lo)
	require.NoError(t, err)

	assert.InDelta(t, (fHi-fLo)/(2*h), analytic, 1e-6)
}

// TestDiff_ZeroCollapses verifies that derivatives with respect to absent
// symbols fold to the literal zero, which the Jacobian scatter relies on.
func TestDiff_ZeroCollapses(t *testing.T) {
	e := symbolic.MustParse("k1*A + exp(k2)")
	assert.True(t, symbolic.IsZero(e.Diff("missing")))
}

// TestFuncNames pins the elementary vocabulary.
func TestFuncNames(t *testing.T) {
	names := symbolic.FuncNames()
	assert.Contains(t, names, "exp")
	assert.Contains(t, names, "log")
	assert.Contains(t, names, "tanh")
	assert.NotContains(t, names, "gamma")
}
