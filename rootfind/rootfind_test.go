package rootfind_test

import (
	"math"
	"testing"

	"github.com/Huan-Yang/dMod/matrix"
	"github.com/Huan-Yang/dMod/rootfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadratic2 is F(x,y) = (x^2 + y^2 - 4, x - y); roots at ±(√2, √2).
func quadratic2() rootfind.Problem {
	return rootfind.Problem{
		Residual: func(x []float64) ([]float64, error) {
			return []float64{x[0]*x[0] + x[1]*x[1] - 4, x[0] - x[1]}, nil
		},
		Jacobian: func(x []float64) (*matrix.Dense, error) {
			j, err := matrix.NewDense(2, 2)
			if err != nil {
				return nil, err
			}
			_ = j.Set(0, 0, 2*x[0])
			_ = j.Set(0, 1, 2*x[1])
			_ = j.Set(1, 0, 1)
			_ = j.Set(1, 1, -1)

			return j, nil
		},
	}
}

// TestSolve_Quadratic verifies convergence to the analytic root.
func TestSolve_Quadratic(t *testing.T) {
	res, err := rootfind.Solve(quadratic2(), []float64{1, 2}, nil)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.InDelta(t, math.Sqrt2, res.Root[0], 1e-9)
	assert.InDelta(t, math.Sqrt2, res.Root[1], 1e-9)
	assert.LessOrEqual(t, res.ResidualNorm, 1e-10)
	assert.Greater(t, res.Iterations, 0)
}

// TestSolve_StartAtRoot verifies zero iterations when the guess already
// satisfies the residual criterion — the warm-start contract relies on it.
func TestSolve_StartAtRoot(t *testing.T) {
	res, err := rootfind.Solve(quadratic2(), []float64{math.Sqrt2, math.Sqrt2}, nil)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 0, res.Iterations)
}

// TestSolve_Linear verifies one-step convergence on an affine system.
func TestSolve_Linear(t *testing.T) {
	p := rootfind.Problem{
		Residual: func(x []float64) ([]float64, error) {
			return []float64{2*x[0] + x[1] - 5, x[0] + 3*x[1] - 10}, nil
		},
		Jacobian: func([]float64) (*matrix.Dense, error) {
			j, err := matrix.NewDense(2, 2)
			if err != nil {
				return nil, err
			}
			_ = j.Set(0, 0, 2)
			_ = j.Set(0, 1, 1)
			_ = j.Set(1, 0, 1)
			_ = j.Set(1, 1, 3)

			return j, nil
		},
	}

	res, err := rootfind.Solve(p, []float64{0, 0}, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations, "affine residual needs exactly one Newton step")
	assert.InDelta(t, 1.0, res.Root[0], 1e-10)
	assert.InDelta(t, 3.0, res.Root[1], 1e-10)
}

// TestSolve_SingularJacobian verifies the fatal classification.
func TestSolve_SingularJacobian(t *testing.T) {
	p := rootfind.Problem{
		Residual: func(x []float64) ([]float64, error) {
			return []float64{x[0] + x[1] - 1, x[0] + x[1] - 1}, nil
		},
		Jacobian: func([]float64) (*matrix.Dense, error) {
			j, err := matrix.NewDense(2, 2)
			if err != nil {
				return nil, err
			}
			_ = j.Set(0, 0, 1)
			_ = j.Set(0, 1, 1)
			_ = j.Set(1, 0, 1)
			_ = j.Set(1, 1, 1)

			return j, nil
		},
	}

	_, err := rootfind.Solve(p, []float64{5, 5}, nil)
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

// TestSolve_NoConvergence verifies the iteration cap surfaces
// ErrNoConvergence with the best iterate attached.
func TestSolve_NoConvergence(t *testing.T) {
	// exp(x) = 0 has no root; Newton wanders toward -inf forever.
	p := rootfind.Problem{
		Residual: func(x []float64) ([]float64, error) {
			return []float64{math.Exp(x[0])}, nil
		},
		Jacobian: func(x []float64) (*matrix.Dense, error) {
			j, err := matrix.NewDense(1, 1)
			if err != nil {
				return nil, err
			}
			_ = j.Set(0, 0, math.Exp(x[0]))

			return j, nil
		},
	}

	opts := rootfind.DefaultOptions()
	opts.MaxIterations = 5
	opts.StepTolerance = 0

	res, err := rootfind.Solve(p, []float64{0}, &opts)
	assert.ErrorIs(t, err, rootfind.ErrNoConvergence)
	assert.False(t, res.Converged)
	assert.Equal(t, 5, res.Iterations)
}

// TestSolve_BadProblem verifies the guard sentinels.
func TestSolve_BadProblem(t *testing.T) {
	_, err := rootfind.Solve(rootfind.Problem{}, []float64{1}, nil)
	assert.ErrorIs(t, err, rootfind.ErrBadProblem)

	_, err = rootfind.Solve(quadratic2(), nil, nil)
	assert.ErrorIs(t, err, rootfind.ErrBadProblem)
}
