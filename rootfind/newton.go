package rootfind

import (
	"fmt"
	"math"

	"github.com/Huan-Yang/dMod/matrix"
)

// Solve drives x toward F(x) = 0 with damped Newton steps starting from x0.
// x0 is not mutated. A nil opts uses DefaultOptions.
//
// Errors:
//   - ErrBadProblem      — missing residual/Jacobian or empty guess.
//   - ErrShapeMismatch   — residual or Jacobian size disagrees with x.
//   - matrix.ErrSingular — the Jacobian is singular at an iterate (wrapped).
//   - ErrNoConvergence   — iteration cap reached; Result holds the best
//     iterate and is returned alongside the error.
func Solve(p Problem, x0 []float64, opts *Options) (Result, error) {
	if p.Residual == nil || p.Jacobian == nil || len(x0) == 0 {
		return Result{}, ErrBadProblem
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}

	n := len(x0)
	x := make([]float64, n)
	copy(x, x0)

	f, err := p.Residual(x)
	if err != nil {
		return Result{}, fmt.Errorf("rootfind: residual at start: %w", err)
	}
	if len(f) != n {
		return Result{}, ErrShapeMismatch
	}
	norm := supNorm(f)

	res := Result{Root: x, ResidualNorm: norm}
	for res.Iterations = 0; res.Iterations < o.MaxIterations; {
		if norm <= o.Tolerance {
			res.Converged = true
			res.ResidualNorm = norm

			return res, nil
		}

		jac, err := p.Jacobian(x)
		if err != nil {
			return res, fmt.Errorf("rootfind: jacobian at iterate %d: %w", res.Iterations, err)
		}
		if jac.Rows() != n || jac.Cols() != n {
			return res, ErrShapeMismatch
		}

		rhs, err := matrix.NewDense(n, 1)
		if err != nil {
			return res, err
		}
		for i, fi := range f {
			_ = rhs.Set(i, 0, -fi)
		}
		delta, err := matrix.Solve(jac, rhs)
		if err != nil {
			return res, fmt.Errorf("rootfind: newton step at iterate %d: %w", res.Iterations, err)
		}

		// Backtracking line search: shrink the step until the residual
		// norm improves or the backtrack cap is hit, then take the best seen.
		lambda := 1.0
		bestX, bestF, bestNorm := x, f, math.Inf(1)
		for bt := 0; bt <= o.MaxBacktracks; bt++ {
			cand := make([]float64, n)
			for i := range cand {
				d, _ := delta.At(i, 0)
				cand[i] = x[i] + lambda*d
			}
			cf, err := p.Residual(cand)
			if err != nil {
				return res, fmt.Errorf("rootfind: residual at iterate %d: %w", res.Iterations+1, err)
			}
			cn := supNorm(cf)
			if cn < bestNorm {
				bestX, bestF, bestNorm = cand, cf, cn
			}
			if cn < norm {
				break
			}
			lambda *= o.Damping
		}

		stepSize := 0.0
		for i := range x {
			if d := math.Abs(bestX[i] - x[i]); d > stepSize*(1+math.Abs(x[i])) {
				stepSize = d / (1 + math.Abs(x[i]))
			}
		}

		x, f, norm = bestX, bestF, bestNorm
		res.Iterations++
		res.Root = x
		res.ResidualNorm = norm

		if stepSize <= o.StepTolerance {
			res.Converged = norm <= o.Tolerance

			break
		}
	}

	if norm <= o.Tolerance {
		res.Converged = true

		return res, nil
	}

	return res, fmt.Errorf("%w: residual %.3e after %d iterations", ErrNoConvergence, norm, res.Iterations)
}

// supNorm returns max|v_i|.
func supNorm(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}

	return m
}
