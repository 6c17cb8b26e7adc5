package rootfind

import (
	"errors"

	"github.com/Huan-Yang/dMod/matrix"
)

// Residual evaluates F(x), one value per equation, same length as x.
type Residual func(x []float64) ([]float64, error)

// JacobianFn evaluates the square matrix dF/dx at x.
type JacobianFn func(x []float64) (*matrix.Dense, error)

// Problem bundles the residual and its Jacobian.
type Problem struct {
	Residual Residual
	Jacobian JacobianFn
}

// Options tunes the Newton iteration. The defaults were chosen for
// well-scaled steady-state systems; see DefaultOptions.
type Options struct {
	// MaxIterations caps the number of Newton steps. Exceeding it is a
	// fatal ErrNoConvergence, never a hang.
	MaxIterations int

	// Tolerance is the residual sup-norm below which the iterate is
	// accepted as a root.
	Tolerance float64

	// StepTolerance stops the iteration when the relative Newton step
	// shrinks below it (stagnation near a root).
	StepTolerance float64

	// Damping is the backtracking shrink factor applied to a step that
	// fails to reduce the residual norm.
	Damping float64

	// MaxBacktracks caps backtracking halvings per step; the best
	// candidate seen is taken when they are exhausted.
	MaxBacktracks int
}

// DefaultOptions returns the standard iteration tuning.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 100,
		Tolerance:     1e-10,
		StepTolerance: 1e-13,
		Damping:       0.5,
		MaxBacktracks: 8,
	}
}

// Result carries the solution and iteration diagnostics.
type Result struct {
	// Root is the final iterate (best reached when not converged).
	Root []float64

	// Converged reports whether the residual criterion was met.
	Converged bool

	// Iterations is the number of Newton steps taken.
	Iterations int

	// ResidualNorm is the final residual sup-norm.
	ResidualNorm float64
}

var (
	// ErrBadProblem indicates a Problem missing its residual or Jacobian,
	// or an empty initial guess.
	ErrBadProblem = errors.New("rootfind: incomplete problem definition")

	// ErrShapeMismatch indicates a residual or Jacobian whose size does
	// not match the iterate.
	ErrShapeMismatch = errors.New("rootfind: residual/jacobian shape mismatch")

	// ErrNoConvergence indicates the iteration cap was reached before the
	// residual criterion. The returned Result holds the best iterate.
	ErrNoConvergence = errors.New("rootfind: no convergence within iteration cap")
)
