// Package rootfind implements the iterative root-finding routine used by
// implicit transformations: a damped Newton iteration over a vector
// residual with an analytic Jacobian callback.
//
// The caller supplies the residual F(x) and its square Jacobian dF/dx;
// Solve drives x toward F(x) = 0 from an initial guess, backtracking when
// a full Newton step does not reduce the residual norm. Every call is
// bounded by Options.MaxIterations — a non-converging solve returns
// ErrNoConvergence together with the best iterate reached, never a hang.
//
// The Newton step solves dF/dx · Δ = −F with a pivoted LU factorization;
// a singular Jacobian is fatal (matrix.ErrSingular).
package rootfind
