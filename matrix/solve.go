// SPDX-License-Identifier: MIT

package matrix

import "math"

// Solve computes X such that A·X = B using LU factorization with partial
// pivoting, one triangular solve pair per right-hand-side column. The
// inverse of A is never formed.
//
// Inputs:
//   - a: square n×n coefficient matrix (read-only).
//   - b: n×k right-hand side (read-only).
//
// Errors:
//   - ErrNilMatrix          — nil operand.
//   - ErrNonSquare          — a is not square.
//   - ErrDimensionMismatch  — b.Rows != a.Rows.
//   - ErrSingular           — no usable pivot (|pivot| below machine noise).
//
// Complexity: O(n^3 + n^2*k) time, O(n^2) extra space.
func Solve(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.rows != a.cols {
		return nil, ErrNonSquare
	}
	if b.rows != a.rows {
		return nil, ErrDimensionMismatch
	}

	n := a.rows
	lu := a.Clone()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	// In-place LU with partial pivoting (rows swapped for the largest
	// remaining pivot — conditioning, not just zero avoidance).
	for col := 0; col < n; col++ {
		pivRow, pivAbs := col, math.Abs(lu.data[perm[col]*n+col])
		for r := col + 1; r < n; r++ {
			if abs := math.Abs(lu.data[perm[r]*n+col]); abs > pivAbs {
				pivRow, pivAbs = r, abs
			}
		}
		if pivAbs == 0 || math.IsNaN(pivAbs) {
			return nil, ErrSingular
		}
		perm[col], perm[pivRow] = perm[pivRow], perm[col]

		pivot := lu.data[perm[col]*n+col]
		for r := col + 1; r < n; r++ {
			base := perm[r] * n
			factor := lu.data[base+col] / pivot
			lu.data[base+col] = factor
			if factor == 0 {
				continue
			}
			pbase := perm[col] * n
			for c := col + 1; c < n; c++ {
				lu.data[base+c] -= factor * lu.data[pbase+c]
			}
		}
	}

	x, err := NewDense(n, b.cols)
	if err != nil {
		return nil, err
	}
	y := make([]float64, n)
	for col := 0; col < b.cols; col++ {
		// Forward substitution: L·y = P·b[:,col] (unit lower triangular L).
		for i := 0; i < n; i++ {
			sum := b.data[perm[i]*b.cols+col]
			base := perm[i] * n
			for k := 0; k < i; k++ {
				sum -= lu.data[base+k] * y[k]
			}
			y[i] = sum
		}
		// Backward substitution: U·x = y.
		for i := n - 1; i >= 0; i-- {
			sum := y[i]
			base := perm[i] * n
			for k := i + 1; k < n; k++ {
				sum -= lu.data[base+k] * x.data[k*x.cols+col]
			}
			x.data[i*x.cols+col] = sum / lu.data[base+i]
		}
	}

	return x, nil
}
