// SPDX-License-Identifier: MIT

// Package matrix provides the dense float64 kernel backing Jacobian
// algebra: allocation, element access, multiplication, and LU-based
// linear-system solution.
//
// The package provides:
//
//   - Dense — row-major dense matrix with bounds-checked At/Set.
//   - Mul — matrix product.
//   - Solve — solution of A·X = B via LU factorization with partial
//     pivoting; the inverse is never formed.
//
// All operations validate shapes and return sentinel errors (errors.go);
// no function panics on user input.
package matrix
