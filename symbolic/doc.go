// Package symbolic implements the small symbolic-math kernel used by the
// transformation engine: an expression tree over named symbols and a fixed
// elementary-function vocabulary, an infix parser for the wire form, exact
// structural differentiation, and numeric evaluation.
//
// The package provides:
//
//   - Parse — turn an infix expression string ("k1*A - k2*exp(t)") into an
//     expression tree.
//   - Expr.Diff — partial derivative with respect to a named symbol,
//     with light constant folding so that zero derivatives collapse to the
//     literal 0.
//   - Expr.Eval — evaluate against a name→value environment.
//   - Symbols — the free-symbol universe of an expression.
//
// Expressions are immutable; all operations return fresh trees. The kernel
// is deliberately minimal: no canonical simplification, no integration, no
// equation solving — just what Jacobian derivation needs.
package symbolic
