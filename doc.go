// Package dmod is a toolkit for parameter transformations in dynamical
// model fitting — from symbolic expressions to implicit steady-state
// solves with exact sensitivities.
//
// 🚀 What is dMod?
//
//	A library that brings together:
//		• Symbolic kernel: parse infix math, differentiate, simplify
//		• Equation sets: ordered name→expression systems, YAML round-trip
//		• Evaluators: tree-walking or compiled postfix tapes
//		• Transformations: explicit substitution & implicit root solving
//		• Jacobians: labeled matrices chained by the chain rule
//		• Linear algebra: dense matrices, LU solves with partial pivoting
//		• Root finding: damped Newton with backtracking line search
//
// ✨ Why choose dMod?
//
//   - Exact derivatives – symbolic differentiation once, evaluation many times
//   - Composable – transformations chain, Jacobians follow automatically
//   - Warm starts – implicit solves reuse the previous root as a guess
//   - Positivity – steady states of concentration models stay nonnegative
//
// Under the hood, everything is organized under subpackages:
//
//	symbolic/   — expression AST, parser, differentiation
//	eqnset/     — ordered equation sets, Jacobian sets, YAML wire form
//	evaluator/  — tree-walk and compiled-tape numeric evaluation
//	matrix/     — dense matrices and linear solves
//	rootfind/   — damped Newton iteration
//	params/     — named parameter vectors with attached Jacobians
//	transform/  — explicit and implicit parameter transformations
//
// Quick sketch:
//
//	logk ──exp──▶ k ──steady state──▶ A, B   (Jacobian chained throughout)
//
// See examples/ for end-to-end scenarios.
package dmod
