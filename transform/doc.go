// Package transform builds parameter transformations: callables mapping an
// outer parameter vector to the inner vector a model evaluator consumes,
// while propagating the Jacobian of the mapping for gradient-based fitting
// and uncertainty propagation.
//
// Two builders produce the same Transformation contract:
//
//   - NewExplicit — direct algebraic substitution. Declared parameters the
//     equations do not define receive identity equations, so every declared
//     parameter has a value even if untouched by the transform.
//   - NewImplicit — the output solves a nonlinear residual system (for
//     example a steady state). Each call runs a damped Newton solve,
//     optionally warm-started from the previous accepted solution, and
//     derives the Jacobian through the implicit function theorem: a linear
//     solve against the residual derivative, never an explicit inverse.
//
// A transformation both reads and writes the Jacobian carried by its
// parameter vectors: an incoming Jacobian is chained onto the local one by
// the chain rule, so Compose(a, b) expresses the sensitivity of a∘b's
// output to b's original input with no manual bookkeeping.
//
// Instances are synchronous and single-threaded. The implicit guess cache
// is private mutable state of one instance; concurrent calls into the same
// instance must be serialized externally or caching disabled (KeepRoot
// false).
package transform
