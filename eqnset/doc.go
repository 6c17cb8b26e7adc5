// Package eqnset defines the Equation Set: an ordered mapping from
// output name to a symbolic expression, the contract shared by every
// component of the transformation engine.
//
// The package provides:
//
//   - New — build a set from ordered name/expression definitions, rejecting
//     duplicate output names.
//   - Set.Symbols — the free-symbol universe referenced by the set
//     (symbol extraction).
//   - Set.Jacobian — the derivative equation set of the outputs with
//     respect to a variable list (symbolic differentiation).
//   - Set.WithIdentities — identity-equation augmentation for declared
//     parameters the set does not define.
//   - FromYAML / Set.ToYAML — the ordered wire form.
//
// Sets are immutable after construction; augmentation and differentiation
// return fresh sets.
package eqnset
