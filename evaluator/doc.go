// Package evaluator turns an equation set into a numeric callable: one
// value per output per call, column-ordered to match the set.
//
// Two execution strategies sit behind one API:
//
//   - tree walk — the default; each call walks the symbolic trees.
//   - compiled tape — opt-in (Options.Compile); at construction every tree
//     is flattened into a postfix instruction tape executed on a value
//     stack, trading one-time compilation cost for cheaper calls. This is
//     a construction-phase cost, never repeated per call.
//
// Either way the calling convention is identical: names select values —
// the input is a single merged name→value environment, and argument
// position never matters.
//
// Every evaluator carries a stable artifact name for diagnostics: the
// configured model name, or a 64-bit hash of the equation text when none
// is given.
package evaluator
