// Package eqnset: sentinel error set. Tests match via errors.Is; parse
// failures additionally wrap the symbolic package sentinels.

package eqnset

import "errors"

var (
	// ErrDuplicateName indicates two definitions (or an identity fallback)
	// sharing one output name. Construction-time, fatal.
	ErrDuplicateName = errors.New("eqnset: duplicate output name")

	// ErrEmptyName indicates a definition with an empty output name.
	ErrEmptyName = errors.New("eqnset: empty output name")

	// ErrEmptySet indicates an operation that requires at least one equation.
	ErrEmptySet = errors.New("eqnset: empty equation set")

	// ErrUnknownName indicates a reference to an output name the set does
	// not define.
	ErrUnknownName = errors.New("eqnset: unknown output name")

	// ErrBadYAML indicates a wire-form document that is not a mapping of
	// scalar names to scalar expressions.
	ErrBadYAML = errors.New("eqnset: malformed YAML wire form")
)
