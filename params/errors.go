// Package params: sentinel error set. Tests match via errors.Is.

package params

import "errors"

var (
	// ErrLengthMismatch indicates name and value slices of unequal length.
	ErrLengthMismatch = errors.New("params: names and values differ in length")

	// ErrDuplicateName indicates a repeated parameter or label name.
	ErrDuplicateName = errors.New("params: duplicate name")

	// ErrUnknownLabel indicates a row/column name the Jacobian does not carry.
	ErrUnknownLabel = errors.New("params: unknown row or column label")

	// ErrChainMismatch indicates a chain-rule product where a local column
	// has no matching row in the upstream Jacobian.
	ErrChainMismatch = errors.New("params: jacobian chain mismatch")
)
