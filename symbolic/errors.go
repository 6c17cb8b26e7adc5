// Package symbolic: sentinel error set.
// All parse/eval failures wrap one of these sentinels; tests match them
// via errors.Is.

package symbolic

import "errors"

var (
	// ErrParse indicates a malformed infix expression (unexpected token,
	// unbalanced parentheses, trailing input).
	ErrParse = errors.New("symbolic: parse error")

	// ErrEmptyExpression indicates an empty or all-whitespace input string.
	ErrEmptyExpression = errors.New("symbolic: empty expression")

	// ErrUnknownFunction indicates a call to a name outside the fixed
	// elementary-function vocabulary.
	ErrUnknownFunction = errors.New("symbolic: unknown function")

	// ErrUnknownSymbol indicates evaluation against an environment that
	// does not supply a value for a referenced symbol.
	ErrUnknownSymbol = errors.New("symbolic: unresolved symbol")
)
