package transform

import "errors"

var (
	// ErrNilEquations is returned by constructors given a nil equation set.
	ErrNilEquations = errors.New("transform: nil equation set")

	// ErrNilParams is returned by Call when the outer vector is nil.
	ErrNilParams = errors.New("transform: nil parameter vector")

	// ErrNoDependent is returned by NewImplicit when every state is listed
	// as free, leaving nothing for the solver to determine.
	ErrNoDependent = errors.New("transform: no dependent states to solve for")

	// ErrMissingValue is returned by Call when a symbol the transformation
	// needs is absent from the merged outer and fixed vectors.
	ErrMissingValue = errors.New("transform: missing parameter value")
)
