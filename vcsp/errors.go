package vcsp

import "errors"

var (
	// ErrShapeMismatch is returned at model construction time when a supplied
	// cost table does not cover exactly the Cartesian product of its scope's
	// domains, or when variables and domains are inconsistent.
	ErrShapeMismatch = errors.New("vcsp: cost table shape mismatch")

	// ErrInvalidScope is returned when Project or Extend is invoked on a scope
	// of arity < 2, or when a scope is malformed or inconsistent with the
	// variable it is combined with.
	ErrInvalidScope = errors.New("vcsp: invalid scope")

	// ErrNotFound is returned on lookup of a variable, label or scope that is
	// absent from the tensor.
	ErrNotFound = errors.New("vcsp: not found")

	// ErrNonFiniteValue is returned when a projected or extended value is not
	// a finite number. Costs may be infinite, shift values may not.
	ErrNonFiniteValue = errors.New("vcsp: shift value must be finite")
)
