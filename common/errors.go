package common

import "errors"

var (
	// ErrorInvalidValue reports an empty or degenerate sample, or an invalid parameter.
	ErrorInvalidValue = errors.New("invalid value")
	// ErrorEmptyRange reports that no sample value falls inside the requested range.
	ErrorEmptyRange = errors.New("no values in range")
	// ErrorNoConvergence reports that a root search did not converge.
	ErrorNoConvergence = errors.New("root finding did not converge")

	ErrorUnknownColumn = errors.New("unknown column")
	ErrorInvalidConfig = errors.New("invalid config")
)
