package device

import "errors"

var (
	// ErrDegenerateComponent is returned for a branch whose impedance is zero.
	// Ideal shorts are not modeled.
	ErrDegenerateComponent = errors.New("degenerate component")

	// ErrInvalidParameter is returned when a parameter is NaN or infinite.
	ErrInvalidParameter = errors.New("invalid component parameter")
)
