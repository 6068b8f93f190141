package matrix

import "errors"

var (
	// ErrOutOfRangeNodeReference is returned when a stamp targets an index outside 0..N-1
	// that is not the ground sentinel. The system is left untouched.
	ErrOutOfRangeNodeReference = errors.New("node index out of range")

	// ErrSingularSystem is returned when the assembled matrix cannot be factorized,
	// e.g. a floating node or a network without a reference node.
	ErrSingularSystem = errors.New("singular system")
)
