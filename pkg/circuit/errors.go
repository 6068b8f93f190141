package circuit

import "errors"

var (
	// ErrUnresolvedNodeReference is returned when a component names a node that was never declared.
	ErrUnresolvedNodeReference = errors.New("unresolved node reference")

	// ErrConflictingNode is returned when one node identity is declared both as ground and as a network node.
	ErrConflictingNode = errors.New("conflicting node declaration")

	// ErrInvalidComponent is returned for malformed component declarations.
	ErrInvalidComponent = errors.New("invalid component declaration")

	// ErrNotReady is returned when assembly or solve runs before the matrix exists.
	ErrNotReady = errors.New("circuit matrix not created")
)
