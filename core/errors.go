package core

import "errors"

// Error taxonomy shared by the store, the collision pipeline and configuration
// Callers wrap these with context and match with errors.Is
var (
	// ErrInvalidHandle reports a handle that was never created or was already purged
	ErrInvalidHandle = errors.New("invalid entity handle")

	// ErrMissingComponent reports an entity lacking a component a system depends on
	ErrMissingComponent = errors.New("missing component")

	// ErrDegenerateGeometry reports zero-length vectors or malformed shapes
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrConfiguration reports invalid tunables, fatal at initialization
	ErrConfiguration = errors.New("invalid configuration")
)
