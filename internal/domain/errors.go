package domain

import "errors"

// Error taxonomy shared by routing, registry and persistence.
// Callers match with errors.Is; only boundary layers turn these into messages.
var (
	// A city, package or direct edge does not exist.
	ErrNotFound = errors.New("not found")
	// Both cities exist but no route connects them.
	ErrNoPath = errors.New("no path")
	// Reading or writing persisted registry state failed.
	ErrStorage = errors.New("storage failure")
	// Precondition violation: non-positive speed, degenerate route, malformed code.
	ErrInvalidArgument = errors.New("invalid argument")
)
