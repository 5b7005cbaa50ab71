package component

import "errors"

var (
	// ErrCycleDetected is returned when a component is reachable from itself
	// while being serialized.
	ErrCycleDetected = errors.New("component cycle detected")

	// ErrMalformedJSON is returned for structurally invalid JSON input.
	ErrMalformedJSON = errors.New("malformed component json")

	// ErrUnknownAction is returned for a click or hover action name outside
	// the known set.
	ErrUnknownAction = errors.New("unknown event action")
)
