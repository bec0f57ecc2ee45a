package ga

import "errors"

// Error kinds. Wrapped with fmt.Errorf("...: %w", <kind>) so callers use
// errors.Is against these sentinels instead of string matching.
var (
	// ErrConfiguration marks a configuration error caught before or at
	// Run() start: bad sizes, invalid ranges, a stall stop condition
	// requested in a multi-objective mode, and so on. The run never
	// starts.
	ErrConfiguration = errors.New("ga: configuration error")

	// ErrContractViolation marks a violation of the external-collaborator
	// contract discovered mid-run: a fitness vector of the wrong arity, a
	// non-finite fitness element, or a repair function returning a
	// chromosome of the wrong length. The generation aborts; no partial
	// population is returned.
	ErrContractViolation = errors.New("ga: contract violation")

	// ErrInternal marks an invariant breach that should be unreachable
	// (an unhandled Mode/SogaSelection/StopKind value reaching a switch's
	// default case). Reaching this is always a bug in this package, never
	// in caller-supplied configuration or collaborators.
	ErrInternal = errors.New("ga: internal invariant breach")
)
