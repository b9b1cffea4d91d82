package sim

import "errors"

// Sentinel errors returned by constructors and the generator.
// Callers match them with errors.Is; everything else is retry churn
// that never leaves the package.
var (
	// ErrInvalidParameter reports a rate, probability or bound outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConfigurationMismatch reports a malformed skyline schedule
	// (length mismatch or non-increasing interval times).
	ErrConfigurationMismatch = errors.New("configuration mismatch")

	// ErrSimulationExhausted reports that a capped number of generation
	// attempts all failed to satisfy the tip bounds.
	ErrSimulationExhausted = errors.New("simulation attempts exhausted")

	// ErrDegenerateProcess reports a schedule that can never produce the
	// requested number of sampled tips (e.g. sampling impossible in every
	// interval).
	ErrDegenerateProcess = errors.New("degenerate process")
)
