package telemetry

import "errors"

// Error kinds reported by the telemetry and chart layers. Callers match
// them with errors.Is; the wrapped message carries the offending driver
// or column name.
var (
	// ErrInput marks malformed or incomplete telemetry.
	ErrInput = errors.New("invalid telemetry input")

	// ErrLengthMismatch marks paired inputs (series/labels, or parallel
	// sample columns) whose lengths disagree.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrMissingColumn marks a required column that is absent from a
	// series or a session-level table.
	ErrMissingColumn = errors.New("missing column")
)
