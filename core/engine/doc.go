// Package engine resolves a sparse literature Study into a complete,
// dimensionally consistent parameter set.
//
// Resolution is a fixed table of stages run in order. Each stage sees the raw
// study and the values earlier stages produced, chooses exactly one formula
// variant from which inputs are present, and records the inputs it used
// (Provenance). Stages never overwrite earlier values.
//
// Input problems surface as *MissingInputError or *ConflictingInputsError.
// Dimension mismatches inside the quantity substrate surface as *StageError
// wrapping quantity.ErrDimensionMismatch. No partial result is ever returned.
//
// The engine does no I/O and keeps no per-study state, so callers may resolve
// many studies concurrently.
package engine
