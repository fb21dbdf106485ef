package engine

import "github.com/kvanta/ukodus-core/internal/position"

// Constraint is a predicate family over the grid: it can check whether
// placing v at pos would be legal, and it knows which other cells a
// placement at pos would affect.
//
// Validate must only ever consult peer cells, never the cell at pos itself,
// so that a single Validate call serves both "would this placement be
// legal" (pos not yet holding v) and "is this already-filled cell legal"
// (pos already holding v) without special-casing self-conflicts.
type Constraint interface {
	// Name returns a human-readable identifier, used in
	// ConstraintViolationError and Grid.Validate's violation reports.
	Name() string

	// Validate reports whether placing v at pos is legal given the rest of
	// the grid's current state.
	Validate(g *Grid, pos position.Position, v int) bool

	// AffectedCells returns the peer positions whose candidates a
	// placement at pos can influence under this constraint.
	AffectedCells(pos position.Position) []position.Position
}
