package engine

import "github.com/kvanta/ukodus-core/internal/bitset"

// Cell is either empty (Value == 0, Candidates holds the digits still
// possible) or filled (Value in 1..9, Candidates == bitset.Empty). A cell
// additionally carries Given, set only by the generator, marking it
// immutable to both the solver and the player.
type Cell struct {
	Value      int
	Candidates bitset.Set
	Given      bool
}

// IsEmpty reports whether the cell has no value.
func (c Cell) IsEmpty() bool {
	return c.Value == 0
}

// GetCandidates returns the cell's candidate set. Querying a filled
// cell returns the empty set rather than an
// error; callers that care should check IsEmpty first.
func (c Cell) GetCandidates() bitset.Set {
	if !c.IsEmpty() {
		return bitset.Empty
	}
	return c.Candidates
}
