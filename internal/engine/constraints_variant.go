package engine

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/position"
)

// Cage is a Killer Sudoku cage: a set of cells whose values must be
// pairwise distinct and sum to Sum. Grid stores Cages so that clones can
// rebuild the KillerCage constraint without deep-cloning the constraint
// object itself.
type Cage struct {
	Cells []position.Position
	Sum   int
}

func (c Cage) contains(pos position.Position) bool {
	for _, p := range c.Cells {
		if p == pos {
			return true
		}
	}
	return false
}

// killerCageConstraint enforces within-cage uniqueness and the running/
// final sum rule: the partial sum may never exceed the target, and the
// placement that fills the cage must land exactly on it.
type killerCageConstraint struct {
	cage Cage
}

func (c killerCageConstraint) Name() string {
	return fmt.Sprintf("killer_cage_%d", c.cage.Sum)
}

func (c killerCageConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	if !c.cage.contains(pos) {
		return true
	}
	sum := 0
	hasEmpty := false
	var seen bitset.Set
	for _, p := range c.cage.Cells {
		val := g.Cells[p.Index()].Value
		if p == pos {
			val = v
		}
		if val == 0 {
			hasEmpty = true
			continue
		}
		if seen.Has(val) {
			return false
		}
		seen = seen.Insert(val)
		sum += val
	}
	if hasEmpty {
		return sum <= c.cage.Sum
	}
	return sum == c.cage.Sum
}

func (c killerCageConstraint) AffectedCells(pos position.Position) []position.Position {
	if !c.cage.contains(pos) {
		return nil
	}
	out := make([]position.Position, 0, len(c.cage.Cells)-1)
	for _, p := range c.cage.Cells {
		if p != pos {
			out = append(out, p)
		}
	}
	return out
}

// thermoConstraint enforces strict monotone increase along an ordered path
// of cells.
type thermoConstraint struct {
	path []position.Position
}

func (c thermoConstraint) indexOf(pos position.Position) int {
	for i, p := range c.path {
		if p == pos {
			return i
		}
	}
	return -1
}

func (c thermoConstraint) Name() string { return "thermo" }

func (c thermoConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	i := c.indexOf(pos)
	if i < 0 {
		return true
	}
	for j := 0; j < i; j++ {
		if val := g.Cells[c.path[j].Index()].Value; val != 0 && val >= v {
			return false
		}
	}
	for j := i + 1; j < len(c.path); j++ {
		if val := g.Cells[c.path[j].Index()].Value; val != 0 && val <= v {
			return false
		}
	}
	return true
}

func (c thermoConstraint) AffectedCells(pos position.Position) []position.Position {
	i := c.indexOf(pos)
	if i < 0 {
		return nil
	}
	out := make([]position.Position, 0, len(c.path)-1)
	for j, p := range c.path {
		if j != i {
			out = append(out, p)
		}
	}
	return out
}

// germanWhispersConstraint enforces that every two adjacent cells along a
// line differ by at least 5.
type germanWhispersConstraint struct {
	line []position.Position
}

func (c germanWhispersConstraint) Name() string { return "german_whispers" }

func (c germanWhispersConstraint) neighbors(pos position.Position) []position.Position {
	var out []position.Position
	for i, p := range c.line {
		if p != pos {
			continue
		}
		if i > 0 {
			out = append(out, c.line[i-1])
		}
		if i < len(c.line)-1 {
			out = append(out, c.line[i+1])
		}
	}
	return out
}

func (c germanWhispersConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	for _, n := range c.neighbors(pos) {
		if other := g.Cells[n.Index()].Value; other != 0 {
			diff := v - other
			if diff < 0 {
				diff = -diff
			}
			if diff < 5 {
				return false
			}
		}
	}
	return true
}

func (c germanWhispersConstraint) AffectedCells(pos position.Position) []position.Position {
	return c.neighbors(pos)
}

// renbanConstraint enforces that a line's values are pairwise distinct and
// form a consecutive run once sorted.
type renbanConstraint struct {
	line []position.Position
}

func (c renbanConstraint) Name() string { return "renban" }

func (c renbanConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	if !c.contains(pos) {
		return true
	}
	values := make([]int, 0, len(c.line))
	minVal, maxVal := v, v
	filled := 0
	for _, p := range c.line {
		val := g.Cells[p.Index()].Value
		if p == pos {
			val = v
		}
		if val == 0 {
			continue
		}
		filled++
		for _, seen := range values {
			if seen == val {
				return false
			}
		}
		values = append(values, val)
		if val < minVal {
			minVal = val
		}
		if val > maxVal {
			maxVal = val
		}
	}
	return maxVal-minVal+1 <= len(c.line)
}

func (c renbanConstraint) contains(pos position.Position) bool {
	for _, p := range c.line {
		if p == pos {
			return true
		}
	}
	return false
}

func (c renbanConstraint) AffectedCells(pos position.Position) []position.Position {
	if !c.contains(pos) {
		return nil
	}
	out := make([]position.Position, 0, len(c.line)-1)
	for _, p := range c.line {
		if p != pos {
			out = append(out, p)
		}
	}
	return out
}
