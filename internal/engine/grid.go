// Package engine implements the Grid/Cell/Constraint data model that both
// the solver and the generator operate on.
package engine

import (
	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/logger"
	"github.com/kvanta/ukodus-core/internal/position"
)

// Variant selects a Grid's base constraint set.
type Variant int

const (
	VariantClassic Variant = iota
	VariantXSudoku
	VariantKiller
)

func (v Variant) String() string {
	switch v {
	case VariantClassic:
		return "classic"
	case VariantXSudoku:
		return "x_sudoku"
	case VariantKiller:
		return "killer"
	default:
		return "unknown"
	}
}

// Grid is a fixed 9x9 array of Cells plus the variant tag and constraint
// list that let a cloned or round-tripped grid reconstruct its rules.
type Grid struct {
	Cells [position.TotalCells]Cell

	variant      Variant
	cages        []Cage
	thermoPaths  [][]position.Position
	whisperLines [][]position.Position
	renbanLines  [][]position.Position
	constraints  []Constraint
}

// NewGrid creates an empty grid of the given variant. cages is only
// meaningful (and required to be non-empty) for VariantKiller.
func NewGrid(variant Variant, cages []Cage) *Grid {
	g := &Grid{variant: variant, cages: cages}
	g.rebuildConstraints()
	for i := range g.Cells {
		g.Cells[i].Candidates = bitset.Full
	}
	return g
}

func (g *Grid) rebuildConstraints() {
	cs := make([]Constraint, 0, 27)
	for i := 0; i < position.GridSize; i++ {
		cs = append(cs, rowConstraint{row: i}, columnConstraint{col: i}, boxConstraint{box: i})
	}
	if g.variant == VariantXSudoku {
		cs = append(cs, diagonalConstraint{main: true}, diagonalConstraint{main: false})
	}
	if g.variant == VariantKiller {
		for _, cage := range g.cages {
			cs = append(cs, killerCageConstraint{cage: cage})
		}
	}
	for _, path := range g.thermoPaths {
		cs = append(cs, thermoConstraint{path: path})
	}
	for _, line := range g.whisperLines {
		cs = append(cs, germanWhispersConstraint{line: line})
	}
	for _, line := range g.renbanLines {
		cs = append(cs, renbanConstraint{line: line})
	}
	g.constraints = cs
}

// Variant returns the grid's variant tag.
func (g *Grid) Variant() Variant { return g.variant }

// Cages returns the Killer cages attached to the grid, if any.
func (g *Grid) Cages() []Cage { return g.cages }

// Constraints returns the grid's live constraint list.
func (g *Grid) Constraints() []Constraint { return g.constraints }

// AttachThermo adds a Thermo constraint along path to the grid. It is
// additive and independent of Variant.
func (g *Grid) AttachThermo(path []position.Position) {
	g.thermoPaths = append(g.thermoPaths, path)
	g.rebuildConstraints()
}

// AttachGermanWhispers adds a German Whispers line to the grid: adjacent
// cells along line must differ by at least 5.
func (g *Grid) AttachGermanWhispers(line []position.Position) {
	g.whisperLines = append(g.whisperLines, line)
	g.rebuildConstraints()
}

// AttachRenban adds a Renban line to the grid: line's values must be
// pairwise distinct and form a consecutive run once sorted.
func (g *Grid) AttachRenban(line []position.Position) {
	g.renbanLines = append(g.renbanLines, line)
	g.rebuildConstraints()
}

// canPlace reports whether every constraint accepts v at pos.
func (g *Grid) canPlace(pos position.Position, v int) bool {
	for _, k := range g.constraints {
		if !k.Validate(g, pos, v) {
			return false
		}
	}
	return true
}

// violatingConstraint returns the first constraint that rejects v at pos,
// or nil if none does.
func (g *Grid) violatingConstraint(pos position.Position, v int) Constraint {
	for _, k := range g.constraints {
		if !k.Validate(g, pos, v) {
			return k
		}
	}
	return nil
}

// SetValue places v at pos, failing when the cell is given, v or pos is
// out of range, or a constraint rejects the placement. On success every
// constraint's affected peers have v removed from their candidate sets
// (lazy maintenance, no full recompute).
func (g *Grid) SetValue(pos position.Position, v int) error {
	if !pos.Valid() {
		return ErrPositionOutOfBounds
	}
	if v < 1 || v > 9 {
		return ErrValueOutOfRange
	}
	cell := &g.Cells[pos.Index()]
	if cell.Given {
		return ErrCellIsGiven
	}
	if k := g.violatingConstraint(pos, v); k != nil {
		return &ConstraintViolationError{Name: k.Name()}
	}
	g.PlaceUnchecked(pos, v)
	logger.Place(pos, v, "set_value")
	return nil
}

// PlaceUnchecked places v at pos without validating constraints, trusting
// the caller (solver search, generator synthesis) to have already reasoned
// about legality via the candidate bitmasks. This is the path internal
// search code uses on deep clones.
func (g *Grid) PlaceUnchecked(pos position.Position, v int) {
	idx := pos.Index()
	g.Cells[idx].Value = v
	g.Cells[idx].Candidates = bitset.Empty

	for _, k := range g.constraints {
		for _, peer := range k.AffectedCells(pos) {
			pc := &g.Cells[peer.Index()]
			if pc.Value == 0 && pc.Candidates.Has(v) {
				pc.Candidates = pc.Candidates.Remove(v)
				logger.Eliminate(peer, v, "peer_of_placement")
			}
		}
	}
}

// PlaceGiven marks pos as a given cell holding v. Only the generator
// should call this; it bypasses the given-immutability check because the
// cell is, by definition, not given yet.
func (g *Grid) PlaceGiven(pos position.Position, v int) {
	g.PlaceUnchecked(pos, v)
	g.Cells[pos.Index()].Given = true
}

// Clear resets a non-given cell to empty, restoring any candidate that is
// no longer forbidden by the rest of the board.
func (g *Grid) Clear(pos position.Position) error {
	if !pos.Valid() {
		return ErrPositionOutOfBounds
	}
	cell := &g.Cells[pos.Index()]
	if cell.Given {
		return ErrCellIsGiven
	}
	if cell.Value == 0 {
		return nil
	}
	cell.Value = 0
	cell.Candidates = g.computeCandidates(pos)

	for _, k := range g.constraints {
		for _, peer := range k.AffectedCells(pos) {
			pc := &g.Cells[peer.Index()]
			if pc.Value != 0 {
				continue
			}
			for d := 1; d <= 9; d++ {
				if !pc.Candidates.Has(d) && g.canPlace(peer, d) {
					pc.Candidates = pc.Candidates.Insert(d)
				}
			}
		}
	}
	return nil
}

func (g *Grid) computeCandidates(pos position.Position) bitset.Set {
	var s bitset.Set
	for d := 1; d <= 9; d++ {
		if g.canPlace(pos, d) {
			s = s.Insert(d)
		}
	}
	return s
}

// RecalculateCandidates rebuilds every empty cell's candidate set from
// scratch. Used after bulk edits (parsing, cloning) and by the solver
// before any run.
func (g *Grid) RecalculateCandidates() {
	for idx := range g.Cells {
		if g.Cells[idx].Value != 0 {
			g.Cells[idx].Candidates = bitset.Empty
			continue
		}
		g.Cells[idx].Candidates = g.computeCandidates(position.FromIndex(idx))
	}
}

// RemoveCandidate eliminates v from pos's candidates, reporting whether it
// was actually present. Used by the solver to apply EliminateCandidates
// hints.
func (g *Grid) RemoveCandidate(pos position.Position, v int) bool {
	cell := &g.Cells[pos.Index()]
	if cell.Value != 0 || !cell.Candidates.Has(v) {
		return false
	}
	cell.Candidates = cell.Candidates.Remove(v)
	return true
}

// IsComplete reports whether every cell is filled and the grid validates.
func (g *Grid) IsComplete() bool {
	for _, c := range g.Cells {
		if c.Value == 0 {
			return false
		}
	}
	ok, _ := g.Validate()
	return ok
}

// Violation describes one constraint a filled cell fails.
type Violation struct {
	Pos        position.Position
	Constraint string
}

// Validate re-checks every filled cell against every constraint, returning
// every violation found.
func (g *Grid) Validate() (bool, []Violation) {
	var violations []Violation
	for idx, cell := range g.Cells {
		if cell.Value == 0 {
			continue
		}
		pos := position.FromIndex(idx)
		for _, k := range g.constraints {
			if !k.Validate(g, pos, cell.Value) {
				violations = append(violations, Violation{Pos: pos, Constraint: k.Name()})
			}
		}
	}
	return len(violations) == 0, violations
}

// Clone deep-copies the grid. Cells are copied by value (the array holds
// no pointers); constraints are rebuilt from the variant tag and stored
// cage/thermo data rather than copied.
func (g *Grid) Clone() *Grid {
	ng := &Grid{
		variant: g.variant,
		cages:   append([]Cage(nil), g.cages...),
	}
	ng.thermoPaths = append([][]position.Position(nil), g.thermoPaths...)
	ng.whisperLines = append([][]position.Position(nil), g.whisperLines...)
	ng.renbanLines = append([][]position.Position(nil), g.renbanLines...)
	ng.Cells = g.Cells
	ng.rebuildConstraints()
	return ng
}

// GivenCount returns the number of cells marked given.
func (g *Grid) GivenCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Given {
			n++
		}
	}
	return n
}

// FilledCount returns the number of non-empty cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Value != 0 {
			n++
		}
	}
	return n
}
