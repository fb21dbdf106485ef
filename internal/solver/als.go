package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// alsSet is an Almost Locked Set: n empty cells, confined to a single
// house for tractability, whose candidates union to exactly n+1 digits.
type alsSet struct {
	cells []position.Position
	cand  bitset.Set
}

// findALS enumerates every ALS of size 2..4 within each house.
func findALS(g *engine.Grid) []alsSet {
	var out []alsSet
	for _, u := range units() {
		var empties []position.Position
		for _, p := range u {
			if g.Cells[p.Index()].Value == 0 {
				empties = append(empties, p)
			}
		}
		for size := 2; size <= 4 && size <= len(empties); size++ {
			combinations(len(empties), size, func(idx []int) {
				cells := make([]position.Position, size)
				var union bitset.Set
				for i, ix := range idx {
					cells[i] = empties[ix]
					union = union.Union(g.Cells[cells[i].Index()].Candidates)
				}
				if union.Count() == size+1 {
					out = append(out, alsSet{cells: append([]position.Position{}, cells...), cand: union})
				}
			})
		}
	}
	return out
}

func sharesCellWith(a, b alsSet) bool {
	for _, p := range a.cells {
		if containsPos(b.cells, p) {
			return true
		}
	}
	return false
}

// detectALSXZ pairs up ALSs linked by a restricted-common digit x (every
// cell holding x in one ALS sees every cell holding x in the other),
// eliminating any second shared digit z from cells outside both ALSs that
// see every z-holding cell in both.
func detectALSXZ(g *engine.Grid) []Step {
	var steps []Step
	alsList := findALS(g)
	for i := 0; i < len(alsList); i++ {
		for j := i + 1; j < len(alsList); j++ {
			a, b := alsList[i], alsList[j]
			if sharesCellWith(a, b) {
				continue
			}
			common := a.cand.Intersect(b.cand)
			if common.Count() < 2 {
				continue
			}
			for _, x := range common.Digits() {
				if !restrictedCommon(g, a, b, x) {
					continue
				}
				for _, z := range common.Digits() {
					if z == x {
						continue
					}
					zCellsA := cellsWithDigit(g, a.cells, z)
					zCellsB := cellsWithDigit(g, b.cells, z)
					if len(zCellsA) == 0 || len(zCellsB) == 0 {
						continue
					}
					var elims []Elimination
					for idx, cell := range g.Cells {
						p := position.FromIndex(idx)
						if cell.Value != 0 || !cell.Candidates.Has(z) {
							continue
						}
						if containsPos(a.cells, p) || containsPos(b.cells, p) {
							continue
						}
						if seesAll(p, zCellsA) && seesAll(p, zCellsB) {
							elims = append(elims, Elimination{Pos: p, Digit: z})
						}
					}
					if len(elims) == 0 {
						continue
					}
					hl := append(append([]position.Position{}, a.cells...), b.cells...)
					steps = append(steps, Step{
						Technique:  ALSXZ,
						Highlights: hl,
						Action:     Action{Eliminate: elims},
						Message:    fmt.Sprintf("als-xz restricted on %d eliminates %d", x, z),
					})
				}
			}
		}
	}
	return steps
}

func restrictedCommon(g *engine.Grid, a, b alsSet, x int) bool {
	xa := cellsWithDigit(g, a.cells, x)
	xb := cellsWithDigit(g, b.cells, x)
	if len(xa) == 0 || len(xb) == 0 {
		return false
	}
	for _, p := range xa {
		for _, q := range xb {
			if !sharedUnit(p, q) {
				return false
			}
		}
	}
	return true
}

func cellsWithDigit(g *engine.Grid, cells []position.Position, d int) []position.Position {
	var out []position.Position
	for _, p := range cells {
		if cellHas(g, p, d) {
			out = append(out, p)
		}
	}
	return out
}

func seesAll(p position.Position, cells []position.Position) bool {
	for _, c := range cells {
		if !sharedUnit(p, c) {
			return false
		}
	}
	return true
}
