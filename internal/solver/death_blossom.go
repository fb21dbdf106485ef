package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// petalsPerCandidate bounds the ALS choices tried per stem digit.
const petalsPerCandidate = 8

// detectDeathBlossom anchors a stem cell whose every candidate owns an ALS
// petal fully visible from the stem. Whichever stem digit is true strips
// that digit from its petal, locking the petal and forcing its other
// digits, so a digit common to all petals (and absent from the stem) is
// true in some petal regardless of the stem's value; cells seeing all of
// its petal positions lose it.
func detectDeathBlossom(g *engine.Grid) []Step {
	alsList := findALS(g)
	var steps []Step
	for idx, cell := range g.Cells {
		if cell.Value != 0 || cell.Candidates.Count() < 2 || cell.Candidates.Count() > 3 {
			continue
		}
		stem := position.FromIndex(idx)
		digits := cell.Candidates.Digits()
		petals := make([][]alsSet, len(digits))
		feasible := true
		for i, v := range digits {
			for _, a := range alsList {
				if len(petals[i]) == petalsPerCandidate {
					break
				}
				if a.cand.Has(v) && petalSeesStem(a, stem) {
					petals[i] = append(petals[i], a)
				}
			}
			if len(petals[i]) == 0 {
				feasible = false
				break
			}
		}
		if !feasible {
			continue
		}
		chosen := make([]alsSet, len(digits))
		steps = append(steps, blossomCombos(g, stem, cell.Candidates.Digits(), petals, chosen, 0)...)
	}
	return steps
}

func petalSeesStem(a alsSet, stem position.Position) bool {
	for _, p := range a.cells {
		if p == stem || !sharedUnit(p, stem) {
			return false
		}
	}
	return true
}

// blossomCombos walks the cartesian product of petal choices, requiring
// pairwise-disjoint petals before scoring eliminations.
func blossomCombos(g *engine.Grid, stem position.Position, digits []int, petals [][]alsSet, chosen []alsSet, i int) []Step {
	if i == len(digits) {
		return blossomEliminations(g, stem, digits, chosen)
	}
	var steps []Step
	for _, a := range petals[i] {
		disjoint := true
		for j := 0; j < i; j++ {
			if sharesCellWith(chosen[j], a) {
				disjoint = false
				break
			}
		}
		if !disjoint {
			continue
		}
		chosen[i] = a
		steps = append(steps, blossomCombos(g, stem, digits, petals, chosen, i+1)...)
	}
	return steps
}

func blossomEliminations(g *engine.Grid, stem position.Position, digits []int, petals []alsSet) []Step {
	common := petals[0].cand
	for _, a := range petals[1:] {
		common = common.Intersect(a.cand)
	}
	for _, v := range digits {
		common = common.Remove(v)
	}
	if common.IsEmpty() {
		return nil
	}

	var steps []Step
	for _, z := range common.Digits() {
		var zCells []position.Position
		for _, a := range petals {
			zCells = append(zCells, cellsWithDigit(g, a.cells, z)...)
		}
		var elims []Elimination
		for idx, cell := range g.Cells {
			p := position.FromIndex(idx)
			if cell.Value != 0 || !cell.Candidates.Has(z) || p == stem {
				continue
			}
			inPetal := false
			for _, a := range petals {
				if containsPos(a.cells, p) {
					inPetal = true
					break
				}
			}
			if inPetal || !seesAll(p, zCells) {
				continue
			}
			elims = append(elims, Elimination{Pos: p, Digit: z})
		}
		if len(elims) == 0 {
			continue
		}
		hl := []position.Position{stem}
		for _, a := range petals {
			hl = append(hl, a.cells...)
		}
		steps = append(steps, Step{
			Technique:  DeathBlossom,
			Highlights: hl,
			Action:     Action{Eliminate: elims},
			Message:    fmt.Sprintf("death blossom on stem %s forces %d into a petal", stem, z),
		})
	}
	return steps
}
