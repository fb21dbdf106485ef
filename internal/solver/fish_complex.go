package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// sector indexing: rows 0-8, cols 9-17, boxes 18-26.
func sectorOf(idx int) unitKind {
	switch {
	case idx < 9:
		return unitRow
	case idx < 18:
		return unitCol
	default:
		return unitBox
	}
}

// sectorCandidates returns, for each of the 27 sectors, the positions where
// digit d is still a candidate.
func sectorCandidates(g *engine.Grid, d int) [27][]position.Position {
	var out [27][]position.Position
	for i, u := range units() {
		for _, p := range u {
			if cellHas(g, p, d) {
				out[i] = append(out[i], p)
			}
		}
	}
	return out
}

// detectComplexFish returns a detector for the franken and mutant fish of
// sizes 2-3. Base and cover sets are drawn from all 27 sectors; the fish
// is sound when the base sectors are pairwise disjoint, the cover sectors
// are pairwise disjoint, and every base candidate lies in some cover
// sector — the k true placements of the base then occupy all k covers,
// clearing the digit from every cover cell outside the base. Franken
// fish mix lines with boxes; mutant fish use all three sector kinds.
func detectComplexFish(t Technique) detector {
	return func(g *engine.Grid) []Step {
		var steps []Step
		for k := 2; k <= 3; k++ {
			for d := 1; d <= 9; d++ {
				steps = append(steps, complexFishDigit(g, d, k, t)...)
			}
		}
		return steps
	}
}

func complexFishDigit(g *engine.Grid, d, k int, t Technique) []Step {
	sectors := sectorCandidates(g, d)
	var baseIdx []int
	for i := range sectors {
		if n := len(sectors[i]); n >= 2 && n <= k+1 {
			baseIdx = append(baseIdx, i)
		}
	}
	if len(baseIdx) < k {
		return nil
	}

	var steps []Step
	combinations(len(baseIdx), k, func(idx []int) {
		bases := make([]int, k)
		for i, ix := range idx {
			bases[i] = baseIdx[ix]
		}
		baseCells := disjointUnion(sectors, bases)
		if baseCells == nil {
			return
		}
		covers := coverCandidates(sectors, bases, baseCells)
		if len(covers) < k {
			return
		}
		combinations(len(covers), k, func(cix []int) {
			coverSet := make([]int, k)
			for i, c := range cix {
				coverSet[i] = covers[c]
			}
			coverCells := disjointUnion(sectors, coverSet)
			if coverCells == nil {
				return
			}
			for _, p := range baseCells {
				if !containsPos(coverCells, p) {
					return
				}
			}
			if classifyFish(bases, coverSet) != t {
				return
			}
			var elims []Elimination
			for _, p := range coverCells {
				if !containsPos(baseCells, p) {
					elims = append(elims, Elimination{Pos: p, Digit: d})
				}
			}
			if len(elims) == 0 {
				return
			}
			steps = append(steps, Step{
				Technique:  t,
				Highlights: baseCells,
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("%s of size %d on digit %d", t, k, d),
			})
		})
	})
	return steps
}

// disjointUnion unions the candidate cells of the given sectors, returning
// nil when any two sectors share a cell.
func disjointUnion(sectors [27][]position.Position, idx []int) []position.Position {
	var out []position.Position
	for _, i := range idx {
		for _, p := range sectors[i] {
			if containsPos(out, p) {
				return nil
			}
			out = append(out, p)
		}
	}
	return out
}

// coverCandidates lists sectors (excluding the base sectors) that contain
// at least one base cell.
func coverCandidates(sectors [27][]position.Position, bases []int, baseCells []position.Position) []int {
	var out []int
	for i := range sectors {
		if containsInt(bases, i) || len(sectors[i]) == 0 {
			continue
		}
		for _, p := range sectors[i] {
			if containsPos(baseCells, p) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// classifyFish names the base/cover sector mix: basic fish keep to rows
// versus columns and are left to detectFish; a mix that touches boxes is
// franken, and one that uses rows, columns and boxes together is mutant.
func classifyFish(bases, covers []int) Technique {
	kinds := map[unitKind]bool{}
	for _, i := range bases {
		kinds[sectorOf(i)] = true
	}
	for _, i := range covers {
		kinds[sectorOf(i)] = true
	}
	switch {
	case len(kinds) == 3:
		return MutantFish
	case kinds[unitBox]:
		return FrankenFish
	default:
		return TechniqueNone // plain row/column fish, handled by detectFish
	}
}

// detectSiameseFish finds two finned fish on the same base lines and digit
// that differ only in which cover column plays the fin. Each decomposition
// is individually sound (either a fin cell holds the digit, clearing its
// seers, or the base collapses onto the two solid covers), so when two
// decompositions with fins in different boxes both eliminate, their
// eliminations combine.
func detectSiameseFish(g *engine.Grid) []Step {
	var steps []Step
	for _, baseIsRow := range []bool{true, false} {
		for d := 1; d <= 9; d++ {
			for i1 := 0; i1 < position.GridSize; i1++ {
				for i2 := i1 + 1; i2 < position.GridSize; i2++ {
					steps = append(steps, siameseFrame(g, d, baseIsRow, i1, i2)...)
				}
			}
		}
	}
	return steps
}

// siameseDecomp is one way to read a three-column base frame as a finned
// fish: two solid covers and one fin column.
type siameseDecomp struct {
	fins  []position.Position
	elims []Elimination
}

func siameseFrame(g *engine.Grid, d int, baseIsRow bool, i1, i2 int) []Step {
	var cov1, cov2 []int
	for j := 0; j < position.GridSize; j++ {
		if cellHas(g, lineCell(baseIsRow, i1, j), d) {
			cov1 = append(cov1, j)
		}
		if cellHas(g, lineCell(baseIsRow, i2, j), d) {
			cov2 = append(cov2, j)
		}
	}
	if len(cov1) < 2 || len(cov2) < 2 || len(cov1) > 3 || len(cov2) > 3 {
		return nil
	}
	var union []int
	for _, j := range append(append([]int{}, cov1...), cov2...) {
		if !containsInt(union, j) {
			union = append(union, j)
		}
	}
	if len(union) != 3 {
		return nil
	}

	var decomps []siameseDecomp
	for _, finCol := range union {
		var dec siameseDecomp
		if intIn(cov1, finCol) {
			dec.fins = append(dec.fins, lineCell(baseIsRow, i1, finCol))
		}
		if intIn(cov2, finCol) {
			dec.fins = append(dec.fins, lineCell(baseIsRow, i2, finCol))
		}
		for _, cov := range union {
			if cov == finCol {
				continue
			}
			for line := 0; line < position.GridSize; line++ {
				if line == i1 || line == i2 {
					continue
				}
				p := lineCell(baseIsRow, line, cov)
				if cellHas(g, p, d) && seesAll(p, dec.fins) {
					dec.elims = append(dec.elims, Elimination{Pos: p, Digit: d})
				}
			}
		}
		if len(dec.elims) > 0 {
			decomps = append(decomps, dec)
		}
	}

	var steps []Step
	for i := 0; i < len(decomps); i++ {
		for j := i + 1; j < len(decomps); j++ {
			a, b := decomps[i], decomps[j]
			boxes := map[int]bool{}
			for _, f := range append(append([]position.Position{}, a.fins...), b.fins...) {
				boxes[f.Box()] = true
			}
			if len(boxes) < 2 {
				continue
			}
			elims := append([]Elimination{}, a.elims...)
			for _, e := range b.elims {
				dup := false
				for _, have := range elims {
					if have == e {
						dup = true
						break
					}
				}
				if !dup {
					elims = append(elims, e)
				}
			}
			hl := append(append([]position.Position{}, a.fins...), b.fins...)
			steps = append(steps, Step{
				Technique:  SiameseFish,
				Highlights: hl,
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("siamese fish on digit %d combines two finned readings of one base frame", d),
			})
		}
	}
	return steps
}

// detectKrakenFish verifies a finned fish's fin cells by propagation: a
// cover cell that the plain finned fish cannot clear (it does not see every
// fin) still loses the digit when assuming each fin true individually
// forces that candidate out, because either some fin is true or the fins
// are all false and the basic fish eliminates it.
func detectKrakenFish(g *engine.Grid) []Step {
	var steps []Step
	for _, f := range finnedFishFinds(g) {
		for _, cov := range f.solid {
			for line := 0; line < position.GridSize; line++ {
				if line == f.bases[0] || line == f.bases[1] {
					continue
				}
				p := lineCell(f.baseIsRow, line, cov)
				if !cellHas(g, p, f.digit) || seesAll(p, f.fins) {
					continue
				}
				if !krakenFinsForceOut(g, f.fins, f.digit, p) {
					continue
				}
				hl := append([]position.Position{}, f.fins...)
				hl = append(hl, p)
				steps = append(steps, Step{
					Technique:  KrakenFish,
					Highlights: hl,
					Action:     Action{Eliminate: []Elimination{{Pos: p, Digit: f.digit}}},
					Message:    fmt.Sprintf("kraken fish on digit %d: every fin assumption clears %s", f.digit, p),
				})
			}
		}
	}
	return steps
}

// krakenFinsForceOut reports whether assuming fin=d removes candidate d
// from target under single propagation, for every fin. A fin whose
// assumption contradicts outright also counts: that fin can never be true.
func krakenFinsForceOut(g *engine.Grid, fins []position.Position, d int, target position.Position) bool {
	for _, fin := range fins {
		branch, dead := propagateSingles(g, fin, d)
		if dead {
			continue
		}
		cell := branch.Cells[target.Index()]
		if cell.Value == d || (cell.Value == 0 && cell.Candidates.Has(d)) {
			return false
		}
	}
	return true
}
