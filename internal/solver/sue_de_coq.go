package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectSueDeCoq finds 2-3 intersection cells C of a box and a line whose
// combined candidates V number |C|+2, plus one bivalue cell in the rest of
// the line and one in the rest of the box, both drawing from V with
// disjoint pairs. The |C|+2 cells then use every digit of V exactly once,
// so each bivalue's digits are spoken for in its own house and the
// leftover digits are locked into C, clearing them from both houses.
func detectSueDeCoq(g *engine.Grid) []Step {
	var steps []Step
	for b := 0; b < position.GridSize; b++ {
		box := boxCells(b)
		for _, byRow := range []bool{true, false} {
			for off := 0; off < 3; off++ {
				line := crossingLine(b, off, byRow)
				steps = append(steps, sueDeCoqIntersection(g, box, line)...)
			}
		}
	}
	return steps
}

// crossingLine returns the off-th row (or column) passing through box b.
func crossingLine(b, off int, byRow bool) []position.Position {
	out := make([]position.Position, 0, 9)
	if byRow {
		r := (b/3)*3 + off
		for c := 0; c < position.GridSize; c++ {
			out = append(out, position.New(r, c))
		}
		return out
	}
	c := (b%3)*3 + off
	for r := 0; r < position.GridSize; r++ {
		out = append(out, position.New(r, c))
	}
	return out
}

func sueDeCoqIntersection(g *engine.Grid, box, line []position.Position) []Step {
	var inter []position.Position
	for _, p := range box {
		if containsPos(line, p) && g.Cells[p.Index()].Value == 0 {
			inter = append(inter, p)
		}
	}
	if len(inter) < 2 {
		return nil
	}

	var steps []Step
	for size := 2; size <= len(inter); size++ {
		combinations(len(inter), size, func(idx []int) {
			cells := make([]position.Position, size)
			var v bitset.Set
			for i, ix := range idx {
				cells[i] = inter[ix]
				v = v.Union(g.Cells[cells[i].Index()].Candidates)
			}
			if v.Count() != size+2 {
				return
			}
			steps = append(steps, sueDeCoqPairings(g, box, line, cells, v)...)
		})
	}
	return steps
}

func sueDeCoqPairings(g *engine.Grid, box, line []position.Position, cells []position.Position, v bitset.Set) []Step {
	lineMates := bivalueMates(g, line, cells, box, v)
	boxMates := bivalueMates(g, box, cells, line, v)
	var steps []Step
	for _, a := range lineMates {
		aCand := g.Cells[a.Index()].Candidates
		for _, b := range boxMates {
			bCand := g.Cells[b.Index()].Candidates
			if !aCand.Intersect(bCand).IsEmpty() {
				continue
			}
			locked := v.Diff(aCand).Diff(bCand)

			var elims []Elimination
			for _, p := range line {
				if containsPos(cells, p) || p == a {
					continue
				}
				for _, d := range aCand.Union(locked).Digits() {
					if cellHas(g, p, d) {
						elims = append(elims, Elimination{Pos: p, Digit: d})
					}
				}
			}
			for _, p := range box {
				if containsPos(cells, p) || p == b || containsPos(line, p) {
					continue
				}
				for _, d := range bCand.Union(locked).Digits() {
					if cellHas(g, p, d) {
						elims = append(elims, Elimination{Pos: p, Digit: d})
					}
				}
			}
			if len(elims) == 0 {
				continue
			}
			hl := append([]position.Position{a, b}, cells...)
			steps = append(steps, Step{
				Technique:  SueDeCoq,
				Highlights: hl,
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("sue de coq locks %d digits across a box/line intersection", v.Count()),
			})
		}
	}
	return steps
}

// bivalueMates lists bivalue cells of house that sit outside both the
// intersection cells and the other house, and draw only from v.
func bivalueMates(g *engine.Grid, house, cells, other []position.Position, v bitset.Set) []position.Position {
	var out []position.Position
	for _, p := range house {
		if containsPos(cells, p) || containsPos(other, p) {
			continue
		}
		cand := g.Cells[p.Index()].Candidates
		if g.Cells[p.Index()].Value == 0 && cand.Count() == 2 && cand.IsSubsetOf(v) {
			out = append(out, p)
		}
	}
	return out
}
