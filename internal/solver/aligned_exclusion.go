package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectAlignedPairExclusion enumerates every joint assignment of two
// mutually-visible cells and keeps the assignments the grid's constraints
// allow; a candidate of a common peer that survives in none of them is
// excluded.
func detectAlignedPairExclusion(g *engine.Grid) []Step {
	var steps []Step
	for i := 0; i < position.TotalCells; i++ {
		p := position.FromIndex(i)
		if !alignedCellEligible(g, p, 4) {
			continue
		}
		for j := i + 1; j < position.TotalCells; j++ {
			q := position.FromIndex(j)
			if !alignedCellEligible(g, q, 4) || !sharedUnit(p, q) {
				continue
			}
			steps = append(steps, alignedExclusion(g, []position.Position{p, q}, AlignedPairExclusion)...)
		}
	}
	return steps
}

// detectAlignedTripleExclusion is the three-cell form, restricted to
// cells with at most three candidates to bound the combination count.
func detectAlignedTripleExclusion(g *engine.Grid) []Step {
	var steps []Step
	for i := 0; i < position.TotalCells; i++ {
		p := position.FromIndex(i)
		if !alignedCellEligible(g, p, 3) {
			continue
		}
		for j := i + 1; j < position.TotalCells; j++ {
			q := position.FromIndex(j)
			if !alignedCellEligible(g, q, 3) || !sharedUnit(p, q) {
				continue
			}
			for k := j + 1; k < position.TotalCells; k++ {
				r := position.FromIndex(k)
				if !alignedCellEligible(g, r, 3) || !sharedUnit(p, r) || !sharedUnit(q, r) {
					continue
				}
				steps = append(steps, alignedExclusion(g, []position.Position{p, q, r}, AlignedTripleExclusion)...)
			}
		}
	}
	return steps
}

func alignedCellEligible(g *engine.Grid, p position.Position, maxCand int) bool {
	c := g.Cells[p.Index()]
	return c.Value == 0 && c.Candidates.Count() >= 2 && c.Candidates.Count() <= maxCand
}

// alignedExclusion tries every joint assignment of cells, collecting the
// grids that survive placement, then excludes common-peer candidates dead
// in all of them. The true solution's assignment is always among the
// survivors, so anything dead everywhere is dead in the solution.
func alignedExclusion(g *engine.Grid, cells []position.Position, t Technique) []Step {
	branches := validAssignments(g, cells)
	if len(branches) == 0 {
		return nil
	}

	var elims []Elimination
	for idx, cell := range g.Cells {
		p := position.FromIndex(idx)
		if cell.Value != 0 || containsPos(cells, p) || !seesAll(p, cells) {
			continue
		}
		for _, z := range cell.Candidates.Digits() {
			alive := false
			for _, br := range branches {
				if br.Cells[p.Index()].Candidates.Has(z) {
					alive = true
					break
				}
			}
			if !alive {
				elims = append(elims, Elimination{Pos: p, Digit: z})
			}
		}
	}
	if len(elims) == 0 {
		return nil
	}
	return []Step{{
		Technique:  t,
		Highlights: cells,
		Action:     Action{Eliminate: elims},
		Message:    fmt.Sprintf("%s: every legal assignment of %v forbids the excluded candidates", t, cells),
	}}
}

// validAssignments places each combination of the cells' candidates on a
// clone, dropping combinations a constraint rejects or that strip some
// empty cell of its last candidate.
func validAssignments(g *engine.Grid, cells []position.Position) []*engine.Grid {
	var out []*engine.Grid
	var assign func(clone *engine.Grid, i int)
	assign = func(clone *engine.Grid, i int) {
		if i == len(cells) {
			for _, c := range clone.Cells {
				if c.Value == 0 && c.Candidates.IsEmpty() {
					return
				}
			}
			out = append(out, clone)
			return
		}
		for _, d := range g.Cells[cells[i].Index()].Candidates.Digits() {
			next := clone.Clone()
			if err := next.SetValue(cells[i], d); err != nil {
				continue
			}
			assign(next, i+1)
		}
	}
	assign(g.Clone(), 0)
	return out
}
