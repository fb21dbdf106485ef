package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

const nishioDepth = 25

// detectNishioForcingChain tries each candidate of thinly-constrained cells
// in turn, propagating singles forward; a candidate that leads to a cell
// running out of candidates is contradictory and gets eliminated
// (the single-candidate "Nishio" form).
func detectNishioForcingChain(g *engine.Grid) []Step {
	var steps []Step
	for idx, cell := range g.Cells {
		if cell.Value != 0 || cell.Candidates.Count() < 2 || cell.Candidates.Count() > 3 {
			continue
		}
		pos := position.FromIndex(idx)
		for _, d := range cell.Candidates.Digits() {
			if !contradicts(g, pos, d) {
				continue
			}
			steps = append(steps, Step{
				Technique:  NishioForcingChain,
				Highlights: []position.Position{pos},
				Action:     Action{Eliminate: []Elimination{{Pos: pos, Digit: d}}},
				Message:    fmt.Sprintf("nishio: placing %d at %s leads to a contradiction", d, pos),
			})
		}
	}
	return steps
}

// contradicts assumes pos=d, propagates forced singles, and reports
// whether that assumption empties some cell's candidate set or produces an
// outright constraint violation.
func contradicts(g *engine.Grid, pos position.Position, d int) bool {
	clone := g.Clone()
	if err := clone.SetValue(pos, d); err != nil {
		return true
	}
	for step := 0; step < nishioDepth; step++ {
		progressed := false
		for idx, c := range clone.Cells {
			if c.Value != 0 {
				continue
			}
			p := position.FromIndex(idx)
			if c.Candidates.IsEmpty() {
				return true
			}
			if v, ok := c.Candidates.Single(); ok {
				if err := clone.SetValue(p, v); err != nil {
					return true
				}
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return false
}
