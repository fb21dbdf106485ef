package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

const fcPropagationCeiling = 50

// branchOutcome captures what a single forcing-chain branch settles,
// observed after propagation: either a cell ends up with a forced value,
// or a cell ends up missing a candidate it started with. Cell/Region FC
// intersect these across every branch of the same assumption group.
type branchOutcome struct {
	placements   map[position.Position]int
	eliminations map[position.Position]bitset.Set
	contradicted bool
}

// propagateSingles assumes pos=d on a clone of g, then repeatedly applies
// naked and hidden singles (the cheapest, always-sound techniques) up to
// fcPropagationCeiling times. It never calls back into a forcing chain
// technique
// itself.
func propagateSingles(g *engine.Grid, pos position.Position, d int) (*engine.Grid, bool) {
	clone := g.Clone()
	if err := clone.SetValue(pos, d); err != nil {
		return clone, true
	}
	for step := 0; step < fcPropagationCeiling; step++ {
		progressed := false
		for idx, c := range clone.Cells {
			if c.Value != 0 {
				continue
			}
			p := position.FromIndex(idx)
			if c.Candidates.IsEmpty() {
				return clone, true
			}
			if v, ok := c.Candidates.Single(); ok {
				if err := clone.SetValue(p, v); err != nil {
					return clone, true
				}
				progressed = true
			}
		}
		if !progressed {
			if hs := detectHiddenSingles(clone); len(hs) > 0 {
				if err := clone.SetValue(hs[0].Action.Pos, hs[0].Action.Digit); err != nil {
					return clone, true
				}
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return clone, false
}

// propagateFull is propagateSingles's Dynamic-FC counterpart: it runs
// nonForcingLadder, the rungs rated up to BUG+1, none of which is a forcing
// chain (so Dynamic FC can never recurse into itself or any other forcing
// chain).
func propagateFull(g *engine.Grid, pos position.Position, d int) (*engine.Grid, bool) {
	clone := g.Clone()
	if err := clone.SetValue(pos, d); err != nil {
		return clone, true
	}
	for step := 0; step < fcPropagationCeiling; step++ {
		progressed := false
		for _, r := range nonForcingLadder {
			found := r.detect(clone)
			if len(found) == 0 {
				continue
			}
			applyStep(clone, found[0])
			progressed = true
			break
		}
		for _, c := range clone.Cells {
			if c.Value == 0 && c.Candidates.IsEmpty() {
				return clone, true
			}
		}
		if !progressed {
			break
		}
	}
	return clone, false
}

// outcomeOf summarizes branch relative to its starting grid base: which
// cells got a forced value, and which candidates disappeared.
func outcomeOf(base, branch *engine.Grid, contradicted bool) branchOutcome {
	out := branchOutcome{
		placements:   map[position.Position]int{},
		eliminations: map[position.Position]bitset.Set{},
		contradicted: contradicted,
	}
	if contradicted {
		return out
	}
	for idx := range branch.Cells {
		p := position.FromIndex(idx)
		bc, oc := branch.Cells[idx], base.Cells[idx]
		if bc.Value != 0 && oc.Value == 0 {
			out.placements[p] = bc.Value
		}
		if oc.Value == 0 && bc.Value == 0 {
			lost := oc.Candidates.Intersect(bitset.Full) &^ bc.Candidates
			if lost != 0 {
				out.eliminations[p] = lost
			}
		}
	}
	return out
}

// intersectOutcomes returns the placements and eliminations common to
// every non-contradicted outcome. When fewer than two outcomes survive it
// returns nil maps, so that assumption group yields no step.
func intersectOutcomes(outcomes []branchOutcome) (map[position.Position]int, map[position.Position]bitset.Set) {
	live := make([]branchOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.contradicted {
			live = append(live, o)
		}
	}
	if len(live) < 2 {
		return nil, nil
	}
	places := map[position.Position]int{}
	for p, v := range live[0].placements {
		places[p] = v
	}
	elims := map[position.Position]bitset.Set{}
	for p, s := range live[0].eliminations {
		elims[p] = s
	}
	for _, o := range live[1:] {
		for p, v := range places {
			if ov, ok := o.placements[p]; !ok || ov != v {
				delete(places, p)
			}
		}
		for p, s := range elims {
			if os, ok := o.eliminations[p]; ok {
				elims[p] = s.Intersect(os)
				if elims[p] == 0 {
					delete(elims, p)
				}
			} else {
				delete(elims, p)
			}
		}
	}
	return places, elims
}

func stepsFromOutcomes(t Technique, g *engine.Grid, highlight position.Position, placements map[position.Position]int, elims map[position.Position]bitset.Set, label string) []Step {
	var steps []Step
	for p, v := range placements {
		steps = append(steps, Step{
			Technique:  t,
			Highlights: []position.Position{highlight, p},
			Action:     Action{Place: true, Pos: p, Digit: v},
			Message:    fmt.Sprintf("%s forces %d at %s", label, v, p),
		})
	}
	for p, s := range elims {
		var el []Elimination
		for _, d := range s.Digits() {
			if cellHas(g, p, d) {
				el = append(el, Elimination{Pos: p, Digit: d})
			}
		}
		if len(el) == 0 {
			continue
		}
		steps = append(steps, Step{
			Technique:  t,
			Highlights: []position.Position{highlight, p},
			Action:     Action{Eliminate: el},
			Message:    fmt.Sprintf("%s eliminates at %s", label, p),
		})
	}
	return steps
}

// detectCellForcingChain assumes each candidate of an empty cell in turn,
// propagates singles, and keeps only the placements/eliminations that hold
// under every candidate assumption.
func detectCellForcingChain(g *engine.Grid) []Step {
	var steps []Step
	for idx, cell := range g.Cells {
		if cell.Value != 0 || cell.Candidates.Count() < 3 {
			continue
		}
		pos := position.FromIndex(idx)
		var outcomes []branchOutcome
		for _, d := range cell.Candidates.Digits() {
			branch, dead := propagateSingles(g, pos, d)
			outcomes = append(outcomes, outcomeOf(g, branch, dead))
		}
		places, elims := intersectOutcomes(outcomes)
		steps = append(steps, stepsFromOutcomes(CellForcingChain, g, pos, places, elims, fmt.Sprintf("cell fc on %s", pos))...)
	}
	return steps
}

// detectRegionForcingChain does the same as Cell FC but iterates the cells
// of a house that hold a given digit as candidates, rather than a single
// cell's candidates.
func detectRegionForcingChain(g *engine.Grid) []Step {
	var steps []Step
	for d := 1; d <= 9; d++ {
		for _, u := range units() {
			var cells []position.Position
			for _, p := range u {
				if cellHas(g, p, d) {
					cells = append(cells, p)
				}
			}
			if len(cells) < 3 {
				continue
			}
			var outcomes []branchOutcome
			for _, p := range cells {
				branch, dead := propagateSingles(g, p, d)
				outcomes = append(outcomes, outcomeOf(g, branch, dead))
			}
			places, elims := intersectOutcomes(outcomes)
			steps = append(steps, stepsFromOutcomes(RegionForcingChain, g, cells[0], places, elims, fmt.Sprintf("region fc on digit %d", d))...)
		}
	}
	return steps
}

// detectDynamicForcingChain is Cell FC whose branches propagate with the
// full non-forcing ladder instead of bare singles.
func detectDynamicForcingChain(g *engine.Grid) []Step {
	var steps []Step
	for idx, cell := range g.Cells {
		if cell.Value != 0 || cell.Candidates.Count() < 2 {
			continue
		}
		pos := position.FromIndex(idx)
		var outcomes []branchOutcome
		for _, d := range cell.Candidates.Digits() {
			branch, dead := propagateFull(g, pos, d)
			outcomes = append(outcomes, outcomeOf(g, branch, dead))
		}
		places, elims := intersectOutcomes(outcomes)
		steps = append(steps, stepsFromOutcomes(DynamicForcingChain, g, pos, places, elims, fmt.Sprintf("dynamic fc on %s", pos))...)
	}
	return steps
}
