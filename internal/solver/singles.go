package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectNakedSingles finds every empty cell with exactly one candidate.
func detectNakedSingles(g *engine.Grid) []Step {
	var steps []Step
	for idx, cell := range g.Cells {
		if cell.Value != 0 {
			continue
		}
		if d, ok := cell.Candidates.Single(); ok {
			pos := position.FromIndex(idx)
			steps = append(steps, Step{
				Technique:  NakedSingle,
				Highlights: []position.Position{pos},
				Action:     Action{Place: true, Pos: pos, Digit: d},
				Message:    fmt.Sprintf("%s is the only candidate left at %s", digitName(d), pos),
			})
		}
	}
	return steps
}

// detectHiddenSingles finds, for every house, a digit with exactly one
// candidate cell remaining in that house.
func detectHiddenSingles(g *engine.Grid) []Step {
	var steps []Step
	seen := make(map[position.Position]bool)
	for _, u := range units() {
		for d := 1; d <= 9; d++ {
			var only position.Position
			count := 0
			for _, p := range u {
				c := g.Cells[p.Index()]
				if c.Value == 0 && c.Candidates.Has(d) {
					count++
					only = p
				}
			}
			if count == 1 && !seen[only] {
				seen[only] = true
				steps = append(steps, Step{
					Technique:  HiddenSingle,
					Highlights: []position.Position{only},
					Action:     Action{Place: true, Pos: only, Digit: d},
					Message:    fmt.Sprintf("%s is the only cell in its house that can hold %s", only, digitName(d)),
				})
			}
		}
	}
	return steps
}

func digitName(d int) string {
	return fmt.Sprintf("%d", d)
}
