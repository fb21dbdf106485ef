package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

const maxChainDepth = 8

// detectXChain searches, for each digit, alternating strong/weak link
// chains between two candidate cells (starting and ending on a strong
// link), eliminating the digit from any other cell that sees both chain
// ends.
func detectXChain(g *engine.Grid) []Step {
	var steps []Step
	for d := 1; d <= 9; d++ {
		var cells []position.Position
		for idx, c := range g.Cells {
			if c.Value == 0 && c.Candidates.Has(d) {
				cells = append(cells, position.FromIndex(idx))
			}
		}
		if len(cells) < 4 {
			continue
		}
		strong := map[position.Position][]position.Position{}
		for _, link := range conjugatePairs(g, d) {
			strong[link[0]] = append(strong[link[0]], link[1])
			strong[link[1]] = append(strong[link[1]], link[0])
		}
		weak := func(p position.Position) []position.Position {
			var out []position.Position
			for _, q := range cells {
				if q != p && sharedUnit(p, q) {
					out = append(out, q)
				}
			}
			return out
		}

		for _, start := range cells {
			ends := chainSearch(start, strong, weak, maxChainDepth)
			for _, end := range ends {
				if end == start {
					continue
				}
				var elims []Elimination
				for _, p := range cells {
					if p == start || p == end {
						continue
					}
					if sharedUnit(p, start) && sharedUnit(p, end) {
						elims = append(elims, Elimination{Pos: p, Digit: d})
					}
				}
				if len(elims) == 0 {
					continue
				}
				steps = append(steps, Step{
					Technique:  XChain,
					Highlights: []position.Position{start, end},
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("x-chain on digit %d between %s and %s", d, start, end),
				})
			}
		}
	}
	return steps
}

// chainSearch performs a bounded DFS alternating strong and weak links,
// starting with a strong link, and returns every cell whose final inbound
// link was also strong, so both chain ends are "on" under the same truth
// assumption.
func chainSearch(start position.Position, strong map[position.Position][]position.Position, weak func(position.Position) []position.Position, maxDepth int) []position.Position {
	type frame struct {
		pos        position.Position
		depth      int
		lastStrong bool
	}
	visited := map[position.Position]bool{start: true}
	var ends []position.Position
	var stack []frame
	for _, n := range strong[start] {
		stack = append(stack, frame{pos: n, depth: 1, lastStrong: true})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > maxDepth {
			continue
		}
		if visited[f.pos] {
			continue
		}
		visited[f.pos] = true
		if f.lastStrong {
			ends = append(ends, f.pos)
		}
		var next []position.Position
		if f.lastStrong {
			next = weak(f.pos)
		} else {
			next = strong[f.pos]
		}
		for _, n := range next {
			if !visited[n] {
				stack = append(stack, frame{pos: n, depth: f.depth + 1, lastStrong: !f.lastStrong})
			}
		}
	}
	return ends
}
