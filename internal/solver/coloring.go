package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// node is one coloring vertex: a candidate digit at a cell.
type node struct {
	pos position.Position
	d   int
}

// conjugatePairs returns every house/digit pair with exactly two candidate
// cells left, the strong links simple coloring builds its graph from.
func conjugatePairs(g *engine.Grid, d int) [][2]position.Position {
	var out [][2]position.Position
	for _, u := range units() {
		var cells []position.Position
		for _, p := range u {
			if cellHas(g, p, d) {
				cells = append(cells, p)
			}
		}
		if len(cells) == 2 {
			out = append(out, [2]position.Position{cells[0], cells[1]})
		}
	}
	return out
}

// colorGraph builds a two-coloring of the conjugate-link graph for digit d.
// Returns color (true/false) keyed by position, covering every cell in the
// graph.
func colorGraph(links [][2]position.Position) map[position.Position]bool {
	adj := map[position.Position][]position.Position{}
	for _, l := range links {
		adj[l[0]] = append(adj[l[0]], l[1])
		adj[l[1]] = append(adj[l[1]], l[0])
	}
	color := map[position.Position]bool{}
	for start := range adj {
		if _, done := color[start]; done {
			continue
		}
		color[start] = true
		queue := []position.Position{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if _, done := color[nb]; !done {
					color[nb] = !color[cur]
					queue = append(queue, nb)
				}
			}
		}
	}
	return color
}

// detectSimpleColoring builds the conjugate-link graph for each digit and
// applies the two classic coloring rules: two same-colored cells sharing a
// house is a contradiction (clear that color), and an uncolored candidate
// seeing both colors can be removed.
func detectSimpleColoring(g *engine.Grid) []Step {
	var steps []Step
	for d := 1; d <= 9; d++ {
		links := conjugatePairs(g, d)
		if len(links) == 0 {
			continue
		}
		color := colorGraph(links)
		if len(color) < 4 {
			continue
		}

		// Rule: two same-colored cells sharing a house -> that color is false.
		var cells []position.Position
		for p := range color {
			cells = append(cells, p)
		}
		badColor, found := (*bool)(nil), false
		for i := 0; i < len(cells) && !found; i++ {
			for j := i + 1; j < len(cells); j++ {
				if color[cells[i]] == color[cells[j]] && sharedUnit(cells[i], cells[j]) {
					c := color[cells[i]]
					badColor = &c
					found = true
					break
				}
			}
		}
		if found {
			var elims []Elimination
			var hl []position.Position
			for p, c := range color {
				if c == *badColor {
					elims = append(elims, Elimination{Pos: p, Digit: d})
					hl = append(hl, p)
				}
			}
			if len(elims) > 0 {
				steps = append(steps, Step{
					Technique:  SimpleColoring,
					Highlights: hl,
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("coloring contradiction clears one color for digit %d", d),
				})
			}
			continue
		}

		// Rule: an uncolored candidate seeing both colors can be removed.
		var elims []Elimination
		for idx, cell := range g.Cells {
			p := position.FromIndex(idx)
			if cell.Value != 0 || !cell.Candidates.Has(d) {
				continue
			}
			if _, colored := color[p]; colored {
				continue
			}
			seesTrue, seesFalse := false, false
			for cp, c := range color {
				if !sharedUnit(p, cp) {
					continue
				}
				if c {
					seesTrue = true
				} else {
					seesFalse = true
				}
			}
			if seesTrue && seesFalse {
				elims = append(elims, Elimination{Pos: p, Digit: d})
			}
		}
		if len(elims) > 0 {
			var hl []position.Position
			for p := range color {
				hl = append(hl, p)
			}
			steps = append(steps, Step{
				Technique:  SimpleColoring,
				Highlights: hl,
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("coloring eliminates digit %d seen by both colors", d),
			})
		}
	}
	return steps
}
