package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

const maxAICDepth = 12

// aicNode is one (position, digit) vertex of the alternating inference
// chain graph.
type aicNode struct {
	pos position.Position
	d   int
}

// strongNeighbors returns every node linked to n by a strong link: the
// conjugate cell for n.d in any house n.pos belongs to, plus (if n's cell
// is bivalue) the cell's other candidate digit.
func strongNeighbors(g *engine.Grid, n aicNode) []aicNode {
	var out []aicNode
	for _, link := range conjugatePairs(g, n.d) {
		if link[0] == n.pos {
			out = append(out, aicNode{pos: link[1], d: n.d})
		} else if link[1] == n.pos {
			out = append(out, aicNode{pos: link[0], d: n.d})
		}
	}
	cell := g.Cells[n.pos.Index()]
	if cell.Candidates.Count() == 2 {
		for _, d2 := range cell.Candidates.Digits() {
			if d2 != n.d {
				out = append(out, aicNode{pos: n.pos, d: d2})
			}
		}
	}
	return out
}

// weakNeighbors returns every node linked to n by a weak link: any other
// candidate cell for n.d sharing a house with n.pos, plus every other
// candidate digit at n.pos.
func weakNeighbors(g *engine.Grid, n aicNode) []aicNode {
	var out []aicNode
	for idx, c := range g.Cells {
		if c.Value != 0 || !c.Candidates.Has(n.d) {
			continue
		}
		p := position.FromIndex(idx)
		if p != n.pos && sharedUnit(n.pos, p) {
			out = append(out, aicNode{pos: p, d: n.d})
		}
	}
	cell := g.Cells[n.pos.Index()]
	for _, d2 := range cell.Candidates.Digits() {
		if d2 != n.d {
			out = append(out, aicNode{pos: n.pos, d: d2})
		}
	}
	return out
}

// detectAIC generalizes X-Chain to mixed-digit alternating strong/weak
// paths: same-digit endpoints eliminate that digit
// from cells seeing both; same-cell endpoints with different digits
// eliminate every other candidate from that cell.
func detectAIC(g *engine.Grid) []Step {
	var steps []Step
	seen := map[[2]aicNode]bool{}
	for idx, c := range g.Cells {
		if c.Value != 0 {
			continue
		}
		start := position.FromIndex(idx)
		for _, d := range c.Candidates.Digits() {
			n := aicNode{pos: start, d: d}
			ends := aicSearch(g, n)
			for _, end := range ends {
				key := [2]aicNode{n, end}
				if n == end || seen[key] {
					continue
				}
				seen[key] = true
				seen[[2]aicNode{end, n}] = true
				steps = append(steps, aicStepsFor(g, n, end)...)
			}
		}
	}
	return steps
}

func aicStepsFor(g *engine.Grid, a, b aicNode) []Step {
	var steps []Step
	if a.d == b.d {
		var elims []Elimination
		for idx, c := range g.Cells {
			p := position.FromIndex(idx)
			if c.Value != 0 || !c.Candidates.Has(a.d) || p == a.pos || p == b.pos {
				continue
			}
			if sharedUnit(p, a.pos) && sharedUnit(p, b.pos) {
				elims = append(elims, Elimination{Pos: p, Digit: a.d})
			}
		}
		if len(elims) > 0 {
			steps = append(steps, Step{
				Technique:  AIC,
				Highlights: []position.Position{a.pos, b.pos},
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("aic on digit %d between %s and %s", a.d, a.pos, b.pos),
			})
		}
		return steps
	}
	if a.pos == b.pos {
		cell := g.Cells[a.pos.Index()]
		var elims []Elimination
		for _, d := range cell.Candidates.Digits() {
			if d != a.d && d != b.d {
				elims = append(elims, Elimination{Pos: a.pos, Digit: d})
			}
		}
		if len(elims) > 0 {
			steps = append(steps, Step{
				Technique:  AIC,
				Highlights: []position.Position{a.pos},
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("aic forces %d or %d at %s", a.d, b.d, a.pos),
			})
		}
	}
	return steps
}

// aicSearch performs a bounded DFS alternating strong and weak links from
// start (first edge strong), returning every node reached by a path whose
// final edge was also strong.
func aicSearch(g *engine.Grid, start aicNode) []aicNode {
	type frame struct {
		node       aicNode
		depth      int
		lastStrong bool
	}
	visited := map[aicNode]bool{start: true}
	var ends []aicNode
	var stack []frame
	for _, n := range strongNeighbors(g, start) {
		stack = append(stack, frame{node: n, depth: 1, lastStrong: true})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > maxAICDepth || visited[f.node] {
			continue
		}
		visited[f.node] = true
		if f.lastStrong {
			ends = append(ends, f.node)
		}
		var next []aicNode
		var nextStrong bool
		if f.lastStrong {
			next = weakNeighbors(g, f.node)
			nextStrong = false
		} else {
			next = strongNeighbors(g, f.node)
			nextStrong = true
		}
		for _, n := range next {
			if !visited[n] {
				stack = append(stack, frame{node: n, depth: f.depth + 1, lastStrong: nextStrong})
			}
		}
	}
	return ends
}
