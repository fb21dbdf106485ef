package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// medusaGraph is the multi-digit strong-link graph 3D Medusa colors: nodes
// are (position, digit) candidates, edges are conjugate pairs within a unit
// plus the two candidates of every bivalue cell.
type medusaGraph struct {
	adj   map[node][]node
	comp  map[node]int
	color map[node]bool
}

func buildMedusaGraph(g *engine.Grid) *medusaGraph {
	mg := &medusaGraph{adj: map[node][]node{}, comp: map[node]int{}, color: map[node]bool{}}
	link := func(a, b node) {
		mg.adj[a] = append(mg.adj[a], b)
		mg.adj[b] = append(mg.adj[b], a)
	}
	for d := 1; d <= 9; d++ {
		for _, pair := range conjugatePairs(g, d) {
			link(node{pair[0], d}, node{pair[1], d})
		}
	}
	for _, p := range bivalueCells(g) {
		a, b := twoDigits(g.Cells[p.Index()].Candidates)
		link(node{p, a}, node{p, b})
	}

	compID := 0
	for start := range mg.adj {
		if _, done := mg.comp[start]; done {
			continue
		}
		mg.comp[start] = compID
		mg.color[start] = true
		queue := []node{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range mg.adj[cur] {
				if _, done := mg.comp[nb]; !done {
					mg.comp[nb] = compID
					mg.color[nb] = !mg.color[cur]
					queue = append(queue, nb)
				}
			}
		}
		compID++
	}
	return mg
}

// nodesOfComponent collects a component's nodes in stable order.
func (mg *medusaGraph) nodesOfComponent(id int) []node {
	var out []node
	for idx := 0; idx < position.TotalCells; idx++ {
		p := position.FromIndex(idx)
		for d := 1; d <= 9; d++ {
			n := node{p, d}
			if c, ok := mg.comp[n]; ok && c == id {
				out = append(out, n)
			}
		}
	}
	return out
}

// detectThreeDMedusa two-colors every strong-link cluster over (cell,
// digit) nodes and applies the contradiction and both-color elimination
// rules per cluster. Within one cluster exactly one color is wholly
// true, so a color that forces two same digits into a unit or two digits
// into one cell is wholly false.
func detectThreeDMedusa(g *engine.Grid) []Step {
	mg := buildMedusaGraph(g)
	componentCount := 0
	for _, id := range mg.comp {
		if id >= componentCount {
			componentCount = id + 1
		}
	}

	var steps []Step
	for id := 0; id < componentCount; id++ {
		nodes := mg.nodesOfComponent(id)
		if len(nodes) < 4 {
			continue
		}
		if bad, found := medusaContradiction(mg, nodes); found {
			var elims []Elimination
			var hl []position.Position
			for _, n := range nodes {
				if mg.color[n] == bad {
					elims = append(elims, Elimination{Pos: n.pos, Digit: n.d})
					hl = append(hl, n.pos)
				}
			}
			if len(elims) > 0 {
				steps = append(steps, Step{
					Technique:  ThreeDMedusa,
					Highlights: hl,
					Action:     Action{Eliminate: elims},
					Message:    "3d medusa: one color contradicts itself and is wholly false",
				})
			}
			continue
		}
		steps = append(steps, medusaEliminations(g, mg, nodes)...)
	}
	return steps
}

// medusaContradiction reports a color that places the same digit twice in a
// unit or two digits into the same cell.
func medusaContradiction(mg *medusaGraph, nodes []node) (bool, bool) {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if mg.color[a] != mg.color[b] {
				continue
			}
			if a.d == b.d && sharedUnit(a.pos, b.pos) {
				return mg.color[a], true
			}
			if a.pos == b.pos && a.d != b.d {
				return mg.color[a], true
			}
		}
	}
	return false, false
}

// medusaEliminations applies the non-contradiction rules to one cluster:
// an uncolored candidate seeing both colors of its own digit is false, a
// cell holding both colors keeps only its colored candidates, and an
// uncolored candidate is false when its cell holds one color and it sees
// the other color of its own digit.
func medusaEliminations(g *engine.Grid, mg *medusaGraph, nodes []node) []Step {
	var elims []Elimination
	seen := map[Elimination]bool{}
	add := func(e Elimination) {
		if !seen[e] {
			seen[e] = true
			elims = append(elims, e)
		}
	}

	for idx, cell := range g.Cells {
		if cell.Value != 0 {
			continue
		}
		p := position.FromIndex(idx)
		for _, d := range cell.Candidates.Digits() {
			n := node{p, d}
			if _, colored := mg.comp[n]; colored {
				continue
			}

			// both colors of d visible from p
			seesTrue, seesFalse := false, false
			// a colored node of another digit in this very cell
			var cellColor *bool
			for _, cn := range nodes {
				if cn.pos == p && cn.d != d {
					c := mg.color[cn]
					cellColor = &c
				}
				if cn.d == d && sharedUnit(p, cn.pos) {
					if mg.color[cn] {
						seesTrue = true
					} else {
						seesFalse = true
					}
				}
			}
			if seesTrue && seesFalse {
				add(Elimination{Pos: p, Digit: d})
				continue
			}
			if cellColor != nil && ((*cellColor && seesFalse) || (!*cellColor && seesTrue)) {
				add(Elimination{Pos: p, Digit: d})
			}
		}
	}

	// a cell holding both colors (on different digits) keeps only those two
	for idx, cell := range g.Cells {
		if cell.Value != 0 {
			continue
		}
		p := position.FromIndex(idx)
		var hasTrue, hasFalse bool
		for _, cn := range nodes {
			if cn.pos != p {
				continue
			}
			if mg.color[cn] {
				hasTrue = true
			} else {
				hasFalse = true
			}
		}
		if !hasTrue || !hasFalse {
			continue
		}
		for _, d := range cell.Candidates.Digits() {
			if _, colored := mg.comp[node{p, d}]; !colored {
				add(Elimination{Pos: p, Digit: d})
			}
		}
	}

	if len(elims) == 0 {
		return nil
	}
	var hl []position.Position
	for _, n := range nodes {
		hl = append(hl, n.pos)
	}
	return []Step{{
		Technique:  ThreeDMedusa,
		Highlights: hl,
		Action:     Action{Eliminate: elims},
		Message:    fmt.Sprintf("3d medusa eliminations from a %d-node cluster", len(nodes)),
	}}
}
