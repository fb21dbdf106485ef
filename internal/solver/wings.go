package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectXYWing finds a bivalue pivot {x,y} with two bivalue pincers {x,z}
// and {y,z}, each seeing the pivot, eliminating z from any cell that sees
// both pincers.
func detectXYWing(g *engine.Grid) []Step {
	var steps []Step
	bivalues := bivalueCells(g)
	for _, pivot := range bivalues {
		pc := g.Cells[pivot.Index()].Candidates
		x, y := twoDigits(pc)
		var pincers []position.Position
		for _, p := range peers(pivot) {
			if !containsPos(bivalues, p) {
				continue
			}
			cand := g.Cells[p.Index()].Candidates
			if cand.Has(x) != cand.Has(y) { // shares exactly one of x,y
				pincers = append(pincers, p)
			}
		}
		for i := 0; i < len(pincers); i++ {
			for j := i + 1; j < len(pincers); j++ {
				p1, p2 := pincers[i], pincers[j]
				c1, c2 := g.Cells[p1.Index()].Candidates, g.Cells[p2.Index()].Candidates
				var z int
				if c1.Has(x) && c2.Has(y) && !c1.Has(y) && !c2.Has(x) {
					zSet := c1.Intersect(c2)
					if d, ok := zSet.Single(); ok {
						z = d
					}
				} else if c1.Has(y) && c2.Has(x) && !c1.Has(x) && !c2.Has(y) {
					zSet := c1.Intersect(c2)
					if d, ok := zSet.Single(); ok {
						z = d
					}
				}
				if z == 0 {
					continue
				}
				var elims []Elimination
				for _, p := range peers(p1) {
					if p == pivot || p == p2 || !sharedUnit(p, p2) {
						continue
					}
					if cellHas(g, p, z) {
						elims = append(elims, Elimination{Pos: p, Digit: z})
					}
				}
				if len(elims) == 0 {
					continue
				}
				steps = append(steps, Step{
					Technique:  XYWing,
					Highlights: []position.Position{pivot, p1, p2},
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("xy-wing pivot %s eliminates %d", pivot, z),
				})
			}
		}
	}
	return steps
}

// detectXYZWing finds a trivalue pivot {x,y,z} with two bivalue pincers
// {x,z} and {y,z}, both seeing the pivot, eliminating z from any cell that
// sees the pivot and both pincers.
func detectXYZWing(g *engine.Grid) []Step {
	var steps []Step
	bivalues := bivalueCells(g)
	for idx, cell := range g.Cells {
		if cell.Value != 0 || cell.Candidates.Count() != 3 {
			continue
		}
		pivot := position.FromIndex(idx)
		digits := cell.Candidates.Digits()
		var pincers []position.Position
		for _, p := range peers(pivot) {
			if !containsPos(bivalues, p) {
				continue
			}
			cand := g.Cells[p.Index()].Candidates
			if cand.IsSubsetOf(cell.Candidates) {
				pincers = append(pincers, p)
			}
		}
		for i := 0; i < len(pincers); i++ {
			for j := i + 1; j < len(pincers); j++ {
				p1, p2 := pincers[i], pincers[j]
				c1, c2 := g.Cells[p1.Index()].Candidates, g.Cells[p2.Index()].Candidates
				if c1.Union(c2).Count() < 2 {
					continue
				}
				common := c1.Intersect(c2)
				d, ok := common.Single()
				if !ok || !containsInt(digits, d) {
					continue
				}
				var elims []Elimination
				for _, p := range peers(pivot) {
					if p == p1 || p == p2 {
						continue
					}
					if sharedUnit(p, p1) && sharedUnit(p, p2) && cellHas(g, p, d) {
						elims = append(elims, Elimination{Pos: p, Digit: d})
					}
				}
				if len(elims) == 0 {
					continue
				}
				steps = append(steps, Step{
					Technique:  XYZWing,
					Highlights: []position.Position{pivot, p1, p2},
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("xyz-wing pivot %s eliminates %d", pivot, d),
				})
			}
		}
	}
	return steps
}

// detectWWing finds two bivalue cells sharing the same pair {x,y}, linked
// by a strong (conjugate) link on y between two cells that each see one of
// the pair, and eliminates x from any cell seeing both pair cells.
func detectWWing(g *engine.Grid) []Step {
	var steps []Step
	bivalues := bivalueCells(g)
	for i := 0; i < len(bivalues); i++ {
		for j := i + 1; j < len(bivalues); j++ {
			a, b := bivalues[i], bivalues[j]
			ca, cb := g.Cells[a.Index()].Candidates, g.Cells[b.Index()].Candidates
			if ca != cb || sharedUnit(a, b) {
				continue
			}
			x, y := twoDigits(ca)
			for _, pair := range [2]int{x, y} {
				other := x
				if pair == x {
					other = y
				}
				if conjugateLinkConnects(g, a, b, pair) {
					var elims []Elimination
					for _, p := range peers(a) {
						if sharedUnit(p, b) && cellHas(g, p, other) {
							elims = append(elims, Elimination{Pos: p, Digit: other})
						}
					}
					if len(elims) > 0 {
						steps = append(steps, Step{
							Technique:  WWing,
							Highlights: []position.Position{a, b},
							Action:     Action{Eliminate: elims},
							Message:    fmt.Sprintf("w-wing on %d/%d eliminates %d", x, y, other),
						})
					}
				}
			}
		}
	}
	return steps
}

// conjugateLinkConnects reports whether a and b are joined by a strong link
// on digit d: a house containing exactly two candidate cells for d, one
// seeing a and the other seeing b. The link ends must be distinct from a
// and b: if an end were a itself, the case where that end holds d leaves
// the other pair digit unforced and the elimination unsound.
func conjugateLinkConnects(g *engine.Grid, a, b position.Position, d int) bool {
	if !cellHas(g, a, d) || !cellHas(g, b, d) {
		return false
	}
	for _, u := range units() {
		var cells []position.Position
		for _, p := range u {
			if cellHas(g, p, d) {
				cells = append(cells, p)
			}
		}
		if len(cells) != 2 {
			continue
		}
		if cells[0] == a || cells[0] == b || cells[1] == a || cells[1] == b {
			continue
		}
		if sharedUnit(cells[0], a) && sharedUnit(cells[1], b) {
			return true
		}
		if sharedUnit(cells[1], a) && sharedUnit(cells[0], b) {
			return true
		}
	}
	return false
}

// detectWXYZWing searches one box at a time for four empty cells whose
// candidates together hold exactly four digits. Those cells all see each
// other, so for each of the four digits z, z leaves every cell outside the
// pattern that sees all of the pattern's z-holding cells. Four-cell
// patterns whose cells do not all lie in one box are not searched.
func detectWXYZWing(g *engine.Grid) []Step {
	var steps []Step
	for b := 0; b < position.GridSize; b++ {
		var empties []position.Position
		for _, p := range boxCells(b) {
			if g.Cells[p.Index()].Value == 0 {
				empties = append(empties, p)
			}
		}
		combinations(len(empties), 4, func(idx []int) {
			cells := make([]position.Position, 4)
			var union bitset.Set
			for i, ix := range idx {
				cells[i] = empties[ix]
				union = union.Union(g.Cells[cells[i].Index()].Candidates)
			}
			if union.Count() != 4 {
				return
			}
			for _, z := range union.Digits() {
				var zCells []position.Position
				for _, c := range cells {
					if cellHas(g, c, z) {
						zCells = append(zCells, c)
					}
				}
				if len(zCells) < 2 {
					continue
				}
				mutuallyVisible := true
				for i := 0; i < len(zCells) && mutuallyVisible; i++ {
					for j := i + 1; j < len(zCells); j++ {
						if !sharedUnit(zCells[i], zCells[j]) {
							mutuallyVisible = false
							break
						}
					}
				}
				if !mutuallyVisible {
					continue
				}
				var elims []Elimination
				for r := 0; r < position.GridSize; r++ {
					for c := 0; c < position.GridSize; c++ {
						p := position.New(r, c)
						if containsPos(cells, p) || !cellHas(g, p, z) {
							continue
						}
						seesAll := true
						for _, zc := range zCells {
							if !sharedUnit(p, zc) {
								seesAll = false
								break
							}
						}
						if seesAll {
							elims = append(elims, Elimination{Pos: p, Digit: z})
						}
					}
				}
				if len(elims) == 0 {
					continue
				}
				steps = append(steps, Step{
					Technique:  WXYZWing,
					Highlights: cells,
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("wxyz-wing in box %d eliminates digit %d", b+1, z),
				})
			}
		})
	}
	return steps
}

func bivalueCells(g *engine.Grid) []position.Position {
	var out []position.Position
	for idx, c := range g.Cells {
		if c.Value == 0 && c.Candidates.Count() == 2 {
			out = append(out, position.FromIndex(idx))
		}
	}
	return out
}

func twoDigits(s bitset.Set) (int, int) {
	d := s.Digits()
	if len(d) != 2 {
		return 0, 0
	}
	return d[0], d[1]
}
