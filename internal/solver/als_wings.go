package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectALSXYWing chains three ALS A-B-C where a restricted common digit x
// links A to B and a different restricted common digit y links B to C; any
// digit z common to A and C (other than x, y) that every A-cell-of-z and
// every C-cell-of-z share is eliminated from outside cells seeing all of
// them.
func detectALSXYWing(g *engine.Grid) []Step {
	var steps []Step
	alsList := findALS(g)
	for bi := range alsList {
		b := alsList[bi]
		for ai := range alsList {
			if ai == bi || sharesCellWith(alsList[ai], b) {
				continue
			}
			a := alsList[ai]
			xCommon := a.cand.Intersect(b.cand)
			if xCommon.Count() == 0 {
				continue
			}
			for _, x := range xCommon.Digits() {
				if !restrictedCommon(g, a, b, x) {
					continue
				}
				for ci := range alsList {
					if ci == ai || ci == bi || sharesCellWith(alsList[ci], a) || sharesCellWith(alsList[ci], b) {
						continue
					}
					c := alsList[ci]
					yCommon := b.cand.Intersect(c.cand)
					for _, y := range yCommon.Digits() {
						if y == x || !restrictedCommon(g, b, c, y) {
							continue
						}
						zCommon := a.cand.Intersect(c.cand)
						for _, z := range zCommon.Digits() {
							if z == x || z == y {
								continue
							}
							zA := cellsWithDigit(g, a.cells, z)
							zC := cellsWithDigit(g, c.cells, z)
							if len(zA) == 0 || len(zC) == 0 {
								continue
							}
							var elims []Elimination
							for idx, cell := range g.Cells {
								p := position.FromIndex(idx)
								if cell.Value != 0 || !cell.Candidates.Has(z) {
									continue
								}
								if containsPos(a.cells, p) || containsPos(b.cells, p) || containsPos(c.cells, p) {
									continue
								}
								if seesAll(p, zA) && seesAll(p, zC) {
									elims = append(elims, Elimination{Pos: p, Digit: z})
								}
							}
							if len(elims) == 0 {
								continue
							}
							hl := append(append(append([]position.Position{}, a.cells...), b.cells...), c.cells...)
							steps = append(steps, Step{
								Technique:  ALSXYWing,
								Highlights: hl,
								Action:     Action{Eliminate: elims},
								Message:    fmt.Sprintf("als-xy-wing via %d/%d eliminates %d", x, y, z),
							})
						}
					}
				}
			}
		}
	}
	return steps
}

// detectALSChain generalizes ALS-XZ to a chain of four ALS linked by
// pairwise-distinct restricted common candidates A-B-C-D, eliminating the
// shared digit between the two end ALS from cells that see every one of
// its cells in both ends.
func detectALSChain(g *engine.Grid) []Step {
	var steps []Step
	alsList := findALS(g)
	n := len(alsList)
	if n < 4 {
		return nil
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if b == a || sharesCellWith(alsList[a], alsList[b]) {
				continue
			}
			rc1 := restrictedDigit(g, alsList[a], alsList[b])
			if rc1 == 0 {
				continue
			}
			for c := 0; c < n; c++ {
				if c == a || c == b || sharesCellWith(alsList[c], alsList[b]) {
					continue
				}
				rc2 := restrictedDigit(g, alsList[b], alsList[c])
				if rc2 == 0 || rc2 == rc1 {
					continue
				}
				for d := 0; d < n; d++ {
					if d == a || d == b || d == c || sharesCellWith(alsList[d], alsList[c]) || sharesCellWith(alsList[d], alsList[a]) {
						continue
					}
					rc3 := restrictedDigit(g, alsList[c], alsList[d])
					if rc3 == 0 || rc3 == rc1 || rc3 == rc2 {
						continue
					}
					zCommon := alsList[a].cand.Intersect(alsList[d].cand)
					for _, z := range zCommon.Digits() {
						if z == rc1 || z == rc3 {
							continue
						}
						zA := cellsWithDigit(g, alsList[a].cells, z)
						zD := cellsWithDigit(g, alsList[d].cells, z)
						if len(zA) == 0 || len(zD) == 0 {
							continue
						}
						var elims []Elimination
						for idx, cell := range g.Cells {
							p := position.FromIndex(idx)
							if cell.Value != 0 || !cell.Candidates.Has(z) {
								continue
							}
							if containsPos(alsList[a].cells, p) || containsPos(alsList[b].cells, p) ||
								containsPos(alsList[c].cells, p) || containsPos(alsList[d].cells, p) {
								continue
							}
							if seesAll(p, zA) && seesAll(p, zD) {
								elims = append(elims, Elimination{Pos: p, Digit: z})
							}
						}
						if len(elims) == 0 {
							continue
						}
						hl := append(append(append(append([]position.Position{}, alsList[a].cells...), alsList[b].cells...), alsList[c].cells...), alsList[d].cells...)
						steps = append(steps, Step{
							Technique:  ALSChain,
							Highlights: hl,
							Action:     Action{Eliminate: elims},
							Message:    fmt.Sprintf("als-chain eliminates %d", z),
						})
					}
				}
			}
		}
	}
	return steps
}

// restrictedDigit returns a digit common to both ALS that is a restricted
// common candidate between them, or 0 if none exists.
func restrictedDigit(g *engine.Grid, a, b alsSet) int {
	for _, x := range a.cand.Intersect(b.cand).Digits() {
		if restrictedCommon(g, a, b, x) {
			return x
		}
	}
	return 0
}
