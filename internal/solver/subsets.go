package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// combinations calls fn with every k-sized subset of indices [0,n).
func combinations(n, k int, fn func(idx []int)) {
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// detectNakedSubsets returns a detector finding size-k naked subsets: k
// empty cells in one house whose union of candidates has exactly k digits,
// letting every other cell in the house drop those digits.
func detectNakedSubsets(k int, t Technique) detector {
	return func(g *engine.Grid) []Step {
		var steps []Step
		for _, u := range units() {
			var empties []position.Position
			for _, p := range u {
				if g.Cells[p.Index()].Value == 0 {
					empties = append(empties, p)
				}
			}
			combinations(len(empties), k, func(idx []int) {
				cells := make([]position.Position, k)
				var union bitset.Set
				for i, ix := range idx {
					cells[i] = empties[ix]
					union = union.Union(g.Cells[cells[i].Index()].Candidates)
				}
				if union.Count() != k {
					return
				}
				var elims []Elimination
				for _, p := range u {
					if containsPos(cells, p) {
						continue
					}
					cand := g.Cells[p.Index()].Candidates
					for _, d := range union.Digits() {
						if cand.Has(d) {
							elims = append(elims, Elimination{Pos: p, Digit: d})
						}
					}
				}
				if len(elims) == 0 {
					return
				}
				steps = append(steps, Step{
					Technique:  t,
					Highlights: cells,
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("naked subset %v in %s locks digits %v", cells, unitLabel(u), union.Digits()),
				})
			})
		}
		return steps
	}
}

// detectHiddenSubsets returns a detector finding size-k hidden subsets: k
// digits confined to the same k cells within a house, letting those cells
// drop every other candidate.
func detectHiddenSubsets(k int, t Technique) detector {
	return func(g *engine.Grid) []Step {
		var steps []Step
		for _, u := range units() {
			digitCells := make(map[int][]position.Position, 9)
			for d := 1; d <= 9; d++ {
				for _, p := range u {
					c := g.Cells[p.Index()]
					if c.Value == 0 && c.Candidates.Has(d) {
						digitCells[d] = append(digitCells[d], p)
					}
				}
			}
			var digits []int
			for d := 1; d <= 9; d++ {
				if n := len(digitCells[d]); n > 0 && n <= k {
					digits = append(digits, d)
				}
			}
			combinations(len(digits), k, func(idx []int) {
				ds := make([]int, k)
				cellSet := map[position.Position]bool{}
				for i, ix := range idx {
					ds[i] = digits[ix]
					for _, p := range digitCells[ds[i]] {
						cellSet[p] = true
					}
				}
				if len(cellSet) != k {
					return
				}
				var keep bitset.Set
				for _, d := range ds {
					keep = keep.Insert(d)
				}
				var elims []Elimination
				var cells []position.Position
				for p := range cellSet {
					cells = append(cells, p)
					cand := g.Cells[p.Index()].Candidates
					for _, d := range cand.Digits() {
						if !keep.Has(d) {
							elims = append(elims, Elimination{Pos: p, Digit: d})
						}
					}
				}
				if len(elims) == 0 {
					return
				}
				steps = append(steps, Step{
					Technique:  t,
					Highlights: cells,
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("hidden subset %v confined to %v in %s", ds, cells, unitLabel(u)),
				})
			})
		}
		return steps
	}
}

func unitLabel(u []position.Position) string {
	if len(u) == 0 {
		return "?"
	}
	a, b := u[0], u[1]
	switch {
	case a.Row == b.Row:
		return fmt.Sprintf("row %d", a.Row+1)
	case a.Col == b.Col:
		return fmt.Sprintf("column %d", a.Col+1)
	default:
		return fmt.Sprintf("box %d", a.Box()+1)
	}
}
