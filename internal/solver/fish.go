package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

func cellHas(g *engine.Grid, p position.Position, d int) bool {
	c := g.Cells[p.Index()]
	return c.Value == 0 && c.Candidates.Has(d)
}

// detectFish returns a detector for the basic (non-finned) fish family of
// size k: X-Wing (2), Swordfish (3), Jellyfish (4). A fish picks k base
// lines whose candidate positions for a digit fall within the same k cover
// lines, eliminating the digit from every other cell of those cover
// lines.
func detectFish(k int, t Technique) detector {
	return func(g *engine.Grid) []Step {
		var steps []Step
		steps = append(steps, fishDirection(g, k, t, true)...)
		steps = append(steps, fishDirection(g, k, t, false)...)
		return steps
	}
}

// fishDirection scans rows-as-base/cols-as-cover when baseIsRow, else the
// transpose.
func fishDirection(g *engine.Grid, k int, t Technique, baseIsRow bool) []Step {
	var steps []Step
	for d := 1; d <= 9; d++ {
		var baseIdx []int
		var lines [][]int
		for i := 0; i < position.GridSize; i++ {
			var cov []int
			for j := 0; j < position.GridSize; j++ {
				if cellHas(g, lineCell(baseIsRow, i, j), d) {
					cov = append(cov, j)
				}
			}
			if len(cov) >= 1 && len(cov) <= k {
				baseIdx = append(baseIdx, i)
				lines = append(lines, cov)
			}
		}
		n := len(lines)
		if n < k {
			continue
		}
		combinations(n, k, func(idx []int) {
			union := map[int]bool{}
			bases := make([]int, k)
			for x, ix := range idx {
				bases[x] = baseIdx[ix]
				for _, j := range lines[ix] {
					union[j] = true
				}
			}
			if len(union) != k {
				return
			}
			var elims []Elimination
			var highlights []position.Position
			for _, b := range bases {
				for j := 0; j < position.GridSize; j++ {
					if union[j] {
						highlights = append(highlights, lineCell(baseIsRow, b, j))
					}
				}
			}
			for cov := range union {
				for i := 0; i < position.GridSize; i++ {
					if containsInt(bases, i) {
						continue
					}
					p := lineCell(baseIsRow, i, cov)
					if cellHas(g, p, d) {
						elims = append(elims, Elimination{Pos: p, Digit: d})
					}
				}
			}
			if len(elims) == 0 {
				return
			}
			steps = append(steps, Step{
				Technique:  t,
				Highlights: highlights,
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("%s on digit %d", t, d),
			})
		})
	}
	return steps
}

func lineCell(baseIsRow bool, base, cover int) position.Position {
	if baseIsRow {
		return position.New(base, cover)
	}
	return position.New(cover, base)
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// finnedFind records one finned X-Wing frame: two base lines whose
// candidate positions union to two solid cover lines plus one fin line.
// elims are the cells the finned fish itself can clear (cover cells seeing
// every fin); the fin cells and solid covers are kept so that the Siamese
// and Kraken variants can reason about the same frame.
type finnedFind struct {
	digit     int
	baseIsRow bool
	bases     [2]int
	solid     [2]int
	fins      []position.Position
	elims     []Elimination
}

// detectFinnedFish extends the basic X-Wing search by allowing one of the
// two base lines to contain one extra ("fin") candidate outside the solid
// cover column, restricting eliminations to cells that also see every
// fin.
func detectFinnedFish(g *engine.Grid) []Step {
	var steps []Step
	for _, f := range finnedFishFinds(g) {
		if len(f.elims) == 0 {
			continue
		}
		highlights := append([]position.Position{}, f.fins...)
		highlights = append(highlights, lineCell(f.baseIsRow, f.bases[0], 0), lineCell(f.baseIsRow, f.bases[1], 0))
		steps = append(steps, Step{
			Technique:  FinnedFish,
			Highlights: highlights,
			Action:     Action{Eliminate: f.elims},
			Message:    fmt.Sprintf("finned fish on digit %d eliminates via fin cell(s)", f.digit),
		})
	}
	return steps
}

// finnedFishFinds scans both orientations and all digits for finned X-Wing
// frames.
func finnedFishFinds(g *engine.Grid) []finnedFind {
	var finds []finnedFind
	for _, baseIsRow := range []bool{true, false} {
		for d := 1; d <= 9; d++ {
			finds = append(finds, finnedFishDirection(g, d, baseIsRow)...)
		}
	}
	return finds
}

func finnedFishDirection(g *engine.Grid, d int, baseIsRow bool) []finnedFind {
	var finds []finnedFind
	for i1 := 0; i1 < position.GridSize; i1++ {
		for i2 := i1 + 1; i2 < position.GridSize; i2++ {
			var cov1, cov2 []int
			for j := 0; j < position.GridSize; j++ {
				if cellHas(g, lineCell(baseIsRow, i1, j), d) {
					cov1 = append(cov1, j)
				}
				if cellHas(g, lineCell(baseIsRow, i2, j), d) {
					cov2 = append(cov2, j)
				}
			}
			if len(cov1) < 2 || len(cov2) < 2 || len(cov1) > 3 || len(cov2) > 3 {
				continue
			}
			union := map[int]bool{}
			for _, j := range cov1 {
				union[j] = true
			}
			for _, j := range cov2 {
				union[j] = true
			}
			if len(union) != 3 {
				continue
			}
			var solid, finCols []int
			for j := range union {
				in1, in2 := intIn(cov1, j), intIn(cov2, j)
				if in1 && in2 {
					solid = append(solid, j)
				} else {
					finCols = append(finCols, j)
				}
			}
			if len(solid) != 2 || len(finCols) != 1 {
				continue
			}
			finCol := finCols[0]
			var fins []position.Position
			if intIn(cov1, finCol) {
				fins = append(fins, lineCell(baseIsRow, i1, finCol))
			}
			if intIn(cov2, finCol) {
				fins = append(fins, lineCell(baseIsRow, i2, finCol))
			}
			find := finnedFind{
				digit:     d,
				baseIsRow: baseIsRow,
				bases:     [2]int{i1, i2},
				solid:     [2]int{solid[0], solid[1]},
				fins:      fins,
			}
			for _, cov := range solid {
				for line := 0; line < position.GridSize; line++ {
					if line == i1 || line == i2 {
						continue
					}
					p := lineCell(baseIsRow, line, cov)
					if !cellHas(g, p, d) {
						continue
					}
					if seesAll(p, fins) {
						find.elims = append(find.elims, Elimination{Pos: p, Digit: d})
					}
				}
			}
			finds = append(finds, find)
		}
	}
	return finds
}

func intIn(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
