package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectEmptyRectangle finds a box where a digit's candidates all lie on
// one row and one column within the box (an "empty rectangle"), then looks
// for a conjugate pair of the same digit on a perpendicular line that
// crosses one of those two lines, eliminating the digit at the cell the
// other line's far end shares with the box's other axis.
func detectEmptyRectangle(g *engine.Grid) []Step {
	var steps []Step
	for b := 0; b < position.GridSize; b++ {
		box := boxCells(b)
		for d := 1; d <= 9; d++ {
			var cand []position.Position
			for _, p := range box {
				if cellHas(g, p, d) {
					cand = append(cand, p)
				}
			}
			if len(cand) < 2 {
				continue
			}
			rowCount := map[int]int{}
			colCount := map[int]int{}
			for _, p := range cand {
				rowCount[p.Row]++
				colCount[p.Col]++
			}
			baseRow, baseCol, ok := -1, -1, false
			for r := range rowCount {
				for c := range colCount {
					allCovered := true
					for _, p := range cand {
						if p.Row != r && p.Col != c {
							allCovered = false
							break
						}
					}
					if allCovered {
						baseRow, baseCol, ok = r, c, true
						break
					}
				}
				if ok {
					break
				}
			}
			if !ok {
				continue
			}

			// Conjugate pair on a column outside the box, one end on baseRow.
			for k := 0; k < position.GridSize; k++ {
				if k/3 == b%3 { // column inside the same box stack
					continue
				}
				var colCells []position.Position
				for r := 0; r < position.GridSize; r++ {
					if cellHas(g, position.New(r, k), d) {
						colCells = append(colCells, position.New(r, k))
					}
				}
				if len(colCells) != 2 {
					continue
				}
				var other position.Position
				found := false
				for _, p := range colCells {
					if p.Row == baseRow {
						for _, q := range colCells {
							if q != p {
								other = q
								found = true
							}
						}
					}
				}
				if !found || other.Row == baseRow {
					continue
				}
				target := position.New(other.Row, baseCol)
				if target.Box() == b || !cellHas(g, target, d) {
					continue
				}
				steps = append(steps, Step{
					Technique:  EmptyRectangle,
					Highlights: append(append([]position.Position{}, cand...), other),
					Action:     Action{Eliminate: []Elimination{{Pos: target, Digit: d}}},
					Message:    fmt.Sprintf("empty rectangle in box %d clears digit %d at %s", b+1, d, target),
				})
			}
		}
	}
	return steps
}
