package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectAvoidableRectangle finds a UR-shaped frame with one empty corner
// whose row and column partners hold the same solved digit b while the
// diagonal partner holds a different digit a, none of the three placed as
// a given. Completing the corner with a would finish a two-digit rectangle
// that could swap into a second solution of the original clues, so a
// leaves the empty corner.
func detectAvoidableRectangle(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		solved := 0
		var emptyCorner position.Position
		emptyIdx := -1
		anyGiven := false
		values := map[position.Position]int{}
		for i, c := range rect.cells {
			cell := g.Cells[c.Index()]
			if cell.Value != 0 {
				solved++
				values[c] = cell.Value
				if cell.Given {
					anyGiven = true
				}
			} else {
				emptyCorner = c
				emptyIdx = i
			}
		}
		if solved != 3 || emptyIdx < 0 || anyGiven {
			continue
		}
		diag := rect.cells[3-emptyIdx]
		rowPartner, colPartner := rowColPartners(rect, emptyIdx)
		b1, okB1 := values[rowPartner]
		b2, okB2 := values[colPartner]
		a := values[diag]
		if !okB1 || !okB2 || b1 != b2 || a == b1 {
			continue
		}
		if !cellHas(g, emptyCorner, a) {
			continue
		}
		steps = append(steps, Step{
			Technique:  AvoidableRectangle,
			Highlights: []position.Position{rect.cells[0], rect.cells[1], rect.cells[2], rect.cells[3]},
			Action:     Action{Eliminate: []Elimination{{Pos: emptyCorner, Digit: a}}},
			Message:    fmt.Sprintf("avoidable rectangle clears %d from %s", a, emptyCorner),
		})
	}
	return steps
}

// rowColPartners returns, for the rectangle corner at emptyIdx (layout
// [0]=(r1,c1) [1]=(r1,c2) [2]=(r2,c1) [3]=(r2,c2)), the two corners that
// share its row and its column respectively.
func rowColPartners(rect rectangle, emptyIdx int) (rowPartner, colPartner position.Position) {
	switch emptyIdx {
	case 0:
		return rect.cells[1], rect.cells[2]
	case 1:
		return rect.cells[0], rect.cells[3]
	case 2:
		return rect.cells[3], rect.cells[0]
	default:
		return rect.cells[2], rect.cells[1]
	}
}
