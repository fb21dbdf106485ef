package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectPointingPairs finds a digit confined, within a box, to a single row
// or column, letting the rest of that row/column drop the digit.
func detectPointingPairs(g *engine.Grid) []Step {
	var steps []Step
	for b := 0; b < position.GridSize; b++ {
		box := boxCells(b)
		for d := 1; d <= 9; d++ {
			var cells []position.Position
			for _, p := range box {
				c := g.Cells[p.Index()]
				if c.Value == 0 && c.Candidates.Has(d) {
					cells = append(cells, p)
				}
			}
			if len(cells) < 2 || len(cells) > 3 {
				continue
			}
			sameRow, sameCol := true, true
			for _, p := range cells[1:] {
				if p.Row != cells[0].Row {
					sameRow = false
				}
				if p.Col != cells[0].Col {
					sameCol = false
				}
			}
			var line []position.Position
			if sameRow {
				for c := 0; c < position.GridSize; c++ {
					line = append(line, position.New(cells[0].Row, c))
				}
			} else if sameCol {
				for r := 0; r < position.GridSize; r++ {
					line = append(line, position.New(r, cells[0].Col))
				}
			} else {
				continue
			}
			var elims []Elimination
			for _, p := range line {
				if p.Box() == b {
					continue
				}
				if g.Cells[p.Index()].Value == 0 && g.Cells[p.Index()].Candidates.Has(d) {
					elims = append(elims, Elimination{Pos: p, Digit: d})
				}
			}
			if len(elims) == 0 {
				continue
			}
			steps = append(steps, Step{
				Technique:  PointingPair,
				Highlights: cells,
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("digit %d in box %d is confined to one line, clearing it elsewhere", d, b+1),
			})
		}
	}
	return steps
}

// detectBoxLineReduction finds a digit confined, within a row or column, to
// a single box, letting the rest of that box drop the digit.
func detectBoxLineReduction(g *engine.Grid) []Step {
	var steps []Step
	us := units()
	for _, u := range us[:18] { // rows + columns only
		for d := 1; d <= 9; d++ {
			var cells []position.Position
			for _, p := range u {
				c := g.Cells[p.Index()]
				if c.Value == 0 && c.Candidates.Has(d) {
					cells = append(cells, p)
				}
			}
			if len(cells) < 2 || len(cells) > 3 {
				continue
			}
			box := cells[0].Box()
			sameBox := true
			for _, p := range cells[1:] {
				if p.Box() != box {
					sameBox = false
					break
				}
			}
			if !sameBox {
				continue
			}
			var elims []Elimination
			for _, p := range boxCells(box) {
				if containsPos(cells, p) {
					continue
				}
				if g.Cells[p.Index()].Value == 0 && g.Cells[p.Index()].Candidates.Has(d) {
					elims = append(elims, Elimination{Pos: p, Digit: d})
				}
			}
			if len(elims) == 0 {
				continue
			}
			steps = append(steps, Step{
				Technique:  BoxLineReduction,
				Highlights: cells,
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("digit %d in %s is confined to box %d, clearing the rest of the box", d, unitLabel(u), box+1),
			})
		}
	}
	return steps
}

func boxCells(b int) []position.Position {
	br, bc := (b/3)*3, (b%3)*3
	out := make([]position.Position, 0, 9)
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			out = append(out, position.New(br+dr, bc+dc))
		}
	}
	return out
}
