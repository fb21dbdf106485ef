package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// detectUniqueRectangleType5 handles the diagonal cousin of Type 2: two
// diagonal corners (or three corners) carry the same single extra digit z
// over the UR pair. One of those corners must hold z, else all four reduce
// to the deadly {x,y} frame, so z leaves every cell seeing all the extra
// corners.
func detectUniqueRectangleType5(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		x, y, ok := commonURPair(g, rect)
		if !ok {
			continue
		}
		pair := bitset.Of(x, y)
		var extras []position.Position
		var z int
		valid := true
		for _, c := range rect.cells {
			cand := g.Cells[c.Index()].Candidates
			if cand == pair {
				continue
			}
			rest := cand.Diff(pair)
			d, single := rest.Single()
			if !single {
				valid = false
				break
			}
			if z == 0 {
				z = d
			} else if z != d {
				valid = false
				break
			}
			extras = append(extras, c)
		}
		if !valid || z == 0 {
			continue
		}
		// two adjacent extras are Type 2's shape; Type 5 wants the diagonal
		// pair or three corners.
		if len(extras) == 2 && (extras[0].Row == extras[1].Row || extras[0].Col == extras[1].Col) {
			continue
		}
		if len(extras) != 2 && len(extras) != 3 {
			continue
		}
		var elims []Elimination
		for idx := 0; idx < position.TotalCells; idx++ {
			p := position.FromIndex(idx)
			if containsPos(rect.cells[:], p) || !cellHas(g, p, z) {
				continue
			}
			if seesAll(p, extras) {
				elims = append(elims, Elimination{Pos: p, Digit: z})
			}
		}
		if len(elims) == 0 {
			continue
		}
		steps = append(steps, Step{
			Technique:  UniqueRectangleType5,
			Highlights: rect.cells[:],
			Action:     Action{Eliminate: elims},
			Message:    fmt.Sprintf("unique rectangle type 5 on %d/%d eliminates %d", x, y, z),
		})
	}
	return steps
}

// commonURPair finds a digit pair held by all four (empty) rectangle cells,
// requiring at least one exact bivalue corner so the deadly frame is near.
func commonURPair(g *engine.Grid, rect rectangle) (int, int, bool) {
	common := bitset.Full
	bivalue := false
	for _, c := range rect.cells {
		cell := g.Cells[c.Index()]
		if cell.Value != 0 {
			return 0, 0, false
		}
		common = common.Intersect(cell.Candidates)
		if cell.Candidates.Count() == 2 {
			bivalue = true
		}
	}
	if !bivalue || common.Count() < 2 {
		return 0, 0, false
	}
	digits := common.Digits()
	return digits[0], digits[1], true
}

// detectUniqueRectangleType6 finds a UR frame whose bivalue corners sit on
// one diagonal while a UR digit is confined to the rectangle's columns in
// both of its rows (or to its rows in both columns). Placing that digit on
// a roof corner would then complete an X-Wing into the deadly frame, so it
// leaves both roof corners.
func detectUniqueRectangleType6(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		floor, roof, x, y, ok := floorRoof(g, rect)
		if !ok {
			continue
		}
		// Type 6 needs the bivalue corners on a diagonal; a floor sharing a
		// row or column is skipped, and the roof pair is the opposite diagonal.
		if floor[0].Row == floor[1].Row || floor[0].Col == floor[1].Col {
			continue
		}
		for _, d := range [2]int{x, y} {
			if !urDigitLocked(g, rect, d, true) && !urDigitLocked(g, rect, d, false) {
				continue
			}
			var elims []Elimination
			for _, r := range roof {
				if cellHas(g, r, d) {
					elims = append(elims, Elimination{Pos: r, Digit: d})
				}
			}
			if len(elims) == 0 {
				continue
			}
			steps = append(steps, Step{
				Technique:  UniqueRectangleType6,
				Highlights: rect.cells[:],
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("unique rectangle type 6 x-wing on %d clears the roof corners", d),
			})
		}
	}
	return steps
}

// urDigitLocked reports whether d's candidates in both rectangle rows are
// confined to the rectangle columns (byRow), or the transpose.
func urDigitLocked(g *engine.Grid, rect rectangle, d int, byRow bool) bool {
	r1, c1 := rect.cells[0].Row, rect.cells[0].Col
	r2, c2 := rect.cells[3].Row, rect.cells[3].Col
	if byRow {
		for _, r := range [2]int{r1, r2} {
			for c := 0; c < position.GridSize; c++ {
				if c == c1 || c == c2 {
					continue
				}
				if cellHas(g, position.New(r, c), d) {
					return false
				}
			}
		}
		return true
	}
	for _, c := range [2]int{c1, c2} {
		for r := 0; r < position.GridSize; r++ {
			if r == r1 || r == r2 {
				continue
			}
			if cellHas(g, position.New(r, c), d) {
				return false
			}
		}
	}
	return true
}

// extendedFrame is a 2x3 (or 3x2) six-cell frame whose lines let rows (or
// columns) swap wholesale inside their band (or stack), the precondition
// for the six-cell deadly pattern.
type extendedFrame struct {
	cells [6]position.Position
}

func extendedFrames() []extendedFrame {
	var out []extendedFrame
	// two rows of one band x three columns
	for band := 0; band < 3; band++ {
		rows := [3]int{band * 3, band*3 + 1, band*3 + 2}
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				combinations(position.GridSize, 3, func(cols []int) {
					var f extendedFrame
					for k, c := range cols {
						f.cells[k] = position.New(rows[i], c)
						f.cells[3+k] = position.New(rows[j], c)
					}
					out = append(out, f)
				})
			}
		}
	}
	// two columns of one stack x three rows
	for stack := 0; stack < 3; stack++ {
		cols := [3]int{stack * 3, stack*3 + 1, stack*3 + 2}
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				combinations(position.GridSize, 3, func(rows []int) {
					var f extendedFrame
					for k, r := range rows {
						f.cells[k] = position.New(r, cols[i])
						f.cells[3+k] = position.New(r, cols[j])
					}
					out = append(out, f)
				})
			}
		}
	}
	return out
}

var allExtendedFrames = extendedFrames()

// detectExtendedUniqueRectangle finds a six-cell frame where five cells
// draw from the same three digits; the sixth cell must escape that set or
// the two lines could swap into a second solution, so the three digits
// leave the sixth cell.
func detectExtendedUniqueRectangle(g *engine.Grid) []Step {
	var steps []Step
	for _, f := range allExtendedFrames {
		allEmpty := true
		for _, p := range f.cells {
			if g.Cells[p.Index()].Value != 0 {
				allEmpty = false
				break
			}
		}
		if !allEmpty {
			continue
		}
		for target := 0; target < 6; target++ {
			var rest bitset.Set
			for i, p := range f.cells {
				if i != target {
					rest = rest.Union(g.Cells[p.Index()].Candidates)
				}
			}
			if rest.Count() != 3 {
				continue
			}
			tp := f.cells[target]
			tCand := g.Cells[tp.Index()].Candidates
			if tCand.IsSubsetOf(rest) {
				continue // fully inside the pattern: nothing to clear soundly
			}
			var elims []Elimination
			for _, d := range rest.Digits() {
				if tCand.Has(d) {
					elims = append(elims, Elimination{Pos: tp, Digit: d})
				}
			}
			if len(elims) == 0 {
				continue
			}
			steps = append(steps, Step{
				Technique:  ExtendedUniqueRectangle,
				Highlights: f.cells[:],
				Action:     Action{Eliminate: elims},
				Message:    fmt.Sprintf("extended unique rectangle locks %v out of %s", rest.Digits(), tp),
			})
		}
	}
	return steps
}
