package solver

import (
	"fmt"

	"github.com/kvanta/ukodus-core/internal/bitset"
	"github.com/kvanta/ukodus-core/internal/engine"
	"github.com/kvanta/ukodus-core/internal/position"
)

// rectangle is one candidate Unique Rectangle frame: four cells in two
// rows and two columns that together span exactly two boxes, the
// precondition for every UR/deadly-pattern technique.
type rectangle struct {
	cells [4]position.Position // (r1,c1) (r1,c2) (r2,c1) (r2,c2)
}

func candidateRectangles() []rectangle {
	var out []rectangle
	for r1 := 0; r1 < position.GridSize; r1++ {
		for r2 := r1 + 1; r2 < position.GridSize; r2++ {
			for c1 := 0; c1 < position.GridSize; c1++ {
				for c2 := c1 + 1; c2 < position.GridSize; c2++ {
					sameBoxRow := r1/3 == r2/3
					sameBoxCol := c1/3 == c2/3
					if sameBoxRow == sameBoxCol {
						continue // spans 1 or 4 boxes, not exactly 2
					}
					out = append(out, rectangle{cells: [4]position.Position{
						position.New(r1, c1), position.New(r1, c2),
						position.New(r2, c1), position.New(r2, c2),
					}})
				}
			}
		}
	}
	return out
}

var allRectangles = candidateRectangles()

// floorRoof classifies a rectangle's cells into a pair that is already an
// exact bivalue {x,y} ("floor") and the other two cells ("roof"), given the
// common pair found across all four cells. A diagonal floor is preferred;
// otherwise the floor is a pair sharing a row or column.
func floorRoof(g *engine.Grid, rect rectangle) (floor, roof [2]position.Position, x, y int, ok bool) {
	var union bitset.Set
	for _, c := range rect.cells {
		cell := g.Cells[c.Index()]
		if cell.Value != 0 {
			return floor, roof, 0, 0, false
		}
		union = union.Union(cell.Candidates)
	}
	if union.Count() < 2 {
		return floor, roof, 0, 0, false
	}
	// the UR pair must be contained in every cell's candidates
	digits := union.Digits()
	for i := 0; i < len(digits); i++ {
		for j := i + 1; j < len(digits); j++ {
			px, py := digits[i], digits[j]
			allHave := true
			for _, c := range rect.cells {
				cand := g.Cells[c.Index()].Candidates
				if !cand.Has(px) || !cand.Has(py) {
					allHave = false
					break
				}
			}
			if !allHave {
				continue
			}
			var bivalueCells []position.Position
			for _, c := range rect.cells {
				if g.Cells[c.Index()].Candidates.Count() == 2 {
					bivalueCells = append(bivalueCells, c)
				}
			}
			if len(bivalueCells) < 2 {
				continue
			}
			// diagonal pairs (0,3), (1,2) first, then row pairs (0,1), (2,3)
			// and column pairs (0,2), (1,3) in rect.cells layout
			for _, fr := range [6][4]int{{0, 3, 1, 2}, {1, 2, 0, 3}, {0, 1, 2, 3}, {2, 3, 0, 1}, {0, 2, 1, 3}, {1, 3, 0, 2}} {
				if containsPos(bivalueCells, rect.cells[fr[0]]) && containsPos(bivalueCells, rect.cells[fr[1]]) {
					return [2]position.Position{rect.cells[fr[0]], rect.cells[fr[1]]}, [2]position.Position{rect.cells[fr[2]], rect.cells[fr[3]]}, px, py, true
				}
			}
		}
	}
	return floor, roof, 0, 0, false
}

// detectUniqueRectangleType1 eliminates x and y from the single roof cell
// that holds extra candidates, when the other three cells are exactly
// {x,y}.
func detectUniqueRectangleType1(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		floor, roof, x, y, ok := floorRoof(g, rect)
		if !ok {
			continue
		}
		c0, c1 := g.Cells[roof[0].Index()].Candidates, g.Cells[roof[1].Index()].Candidates
		var extra position.Position
		switch {
		case c0.Count() == 2 && c1.Count() > 2:
			extra = roof[1]
		case c1.Count() == 2 && c0.Count() > 2:
			extra = roof[0]
		default:
			continue
		}
		var elims []Elimination
		if cellHas(g, extra, x) {
			elims = append(elims, Elimination{Pos: extra, Digit: x})
		}
		if cellHas(g, extra, y) {
			elims = append(elims, Elimination{Pos: extra, Digit: y})
		}
		if len(elims) == 0 {
			continue
		}
		steps = append(steps, Step{
			Technique:  UniqueRectangleType1,
			Highlights: []position.Position{floor[0], floor[1], roof[0], roof[1]},
			Action:     Action{Eliminate: elims},
			Message:    fmt.Sprintf("unique rectangle type 1 on %d/%d clears the extra cell", x, y),
		})
	}
	return steps
}

// detectUniqueRectangleType2 eliminates a shared extra digit z from any
// cell seeing both roof cells, when both roof cells are exactly {x,y,z}.
func detectUniqueRectangleType2(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		floor, roof, x, y, ok := floorRoof(g, rect)
		if !ok {
			continue
		}
		c0, c1 := g.Cells[roof[0].Index()].Candidates, g.Cells[roof[1].Index()].Candidates
		if c0.Count() != 3 || c1.Count() != 3 || c0 != c1 {
			continue
		}
		z, zok := c0.Diff(bitset.Of(x, y)).Single()
		if !zok {
			continue
		}
		var elims []Elimination
		for p := 0; p < position.TotalCells; p++ {
			pos := position.FromIndex(p)
			if containsPos(rect.cells[:], pos) {
				continue
			}
			if sharedUnit(pos, roof[0]) && sharedUnit(pos, roof[1]) && cellHas(g, pos, z) {
				elims = append(elims, Elimination{Pos: pos, Digit: z})
			}
		}
		if len(elims) == 0 {
			continue
		}
		steps = append(steps, Step{
			Technique:  UniqueRectangleType2,
			Highlights: []position.Position{floor[0], floor[1], roof[0], roof[1]},
			Action:     Action{Eliminate: elims},
			Message:    fmt.Sprintf("unique rectangle type 2 on %d/%d eliminates %d", x, y, z),
		})
	}
	return steps
}

// detectUniqueRectangleType3 treats the roof cells' extra candidates as a
// virtual naked subset shared with other cells of a common house, clearing
// those digits from the rest of that house.
func detectUniqueRectangleType3(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		floor, roof, x, y, ok := floorRoof(g, rect)
		if !ok {
			continue
		}
		extra := g.Cells[roof[0].Index()].Candidates.Union(g.Cells[roof[1].Index()].Candidates).Diff(bitset.Of(x, y))
		if extra.IsEmpty() {
			continue
		}
		if !sharedUnit(roof[0], roof[1]) {
			continue
		}
		for _, u := range units() {
			if !containsPos(u, roof[0]) || !containsPos(u, roof[1]) {
				continue
			}
			k := extra.Count() + 1 // roof pair acts as one virtual cell holding `extra`
			var others []position.Position
			for _, p := range u {
				if p == roof[0] || p == roof[1] {
					continue
				}
				if g.Cells[p.Index()].Value == 0 {
					others = append(others, p)
				}
			}
			combinations(len(others), k-1, func(idx []int) {
				cells := make([]position.Position, k-1)
				union := extra
				for i, ix := range idx {
					cells[i] = others[ix]
					union = union.Union(g.Cells[cells[i].Index()].Candidates)
				}
				if union.Count() != k {
					return
				}
				var elims []Elimination
				for _, p := range u {
					if p == roof[0] || p == roof[1] || containsPos(cells, p) {
						continue
					}
					if g.Cells[p.Index()].Value != 0 {
						continue
					}
					for _, d := range union.Digits() {
						if cellHas(g, p, d) {
							elims = append(elims, Elimination{Pos: p, Digit: d})
						}
					}
				}
				if len(elims) == 0 {
					return
				}
				hl := append([]position.Position{floor[0], floor[1], roof[0], roof[1]}, cells...)
				steps = append(steps, Step{
					Technique:  UniqueRectangleType3,
					Highlights: hl,
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("unique rectangle type 3 on %d/%d forms a subset with %v", x, y, cells),
				})
			})
		}
	}
	return steps
}

// detectUniqueRectangleType4 eliminates the non-conjugate digit from both
// roof cells when the other digit is conjugate (locked to the roof pair)
// in one of the two lines the roof cells share.
func detectUniqueRectangleType4(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		floor, roof, x, y, ok := floorRoof(g, rect)
		if !ok {
			continue
		}
		if !sharedUnit(roof[0], roof[1]) {
			continue
		}
		for _, u := range units() {
			if !containsPos(u, roof[0]) || !containsPos(u, roof[1]) {
				continue
			}
			for _, locked := range [2]int{x, y} {
				other := x
				if locked == x {
					other = y
				}
				conjugate := true
				for _, p := range u {
					if p == roof[0] || p == roof[1] {
						continue
					}
					if cellHas(g, p, locked) {
						conjugate = false
						break
					}
				}
				if !conjugate {
					continue
				}
				var elims []Elimination
				if cellHas(g, roof[0], other) {
					elims = append(elims, Elimination{Pos: roof[0], Digit: other})
				}
				if cellHas(g, roof[1], other) {
					elims = append(elims, Elimination{Pos: roof[1], Digit: other})
				}
				if len(elims) == 0 {
					continue
				}
				steps = append(steps, Step{
					Technique:  UniqueRectangleType4,
					Highlights: []position.Position{floor[0], floor[1], roof[0], roof[1]},
					Action:     Action{Eliminate: elims},
					Message:    fmt.Sprintf("unique rectangle type 4 locks %d, clearing %d from the roof", locked, other),
				})
			}
		}
	}
	return steps
}

// detectHiddenRectangle finds a UR frame where one digit is conjugate in
// both lines through one roof cell, forcing the other roof cell's opposite
// digit and eliminating it from that cell.
func detectHiddenRectangle(g *engine.Grid) []Step {
	var steps []Step
	for _, rect := range allRectangles {
		floor, roof, x, y, ok := floorRoof(g, rect)
		if !ok {
			continue
		}
		for i, r := range roof {
			other := roof[1-i]
			rowConj := conjugateInLine(g, r, other, x, true) || conjugateInLine(g, r, other, y, true)
			colConj := conjugateInLine(g, r, other, x, false) || conjugateInLine(g, r, other, y, false)
			if !rowConj || !colConj {
				continue
			}
			// whichever digit is conjugate in both lines forces the other
			// onto `other`, so the non-conjugate digit can be cleared there.
			var lockedDigit int
			if conjugateInLine(g, r, other, x, true) && conjugateInLine(g, r, other, x, false) {
				lockedDigit = x
			} else if conjugateInLine(g, r, other, y, true) && conjugateInLine(g, r, other, y, false) {
				lockedDigit = y
			} else {
				continue
			}
			cleared := y
			if lockedDigit == y {
				cleared = x
			}
			if !cellHas(g, other, cleared) {
				continue
			}
			steps = append(steps, Step{
				Technique:  HiddenRectangle,
				Highlights: []position.Position{floor[0], floor[1], roof[0], roof[1]},
				Action:     Action{Eliminate: []Elimination{{Pos: other, Digit: cleared}}},
				Message:    fmt.Sprintf("hidden rectangle forces %d, clearing %d from %s", lockedDigit, cleared, other),
			})
		}
	}
	return steps
}

// conjugateInLine reports whether d is conjugate (locked to exactly r and
// partner) within r's row when byRow, else r's column.
func conjugateInLine(g *engine.Grid, r, partner position.Position, d int, byRow bool) bool {
	count := 0
	sawPartner := false
	for i := 0; i < position.GridSize; i++ {
		var p position.Position
		if byRow {
			p = position.New(r.Row, i)
		} else {
			p = position.New(i, r.Col)
		}
		if cellHas(g, p, d) {
			count++
			if p == partner {
				sawPartner = true
			}
		}
	}
	return count == 2 && sawPartner
}

// detectBUGPlusOne handles the "bivalue universal graveyard plus one"
// pattern: every empty cell is bivalue except a single tri-value cell,
// whose extra digit must be the one placed.
func detectBUGPlusOne(g *engine.Grid) []Step {
	var extra position.Position
	var extraDigit int
	count := 0
	for idx, c := range g.Cells {
		if c.Value != 0 {
			continue
		}
		switch c.Candidates.Count() {
		case 2:
			continue
		case 3:
			count++
			extra = position.FromIndex(idx)
		default:
			return nil
		}
	}
	if count != 1 {
		return nil
	}
	cell := g.Cells[extra.Index()]
	for _, d := range cell.Candidates.Digits() {
		n := 0
		for c := 0; c < position.GridSize; c++ {
			if cellHas(g, position.New(extra.Row, c), d) {
				n++
			}
		}
		if n%2 == 1 {
			extraDigit = d
			break
		}
	}
	if extraDigit == 0 {
		return nil
	}
	return []Step{{
		Technique:  BUGPlusOne,
		Highlights: []position.Position{extra},
		Action:     Action{Place: true, Pos: extra, Digit: extraDigit},
		Message:    fmt.Sprintf("bug+1 forces %d at %s", extraDigit, extra),
	}}
}
