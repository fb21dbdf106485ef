package solver

import "github.com/kvanta/ukodus-core/internal/position"

// unit kinds used when scanning rows, columns and boxes uniformly.
type unitKind int

const (
	unitRow unitKind = iota
	unitCol
	unitBox
)

// units returns the 27 houses of the grid as position lists, row-major
// within each house. Used by every line/box based technique instead of
// re-deriving peers ad hoc.
func units() [27][]position.Position {
	var us [27][]position.Position
	for r := 0; r < position.GridSize; r++ {
		row := make([]position.Position, 0, 9)
		for c := 0; c < position.GridSize; c++ {
			row = append(row, position.New(r, c))
		}
		us[r] = row
	}
	for c := 0; c < position.GridSize; c++ {
		col := make([]position.Position, 0, 9)
		for r := 0; r < position.GridSize; r++ {
			col = append(col, position.New(r, c))
		}
		us[9+c] = col
	}
	for b := 0; b < position.GridSize; b++ {
		br, bc := (b/3)*3, (b%3)*3
		box := make([]position.Position, 0, 9)
		for dr := 0; dr < 3; dr++ {
			for dc := 0; dc < 3; dc++ {
				box = append(box, position.New(br+dr, bc+dc))
			}
		}
		us[18+b] = box
	}
	return us
}

// peers returns every cell sharing a row, column or box with pos, excluding
// pos itself, deduplicated.
func peers(pos position.Position) []position.Position {
	seen := map[position.Position]bool{pos: true}
	var out []position.Position
	add := func(p position.Position) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for c := 0; c < position.GridSize; c++ {
		add(position.New(pos.Row, c))
	}
	for r := 0; r < position.GridSize; r++ {
		add(position.New(r, pos.Col))
	}
	br, bc := (pos.Box()/3)*3, (pos.Box()%3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			add(position.New(br+dr, bc+dc))
		}
	}
	return out
}

// sharedUnit reports whether a and b are distinct cells that see each other.
func sharedUnit(a, b position.Position) bool {
	return a != b && (a.Row == b.Row || a.Col == b.Col || a.Box() == b.Box())
}

func containsPos(list []position.Position, p position.Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
