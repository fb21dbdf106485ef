package engine

import "github.com/kvanta/ukodus-core/internal/position"

// rowConstraint enforces uniqueness within a row.
type rowConstraint struct{ row int }

func (c rowConstraint) Name() string { return "row" }

func (c rowConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	if pos.Row != c.row {
		return true
	}
	for col := 0; col < position.GridSize; col++ {
		if col == pos.Col {
			continue
		}
		if g.Cells[position.New(c.row, col).Index()].Value == v {
			return false
		}
	}
	return true
}

func (c rowConstraint) AffectedCells(pos position.Position) []position.Position {
	if pos.Row != c.row {
		return nil
	}
	out := make([]position.Position, 0, position.GridSize-1)
	for col := 0; col < position.GridSize; col++ {
		if col != pos.Col {
			out = append(out, position.New(c.row, col))
		}
	}
	return out
}

// columnConstraint enforces uniqueness within a column.
type columnConstraint struct{ col int }

func (c columnConstraint) Name() string { return "column" }

func (c columnConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	if pos.Col != c.col {
		return true
	}
	for row := 0; row < position.GridSize; row++ {
		if row == pos.Row {
			continue
		}
		if g.Cells[position.New(row, c.col).Index()].Value == v {
			return false
		}
	}
	return true
}

func (c columnConstraint) AffectedCells(pos position.Position) []position.Position {
	if pos.Col != c.col {
		return nil
	}
	out := make([]position.Position, 0, position.GridSize-1)
	for row := 0; row < position.GridSize; row++ {
		if row != pos.Row {
			out = append(out, position.New(row, c.col))
		}
	}
	return out
}

// boxConstraint enforces uniqueness within a 3x3 box.
type boxConstraint struct{ box int }

func boxCells(box int) []position.Position {
	startRow := (box / position.BoxSize) * position.BoxSize
	startCol := (box % position.BoxSize) * position.BoxSize
	out := make([]position.Position, 0, position.TotalCells/9)
	for r := startRow; r < startRow+position.BoxSize; r++ {
		for c := startCol; c < startCol+position.BoxSize; c++ {
			out = append(out, position.New(r, c))
		}
	}
	return out
}

func (c boxConstraint) Name() string { return "box" }

func (c boxConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	if pos.Box() != c.box {
		return true
	}
	for _, p := range boxCells(c.box) {
		if p == pos {
			continue
		}
		if g.Cells[p.Index()].Value == v {
			return false
		}
	}
	return true
}

func (c boxConstraint) AffectedCells(pos position.Position) []position.Position {
	if pos.Box() != c.box {
		return nil
	}
	out := make([]position.Position, 0, 8)
	for _, p := range boxCells(c.box) {
		if p != pos {
			out = append(out, p)
		}
	}
	return out
}

// diagonalConstraint enforces uniqueness along the main or anti diagonal,
// and only ever applies to positions that actually lie on that diagonal.
type diagonalConstraint struct{ main bool }

func (c diagonalConstraint) onDiagonal(p position.Position) bool {
	if c.main {
		return p.OnMainDiagonal()
	}
	return p.OnAntiDiagonal()
}

func (c diagonalConstraint) cells() []position.Position {
	out := make([]position.Position, 0, position.GridSize)
	for i := 0; i < position.GridSize; i++ {
		if c.main {
			out = append(out, position.New(i, i))
		} else {
			out = append(out, position.New(i, position.GridSize-1-i))
		}
	}
	return out
}

func (c diagonalConstraint) Name() string {
	if c.main {
		return "diagonal_main"
	}
	return "diagonal_anti"
}

func (c diagonalConstraint) Validate(g *Grid, pos position.Position, v int) bool {
	if !c.onDiagonal(pos) {
		return true
	}
	for _, p := range c.cells() {
		if p == pos {
			continue
		}
		if g.Cells[p.Index()].Value == v {
			return false
		}
	}
	return true
}

func (c diagonalConstraint) AffectedCells(pos position.Position) []position.Position {
	if !c.onDiagonal(pos) {
		return nil
	}
	out := make([]position.Position, 0, position.GridSize-1)
	for _, p := range c.cells() {
		if p != pos {
			out = append(out, p)
		}
	}
	return out
}
