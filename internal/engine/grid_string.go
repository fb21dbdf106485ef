package engine

import (
	"strings"
	"unicode"

	"github.com/kvanta/ukodus-core/internal/position"
)

// String renders the grid's givens as an 81-character row-major string:
// '1'..'9' for a given cell, '.' for anything else (empty or a non-given
// placement). This is a puzzle-exchange surface, not a save format — pencil
// marks and non-given values are never preserved.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(position.TotalCells)
	for _, c := range g.Cells {
		if c.Given {
			sb.WriteByte(byte('0' + c.Value))
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// ParseGrid parses an 81-character grid string into a new Classic-variant
// grid. Whitespace is ignored; '1'..'9' become givens; '0' and '.' become
// empty cells. Any other character fails with ErrParseFailure.
func ParseGrid(s string) (*Grid, error) {
	return ParseGridVariant(s, VariantClassic, nil)
}

// ParseGridVariant parses s into a grid of the given variant, attaching the
// supplied Killer cages when variant is VariantKiller.
func ParseGridVariant(s string, variant Variant, cages []Cage) (*Grid, error) {
	digits := make([]byte, 0, position.TotalCells)
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		digits = append(digits, byte(r))
	}
	if len(digits) != position.TotalCells {
		return nil, ErrParseFailure
	}

	g := NewGrid(variant, cages)
	for idx, ch := range digits {
		switch {
		case ch >= '1' && ch <= '9':
			g.Cells[idx].Value = int(ch - '0')
			g.Cells[idx].Given = true
		case ch == '0' || ch == '.':
			g.Cells[idx].Value = 0
		default:
			return nil, ErrParseFailure
		}
	}
	g.RecalculateCandidates()
	return g, nil
}
